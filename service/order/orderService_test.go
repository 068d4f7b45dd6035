package ordersvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"bookstore/model"
	ordersvc "bookstore/service/order"
)

type orderRepoMock struct {
	insertFn  func(ctx context.Context, tx *sql.Tx, memberID int64, orderType int) (int64, time.Time, error)
	addBookFn func(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error
	listAllFn func(ctx context.Context) ([]ordersvc.HistoryRow, error)
	listByFn  func(ctx context.Context, memberID int64) ([]ordersvc.HistoryRow, error)
}

func (m *orderRepoMock) Insert(ctx context.Context, tx *sql.Tx, memberID int64, orderType int) (int64, time.Time, error) {
	return m.insertFn(ctx, tx, memberID, orderType)
}
func (m *orderRepoMock) AddBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error {
	return m.addBookFn(ctx, tx, orderID, bookID)
}
func (m *orderRepoMock) ListAll(ctx context.Context) ([]ordersvc.HistoryRow, error) {
	return m.listAllFn(ctx)
}
func (m *orderRepoMock) ListByMember(ctx context.Context, memberID int64) ([]ordersvc.HistoryRow, error) {
	return m.listByFn(ctx, memberID)
}

type bookRepoMock struct {
	existing map[int64]bool
}

func (m *bookRepoMock) ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return m.existing[id], nil
}

// memberRepoMock keeps the borrowed set in memory so idempotence is
// observable across calls.
type memberRepoMock struct {
	exists   bool
	borrowed map[int64]struct{}
	adds     int
}

func (m *memberRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists, nil
}
func (m *memberRepoMock) ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return m.exists, nil
}
func (m *memberRepoMock) AddBorrowed(ctx context.Context, tx *sql.Tx, memberID, bookID int64) error {
	m.adds++
	m.borrowed[bookID] = struct{}{}
	return nil
}

func newService(t *testing.T, or *orderRepoMock, br *bookRepoMock, mr *memberRepoMock) (ordersvc.Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return ordersvc.New(db, or, br, mr), mock, db
}

func defaultOrderRepo() *orderRepoMock {
	return &orderRepoMock{
		insertFn: func(ctx context.Context, tx *sql.Tx, memberID int64, orderType int) (int64, time.Time, error) {
			return 7, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil
		},
		addBookFn: func(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error { return nil },
	}
}

func TestPlace_EmptyBookSet(t *testing.T) {
	svc, _, db := newService(t, defaultOrderRepo(), &bookRepoMock{}, &memberRepoMock{})
	defer db.Close()

	_, err := svc.Place(context.Background(), 1, nil, model.OrderBorrow)
	require.Error(t, err)
	require.Equal(t, ordersvc.ErrEmptyOrder, ordersvc.Code(err))
}

func TestPlace_UnknownMember(t *testing.T) {
	mr := &memberRepoMock{exists: false, borrowed: map[int64]struct{}{}}
	svc, mock, db := newService(t, defaultOrderRepo(), &bookRepoMock{existing: map[int64]bool{1: true}}, mr)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Place(context.Background(), 99, []int64{1}, model.OrderBorrow)
	require.Equal(t, ordersvc.ErrMemberNotFound, ordersvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlace_UnknownBook(t *testing.T) {
	mr := &memberRepoMock{exists: true, borrowed: map[int64]struct{}{}}
	br := &bookRepoMock{existing: map[int64]bool{1: true}}
	svc, mock, db := newService(t, defaultOrderRepo(), br, mr)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Place(context.Background(), 1, []int64{1, 404}, model.OrderBorrow)
	require.Equal(t, ordersvc.ErrBookNotFound, ordersvc.Code(err))
	require.Zero(t, mr.adds, "no borrowed-set writes may survive a failed order")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlace_BorrowAddsEveryBook(t *testing.T) {
	mr := &memberRepoMock{exists: true, borrowed: map[int64]struct{}{}}
	br := &bookRepoMock{existing: map[int64]bool{1: true, 2: true, 3: true}}
	svc, mock, db := newService(t, defaultOrderRepo(), br, mr)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	out, err := svc.Place(context.Background(), 1, []int64{1, 2, 3}, model.OrderBorrow)
	require.NoError(t, err)
	require.Equal(t, int64(7), out.ID)
	require.Equal(t, 3, out.TotalItems())
	require.Len(t, mr.borrowed, 3)
	for _, id := range []int64{1, 2, 3} {
		require.Contains(t, mr.borrowed, id)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlace_BorrowIsIdempotent(t *testing.T) {
	mr := &memberRepoMock{exists: true, borrowed: map[int64]struct{}{}}
	br := &bookRepoMock{existing: map[int64]bool{1: true, 2: true}}
	svc, mock, db := newService(t, defaultOrderRepo(), br, mr)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Place(context.Background(), 1, []int64{1, 2}, model.OrderBorrow)
	require.NoError(t, err)

	before := len(mr.borrowed)

	// same borrow again: the set must not change
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Place(context.Background(), 1, []int64{1, 2}, model.OrderBorrow)
	require.NoError(t, err)
	require.Len(t, mr.borrowed, before)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlace_PurchaseLeavesBorrowedUntouched(t *testing.T) {
	mr := &memberRepoMock{exists: true, borrowed: map[int64]struct{}{5: {}}}
	br := &bookRepoMock{existing: map[int64]bool{1: true}}
	svc, mock, db := newService(t, defaultOrderRepo(), br, mr)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Place(context.Background(), 1, []int64{1}, model.OrderPurchase)
	require.NoError(t, err)
	require.Zero(t, mr.adds)
	require.Len(t, mr.borrowed, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberHistory_UnknownMember(t *testing.T) {
	mr := &memberRepoMock{exists: false}
	svc, _, db := newService(t, defaultOrderRepo(), &bookRepoMock{}, mr)
	defer db.Close()

	_, err := svc.MemberHistory(context.Background(), 99)
	require.Equal(t, ordersvc.ErrMemberNotFound, ordersvc.Code(err))
}

func TestMemberHistory_KnownMember(t *testing.T) {
	or := defaultOrderRepo()
	or.listByFn = func(ctx context.Context, memberID int64) ([]ordersvc.HistoryRow, error) {
		require.Equal(t, int64(3), memberID)
		return []ordersvc.HistoryRow{{OrderID: 7}}, nil
	}
	mr := &memberRepoMock{exists: true}
	svc, _, db := newService(t, or, &bookRepoMock{}, mr)
	defer db.Close()

	rows, err := svc.MemberHistory(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestPlace_DuplicateBookIDsCollapse(t *testing.T) {
	var added []int64
	or := defaultOrderRepo()
	or.addBookFn = func(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error {
		added = append(added, bookID)
		return nil
	}
	mr := &memberRepoMock{exists: true, borrowed: map[int64]struct{}{}}
	br := &bookRepoMock{existing: map[int64]bool{1: true}}
	svc, mock, db := newService(t, or, br, mr)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	out, err := svc.Place(context.Background(), 1, []int64{1, 1, 1}, model.OrderBorrow)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, added)
	require.Equal(t, 1, out.TotalItems())
}
