package ordersvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	orderrepo "bookstore/repository/order"

	"bookstore/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrEmptyOrder     ErrCode = "EMPTY_ORDER"
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrMemberNotFound ErrCode = "MEMBER_NOT_FOUND"
	ErrBadOrderType   ErrCode = "BAD_ORDER_TYPE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// HistoryRow = repository shape
type HistoryRow = orderrepo.HistoryRow

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, memberID int64, orderType int) (int64, time.Time, error)
	AddBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error
	ListAll(ctx context.Context) ([]HistoryRow, error)
	ListByMember(ctx context.Context, memberID int64) ([]HistoryRow, error)
}

type BookRepo interface {
	ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
}

type MemberRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	AddBorrowed(ctx context.Context, tx *sql.Tx, memberID, bookID int64) error
}

type Service interface {
	// Place validates and persists an order. Borrow orders also add every
	// ordered book to the member's borrowed set; the order row and the
	// borrowed-set additions commit or roll back together.
	Place(ctx context.Context, memberID int64, bookIDs []int64, orderType model.OrderType) (*model.Order, error)

	History(ctx context.Context) ([]HistoryRow, error)
	MemberHistory(ctx context.Context, memberID int64) ([]HistoryRow, error)
}

type service struct {
	db *sql.DB
	r  Repo
	br BookRepo
	mr MemberRepo
}

func New(db *sql.DB, r Repo, br BookRepo, mr MemberRepo) Service {
	return &service{db: db, r: r, br: br, mr: mr}
}

func (s *service) Place(ctx context.Context, memberID int64, bookIDs []int64, orderType model.OrderType) (o *model.Order, err error) {
	if len(bookIDs) == 0 {
		return nil, makeErr(ErrEmptyOrder)
	}
	if !orderType.Valid() {
		return nil, makeErr(ErrBadOrderType)
	}
	bookIDs = dedupe(bookIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ok, err := s.mr.ExistsTx(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		err = makeErr(ErrMemberNotFound)
		return nil, err
	}
	for _, id := range bookIDs {
		ok, err = s.br.ExistsTx(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			err = makeErr(ErrBookNotFound)
			return nil, err
		}
	}

	orderID, orderDate, err := s.r.Insert(ctx, tx, memberID, int(orderType))
	if err != nil {
		return nil, err
	}
	for _, id := range bookIDs {
		if err = s.r.AddBook(ctx, tx, orderID, id); err != nil {
			return nil, err
		}
	}

	if orderType == model.OrderBorrow {
		for _, id := range bookIDs {
			if err = s.mr.AddBorrowed(ctx, tx, memberID, id); err != nil {
				return nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Order{
		ID:        orderID,
		MemberID:  memberID,
		BookIDs:   bookIDs,
		OrderType: orderType,
		OrderDate: orderDate,
	}, nil
}

func (s *service) History(ctx context.Context) ([]HistoryRow, error) {
	return s.r.ListAll(ctx)
}

func (s *service) MemberHistory(ctx context.Context, memberID int64) ([]HistoryRow, error) {
	ok, err := s.mr.Exists(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrMemberNotFound)
	}
	return s.r.ListByMember(ctx, memberID)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
