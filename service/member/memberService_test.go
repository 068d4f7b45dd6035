package membersvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"bookstore/model"
)

type mockRepo struct {
	createFn   func(ctx context.Context, m *model.Member) error
	byIDFn     func(ctx context.Context, id int64) (*model.Member, error)
	byUserFn   func(ctx context.Context, userID int64) (*model.Member, error)
	borrowedFn func(ctx context.Context, memberID int64) ([]model.Book, error)
}

func (m *mockRepo) Create(ctx context.Context, mm *model.Member) error { return m.createFn(ctx, mm) }
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Member, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) ByUserID(ctx context.Context, userID int64) (*model.Member, error) {
	return m.byUserFn(ctx, userID)
}
func (m *mockRepo) ListBorrowed(ctx context.Context, memberID int64) ([]model.Book, error) {
	return m.borrowedFn(ctx, memberID)
}

func TestEnroll_Defaults(t *testing.T) {
	var got *model.Member
	svc := New(&mockRepo{createFn: func(ctx context.Context, m *model.Member) error {
		got = m
		m.ID = 5
		return nil
	}})

	out, err := svc.Enroll(context.Background(), &model.Member{UserID: 9})
	require.NoError(t, err)
	require.Equal(t, int64(5), out.ID)
	require.Equal(t, model.StatusRegular, got.Status)
	require.Equal(t, "Windsor", got.City)
	require.Equal(t, "ON", got.Province)
}

func TestEnroll_DuplicateMapsToAlreadyMember(t *testing.T) {
	svc := New(&mockRepo{createFn: func(ctx context.Context, m *model.Member) error {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "members_user_id_key"}
	}})

	_, err := svc.Enroll(context.Background(), &model.Member{UserID: 9})
	require.Equal(t, ErrAlreadyMember, Code(err))
}

func TestEnroll_BadInput(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Enroll(context.Background(), &model.Member{UserID: 0})
	require.Equal(t, ErrBadInput, Code(err))

	_, err = svc.Enroll(context.Background(), &model.Member{UserID: 1, Status: 7})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestProfile_ByID(t *testing.T) {
	svc := New(&mockRepo{byIDFn: func(ctx context.Context, id int64) (*model.Member, error) {
		return &model.Member{ID: id, UserID: 9, Status: model.StatusRegular}, nil
	}})

	m, err := svc.Profile(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, int64(4), m.ID)
}

func TestProfile_NotFound(t *testing.T) {
	svc := New(&mockRepo{byIDFn: func(ctx context.Context, id int64) (*model.Member, error) {
		return nil, sql.ErrNoRows
	}})

	_, err := svc.Profile(context.Background(), 99)
	require.Equal(t, ErrMemberNotFound, Code(err))
}

func TestProfileByUser_NotFound(t *testing.T) {
	svc := New(&mockRepo{byUserFn: func(ctx context.Context, userID int64) (*model.Member, error) {
		return nil, sql.ErrNoRows
	}})

	_, err := svc.ProfileByUser(context.Background(), 1)
	require.Equal(t, ErrMemberNotFound, Code(err))
}
