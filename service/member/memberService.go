package membersvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/model"
)

type ErrCode string

const (
	ErrMemberNotFound ErrCode = "MEMBER_NOT_FOUND"
	ErrAlreadyMember  ErrCode = "ALREADY_MEMBER"
	ErrBadInput       ErrCode = "BAD_INPUT"
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

type Repo interface {
	Create(ctx context.Context, m *model.Member) error
	ByID(ctx context.Context, id int64) (*model.Member, error)
	ByUserID(ctx context.Context, userID int64) (*model.Member, error)
	ListBorrowed(ctx context.Context, memberID int64) ([]model.Book, error)
}

type Service interface {
	// Enroll creates the member profile composed over an existing user
	// identity. A user can hold at most one membership.
	Enroll(ctx context.Context, m *model.Member) (*model.Member, error)

	Profile(ctx context.Context, id int64) (*model.Member, error)
	ProfileByUser(ctx context.Context, userID int64) (*model.Member, error)
	Borrowed(ctx context.Context, memberID int64) ([]model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Enroll(ctx context.Context, m *model.Member) (*model.Member, error) {
	if m.UserID <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	if m.Status == 0 {
		m.Status = model.StatusRegular
	}
	if !m.Status.Valid() {
		return nil, makeErr(ErrBadInput)
	}
	if m.City == "" {
		m.City = "Windsor"
	}
	if m.Province == "" {
		m.Province = "ON"
	}

	if err := s.r.Create(ctx, m); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, makeErr(ErrAlreadyMember)
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Profile(ctx context.Context, id int64) (*model.Member, error) {
	m, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrMemberNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *service) ProfileByUser(ctx context.Context, userID int64) (*model.Member, error) {
	m, err := s.r.ByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrMemberNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (s *service) Borrowed(ctx context.Context, memberID int64) ([]model.Book, error) {
	return s.r.ListBorrowed(ctx, memberID)
}
