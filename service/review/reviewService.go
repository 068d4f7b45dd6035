package reviewsvc

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"

	"bookstore/model"
)

type ErrCode string

const (
	ErrRatingOutOfRange ErrCode = "RATING_OUT_OF_RANGE"
	ErrBadReviewer      ErrCode = "BAD_REVIEWER"
	ErrBookNotFound     ErrCode = "BOOK_NOT_FOUND"
	ErrNoReviews        ErrCode = "NO_REVIEWS"
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
	Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error
	Average(ctx context.Context, bookID int64, reviewer string) (float64, bool, error)
	ListForBook(ctx context.Context, bookID int64) ([]model.Review, error)
	CountForBook(ctx context.Context, bookID int64) (int64, error)
}

type BookRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	IncrementReviews(ctx context.Context, tx *sql.Tx, bookID int64) error
}

type Service interface {
	// Submit persists the review and bumps the book's denormalized
	// counter in one transaction, so the counter can never drift from
	// the review rows.
	Submit(ctx context.Context, reviewer string, bookID int64, rating int, comments *string) (*model.Review, error)

	// AverageRating returns the mean rating the reviewer gave this book.
	// ErrBookNotFound for a book that does not exist, ErrNoReviews when
	// the pair has no reviews at all.
	AverageRating(ctx context.Context, bookID int64, reviewer string) (float64, error)

	ListForBook(ctx context.Context, bookID int64) ([]model.Review, int64, error)
}

type service struct {
	db *sql.DB
	r  Repo
	br BookRepo
}

func New(db *sql.DB, r Repo, br BookRepo) Service {
	return &service{db: db, r: r, br: br}
}

func (s *service) Submit(ctx context.Context, reviewer string, bookID int64, rating int, comments *string) (rv *model.Review, err error) {
	if rating < model.RatingMin || rating > model.RatingMax {
		return nil, makeErr(ErrRatingOutOfRange)
	}
	reviewer = strings.TrimSpace(strings.ToLower(reviewer))
	if _, aerr := mail.ParseAddress(reviewer); aerr != nil {
		return nil, makeErr(ErrBadReviewer)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ok, err := s.br.ExistsTx(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		err = makeErr(ErrBookNotFound)
		return nil, err
	}

	rv = &model.Review{
		Reviewer: reviewer,
		BookID:   bookID,
		Rating:   rating,
		Comments: comments,
	}
	if err = s.r.Insert(ctx, tx, rv); err != nil {
		return nil, err
	}
	if err = s.br.IncrementReviews(ctx, tx, bookID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) AverageRating(ctx context.Context, bookID int64, reviewer string) (float64, error) {
	ok, err := s.br.Exists(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrBookNotFound)
	}
	avg, found, err := s.r.Average(ctx, bookID, strings.TrimSpace(strings.ToLower(reviewer)))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, makeErr(ErrNoReviews)
	}
	return avg, nil
}

func (s *service) ListForBook(ctx context.Context, bookID int64) ([]model.Review, int64, error) {
	rows, err := s.r.ListForBook(ctx, bookID)
	if err != nil {
		return nil, 0, err
	}
	n, err := s.r.CountForBook(ctx, bookID)
	if err != nil {
		return nil, 0, err
	}
	return rows, n, nil
}
