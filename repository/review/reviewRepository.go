package reviewrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	// Insert persists the review inside the submission transaction.
	Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error

	// Average computes the mean rating for a (book, reviewer) pair on
	// demand. found is false when no matching review exists, which is a
	// distinct outcome from an average of zero.
	Average(ctx context.Context, bookID int64, reviewer string) (avg float64, found bool, err error)

	ListForBook(ctx context.Context, bookID int64) ([]model.Review, error)
	CountForBook(ctx context.Context, bookID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	const q = `
INSERT INTO reviews (reviewer, book_id, rating, comments)
VALUES ($1,$2,$3,$4)
RETURNING id, review_date`
	return tx.QueryRowContext(ctx, q, rv.Reviewer, rv.BookID, rv.Rating, rv.Comments).
		Scan(&rv.ID, &rv.Date)
}

func (r *repo) Average(ctx context.Context, bookID int64, reviewer string) (float64, bool, error) {
	const q = `
SELECT AVG(rating)
FROM reviews
WHERE book_id = $1
  AND lower(reviewer) = lower($2)`
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q, bookID, reviewer).Scan(&avg); err != nil {
		return 0, false, err
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

func (r *repo) ListForBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	const q = `
SELECT id, reviewer, book_id, rating, comments, review_date
FROM reviews
WHERE book_id = $1
ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Reviewer, &rv.BookID, &rv.Rating, &rv.Comments, &rv.Date); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) CountForBook(ctx context.Context, bookID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM reviews WHERE book_id = $1`
	var n int64
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&n)
	return n, err
}
