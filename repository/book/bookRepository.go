package bookrepo

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"bookstore/model"
)

// DetailRow carries the book plus display fields the detail page needs.
type DetailRow struct {
	model.Book
	PublisherName string `json:"publisher_name"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context, limit int) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*DetailRow, error)
	Search(ctx context.Context, maxPrice decimal.Decimal, category model.BookCategory) ([]model.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error)

	// IncrementReviews bumps the denormalized counter inside the review
	// submission transaction.
	IncrementReviews(ctx context.Context, tx *sql.Tx, bookID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, category, num_pages, price, publisher_id, description)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		b.Title, string(b.Category), b.NumPages, b.Price, b.PublisherID, b.Description,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) List(ctx context.Context, limit int) ([]model.Book, error) {
	const q = `
SELECT id, title, category, num_pages, price, publisher_id, description, num_reviews
FROM books
ORDER BY id
LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *repo) Detail(ctx context.Context, id int64) (*DetailRow, error) {
	const q = `
SELECT b.id, b.title, b.category, b.num_pages, b.price, b.publisher_id,
       b.description, b.num_reviews, p.name
FROM books b
JOIN publishers p ON p.id = b.publisher_id
WHERE b.id = $1`
	var d DetailRow
	var cat string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Title, &cat, &d.NumPages, &d.Price, &d.PublisherID,
		&d.Description, &d.NumReviews, &d.PublisherName,
	)
	if err != nil {
		return nil, err
	}
	d.Category = model.BookCategory(cat)
	return &d, nil
}

// Search returns books priced at or below maxPrice, narrowed by category
// when one is given. Recomputed fresh per call, storage order.
func (r *repo) Search(ctx context.Context, maxPrice decimal.Decimal, category model.BookCategory) ([]model.Book, error) {
	const q = `
SELECT id, title, category, num_pages, price, publisher_id, description, num_reviews
FROM books
WHERE price <= $1
  AND ($2 = '' OR category = $2)
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, maxPrice, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id=$1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *repo) ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id=$1)`
	var ok bool
	err := tx.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *repo) IncrementReviews(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
UPDATE books
SET num_reviews = num_reviews + 1
WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	var out []model.Book
	for rows.Next() {
		var b model.Book
		var cat string
		if err := rows.Scan(
			&b.ID, &b.Title, &cat, &b.NumPages, &b.Price,
			&b.PublisherID, &b.Description, &b.NumReviews,
		); err != nil {
			return nil, err
		}
		b.Category = model.BookCategory(cat)
		out = append(out, b)
	}
	return out, rows.Err()
}
