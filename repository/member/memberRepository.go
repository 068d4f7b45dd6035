package memberrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Create(ctx context.Context, m *model.Member) error
	ByID(ctx context.Context, id int64) (*model.Member, error)
	ByUserID(ctx context.Context, userID int64) (*model.Member, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error)

	// AddBorrowed records one borrowed book inside the fulfillment
	// transaction; re-adding an already borrowed book is a no-op.
	AddBorrowed(ctx context.Context, tx *sql.Tx, memberID, bookID int64) error
	ListBorrowed(ctx context.Context, memberID int64) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, m *model.Member) error {
	const q = `
INSERT INTO members (user_id, status, address, city, province, auto_renew)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, last_renewal`
	return r.db.QueryRowContext(ctx, q,
		m.UserID, int(m.Status), m.Address, m.City, m.Province, m.AutoRenew,
	).Scan(&m.ID, &m.LastRenewal)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Member, error) {
	const q = `
SELECT id, user_id, status, address, city, province, last_renewal, auto_renew
FROM members
WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ByUserID(ctx context.Context, userID int64) (*model.Member, error) {
	const q = `
SELECT id, user_id, status, address, city, province, last_renewal, auto_renew
FROM members
WHERE user_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, userID))
}

func (r *repo) scanOne(row *sql.Row) (*model.Member, error) {
	m := &model.Member{}
	var status int
	err := row.Scan(&m.ID, &m.UserID, &status, &m.Address, &m.City, &m.Province, &m.LastRenewal, &m.AutoRenew)
	if err != nil {
		return nil, err
	}
	m.Status = model.MemberStatus(status)
	return m, nil
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM members WHERE id=$1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *repo) ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM members WHERE id=$1)`
	var ok bool
	err := tx.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *repo) AddBorrowed(ctx context.Context, tx *sql.Tx, memberID, bookID int64) error {
	const q = `
INSERT INTO member_borrowed_books (member_id, book_id)
VALUES ($1,$2)
ON CONFLICT (member_id, book_id) DO NOTHING`
	_, err := tx.ExecContext(ctx, q, memberID, bookID)
	return err
}

func (r *repo) ListBorrowed(ctx context.Context, memberID int64) ([]model.Book, error) {
	const q = `
SELECT b.id, b.title, b.category, b.num_pages, b.price, b.publisher_id, b.description, b.num_reviews
FROM member_borrowed_books mb
JOIN books b ON b.id = mb.book_id
WHERE mb.member_id = $1
ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
