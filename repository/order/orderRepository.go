// repository/order/orderRepository.go
package orderrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// HistoryRow is one order flattened for the history listing.
type HistoryRow struct {
	OrderID    int64     `json:"order_id"`
	MemberID   int64     `json:"member_id"`
	Username   string    `json:"username"`
	OrderType  int       `json:"order_type"`
	OrderDate  time.Time `json:"order_date"`
	TotalItems int64     `json:"total_items"`
	BookTitles string    `json:"book_titles"`
}

type Repo interface {
	// Insert creates the order row inside the fulfillment transaction.
	Insert(ctx context.Context, tx *sql.Tx, memberID int64, orderType int) (orderID int64, orderDate time.Time, err error)
	AddBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error

	ListAll(ctx context.Context) ([]HistoryRow, error)
	ListByMember(ctx context.Context, memberID int64) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, memberID int64, orderType int) (int64, time.Time, error) {
	const q = `
INSERT INTO orders (member_id, order_type)
VALUES ($1,$2)
RETURNING id, order_date`
	var id int64
	var date time.Time
	if err := tx.QueryRowContext(ctx, q, memberID, orderType).Scan(&id, &date); err != nil {
		return 0, time.Time{}, err
	}
	return id, date, nil
}

func (r *repo) AddBook(ctx context.Context, tx *sql.Tx, orderID, bookID int64) error {
	const q = `
INSERT INTO order_books (order_id, book_id)
VALUES ($1,$2)`
	_, err := tx.ExecContext(ctx, q, orderID, bookID)
	return err
}

const historyQuery = `
SELECT
	o.id          AS order_id,
	o.member_id   AS member_id,
	u.username    AS username,
	o.order_type  AS order_type,
	o.order_date  AS order_date,
	COUNT(ob.book_id)::BIGINT        AS total_items,
	STRING_AGG(b.title, ', ' ORDER BY b.id) AS book_titles
FROM orders o
JOIN members m  ON m.id = o.member_id
JOIN users u    ON u.id = m.user_id
JOIN order_books ob ON ob.order_id = o.id
JOIN books b    ON b.id = ob.book_id
%s
GROUP BY o.id, u.username
ORDER BY o.id DESC`

func (r *repo) ListAll(ctx context.Context) ([]HistoryRow, error) {
	return r.list(ctx, "")
}

func (r *repo) ListByMember(ctx context.Context, memberID int64) ([]HistoryRow, error) {
	return r.list(ctx, "WHERE o.member_id = $1", memberID)
}

func (r *repo) list(ctx context.Context, where string, args ...any) ([]HistoryRow, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(historyQuery, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.OrderID, &h.MemberID, &h.Username, &h.OrderType,
			&h.OrderDate, &h.TotalItems, &h.BookTitles,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
