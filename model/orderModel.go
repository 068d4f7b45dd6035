// model/orderModel.go
package model

import "time"

type OrderType int

const (
	OrderPurchase OrderType = 0
	OrderBorrow   OrderType = 1
)

func (t OrderType) Valid() bool { return t == OrderPurchase || t == OrderBorrow }

func (t OrderType) Label() string {
	if t == OrderPurchase {
		return "Purchase"
	}
	return "Borrow"
}

// Order is immutable once created; borrow orders also grow the member's
// borrowed set during fulfillment.
type Order struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	BookIDs   []int64   `json:"book_ids"`
	OrderType OrderType `json:"order_type"`
	OrderDate time.Time `json:"order_date"`
}

func (o *Order) TotalItems() int { return len(o.BookIDs) }
