package order

type PlaceOrderReq struct {
	MemberID  int64   `json:"member_id" validate:"required,gt=0"`
	BookIDs   []int64 `json:"book_ids" validate:"required,min=1,dive,gt=0"`
	OrderType *int    `json:"order_type" validate:"omitempty,oneof=0 1"`
}
