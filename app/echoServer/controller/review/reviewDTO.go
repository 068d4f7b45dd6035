package review

type SubmitReviewReq struct {
	Reviewer string  `json:"reviewer" validate:"required,email"`
	BookID   int64   `json:"book_id" validate:"required,gt=0"`
	Rating   int     `json:"rating" validate:"required"`
	Comments *string `json:"comments"`
}
