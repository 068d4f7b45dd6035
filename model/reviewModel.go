// model/reviewModel.go
package model

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID       int64     `json:"id"`
	Reviewer string    `json:"reviewer"`
	BookID   int64     `json:"book_id"`
	Rating   int       `json:"rating"`
	Comments *string   `json:"comments,omitempty"`
	Date     time.Time `json:"date"`
}
