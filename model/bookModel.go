// model/bookModel.go
package model

import "github.com/shopspring/decimal"

type BookCategory string

const (
	CategoryScienceTech BookCategory = "S"
	CategoryFiction     BookCategory = "F"
	CategoryBiography   BookCategory = "B"
	CategoryTravel      BookCategory = "T"
	CategoryOther       BookCategory = "O"
)

func (c BookCategory) Valid() bool {
	switch c {
	case CategoryScienceTech, CategoryFiction, CategoryBiography, CategoryTravel, CategoryOther:
		return true
	}
	return false
}

func (c BookCategory) Label() string {
	switch c {
	case CategoryScienceTech:
		return "Science & Tech"
	case CategoryFiction:
		return "Fiction"
	case CategoryBiography:
		return "Biography"
	case CategoryTravel:
		return "Travel"
	default:
		return "Other"
	}
}

type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Category    BookCategory    `json:"category"`
	NumPages    int64           `json:"num_pages"`
	Price       decimal.Decimal `json:"price"`
	PublisherID int64           `json:"publisher_id"`
	Description string          `json:"description,omitempty"`
	NumReviews  int64           `json:"num_reviews"`
}

type Publisher struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country"`
}
