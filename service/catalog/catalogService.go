package catalogsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	bookrepo "bookstore/repository/book"

	"bookstore/model"
)

type ErrCode string

const (
	ErrBookNotFound      ErrCode = "BOOK_NOT_FOUND"
	ErrPublisherNotFound ErrCode = "PUBLISHER_NOT_FOUND"
	ErrBadInput          ErrCode = "BAD_INPUT"
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

// Detail = repository shape
type Detail = bookrepo.DetailRow

// SearchResult echoes the searcher's name back alongside the hits; the
// name never filters anything.
type SearchResult struct {
	Name          string       `json:"name,omitempty"`
	Category      string       `json:"category,omitempty"`
	CategoryLabel string       `json:"category_label,omitempty"`
	Books         []model.Book `json:"books"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context, limit int) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	Search(ctx context.Context, maxPrice decimal.Decimal, category model.BookCategory) ([]model.Book, error)
}

type PublisherRepo interface {
	Create(ctx context.Context, p *model.Publisher) (int64, error)
	List(ctx context.Context) ([]model.Publisher, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	CreateBook(ctx context.Context, b *model.Book) (int64, error)
	CreatePublisher(ctx context.Context, p *model.Publisher) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Publishers(ctx context.Context) ([]model.Publisher, error)
	Detail(ctx context.Context, id int64) (*Detail, error)

	// Search filters by price ceiling and, when given, by category;
	// maxPrice must be at least 1.
	Search(ctx context.Context, name string, category model.BookCategory, maxPrice int64) (*SearchResult, error)
}

type service struct {
	r  Repo
	pr PublisherRepo
}

func New(r Repo, pr PublisherRepo) Service { return &service{r: r, pr: pr} }

const indexLimit = 10

func (s *service) CreateBook(ctx context.Context, b *model.Book) (int64, error) {
	if strings.TrimSpace(b.Title) == "" || b.Price.IsNegative() {
		return 0, makeErr(ErrBadInput)
	}
	if b.Category == "" {
		b.Category = model.CategoryScienceTech
	}
	if !b.Category.Valid() {
		return 0, makeErr(ErrBadInput)
	}
	if b.NumPages == 0 {
		b.NumPages = 100
	}
	if b.NumPages < 0 {
		return 0, makeErr(ErrBadInput)
	}
	b.Price = b.Price.Round(2)

	ok, err := s.pr.Exists(ctx, b.PublisherID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrPublisherNotFound)
	}
	return s.r.Create(ctx, b)
}

func (s *service) CreatePublisher(ctx context.Context, p *model.Publisher) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, makeErr(ErrBadInput)
	}
	if p.Country == "" {
		p.Country = "USA"
	}
	return s.pr.Create(ctx, p)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	return s.r.List(ctx, indexLimit)
}

func (s *service) Publishers(ctx context.Context) ([]model.Publisher, error) {
	return s.pr.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*Detail, error) {
	d, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}
	return d, nil
}

func (s *service) Search(ctx context.Context, name string, category model.BookCategory, maxPrice int64) (*SearchResult, error) {
	if maxPrice < 1 {
		return nil, makeErr(ErrBadInput)
	}
	if category != "" && !category.Valid() {
		return nil, makeErr(ErrBadInput)
	}
	books, err := s.r.Search(ctx, decimal.NewFromInt(maxPrice), category)
	if err != nil {
		return nil, err
	}
	res := &SearchResult{
		Name:     name,
		Category: string(category),
		Books:    books,
	}
	if category != "" {
		res.CategoryLabel = category.Label()
	}
	return res, nil
}
