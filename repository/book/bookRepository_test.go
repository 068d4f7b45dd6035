package bookrepo_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookstore/model"
	bookrepo "bookstore/repository/book"
)

func newMockRepo(t *testing.T) (bookrepo.Repo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return bookrepo.New(db), mock, db
}

func bookColumns() []string {
	return []string{"id", "title", "category", "num_pages", "price", "publisher_id", "description", "num_reviews"}
}

func TestSearch_FiltersByPriceAndCategory(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	// two fiction books priced 15 and 25; only the first clears max_price=20
	rows := sqlmock.NewRows(bookColumns()).
		AddRow(1, "Cheap Fiction", "F", 100, "15.00", 1, "", 0)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE price <= $1")).
		WithArgs(decimal.NewFromInt(20), "F").
		WillReturnRows(rows)

	out, err := repo.Search(context.Background(), decimal.NewFromInt(20), model.CategoryFiction)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Cheap Fiction", out[0].Title)
	require.Equal(t, model.CategoryFiction, out[0].Category)
	require.True(t, out[0].Price.Equal(decimal.RequireFromString("15.00")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_NoCategoryPassesEmptyFilter(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE price <= $1")).
		WithArgs(decimal.NewFromInt(20), "").
		WillReturnRows(sqlmock.NewRows(bookColumns()))

	out, err := repo.Search(context.Background(), decimal.NewFromInt(20), "")
	require.NoError(t, err)
	require.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementReviews_MissingBook(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET num_reviews = num_reviews + 1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.IncrementReviews(context.Background(), tx, 404)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDetail_JoinsPublisherName(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	cols := []string{"id", "title", "category", "num_pages", "price", "publisher_id", "description", "num_reviews", "name"}
	mock.ExpectQuery(regexp.QuoteMeta("JOIN publishers p ON p.id = b.publisher_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "Dune", "F", 412, "25.50", 2, "classic", 9, "Chilton Books"))

	d, err := repo.Detail(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Dune", d.Title)
	require.Equal(t, "Chilton Books", d.PublisherName)
	require.Equal(t, int64(9), d.NumReviews)
	require.NoError(t, mock.ExpectationsWereMet())
}
