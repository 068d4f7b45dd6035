package publisherrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Create(ctx context.Context, p *model.Publisher) (int64, error)
	List(ctx context.Context) ([]model.Publisher, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, p *model.Publisher) (int64, error) {
	const q = `
INSERT INTO publishers (name, website, city, country)
VALUES ($1,$2,$3,$4)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, p.Name, p.Website, p.City, p.Country).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Publisher, error) {
	const q = `
SELECT id, name, website, city, country
FROM publishers
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Publisher
	for rows.Next() {
		var p model.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Website, &p.City, &p.Country); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM publishers WHERE id=$1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}
