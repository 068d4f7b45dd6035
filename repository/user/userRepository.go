package userrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)

	// TouchLastLogin stamps the login time and returns the previous one.
	TouchLastLogin(ctx context.Context, id int64) (*sql.NullTime, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(first_name, last_name, email, username, password_hash, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, email, username, role, password_hash, last_login, created_at
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.Role, &u.PasswordHash, &last, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if last.Valid {
		t := last.Time
		u.LastLogin = &t
	}
	return u, nil
}

func (r *repo) TouchLastLogin(ctx context.Context, id int64) (*sql.NullTime, error) {
	const q = `
		UPDATE users u
		SET last_login = now()
		FROM (SELECT last_login FROM users WHERE id = $1 FOR UPDATE) prev
		WHERE u.id = $1
		RETURNING prev.last_login`
	var prev sql.NullTime
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&prev); err != nil {
		return nil, err
	}
	return &prev, nil
}
