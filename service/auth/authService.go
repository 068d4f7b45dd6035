package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/model"
	userrepo "bookstore/repository/user"
	"bookstore/util/hash"
	jwtutil "bookstore/util/jwt"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrBadInput      = errors.New("bad input")
	ErrInvalidCreds  = errors.New("invalid credentials")
	ErrUsernameTaken = errors.New("username already taken")
)

// Code collapses wrapped errors onto the package sentinels.
func Code(err error) error {
	for _, sentinel := range []error{ErrEmailTaken, ErrUsernameTaken, ErrInvalidCreds, ErrBadInput} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

// LoginResult carries the token plus the previous login time, which the
// index page surfaces as a "your last login was ..." message.
type LoginResult struct {
	User      *model.User
	Token     string
	LastLogin *time.Time
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*LoginResult, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

const tokenTTLHours = 24

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || len(req.Password) < 6 {
		return nil, "", ErrBadInput
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Username:     username,
		Role:         "user",
		PasswordHash: hashed,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Email, u.Role, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return ErrUsernameTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*LoginResult, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCreds
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCreds
	}

	prev, err := s.ur.TouchLastLogin(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Email, u.Role, tokenTTLHours)
	if err != nil {
		return nil, err
	}

	res := &LoginResult{User: u, Token: token}
	if prev != nil && prev.Valid {
		t := prev.Time
		res.LastLogin = &t
	}
	return res, nil
}
