package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore/util/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func identityHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
		"email":   c.Get("email"),
	})
}

// A token from jwt.Issue must travel through the verification
// middleware and come out as plain context keys.
func TestAuthGroup_TokenYieldsIdentityKeys(t *testing.T) {
	e := echo.New()
	grp := e.Group("/v1")
	grp.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(testSecret),
		NewClaimsFunc: func(c echo.Context) gojwt.Claims { return gojwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	grp.Use(claimsToContext)
	grp.GET("/whoami", identityHandler)

	token, err := jwt.Issue(testSecret, 42, "a@x.com", "admin", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user_id":42,"role":"admin","email":"a@x.com"}`, rec.Body.String())
}

func TestAuthGroup_TamperedTokenRejected(t *testing.T) {
	e := echo.New()
	grp := e.Group("/v1")
	grp.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(testSecret),
		NewClaimsFunc: func(c echo.Context) gojwt.Claims { return gojwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	grp.Use(claimsToContext)
	grp.GET("/whoami", identityHandler)

	token, err := jwt.Issue("wrong-secret", 42, "a@x.com", "user", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimsToContext_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := claimsToContext(identityHandler)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClaimsToContext_MissingSubClaim(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", gojwt.MapClaims{"email": "a@x.com"})

	err := claimsToContext(identityHandler)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
