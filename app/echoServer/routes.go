package echoServer

import (
	"net/http"

	"bookstore/app/echoServer/controller/auth"
	"bookstore/app/echoServer/controller/catalog"
	"bookstore/app/echoServer/controller/member"
	"bookstore/app/echoServer/controller/order"
	"bookstore/app/echoServer/controller/review"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth    *auth.Controller
	Catalog *catalog.Controller
	Order   *order.Controller
	Review  *review.Controller
	Member  *member.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.GET("/lucky", Lucky)
	pub.GET("/visits", Visits)

	// Auth
	grp := e.Group("/v1")
	grp.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	grp.Use(claimsToContext)

	// Catalog
	grp.GET("/books", c.Catalog.List)
	grp.GET("/books/:id", c.Catalog.Detail)
	grp.POST("/books/search", c.Catalog.Search)
	grp.GET("/publishers", c.Catalog.Publishers)
	// Admin endpoints
	grp.POST("/books", c.Catalog.Create)
	grp.POST("/publishers", c.Catalog.CreatePublisher)

	// Orders
	grp.POST("/orders", c.Order.Place)
	grp.GET("/orders", c.Order.History)
	grp.GET("/members/me/orders", c.Order.MyOrders)

	// Reviews
	grp.POST("/reviews", c.Review.Submit)
	grp.GET("/books/:id/reviews", c.Review.ListForBook)
	grp.GET("/books/:id/reviews/average", c.Review.Average)

	// Members
	grp.POST("/members", c.Member.Enroll)
	grp.GET("/members/me", c.Member.Me)
	grp.GET("/members/me/borrowed", c.Member.Borrowed)
	// Admin endpoint
	grp.GET("/members/:id", c.Member.Get)
}

// claimsToContext copies the verified JWT claims into plain context keys
// so controllers never touch the token object.
func claimsToContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tokenObj := ctx.Get("user")
		if tokenObj == nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}

		var claims jwt.MapClaims
		switch t := tokenObj.(type) {
		case *jwt.Token:
			mc, ok := t.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims = mc
		case jwt.MapClaims:
			claims = t
		default:
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		ctx.Set("user_id", int64(sub))
		if role, ok := claims["role"].(string); ok {
			ctx.Set("role", role)
		}
		if email, ok := claims["email"].(string); ok {
			ctx.Set("email", email)
		}
		return next(ctx)
	}
}
