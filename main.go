// Package main bookstore API.
//
// @title           Bookstore Catalog & Fulfillment API
// @version         1.0
// @description     bookstore service (books, publishers, members, orders, reviews).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"bookstore/app/echoServer"
	authctrl "bookstore/app/echoServer/controller/auth"
	catalogctrl "bookstore/app/echoServer/controller/catalog"
	memberctrl "bookstore/app/echoServer/controller/member"
	orderctrl "bookstore/app/echoServer/controller/order"
	reviewctrl "bookstore/app/echoServer/controller/review"
	"bookstore/app/echoServer/validation"
	"bookstore/config"
	bookrepo "bookstore/repository/book"
	memberrepo "bookstore/repository/member"
	orderrepo "bookstore/repository/order"
	publisherrepo "bookstore/repository/publisher"
	reviewrepo "bookstore/repository/review"
	userrepo "bookstore/repository/user"
	authsvc "bookstore/service/auth"
	catalogsvc "bookstore/service/catalog"
	membersvc "bookstore/service/member"
	ordersvc "bookstore/service/order"
	reviewsvc "bookstore/service/review"
	"bookstore/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB over pgx stdlib
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	pr := publisherrepo.New(db)
	br := bookrepo.New(db)
	mr := memberrepo.New(db)
	or := orderrepo.New(db)
	rr := reviewrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	cs := catalogsvc.New(br, pr)
	ms := membersvc.New(mr)
	ods := ordersvc.New(db, or, br, mr)
	rs := reviewsvc.New(db, rr, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, V: v, Log: log}
	orderC := &orderctrl.Controller{Svc: ods, Member: ms, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	memberC := &memberctrl.Controller{Svc: ms, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Catalog: catalogC,
		Order:   orderC,
		Review:  reviewC,
		Member:  memberC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
