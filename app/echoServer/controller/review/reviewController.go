package review

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookstore/app/echoServer/jwtx"
	reviewsvc "bookstore/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/reviews
func (h *Controller) Submit(c echo.Context) error {
	var req SubmitReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	rv, err := h.Svc.Submit(c.Request().Context(), req.Reviewer, req.BookID, req.Rating, req.Comments)
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrRatingOutOfRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "rating must be between 1 and 5"})
		case reviewsvc.ErrBadReviewer:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "reviewer must be a valid email"})
		case reviewsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		default:
			h.Log.Error("review submit", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, rv)
}

// GET /v1/books/:id/reviews
func (h *Controller) ListForBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, total, err := h.Svc.ListForBook(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("review list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows, "total": total})
}

// GET /v1/books/:id/reviews/average?reviewer=a@x.com
// Defaults to the logged-in user's email when reviewer is not given.
func (h *Controller) Average(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	reviewer := c.QueryParam("reviewer")
	if reviewer == "" {
		reviewer, err = jwtx.EmailFromContext(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "reviewer required"})
		}
	}

	avg, err := h.Svc.AverageRating(c.Request().Context(), id, reviewer)
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrNoReviews:
			return c.JSON(http.StatusOK, echo.Map{"message": "no reviews submitted for this book"})
		case reviewsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		default:
			h.Log.Error("review average", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"book_id": id, "reviewer": reviewer, "avg_rating": avg})
}
