package order

import (
	"log/slog"
	"net/http"

	"bookstore/app/echoServer/jwtx"
	"bookstore/model"
	membersvc "bookstore/service/member"
	ordersvc "bookstore/service/order"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc    ordersvc.Service
	Member membersvc.Service
	V      *validator.Validate
	Log    *slog.Logger
}

// POST /v1/orders
func (h *Controller) Place(c echo.Context) error {
	var req PlaceOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	orderType := model.OrderBorrow
	if req.OrderType != nil {
		orderType = model.OrderType(*req.OrderType)
	}

	out, err := h.Svc.Place(c.Request().Context(), req.MemberID, req.BookIDs, orderType)
	if err != nil {
		h.Log.Error("order place", "err", err)
		switch ordersvc.Code(err) {
		case ordersvc.ErrEmptyOrder, ordersvc.ErrBadOrderType:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid order"})
		case ordersvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case ordersvc.ErrMemberNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "member not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":    out.ID,
		"order_type":  out.OrderType.Label(),
		"order_date":  out.OrderDate,
		"total_items": out.TotalItems(),
	})
}

// GET /v1/orders
func (h *Controller) History(c echo.Context) error {
	rows, err := h.Svc.History(c.Request().Context())
	if err != nil {
		h.Log.Error("order history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/members/me/orders
func (h *Controller) MyOrders(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	m, err := h.Member.ProfileByUser(c.Request().Context(), uid)
	if err != nil {
		if membersvc.Code(err) == membersvc.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not a member"})
		}
		h.Log.Error("member lookup", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	rows, err := h.Svc.MemberHistory(c.Request().Context(), m.ID)
	if err != nil {
		if ordersvc.Code(err) == ordersvc.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "member not found"})
		}
		h.Log.Error("member orders", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
