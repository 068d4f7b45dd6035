package member

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookstore/app/echoServer/jwtx"
	"bookstore/model"
	membersvc "bookstore/service/member"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc membersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/members — enroll the logged-in user as a member
func (h *Controller) Enroll(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req EnrollReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	m := &model.Member{
		UserID:   uid,
		Status:   model.MemberStatus(req.Status),
		Address:  req.Address,
		City:     req.City,
		Province: req.Province,
	}
	m.AutoRenew = true
	if req.AutoRenew != nil {
		m.AutoRenew = *req.AutoRenew
	}

	out, err := h.Svc.Enroll(c.Request().Context(), m)
	if err != nil {
		switch membersvc.Code(err) {
		case membersvc.ErrAlreadyMember:
			return c.JSON(http.StatusConflict, echo.Map{"message": "already a member"})
		case membersvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("member enroll", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /v1/members/me
func (h *Controller) Me(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	m, err := h.Svc.ProfileByUser(c.Request().Context(), uid)
	if err != nil {
		if membersvc.Code(err) == membersvc.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not a member"})
		}
		h.Log.Error("member profile", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, m)
}

// GET /v1/members/:id  (admin)
func (h *Controller) Get(c echo.Context) error {
	if !jwtx.IsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	m, err := h.Svc.Profile(c.Request().Context(), id)
	if err != nil {
		if membersvc.Code(err) == membersvc.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "member not found"})
		}
		h.Log.Error("member get", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, m)
}

// GET /v1/members/me/borrowed
func (h *Controller) Borrowed(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	m, err := h.Svc.ProfileByUser(c.Request().Context(), uid)
	if err != nil {
		if membersvc.Code(err) == membersvc.ErrMemberNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not a member"})
		}
		h.Log.Error("member profile", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	rows, err := h.Svc.Borrowed(c.Request().Context(), m.ID)
	if err != nil {
		h.Log.Error("member borrowed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
