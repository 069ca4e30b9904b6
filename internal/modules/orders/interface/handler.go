package transport

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	guard "canteenWeb/internal/modules/guard/interface"
	"canteenWeb/internal/modules/orders/application/usecase"
	"canteenWeb/internal/modules/orders/domain"
	stands "canteenWeb/internal/modules/stands/interface"
	"canteenWeb/internal/shared/httputil"
)

const fetchFailed = "Failed to fetch orders data."

type advanceRequest struct {
	Status string `json:"status" form:"status"`
}

func orderMapper(fallback string) *httputil.ErrorMapper {
	return stands.NoStandMapper(fallback).
		WithMapping(domain.ErrInvalidFilter, http.StatusBadRequest, "Invalid month or year filter").
		WithMapping(domain.ErrUnknownStatus, http.StatusBadRequest, "Unknown order status").
		WithMapping(domain.ErrOrderNotFound, http.StatusNotFound, "Order not found").
		WithMapping(domain.ErrOrderCompleted, http.StatusConflict, "Order is already completed").
		WithMapping(domain.ErrInvalidTransition, http.StatusConflict, "Order status can only move one step forward")
}

type Handler struct {
	Orders *usecase.OrdersUseCase
}

func NewHandler(orders *usecase.OrdersUseCase) *Handler {
	return &Handler{Orders: orders}
}

func (h *Handler) RegisterStand(g *echo.Group) {
	g.GET("/orders", h.StandOrders)
	g.POST("/orders/:id/advance", h.Advance)
}

func (h *Handler) RegisterStudent(g *echo.Group) {
	g.GET("/orders", h.StudentOrders)
	g.GET("/orders/:id/receipt", h.Receipt)
}

func (h *Handler) StandOrders(c echo.Context) error {
	filter, err := domain.ParseDateFilter(c.QueryParam("month"), c.QueryParam("year"))
	if err != nil {
		return httputil.Fail(c, orderMapper(fetchFailed), err)
	}
	status, err := domain.ParseStatusFilter(c.QueryParam("status"))
	if err != nil {
		return httputil.Fail(c, orderMapper(fetchFailed), err)
	}
	listing, err := h.Orders.StandOrders(c.Request().Context(), guard.TokenFrom(c), filter, status)
	if err != nil {
		return httputil.Fail(c, orderMapper(fetchFailed), err)
	}
	return httputil.OK(c, listing, nil)
}

func (h *Handler) StudentOrders(c echo.Context) error {
	filter, err := domain.ParseDateFilter(c.QueryParam("month"), c.QueryParam("year"))
	if err != nil {
		return httputil.Fail(c, orderMapper(fetchFailed), err)
	}
	listing, err := h.Orders.StudentOrders(c.Request().Context(), guard.TokenFrom(c), filter)
	if err != nil {
		return httputil.Fail(c, orderMapper(fetchFailed), err)
	}
	return httputil.OK(c, listing, nil)
}

func (h *Handler) Advance(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	var req advanceRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	var target domain.Status
	if req.Status != "" {
		if target, err = domain.ParseStatus(req.Status); err != nil {
			return httputil.Fail(c, orderMapper("Failed to update order data."), err)
		}
	}
	view, err := h.Orders.AdvanceStatus(c.Request().Context(), guard.TokenFrom(c), id, target)
	if err != nil {
		return httputil.Fail(c, orderMapper("Failed to update order data."), err)
	}
	return httputil.OK(c, view, httputil.Success("Order updated successfully"))
}

func (h *Handler) Receipt(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	receipt, err := h.Orders.Receipt(c.Request().Context(), guard.TokenFrom(c), id)
	if err != nil {
		return httputil.Fail(c, httputil.NewErrorMapper().WithDefault(http.StatusBadGateway, "Failed to download receipt."), err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", receipt.Filename))
	return c.Blob(http.StatusOK, receipt.ContentType, receipt.Content)
}
