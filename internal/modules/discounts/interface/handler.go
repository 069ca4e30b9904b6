package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"canteenWeb/internal/modules/discounts/application/usecase"
	"canteenWeb/internal/modules/discounts/domain"
	guard "canteenWeb/internal/modules/guard/interface"
	stands "canteenWeb/internal/modules/stands/interface"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/httputil"
)

type discountRequest struct {
	Name       string  `json:"name" form:"name"`
	Percentage float64 `json:"percentage" form:"percentage"`
	StartDate  string  `json:"startDate" form:"startDate"`
	EndDate    string  `json:"endDate" form:"endDate"`
	Menus      []int   `json:"menus" form:"menus"`
}

func (r discountRequest) input() domain.Input {
	return domain.Input{Name: r.Name, Percentage: r.Percentage, StartDate: r.StartDate, EndDate: r.EndDate}
}

// menusRequest either replaces the whole selection or toggles a single menu when MenuID is set.
// A body with neither is rejected; an explicit empty list detaches every menu.
type menusRequest struct {
	Menus  []int `json:"menus" form:"menus"`
	MenuID int   `json:"menuId" form:"menuId"`
}

type Handler struct {
	Discounts *usecase.DiscountsUseCase
}

func NewHandler(discounts *usecase.DiscountsUseCase) *Handler {
	return &Handler{Discounts: discounts}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/discounts", h.Overview)
	g.POST("/discounts", h.Create)
	g.GET("/discounts/:id", h.Detail)
	g.POST("/discounts/:id", h.Update)
	g.PATCH("/discounts/:id", h.Update)
	g.DELETE("/discounts/:id", h.Delete)
	g.POST("/discounts/:id/menus", h.Menus)
}

func (h *Handler) Overview(c echo.Context) error {
	overview, err := h.Discounts.Overview(c.Request().Context(), guard.TokenFrom(c))
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to fetch discounts data."), err)
	}
	return httputil.OK(c, overview, nil)
}

func (h *Handler) Detail(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	detail, err := h.Discounts.Detail(c.Request().Context(), guard.TokenFrom(c), id)
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to fetch discounts data."), err)
	}
	return httputil.OK(c, detail, nil)
}

func (h *Handler) Create(c echo.Context) error {
	var req discountRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	detail, err := h.Discounts.Create(c.Request().Context(), guard.TokenFrom(c), req.input(), req.Menus)
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to save discount"), err)
	}
	return httputil.Render(c, http.StatusCreated, httputil.Page{Data: detail, Toast: httputil.Success("Item successfully updated")})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	var req discountRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	discount, err := h.Discounts.Update(c.Request().Context(), guard.TokenFrom(c), id, req.input())
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to update item"), err)
	}
	return httputil.OK(c, discount, httputil.Success("Item successfully updated"))
}

func (h *Handler) Menus(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	var req menusRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	if req.MenuID <= 0 && req.Menus == nil {
		return httputil.Fail(c, nil, apierr.NewValidation("Menus are required"))
	}
	ctx, token := c.Request().Context(), guard.TokenFrom(c)
	var detail domain.Detail
	if req.MenuID > 0 {
		detail, err = h.Discounts.ToggleMenu(ctx, token, id, req.MenuID)
	} else {
		detail, err = h.Discounts.SetMenus(ctx, token, id, req.Menus)
	}
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to update item"), err)
	}
	return httputil.OK(c, detail, httputil.Success("Item successfully updated"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	if err := h.Discounts.Delete(c.Request().Context(), guard.TokenFrom(c), id); err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to delete item"), err)
	}
	return httputil.OK(c, nil, httputil.Success("Item successfully deleted"))
}
