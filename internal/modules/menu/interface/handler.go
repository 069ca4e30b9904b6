package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	guard "canteenWeb/internal/modules/guard/interface"
	"canteenWeb/internal/modules/menu/application/usecase"
	"canteenWeb/internal/modules/menu/domain"
	stands "canteenWeb/internal/modules/stands/interface"
	"canteenWeb/internal/shared/httputil"
)

type Handler struct {
	Menu *usecase.MenuUseCase
}

func NewHandler(menu *usecase.MenuUseCase) *Handler {
	return &Handler{Menu: menu}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/menu", h.List)
	g.POST("/menu", h.Create)
	g.POST("/menu/:id", h.Update)
	g.PATCH("/menu/:id", h.Update)
	g.DELETE("/menu/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	listing, err := h.Menu.List(c.Request().Context(), guard.TokenFrom(c))
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to fetch menu data."), err)
	}
	return httputil.OK(c, listing, nil)
}

func (h *Handler) Create(c echo.Context) error {
	form, err := readForm(c)
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	item, err := h.Menu.Create(c.Request().Context(), guard.TokenFrom(c), form)
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to save menu item"), err)
	}
	return httputil.Render(c, http.StatusCreated, httputil.Page{Data: item, Toast: httputil.Success("Menu item successfully created!")})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	form, err := readForm(c)
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	item, err := h.Menu.Update(c.Request().Context(), guard.TokenFrom(c), id, form)
	if err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to update item"), err)
	}
	return httputil.OK(c, item, httputil.Success("Menu item successfully updated!"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	if err := h.Menu.Delete(c.Request().Context(), guard.TokenFrom(c), id); err != nil {
		return httputil.Fail(c, stands.NoStandMapper("Failed to delete item"), err)
	}
	return httputil.OK(c, nil, httputil.Success("Item deleted succesfully"))
}

func readForm(c echo.Context) (domain.Form, error) {
	photo, err := httputil.FormFile(c, "photo")
	if err != nil {
		return domain.Form{}, err
	}
	return domain.Form{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Type:        c.FormValue("type"),
		Photo:       photo,
	}, nil
}
