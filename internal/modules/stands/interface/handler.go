package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	guard "canteenWeb/internal/modules/guard/interface"
	"canteenWeb/internal/modules/stands/application/usecase"
	"canteenWeb/internal/modules/stands/domain"
	"canteenWeb/internal/shared/httputil"
)

// ProfilePath is where stand owners without a stand are sent.
const ProfilePath = "/stand/profile"

// NoStandMapper maps the missing-stand case the way every stand page reports it.
func NoStandMapper(fallback string) *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithRedirect(usecase.ErrNoStand, http.StatusNotFound, "You don't have a stand.", ProfilePath).
		WithDefault(http.StatusInternalServerError, fallback)
}

type profileRequest struct {
	StandName string `json:"standName" form:"standName"`
	OwnerName string `json:"ownerName" form:"ownerName"`
	Phone     string `json:"phone" form:"phone"`
}

type profileView struct {
	Stand  *domain.Stand `json:"stand"`
	Exists bool          `json:"exists"`
}

type Handler struct {
	Stands *usecase.StandsUseCase
}

func NewHandler(stands *usecase.StandsUseCase) *Handler {
	return &Handler{Stands: stands}
}

// RegisterStand mounts the stand owner pages on g.
func (h *Handler) RegisterStand(g *echo.Group) {
	g.GET("", h.Dashboard)
	g.GET("/profile", h.Profile)
	g.POST("/profile", h.SaveProfile)
}

// RegisterStudent mounts the stand browsing endpoints students use.
func (h *Handler) RegisterStudent(g *echo.Group) {
	g.GET("/stands", h.List)
	g.GET("/stands/:id/menu", h.Menu)
}

func (h *Handler) Dashboard(c echo.Context) error {
	dashboard, err := h.Stands.Dashboard(c.Request().Context(), guard.TokenFrom(c))
	if err != nil {
		return httputil.Fail(c, NoStandMapper("Failed to fetch data"), err)
	}
	return httputil.OK(c, dashboard, nil)
}

func (h *Handler) Profile(c echo.Context) error {
	stand, err := h.Stands.Profile(c.Request().Context(), guard.TokenFrom(c))
	if err != nil {
		return httputil.Fail(c, NoStandMapper("Failed to fetch data"), err)
	}
	return httputil.OK(c, profileView{Stand: stand, Exists: stand != nil}, nil)
}

func (h *Handler) SaveProfile(c echo.Context) error {
	var req profileRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	stand, created, err := h.Stands.SaveProfile(c.Request().Context(), guard.TokenFrom(c), domain.Profile(req))
	if err != nil {
		return httputil.Fail(c, NoStandMapper("Failed to save data"), err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return httputil.Render(c, status, httputil.Page{
		Data:  profileView{Stand: &stand, Exists: true},
		Toast: httputil.Success("Data berhasil disimpan"),
	})
}

func (h *Handler) List(c echo.Context) error {
	stands, err := h.Stands.Stands(c.Request().Context(), guard.TokenFrom(c))
	if err != nil {
		return httputil.Fail(c, httputil.NewErrorMapper().WithDefault(http.StatusBadGateway, "Failed to fetch stands."), err)
	}
	return httputil.OK(c, stands, nil)
}

func (h *Handler) Menu(c echo.Context) error {
	id, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	items, err := h.Stands.Menu(c.Request().Context(), guard.TokenFrom(c), id)
	if err != nil {
		return httputil.Fail(c, httputil.NewErrorMapper().WithDefault(http.StatusBadGateway, usecase.MenuLoadFailed), err)
	}
	return httputil.OK(c, items, nil)
}
