package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	guard "canteenWeb/internal/modules/guard/interface"
	standsusecase "canteenWeb/internal/modules/stands/application/usecase"
	standsdomain "canteenWeb/internal/modules/stands/domain"
	"canteenWeb/internal/modules/students/application/usecase"
	"canteenWeb/internal/modules/students/domain"
	"canteenWeb/internal/shared/httputil"
)

const ProfilePath = "/student/profile"

type accountRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// homeView is the student landing page: every stand with its menu.
type homeView struct {
	Stands     []standsdomain.StandWithMenu `json:"stands"`
	HasProfile bool                         `json:"hasProfile"`
}

type Handler struct {
	Students *usecase.StudentsUseCase
	Stands   *standsusecase.StandsUseCase
}

func NewHandler(students *usecase.StudentsUseCase, stands *standsusecase.StandsUseCase) *Handler {
	return &Handler{Students: students, Stands: stands}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.Home)
	g.GET("/profile", h.Profile)
	g.POST("/profile", h.SaveProfile)
	g.POST("/profile/user", h.UpdateAccount)
}

func (h *Handler) Home(c echo.Context) error {
	ctx, token := c.Request().Context(), guard.TokenFrom(c)
	catalog, err := h.Stands.Catalog(ctx, token)
	if err != nil {
		return httputil.Fail(c, httputil.NewErrorMapper().WithDefault(http.StatusBadGateway, "Failed to fetch stands."), err)
	}
	view := homeView{Stands: catalog, HasProfile: h.Students.HasProfile(ctx, token)}
	page := httputil.Page{Data: view}
	if !view.HasProfile {
		page.Redirect = ProfilePath
		page.Toast = httputil.Info("Please complete your profile first.")
	}
	return httputil.Render(c, http.StatusOK, page)
}

func (h *Handler) Profile(c echo.Context) error {
	profile, err := h.Students.Profile(c.Request().Context(), guard.TokenFrom(c))
	if err != nil {
		return httputil.Fail(c, httputil.NewErrorMapper().WithDefault(http.StatusBadGateway, "Profile not found."), err)
	}
	return httputil.OK(c, profile, nil)
}

func (h *Handler) SaveProfile(c echo.Context) error {
	photo, err := httputil.FormFile(c, "photo")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	form := domain.Form{
		Name:    c.FormValue("name"),
		Address: c.FormValue("address"),
		Phone:   c.FormValue("phone"),
		Photo:   photo,
	}
	student, err := h.Students.Save(c.Request().Context(), guard.TokenFrom(c), form)
	if err != nil {
		return httputil.Fail(c, httputil.NewErrorMapper().WithDefault(http.StatusBadGateway, "Failed to save data"), err)
	}
	return httputil.OK(c, domain.Profile{Student: &student}, httputil.Success("Student data saved successfully"))
}

func (h *Handler) UpdateAccount(c echo.Context) error {
	var req accountRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	user, err := h.Students.UpdateAccount(c.Request().Context(), guard.TokenFrom(c), domain.AccountUpdate(req))
	if err != nil {
		mapper := httputil.NewErrorMapper().
			WithMapping(usecase.ErrNothingToUpdate, http.StatusBadRequest, "Nothing to update").
			WithDefault(http.StatusBadGateway, "Failed to update data")
		return httputil.Fail(c, mapper, err)
	}
	return httputil.OK(c, user, httputil.Success("User data updated successfully"))
}
