package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"canteenWeb/internal/modules/session/application/usecase"
	"canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/shared/auth"
	"canteenWeb/internal/shared/httputil"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	Role            string `json:"role" form:"role"`
}

type sessionView struct {
	State domain.State `json:"state"`
	User  *domain.User `json:"user,omitempty"`
}

type signedInView struct {
	User     domain.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// Handler serves sign in, sign up, sign out and the session probe.
type Handler struct {
	Sessions     *usecase.SessionUseCase
	CookieSecure bool
	CookieMaxAge time.Duration
	mapper       *httputil.ErrorMapper
}

func NewHandler(sessions *usecase.SessionUseCase, cookieSecure bool) *Handler {
	return &Handler{
		Sessions:     sessions,
		CookieSecure: cookieSecure,
		CookieMaxAge: 24 * time.Hour,
		mapper: httputil.NewErrorMapper().
			WithMapping(usecase.ErrMissingToken, http.StatusBadGateway, "Login failed").
			WithDefault(http.StatusInternalServerError, "An unexpected error occurred"),
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/auth/login", h.LoginPage)
	e.POST("/auth/login", h.Login)
	e.GET("/auth/register", h.RegisterPage)
	e.POST("/auth/register", h.SignUp)
	e.GET("/auth/logout", h.Logout)
	e.POST("/auth/logout", h.Logout)
	e.GET("/api/session", h.Session)
}

func (h *Handler) LoginPage(c echo.Context) error {
	return httputil.OK(c, sessionView{State: domain.StateLoggedOut}, nil)
}

func (h *Handler) RegisterPage(c echo.Context) error {
	return httputil.OK(c, map[string][]domain.Role{"roles": {domain.RoleStudent, domain.RoleStandAdmin}}, nil)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	signedIn, err := h.Sessions.Login(c.Request().Context(), domain.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}

	c.SetCookie(h.sessionCookie(signedIn.AccessToken, int(h.CookieMaxAge.Seconds())))
	redirect := signedIn.Role.HomePath()
	if redirect == "" {
		redirect = "/"
	}
	return httputil.Render(c, http.StatusOK, httputil.Page{
		Data:     signedInView{User: signedIn.User, Redirect: redirect},
		Toast:    httputil.Success("Login successful"),
		Redirect: redirect,
	})
}

func (h *Handler) SignUp(c echo.Context) error {
	var req registerRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	messages, err := h.Sessions.Register(c.Request().Context(), domain.Registration(req))
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	if len(messages) == 0 {
		messages = []string{"Registration successful"}
	}
	return httputil.Render(c, http.StatusCreated, httputil.Page{Toast: httputil.Success(messages...), Redirect: "/auth/login"})
}

func (h *Handler) Logout(c echo.Context) error {
	h.Sessions.Logout(auth.ExtractToken(c.Request()))
	c.SetCookie(h.sessionCookie("", -1))
	if c.Request().Method == http.MethodGet {
		return c.Redirect(http.StatusFound, "/auth/login")
	}
	return httputil.Render(c, http.StatusOK, httputil.Page{Data: sessionView{State: domain.StateLoggedOut}, Redirect: "/auth/login"})
}

func (h *Handler) Session(c echo.Context) error {
	state, user := h.Sessions.State(c.Request().Context(), auth.ExtractToken(c.Request()))
	return httputil.OK(c, sessionView{State: state, User: user}, nil)
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

