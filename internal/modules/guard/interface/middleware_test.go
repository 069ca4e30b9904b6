package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	session "canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/shared/auth"
)

type staticResolver map[string]session.User

func (r staticResolver) Resolve(ctx context.Context, token string) (session.User, error) {
	user, ok := r[token]
	if !ok {
		return session.User{}, errors.New("no session")
	}
	return user, nil
}

func newGuardedServer() *echo.Echo {
	e := echo.New()
	e.Use(Guard(staticResolver{
		"student-token": {ID: "1", Username: "budi", Role: session.RoleStudent},
		"owner-token":   {ID: "2", Username: "warung", Role: session.RoleStandAdmin},
	}))
	ok := func(c echo.Context) error {
		user, _ := UserFrom(c)
		return c.String(http.StatusOK, user.Username)
	}
	e.GET("/student/cart", ok)
	e.GET("/stand/menu", ok)
	e.GET("/auth/login", ok)
	e.GET("/api/student/cart", ok)
	return e
}

func TestGuardMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		path         string
		cookie       string
		bearer       string
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{name: "no session redirects to login", path: "/student/cart", wantStatus: http.StatusFound, wantLocation: "/auth/login"},
		{name: "unknown token redirects to login", path: "/stand/menu", cookie: "stale", wantStatus: http.StatusFound, wantLocation: "/auth/login"},
		{name: "student reaches student page", path: "/student/cart", cookie: "student-token", wantStatus: http.StatusOK, wantBody: "budi"},
		{name: "bearer header works too", path: "/stand/menu", bearer: "owner-token", wantStatus: http.StatusOK, wantBody: "warung"},
		{name: "student rewritten on stand page", path: "/stand/menu", cookie: "student-token", wantStatus: http.StatusForbidden},
		{name: "signed in user leaves login", path: "/auth/login", cookie: "owner-token", wantStatus: http.StatusFound, wantLocation: "/"},
		{name: "login open without session", path: "/auth/login", wantStatus: http.StatusOK},
		{name: "root sends student home", path: "/", cookie: "student-token", wantStatus: http.StatusFound, wantLocation: "/student"},
		{name: "api without session", path: "/api/student/cart", wantStatus: http.StatusUnauthorized},
		{name: "api wrong role", path: "/api/student/cart", cookie: "owner-token", wantStatus: http.StatusForbidden},
	}

	e := newGuardedServer()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tc.cookie})
			}
			if tc.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tc.wantStatus, rec.Code, rec.Body.String())
			}
			if tc.wantLocation != "" && rec.Header().Get("Location") != tc.wantLocation {
				t.Fatalf("expected redirect to %s, got %s", tc.wantLocation, rec.Header().Get("Location"))
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Fatalf("expected body %q, got %q", tc.wantBody, rec.Body.String())
			}
		})
	}
}
