package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"canteenWeb/internal/modules/guard/domain"
	session "canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/shared/auth"
	"canteenWeb/internal/shared/httputil"
)

const (
	userContextKey  = "canteen.user"
	tokenContextKey = "canteen.token"
)

// SessionResolver turns an access token into the signed-in user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.User, error)
}

// UserFrom returns the user the guard resolved for this request.
func UserFrom(c echo.Context) (session.User, bool) {
	user, ok := c.Get(userContextKey).(session.User)
	return user, ok
}

// TokenFrom returns the access token of this request, resolved or not.
func TokenFrom(c echo.Context) string {
	if token, ok := c.Get(tokenContextKey).(string); ok {
		return token
	}
	return auth.ExtractToken(c.Request())
}

// SetSession stores the resolved session on the context. Handlers outside the guard use it too.
func SetSession(c echo.Context, token string, user *session.User) {
	c.Set(tokenContextKey, token)
	if user != nil {
		c.Set(userContextKey, *user)
	}
}

// Unauthorized is served in place of pages the signed-in role may not open.
func Unauthorized(c echo.Context) error {
	return httputil.Render(c, http.StatusForbidden, httputil.Page{
		Toast: httputil.Failure("You are not allowed to open this page."),
	})
}

// Guard resolves the session once per request and applies the route rules.
func Guard(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := auth.ExtractToken(req)

			var user *session.User
			if token != "" {
				resolved, err := resolver.Resolve(req.Context(), token)
				if err == nil {
					user = &resolved
				} else {
					slog.Debug("guard session not resolved", slog.String("path", req.URL.Path), slog.Any("error", err))
				}
			}
			SetSession(c, token, user)

			decision := domain.Decide(req.URL.Path, user)
			switch decision.Action {
			case domain.Redirect:
				return c.Redirect(http.StatusFound, decision.Target)
			case domain.Rewrite:
				slog.Info("guard rewrote request", slog.String("path", req.URL.Path), slog.String("role", roleOf(user)), slog.String("target", decision.Target))
				return Unauthorized(c)
			case domain.NotFound:
				return echo.ErrNotFound
			case domain.Unauthenticated:
				return httputil.Render(c, http.StatusUnauthorized, httputil.Page{Toast: httputil.Failure("Unauthorized")})
			case domain.Forbidden:
				return httputil.Render(c, http.StatusForbidden, httputil.Page{Toast: httputil.Failure("Forbidden")})
			}
			return next(c)
		}
	}
}

func roleOf(user *session.User) string {
	if user == nil {
		return ""
	}
	return string(user.Role)
}
