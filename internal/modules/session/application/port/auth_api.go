package port

import (
	"context"

	"canteenWeb/internal/modules/session/domain"
)

// AuthAPI is the slice of the canteen API that issues and checks access tokens.
type AuthAPI interface {
	SignIn(ctx context.Context, credentials domain.Credentials) (domain.SignedIn, error)
	SignUp(ctx context.Context, username, password string, role domain.Role) ([]string, error)
	Me(ctx context.Context, token string) (domain.User, error)
}

// SessionCache remembers resolved users per token for a short time.
type SessionCache interface {
	Get(token string) (domain.User, bool)
	Set(token string, user domain.User)
	Delete(token string)
}
