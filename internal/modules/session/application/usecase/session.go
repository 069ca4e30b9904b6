package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"canteenWeb/internal/modules/session/application/port"
	"canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/auth"
	"canteenWeb/internal/shared/logging"
)

var (
	ErrNoSession    = errors.New("no session")
	ErrMissingToken = errors.New("sign in response carried no access token")
)

// SessionUseCase signs users in and out and resolves the user behind an access token.
type SessionUseCase struct {
	API       port.AuthAPI
	Validator auth.TokenValidator
	Cache     port.SessionCache
}

func NewSessionUseCase(api port.AuthAPI, validator auth.TokenValidator, cache port.SessionCache) *SessionUseCase {
	return &SessionUseCase{API: api, Validator: validator, Cache: cache}
}

func (uc *SessionUseCase) Login(ctx context.Context, credentials domain.Credentials) (domain.SignedIn, error) {
	credentials.Username = strings.TrimSpace(credentials.Username)
	var errs apierr.Collector
	errs.Add(credentials.Username == "", "Username is required")
	errs.Add(credentials.Password == "", "Password is required")
	if err := errs.Err(); err != nil {
		return domain.SignedIn{}, err
	}

	signedIn, err := uc.API.SignIn(ctx, credentials)
	if err != nil {
		slog.Warn("session sign in failed", slog.String("username", credentials.Username), slog.Any("error", err))
		return domain.SignedIn{}, err
	}
	if strings.TrimSpace(signedIn.AccessToken) == "" {
		return domain.SignedIn{}, ErrMissingToken
	}

	// Older API builds answer sign in with the token only.
	if signedIn.User.Role == "" {
		user, err := uc.API.Me(ctx, signedIn.AccessToken)
		if err != nil {
			return domain.SignedIn{}, err
		}
		signedIn.User = user
	}

	uc.remember(signedIn.AccessToken, signedIn.User)
	slog.Info("session signed in", slog.String("userId", signedIn.ID), slog.String("role", string(signedIn.Role)))
	return signedIn, nil
}

// Register validates the form and creates the account. The API's own messages are returned for the toast.
func (uc *SessionUseCase) Register(ctx context.Context, registration domain.Registration) ([]string, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}
	role, _ := domain.ParseRole(registration.Role)
	messages, err := uc.API.SignUp(ctx, strings.TrimSpace(registration.Username), registration.Password, role)
	if err != nil {
		slog.Warn("session sign up failed", slog.String("username", registration.Username), slog.Any("error", err))
		return nil, err
	}
	slog.Info("session signed up", slog.String("username", registration.Username), slog.String("role", string(role)))
	return messages, nil
}

// Resolve returns the user behind token, or ErrNoSession.
func (uc *SessionUseCase) Resolve(ctx context.Context, token string) (domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, ErrNoSession
	}

	if uc.Validator != nil {
		if _, err := uc.Validator.Validate(token); err != nil {
			slog.Debug("session token rejected locally", slog.String("token", logging.MaskToken(token)), slog.Any("error", err))
			uc.forget(token)
			return domain.User{}, fmt.Errorf("%w: %w", ErrNoSession, err)
		}
	}

	if uc.Cache != nil {
		if user, ok := uc.Cache.Get(token); ok {
			return user, nil
		}
	}

	user, err := uc.API.Me(ctx, token)
	if err != nil {
		if !errors.Is(err, apierr.ErrUnauthorized) && !errors.Is(err, apierr.ErrForbidden) {
			slog.Warn("session lookup failed", slog.String("token", logging.MaskToken(token)), slog.Any("error", err))
		}
		return domain.User{}, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	if _, ok := domain.ParseRole(string(user.Role)); !ok {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrNoSession, user.Role)
	}

	uc.remember(token, user)
	return user, nil
}

// Logout forgets the cached session for token.
func (uc *SessionUseCase) Logout(token string) {
	uc.forget(strings.TrimSpace(token))
}

// State reports whether token still resolves to a user.
func (uc *SessionUseCase) State(ctx context.Context, token string) (domain.State, *domain.User) {
	user, err := uc.Resolve(ctx, token)
	if err != nil {
		return domain.StateLoggedOut, nil
	}
	return domain.StateAuthenticated, &user
}

func (uc *SessionUseCase) remember(token string, user domain.User) {
	if uc.Cache != nil && token != "" {
		uc.Cache.Set(token, user)
	}
}

func (uc *SessionUseCase) forget(token string) {
	if uc.Cache != nil && token != "" {
		uc.Cache.Delete(token)
	}
}
