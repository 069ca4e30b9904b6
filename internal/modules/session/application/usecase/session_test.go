package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/modules/session/infrastructure"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/auth"
)

type fakeAuthAPI struct {
	signIn    domain.SignedIn
	signInErr error
	signUpMsg []string
	signUpErr error
	me        domain.User
	meErr     error
	meCalls   int
	signUps   []domain.Role
}

func (f *fakeAuthAPI) SignIn(ctx context.Context, credentials domain.Credentials) (domain.SignedIn, error) {
	return f.signIn, f.signInErr
}

func (f *fakeAuthAPI) SignUp(ctx context.Context, username, password string, role domain.Role) ([]string, error) {
	f.signUps = append(f.signUps, role)
	return f.signUpMsg, f.signUpErr
}

func (f *fakeAuthAPI) Me(ctx context.Context, token string) (domain.User, error) {
	f.meCalls++
	return f.me, f.meErr
}

type rejectingValidator struct{}

func (rejectingValidator) Validate(token string) (*auth.Claims, error) {
	return nil, auth.ErrExpiredToken
}

func TestSessionUseCase_LoginRequiresCredentials(t *testing.T) {
	t.Parallel()

	uc := NewSessionUseCase(&fakeAuthAPI{}, nil, nil)
	_, err := uc.Login(context.Background(), domain.Credentials{Username: "  "})
	if !errors.Is(err, apierr.ErrBadRequest) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSessionUseCase_LoginCachesUser(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{signIn: domain.SignedIn{
		User:        domain.User{ID: "u1", Username: "budi", Role: domain.RoleStudent},
		AccessToken: "tok",
	}}
	uc := NewSessionUseCase(api, nil, infrastructure.NewSessionCache(0))

	signedIn, err := uc.Login(context.Background(), domain.Credentials{Username: "budi", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signedIn.AccessToken != "tok" {
		t.Fatalf("unexpected token: %s", signedIn.AccessToken)
	}

	user, err := uc.Resolve(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if user.ID != "u1" || api.meCalls != 0 {
		t.Fatalf("expected cached user without /users/me, got %#v calls=%d", user, api.meCalls)
	}
}

func TestSessionUseCase_LoginFillsUserFromMe(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		signIn: domain.SignedIn{AccessToken: "tok"},
		me:     domain.User{ID: "s1", Username: "warung", Role: domain.RoleStandAdmin},
	}
	uc := NewSessionUseCase(api, nil, nil)

	signedIn, err := uc.Login(context.Background(), domain.Credentials{Username: "warung", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signedIn.Role != domain.RoleStandAdmin || api.meCalls != 1 {
		t.Fatalf("expected role from /users/me, got %#v", signedIn.User)
	}
}

func TestSessionUseCase_LoginWithoutToken(t *testing.T) {
	t.Parallel()

	uc := NewSessionUseCase(&fakeAuthAPI{}, nil, nil)
	_, err := uc.Login(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestSessionUseCase_RegisterValidatesFirst(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{}
	uc := NewSessionUseCase(api, nil, nil)

	_, err := uc.Register(context.Background(), domain.Registration{
		Username: "budi", Password: "short", ConfirmPassword: "other", Role: "STUDENT",
	})
	var validation *apierr.Validation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validation.Messages) != 3 {
		t.Fatalf("expected every violation reported, got %v", validation.Messages)
	}
	if len(api.signUps) != 0 {
		t.Fatal("sign up must not be called for an invalid form")
	}
}

func TestSessionUseCase_RegisterForwardsRole(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{signUpMsg: []string{"User created"}}
	uc := NewSessionUseCase(api, nil, nil)

	messages, err := uc.Register(context.Background(), domain.Registration{
		Username: "warung", Password: "secret123", ConfirmPassword: "secret123", Role: "admin_stand",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 || api.signUps[0] != domain.RoleStandAdmin {
		t.Fatalf("unexpected result: %v %v", messages, api.signUps)
	}
}

func TestSessionUseCase_Resolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		token     string
		validator auth.TokenValidator
		api       *fakeAuthAPI
		wantErr   bool
		wantCalls int
	}{
		{name: "empty token", token: " ", api: &fakeAuthAPI{}, wantErr: true},
		{name: "rejected locally", token: "tok", validator: rejectingValidator{}, api: &fakeAuthAPI{}, wantErr: true},
		{name: "api unauthorized", token: "tok", api: &fakeAuthAPI{meErr: apierr.New(http.StatusUnauthorized, "Unauthorized")}, wantErr: true, wantCalls: 1},
		{name: "unknown role", token: "tok", api: &fakeAuthAPI{me: domain.User{ID: "x", Role: "JANITOR"}}, wantErr: true, wantCalls: 1},
		{name: "valid", token: "tok", api: &fakeAuthAPI{me: domain.User{ID: "x", Role: domain.RoleStudent}}, wantCalls: 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			uc := NewSessionUseCase(tc.api, tc.validator, nil)
			_, err := uc.Resolve(context.Background(), tc.token)
			if tc.wantErr && !errors.Is(err, ErrNoSession) {
				t.Fatalf("expected ErrNoSession, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.api.meCalls != tc.wantCalls {
				t.Fatalf("expected %d /users/me calls, got %d", tc.wantCalls, tc.api.meCalls)
			}
		})
	}
}

func TestSessionUseCase_LogoutEvictsCache(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{me: domain.User{ID: "u1", Role: domain.RoleStudent}}
	uc := NewSessionUseCase(api, nil, infrastructure.NewSessionCache(0))

	if _, err := uc.Resolve(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc.Logout("tok")
	if _, err := uc.Resolve(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.meCalls != 2 {
		t.Fatalf("expected logout to force a new lookup, got %d calls", api.meCalls)
	}

	state, user := uc.State(context.Background(), "")
	if state != domain.StateLoggedOut || user != nil {
		t.Fatalf("unexpected state for empty token: %s", state)
	}
}
