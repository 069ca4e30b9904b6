package port

import (
	"context"

	session "canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/modules/students/domain"
)

type StudentsAPI interface {
	MyStudent(ctx context.Context, token string) (domain.Student, error)
	CreateStudent(ctx context.Context, token string, form domain.Form) (domain.Student, error)
	UpdateStudent(ctx context.Context, token string, form domain.Form) (domain.Student, error)
	UpdateAccount(ctx context.Context, token string, update domain.AccountUpdate) (session.User, error)
}

// SessionEvictor drops whatever user a token resolved to, so the next request reloads it.
type SessionEvictor interface {
	Logout(token string)
}
