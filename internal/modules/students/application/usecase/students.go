package usecase

import (
	"context"
	"errors"
	"log/slog"

	session "canteenWeb/internal/modules/session/domain"
	"canteenWeb/internal/modules/students/application/port"
	"canteenWeb/internal/modules/students/domain"
	"canteenWeb/internal/shared/apierr"
)

var ErrNothingToUpdate = errors.New("nothing to update")

type StudentsUseCase struct {
	API port.StudentsAPI
	// Sessions is optional; when set, a changed account evicts the cached session.
	Sessions port.SessionEvictor
}

func NewStudentsUseCase(api port.StudentsAPI) *StudentsUseCase {
	return &StudentsUseCase{API: api}
}

// Profile loads the student profile. A missing profile is reported as IsNew rather than an error.
func (uc *StudentsUseCase) Profile(ctx context.Context, token string) (domain.Profile, error) {
	student, err := uc.API.MyStudent(ctx, token)
	if errors.Is(err, apierr.ErrNotFound) {
		return domain.Profile{IsNew: true}, nil
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{Student: &student}, nil
}

// Save creates the profile for a new student and updates it otherwise.
func (uc *StudentsUseCase) Save(ctx context.Context, token string, form domain.Form) (domain.Student, error) {
	if err := form.Validate(); err != nil {
		return domain.Student{}, err
	}
	profile, err := uc.Profile(ctx, token)
	if err != nil {
		return domain.Student{}, err
	}
	if profile.IsNew {
		student, err := uc.API.CreateStudent(ctx, token, form)
		if err != nil {
			return domain.Student{}, err
		}
		slog.Info("student profile created", slog.Int("studentId", student.ID))
		return student, nil
	}
	student, err := uc.API.UpdateStudent(ctx, token, form)
	if err != nil {
		return domain.Student{}, err
	}
	slog.Info("student profile updated", slog.Int("studentId", student.ID))
	return student, nil
}

// UpdateAccount changes the username or password; blank fields are not sent.
func (uc *StudentsUseCase) UpdateAccount(ctx context.Context, token string, update domain.AccountUpdate) (session.User, error) {
	if len(update.Body()) == 0 {
		return session.User{}, ErrNothingToUpdate
	}
	user, err := uc.API.UpdateAccount(ctx, token, update)
	if err != nil {
		return session.User{}, err
	}
	if uc.Sessions != nil {
		uc.Sessions.Logout(token)
	}
	slog.Info("user account updated", slog.String("userId", user.ID))
	return user, nil
}

// HasProfile backs the home page check that sends students without a profile to the profile page.
func (uc *StudentsUseCase) HasProfile(ctx context.Context, token string) bool {
	_, err := uc.API.MyStudent(ctx, token)
	return err == nil
}
