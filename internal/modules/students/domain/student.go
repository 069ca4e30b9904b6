package domain

import (
	"strings"

	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/normalization"
	"canteenWeb/internal/shared/upload"
)

type Student struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Photo   string `json:"photo"`
	UserID  string `json:"userId"`
}

// Form is the student profile form, sent to the API as multipart with an optional photo.
type Form struct {
	Name    string
	Address string
	Phone   string
	Photo   *upload.File
}

func (f Form) Validate() error {
	var errs apierr.Collector
	errs.Add(strings.TrimSpace(f.Name) == "", "Name is required")
	errs.Add(strings.TrimSpace(f.Phone) == "", "Phone is required")
	return errs.Err()
}

func (f Form) Fields() map[string]string {
	return map[string]string{
		"name":    strings.TrimSpace(f.Name),
		"address": strings.TrimSpace(f.Address),
		"phone":   strings.TrimSpace(f.Phone),
	}
}

// AccountUpdate changes the login of the current user. Blank fields are left untouched.
type AccountUpdate struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (u AccountUpdate) Body() map[string]any {
	return normalization.RemoveEmpty(map[string]any{
		"username": strings.TrimSpace(u.Username),
		"password": u.Password,
	})
}

// Profile is the student profile page view model.
type Profile struct {
	Student *Student `json:"student"`
	// IsNew tells the page to create rather than update.
	IsNew bool `json:"isNew"`
}
