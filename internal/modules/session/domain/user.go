package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"canteenWeb/internal/shared/apierr"
)

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleStandAdmin Role = "ADMIN_STAND"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ParseRole accepts the role names the canteen API uses, case-insensitively.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleStandAdmin:
		return RoleStandAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	}
	return "", false
}

// HomePath is the landing page for the role; superadmins have none.
func (r Role) HomePath() string {
	switch r {
	case RoleStudent:
		return "/student"
	case RoleStandAdmin:
		return "/stand"
	}
	return ""
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type State string

const (
	StateAuthenticated State = "AUTHENTICATED"
	StateLoggedOut     State = "LOGGED_OUT"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignedIn is what /auth/signin hands back.
type SignedIn struct {
	User
	AccessToken string `json:"access_token"`
}

type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// minPasswordLength counts characters, not bytes.
const minPasswordLength = 8

// Validate reports every problem with the form at once.
func (r Registration) Validate() error {
	var errs apierr.Collector
	errs.Add(strings.TrimSpace(r.Username) == "", "Username is required")
	errs.Add(r.Password != r.ConfirmPassword, "Passwords do not match")
	errs.Add(utf8.RuneCountInString(r.Password) < minPasswordLength, "Password must be at least 8 characters long")
	errs.Add(!hasLetterAndDigit(r.Password), "Password must contain both letters and numbers")
	role, ok := ParseRole(r.Role)
	errs.Add(!ok || role == RoleSuperAdmin, "Role must be STUDENT or ADMIN_STAND")
	return errs.Err()
}

func hasLetterAndDigit(value string) bool {
	var letter, digit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
