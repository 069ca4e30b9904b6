package domain

import (
	"strings"

	session "canteenWeb/internal/modules/session/domain"
)

const (
	LoginPath        = "/auth/login"
	RegisterPath     = "/auth/register"
	HomePath         = "/"
	UnauthorizedPath = "/unauthorized"
	apiPrefix        = "/api"
)

type Action int

const (
	// Pass lets the request through.
	Pass Action = iota
	// Redirect sends the browser to Target.
	Redirect
	// Rewrite serves Target in place of the requested page without changing the URL.
	Rewrite
	// NotFound answers 404.
	NotFound
	// Unauthenticated answers 401 to API clients.
	Unauthenticated
	// Forbidden answers 403 to API clients.
	Forbidden
)

type Decision struct {
	Action Action
	Target string
}

// rolePrefixes maps each guarded path prefix to the only role allowed under it.
var rolePrefixes = []struct {
	prefix string
	role   session.Role
}{
	{prefix: "/admin", role: session.RoleSuperAdmin},
	{prefix: "/student", role: session.RoleStudent},
	{prefix: "/stand", role: session.RoleStandAdmin},
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAuthPage(path string) bool {
	return path == LoginPath || path == RegisterPath
}

// Decide applies the route rules to path for user, which is nil when there is no session.
func Decide(path string, user *session.User) Decision {
	if path == "" {
		path = HomePath
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	if path == HomePath {
		if user == nil {
			return Decision{Action: Redirect, Target: LoginPath}
		}
		if home := user.Role.HomePath(); home != "" {
			return Decision{Action: Redirect, Target: home}
		}
		return Decision{Action: NotFound}
	}

	if isAuthPage(path) {
		if user == nil {
			return Decision{Action: Pass}
		}
		return Decision{Action: Redirect, Target: HomePath}
	}

	api := hasPrefix(path, apiPrefix)
	guarded := path
	if api {
		guarded = strings.TrimPrefix(path, apiPrefix)
	}

	for _, rule := range rolePrefixes {
		if !hasPrefix(guarded, rule.prefix) {
			continue
		}
		switch {
		case user == nil && api:
			return Decision{Action: Unauthenticated}
		case user == nil:
			return Decision{Action: Redirect, Target: LoginPath}
		case user.Role != rule.role && api:
			return Decision{Action: Forbidden}
		case user.Role != rule.role:
			return Decision{Action: Rewrite, Target: UnauthorizedPath}
		}
		return Decision{Action: Pass}
	}
	return Decision{Action: Pass}
}
