package normalization

import (
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// Messages flattens an API message field, which is either a string or a list of strings.
func Messages(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	case []string:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if trimmed := strings.TrimSpace(entry); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if s := AsString(entry); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// RemoveEmpty drops nil and blank-string values so PATCH bodies leave those fields untouched.
func RemoveEmpty(object map[string]any) map[string]any {
	cleaned := make(map[string]any, len(object))
	for key, value := range object {
		switch typed := value.(type) {
		case nil:
			continue
		case string:
			if typed == "" {
				continue
			}
		case *string:
			if typed == nil || *typed == "" {
				continue
			}
		}
		cleaned[key] = value
	}
	return cleaned
}
