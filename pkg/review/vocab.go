package review

import "strings"

// SensitiveOperations is the vocabulary of path/handler name fragments that
// mark a route as handling sensitive operations.
var SensitiveOperations = []string{
	"delete", "remove", "admin", "user", "auth", "login", "password",
	"create", "update", "edit", "modify",
}

// IsSensitive reports whether the route's path or handler name contains any
// sensitive-operation fragment.
func (r RouteRecord) IsSensitive() bool {
	path := strings.ToLower(r.Path)
	name := strings.ToLower(r.Name)
	for _, op := range SensitiveOperations {
		if strings.Contains(path, op) || strings.Contains(name, op) {
			return true
		}
	}
	return false
}
