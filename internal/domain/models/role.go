// internal/domain/models/role.go
package models

// Role is the closed set of user roles. Keeping it a named type (rather
// than comparing raw strings in handlers) means a new role has one place
// to be added and the policy packages can switch over it exhaustively.
type Role string

const (
	RoleStudent     Role = "student"
	RoleChapterLead Role = "chapter-lead"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleChapterLead, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
