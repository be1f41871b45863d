package models

import "strings"

// UserRole represents the available roles for the access gate.
type UserRole string

const (
	RoleStudent UserRole = "siswa"
	RoleTeacher UserRole = "guru"
	RoleAdmin   UserRole = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// RequiresClass reports whether identities with this role belong to a class.
func (r UserRole) RequiresClass() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User represents an identity stored in the users collection. Password holds a bcrypt hash.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
	Class    *string  `json:"kelas,omitempty"`
}

// Info strips the password.
func (u User) Info() UserInfo {
	info := UserInfo{ID: u.ID, Name: u.Name, Username: u.Username, Role: u.Role}
	if u.Class != nil {
		class := *u.Class
		info.Class = &class
	}
	return info
}

// ClassName returns the class or an empty string.
func (u User) ClassName() string {
	if u.Class == nil {
		return ""
	}
	return *u.Class
}

// UserInfo describes an identity without its password.
type UserInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	Class    *string  `json:"kelas,omitempty"`
}

// ClassName returns the class or an empty string.
func (u UserInfo) ClassName() string {
	if u.Class == nil {
		return ""
	}
	return *u.Class
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role   *UserRole
	Search string
}

// Matches applies the filter to a single identity.
func (f UserFilter) Matches(u User) bool {
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), search) ||
		strings.Contains(strings.ToLower(u.Username), search) ||
		strings.Contains(strings.ToLower(u.ClassName()), search)
}

// StringPtr returns a pointer to a trimmed copy of value, or nil when it is blank.
func StringPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
