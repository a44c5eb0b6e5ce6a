package domain

// Role enumerates the closed set of caller roles carried in tokens.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

// Valid reports whether the role belongs to the known vocabulary.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor:
		return true
	}
	return false
}
