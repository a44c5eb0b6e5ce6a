package auth

import (
	"fmt"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// Well-known policy names referenced by the route table.
const (
	PolicyAdmin  = "AdminPolicy"
	PolicyDoctor = "DoctorPolicy"
	PolicyStaff  = "StaffPolicy"
)

// Policy is a predicate over a verified principal. Policies inspect only the
// role claim; no resource-instance checks happen here.
type Policy func(p *Principal) bool

// PolicyRegistry holds the named authorization rules. It is populated once at
// startup and read-only afterwards; registering a name twice is a
// configuration error.
type PolicyRegistry struct {
	policies map[string]Policy
}

// NewPolicyRegistry creates an empty registry.
func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{policies: make(map[string]Policy)}
}

// Register stores a named rule, failing on duplicates.
func (r *PolicyRegistry) Register(name string, policy Policy) error {
	if policy == nil {
		return fmt.Errorf("policy %q: nil predicate", name)
	}
	if _, exists := r.policies[name]; exists {
		return fmt.Errorf("policy %q already registered", name)
	}
	r.policies[name] = policy
	return nil
}

// MustRegister registers or panics. Startup wiring only.
func (r *PolicyRegistry) MustRegister(name string, policy Policy) {
	if err := r.Register(name, policy); err != nil {
		panic(err)
	}
}

// Authorize evaluates the named policy against the principal. Unknown policy
// names deny (fail closed), as does a nil principal.
func (r *PolicyRegistry) Authorize(principal *Principal, name string) error {
	policy, ok := r.policies[name]
	if !ok {
		return fmt.Errorf("policy %q not registered", name)
	}
	if principal == nil || !policy(principal) {
		return fmt.Errorf("policy %q denied", name)
	}
	return nil
}

// RequireRole allows principals whose role is one of the given roles.
func RequireRole(allowed ...domain.Role) Policy {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}
	return func(p *Principal) bool {
		_, ok := allowedSet[p.Role]
		return ok
	}
}

// RequireAuthenticated allows any principal with a known role.
func RequireAuthenticated() Policy {
	return func(p *Principal) bool {
		return p.Role.Valid()
	}
}

// DefaultPolicies builds the process-wide policy table.
func DefaultPolicies() *PolicyRegistry {
	registry := NewPolicyRegistry()
	registry.MustRegister(PolicyAdmin, RequireRole(domain.RoleAdmin))
	registry.MustRegister(PolicyDoctor, RequireRole(domain.RoleDoctor))
	registry.MustRegister(PolicyStaff, RequireAuthenticated())
	return registry
}
