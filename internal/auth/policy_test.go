package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

func TestDefaultPoliciesAdminOnly(t *testing.T) {
	registry := DefaultPolicies()

	admin := &Principal{SubjectID: "a1", Role: domain.RoleAdmin}
	doctor := &Principal{SubjectID: "d1", Role: domain.RoleDoctor}

	assert.NoError(t, registry.Authorize(admin, PolicyAdmin))
	assert.Error(t, registry.Authorize(doctor, PolicyAdmin))

	assert.NoError(t, registry.Authorize(doctor, PolicyDoctor))
	assert.Error(t, registry.Authorize(admin, PolicyDoctor))

	assert.NoError(t, registry.Authorize(admin, PolicyStaff))
	assert.NoError(t, registry.Authorize(doctor, PolicyStaff))
}

func TestAuthorizeUnknownPolicyDenies(t *testing.T) {
	registry := DefaultPolicies()

	admin := &Principal{SubjectID: "a1", Role: domain.RoleAdmin}
	err := registry.Authorize(admin, "NoSuchPolicy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestAuthorizeNilPrincipalDenies(t *testing.T) {
	registry := DefaultPolicies()

	assert.Error(t, registry.Authorize(nil, PolicyStaff))
}

func TestRegisterDuplicateFails(t *testing.T) {
	registry := NewPolicyRegistry()

	require.NoError(t, registry.Register("OncePolicy", RequireAuthenticated()))
	err := registry.Register("OncePolicy", RequireAuthenticated())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterNilPolicyFails(t *testing.T) {
	registry := NewPolicyRegistry()

	assert.Error(t, registry.Register("BrokenPolicy", nil))
}

func TestAuthorizeIsRepeatable(t *testing.T) {
	registry := DefaultPolicies()
	doctor := &Principal{SubjectID: "d1", Role: domain.RoleDoctor}

	for i := 0; i < 3; i++ {
		assert.Error(t, registry.Authorize(doctor, PolicyAdmin))
		assert.NoError(t, registry.Authorize(doctor, PolicyStaff))
	}
}

func TestRequireRoleMultiple(t *testing.T) {
	policy := RequireRole(domain.RoleAdmin, domain.RoleDoctor)

	assert.True(t, policy(&Principal{Role: domain.RoleAdmin}))
	assert.True(t, policy(&Principal{Role: domain.RoleDoctor}))
	assert.False(t, policy(&Principal{Role: domain.Role("ghost")}))
}
