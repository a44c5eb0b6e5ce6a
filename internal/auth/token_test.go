package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-service/internal/config"
	"github.com/spec-kit/pharmacy-service/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             testSecret,
		Issuer:                "pharmacy-service",
		Audience:              "pharmacy-api",
		AccessTokenTTLMinutes: 15,
	}
}

// signClaims builds a raw token outside the manager so tests can control
// lifetime, issuer, audience and signing key independently.
func signClaims(t *testing.T, secret string, mutate func(*Claims)) string {
	t.Helper()

	now := time.Now()
	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "pharmacy-service",
			Audience:  jwt.ClaimStrings{"pharmacy-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenStr
}

func requireReason(t *testing.T, err error, reason Reason) {
	t.Helper()

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, reason, authErr.Reason)
}

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, expiresAt, err := tm.Issue("admin-42", domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	principal, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-42", principal.SubjectID)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
}

func TestVerifyPreservesDoctorRole(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, _, err := tm.Issue("doc-7", domain.RoleDoctor)
	require.NoError(t, err)

	principal, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, principal.Role)
}

func TestVerifyExpired(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token := signClaims(t, testSecret, func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonExpired)
}

func TestVerifyExpiredWinsOverBadSignature(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	// Expired and signed with the wrong key. Expiry is what the caller
	// should hear about.
	token := signClaims(t, "another-secret-another-secret-xx", func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token := signClaims(t, "another-secret-another-secret-xx", nil)

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonBadSignature)
}

func TestVerifyWrongIssuer(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token := signClaims(t, testSecret, func(c *Claims) {
		c.Issuer = "someone-else"
	})

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonWrongIssuer)
}

func TestVerifyWrongAudience(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token := signClaims(t, testSecret, func(c *Claims) {
		c.Audience = jwt.ClaimStrings{"other-api"}
	})

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonWrongAudience)
}

func TestVerifyMalformed(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	for _, token := range []string{"", "not-a-token", "a.b"} {
		_, err := tm.Verify(token)
		requireReason(t, err, ReasonMalformed)
	}
}

func TestVerifyUnknownRole(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token := signClaims(t, testSecret, func(c *Claims) {
		c.Role = domain.Role("ghost")
	})

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonMalformed)
}

func TestVerifyMissingExpiry(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token := signClaims(t, testSecret, func(c *Claims) {
		c.ExpiresAt = nil
	})

	_, err := tm.Verify(token)
	requireReason(t, err, ReasonMalformed)
}

func TestVerifyIsRepeatable(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, _, err := tm.Issue("admin-42", domain.RoleAdmin)
	require.NoError(t, err)

	first, err := tm.Verify(token)
	require.NoError(t, err)
	second, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
