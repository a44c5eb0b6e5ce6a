package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/pharmacy-service/internal/config"
	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// Principal is the verified identity and role attached to a request after a
// token passes verification. It lives only for the request; it is never stored.
type Principal struct {
	SubjectID string
	Role      domain.Role
}

// TokenManager issues and verifies HS256-signed bearer tokens. Issuer,
// audience, TTL and signing secret are fixed at construction and never change.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager builds a manager from the immutable auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	ttlMinutes := cfg.AccessTokenTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject carrying its role claim.
func (tm *TokenManager) Issue(subjectID string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature, issuer, audience and lifetime, returning the
// embedded principal on success and an AuthError otherwise. Verification is a
// pure function of the token and the manager's configuration.
func (tm *TokenManager) Verify(tokenStr string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, tm.classify(tokenStr, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, newAuthError(ReasonMalformed, errors.New("invalid token claims"))
	}
	if !claims.Role.Valid() {
		return nil, newAuthError(ReasonMalformed, errors.New("unknown role claim"))
	}
	return &Principal{SubjectID: claims.Subject, Role: claims.Role}, nil
}

func (tm *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return tm.secret, nil
}

// classify maps jwt/v5 parse errors onto the AuthError reason set. Lifetime
// takes precedence: an expired token reports Expired even when the signature
// check also failed, which requires peeking at the unverified claims because
// the parser stops at the signature stage.
func (tm *TokenManager) classify(tokenStr string, err error) *AuthError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newAuthError(ReasonExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		if tm.expiredUnverified(tokenStr) {
			return newAuthError(ReasonExpired, err)
		}
		return newAuthError(ReasonBadSignature, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return newAuthError(ReasonWrongIssuer, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return newAuthError(ReasonWrongAudience, err)
	default:
		return newAuthError(ReasonMalformed, err)
	}
}

func (tm *TokenManager) expiredUnverified(tokenStr string) bool {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
