package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash for account storage. The cost comes
// from configuration; out-of-range values fall back to the library default
// rather than failing or silently weakening the hash.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks a login attempt against the stored hash. Callers
// translate any failure into a uniform unauthorized response.
func ComparePassword(hash, attempt string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt))
}
