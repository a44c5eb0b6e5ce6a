package auth

import "fmt"

// Reason classifies why a credential failed verification.
type Reason string

const (
	ReasonMalformed     Reason = "MALFORMED"
	ReasonBadSignature  Reason = "BAD_SIGNATURE"
	ReasonWrongIssuer   Reason = "WRONG_ISSUER"
	ReasonWrongAudience Reason = "WRONG_AUDIENCE"
	ReasonExpired       Reason = "EXPIRED"
)

// AuthError reports a failed credential verification. Every verification
// failure carries exactly one reason from the closed set above.
type AuthError struct {
	Reason Reason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token rejected (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(reason Reason, err error) *AuthError {
	return &AuthError{Reason: reason, Err: err}
}
