package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule tags attached to violations.
const (
	RuleRequired   = "required"
	RuleMinLength  = "min_length"
	RuleFormat     = "format"
	RuleRange      = "range"
	RuleCrossField = "cross_field"
)

// Violation is one failed rule on one field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error carries every violation found in a payload, in declaration order, so
// a client can correct all fields in one round trip.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

// Details renders violations for the error response envelope.
func (e *Error) Details() map[string]any {
	return map[string]any{"violations": e.Violations}
}

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	licensePattern = regexp.MustCompile(`^[A-Z]{2}-[0-9]{4,6}$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,18}[0-9]$`)
)

// checker accumulates violations while rules run. Rules never mutate the
// payload being checked.
type checker struct {
	violations []Violation
}

func (c *checker) add(field, rule, message string) {
	c.violations = append(c.violations, Violation{Field: field, Rule: rule, Message: message})
}

// result returns nil when no rule failed.
func (c *checker) result() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{Violations: c.violations}
}

func (c *checker) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.add(field, RuleRequired, field+" is required")
		return false
	}
	return true
}

func (c *checker) minLength(field, value string, min int) {
	if len(value) < min {
		c.add(field, RuleMinLength, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
}

func (c *checker) email(field, value string) {
	if !emailPattern.MatchString(value) {
		c.add(field, RuleFormat, field+" must be a valid email address")
	}
}

func (c *checker) license(field, value string) {
	if !licensePattern.MatchString(value) {
		c.add(field, RuleFormat, field+" must match XX-NNNN (two letters, 4-6 digits)")
	}
}

func (c *checker) phone(field, value string) {
	if value != "" && !phonePattern.MatchString(value) {
		c.add(field, RuleFormat, field+" must be a valid phone number")
	}
}

func (c *checker) nonNegative(field string, value float64) {
	if value < 0 {
		c.add(field, RuleRange, field+" must not be negative")
	}
}

func (c *checker) nonNegativeInt(field string, value int) {
	if value < 0 {
		c.add(field, RuleRange, field+" must not be negative")
	}
}

func (c *checker) atLeast(field string, value, min int) {
	if value < min {
		c.add(field, RuleRange, fmt.Sprintf("%s must be at least %d", field, min))
	}
}
