// Package validate checks and normalizes untrusted input before it reaches
// the store. Every failure is reported as *Error.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	minNameLength     = 2
	maxNameLength     = 100
	maxSearchLength   = 50
	minPasswordLength = 8
	maxPasswordLength = 128
	maxEmailLength    = 254
)

// Error is the single validation failure kind. Reason is safe to show to
// clients.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func fail(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

var v = validator.New()

// isNameChars reports whether s only holds ASCII letters, spaces, hyphens
// and apostrophes.
func isNameChars(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == ' ', r == '-', r == '\'':
		default:
			return false
		}
	}
	return true
}

// Name trims s and checks its length and character set.
func Name(s string) (string, error) {
	if s == "" {
		return "", fail("Name is required and must be a string")
	}
	s = strings.TrimSpace(s)
	if len(s) < minNameLength {
		return "", fail("Name must be at least %d characters long", minNameLength)
	}
	if len(s) > maxNameLength {
		return "", fail("Name must be less than %d characters", maxNameLength)
	}
	if !isNameChars(s) {
		return "", fail("Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return s, nil
}

// Email trims and lowercases s and returns it if it is a syntactically valid
// address whose domain has at least one dot.
func Email(s string) (string, error) {
	if s == "" {
		return "", fail("Email is required and must be a string")
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > maxEmailLength {
		return "", fail("Invalid email format: the email address is too long")
	}
	if err := v.Var(s, "required,email"); err != nil {
		return "", fail("Invalid email format: the email address is not valid")
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", fail("Invalid email format: the domain name %s is not valid", domain)
	}
	return s, nil
}

// Password checks length and that s mixes letters and digits.
func Password(s string) (string, error) {
	if s == "" {
		return "", fail("Password is required and must be a string")
	}
	n := len([]rune(s))
	if n < minPasswordLength {
		return "", fail("Password must be at least %d characters long", minPasswordLength)
	}
	if n > maxPasswordLength {
		return "", fail("Password must be less than %d characters", maxPasswordLength)
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !letter {
		return "", fail("Password must contain at least one letter")
	}
	if !digit {
		return "", fail("Password must contain at least one number")
	}
	return s, nil
}

// UserID parses a positive base-10 id.
func UserID(s string) (int, error) {
	if s == "" {
		return 0, fail("User ID is required")
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fail("User ID must be a valid integer")
	}
	if id <= 0 {
		return 0, fail("User ID must be a positive integer")
	}
	return id, nil
}

// SearchName trims a search term and checks it like a name, with a shorter
// limit and no minimum beyond being non-blank.
func SearchName(s string) (string, error) {
	if s == "" {
		return "", fail("Search name is required and must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fail("Search name cannot be empty")
	}
	if len(s) > maxSearchLength {
		return "", fail("Search name must be less than %d characters", maxSearchLength)
	}
	if !isNameChars(s) {
		return "", fail("Search name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return s, nil
}
