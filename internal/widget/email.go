package widget

import (
	"fmt"
	"regexp"
	"strings"
)

// NativeEmailPattern is the "valid e-mail address" production browsers apply
// to <input type=email>.
const NativeEmailPattern = "^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$"

var nativeEmail = regexp.MustCompile(NativeEmailPattern)

// Validator decides whether an email may be submitted.
type Validator func(email string) bool

// NativeEmail accepts what a browser accepts for a required email field:
// non-empty, surrounding whitespace ignored, matching NativeEmailPattern.
func NativeEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return nativeEmail.MatchString(email)
}

// PatternValidator builds a Validator from a regular expression. An empty
// pattern returns NativeEmail.
func PatternValidator(pattern string) (Validator, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return NativeEmail, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("widget: compile email pattern: %w", err)
	}
	return func(email string) bool {
		email = strings.TrimSpace(email)
		return email != "" && re.MatchString(email)
	}, nil
}
