// Package validate holds the field shape checks used by the admin screens.
// These are deliberately loose syntax checks, not deliverability checks.
package validate

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	cityPattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z\s\-'.]*$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s-]{7,16}$`)
)

func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// City accepts empty values; the field is optional.
func City(s string) bool {
	if s == "" {
		return true
	}
	return cityPattern.MatchString(s)
}

// Phone accepts empty values; the field is optional.
func Phone(s string) bool {
	if s == "" {
		return true
	}
	return phonePattern.MatchString(s)
}
