package domain

import (
	"fmt"
	"regexp"
)

// Code prefixes, one per coded table.
const (
	ItemCodePrefix  = "ITM"
	UserCodePrefix  = "USR"
	OrderCodePrefix = "ORD"
)

// Code is the human-readable identifier printed on tickets and invoices,
// distinct from the numeric primary key. Shape: PREFIX-00042, with an
// optional numeric suffix when the base code was already taken.
type Code string

var codePattern = regexp.MustCompile(`^[A-Z]+-\d{5}(-\d+)?$`)

// MakeCode derives the base code for a row id, e.g. MakeCode("ITM", 7)
// yields ITM-00007.
func MakeCode(prefix string, id uint) Code {
	return Code(fmt.Sprintf("%s-%05d", prefix, id))
}

// WithSuffix returns the n-th collision fallback for a base code.
func (c Code) WithSuffix(n int) Code {
	return Code(fmt.Sprintf("%s-%d", c, n))
}

// ParseCode validates the PREFIX-digits[-n] shape.
func ParseCode(s string) (Code, error) {
	if !codePattern.MatchString(s) {
		return "", fmt.Errorf("malformed code %q", s)
	}
	return Code(s), nil
}

func (c Code) String() string { return string(c) }
