// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const (
	ukRegion      = "GB"
	unknownRegion = "ZZ"
	ukCountryCode = 44
)

// ErrFormat is matched by every FormatError via errors.Is.
var ErrFormat = errors.New("phone: not a phone number")

var (
	errContainsLetters = errors.New("contains letters")
	errHasExtension    = errors.New("has an extension")
)

// FormatError reports input that could not be interpreted as a phone number.
type FormatError struct {
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("phone: cannot interpret %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("phone: cannot interpret %q", e.Input)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Sanitizer turns raw input into a phone number skeleton.
type Sanitizer interface {
	Sanitize(raw string, preferUK bool) (string, error)
}

// SanitizerFunc adapts a plain function to Sanitizer.
type SanitizerFunc func(raw string, preferUK bool) (string, error)

// Sanitize calls f.
func (f SanitizerFunc) Sanitize(raw string, preferUK bool) (string, error) {
	return f(raw, preferUK)
}

// DefaultSanitizer is the phonenumbers backed Sanitize.
var DefaultSanitizer Sanitizer = SanitizerFunc(Sanitize)

// Sanitize normalizes raw into a compact number. UK numbers come back in
// national form without separators ("07911123456"), everything else in E.164.
// Input that is not a possible phone number yields a *FormatError, and so does
// input with letters or an extension, which a compact number cannot carry.
func Sanitize(raw string, preferUK bool) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	if strings.IndexFunc(trimmed, unicode.IsLetter) >= 0 {
		return "", &FormatError{Input: raw, Err: errContainsLetters}
	}

	region := unknownRegion
	if preferUK {
		region = ukRegion
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return "", &FormatError{Input: raw, Err: err}
	}
	if !phonenumbers.IsPossibleNumber(number) {
		return "", &FormatError{Input: raw}
	}
	if number.GetExtension() != "" {
		return "", &FormatError{Input: raw, Err: errHasExtension}
	}

	if number.GetCountryCode() == ukCountryCode {
		return "0" + phonenumbers.GetNationalSignificantNumber(number), nil
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, ukRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
