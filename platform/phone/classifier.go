package phone

import (
	"fmt"
	"regexp"
)

const (
	// DefaultUKMobilePattern matches 07xxx xxx xxx in national or +44/0044 form.
	DefaultUKMobilePattern = `^(?:(?:\+|00)44\s?|0)7\d{3}[\s-]?\d{3}[\s-]?\d{3}$`
	// DefaultUKLandlinePattern matches 01, 02 and 03 numbers with 9 or 10 national digits.
	DefaultUKLandlinePattern = `^(?:(?:\+|00)44\s?(?:\(0\)\s?)?|0)[123](?:[\s-]?\d){8,9}$`
)

// Classifier tells UK mobile numbers apart from UK landline numbers.
type Classifier struct {
	mobile   *regexp.Regexp
	landline *regexp.Regexp
}

// NewClassifier compiles the given patterns. Empty patterns fall back to the defaults.
func NewClassifier(mobilePattern, landlinePattern string) (*Classifier, error) {
	if mobilePattern == "" {
		mobilePattern = DefaultUKMobilePattern
	}
	if landlinePattern == "" {
		landlinePattern = DefaultUKLandlinePattern
	}

	mobile, err := regexp.Compile(mobilePattern)
	if err != nil {
		return nil, fmt.Errorf("compile UK mobile pattern: %w", err)
	}
	landline, err := regexp.Compile(landlinePattern)
	if err != nil {
		return nil, fmt.Errorf("compile UK landline pattern: %w", err)
	}

	return &Classifier{mobile: mobile, landline: landline}, nil
}

// DefaultClassifier uses the built-in UK patterns.
var DefaultClassifier = &Classifier{
	mobile:   regexp.MustCompile(DefaultUKMobilePattern),
	landline: regexp.MustCompile(DefaultUKLandlinePattern),
}

// IsUKMobile reports whether s looks like a UK mobile number.
func (c *Classifier) IsUKMobile(s string) bool {
	return c.mobile.MatchString(s)
}

// IsUKLandline reports whether s looks like a UK landline number.
func (c *Classifier) IsUKLandline(s string) bool {
	return c.landline.MatchString(s)
}
