package forms

import (
	"errors"
	"regexp"
)

// phoneCharset allows digits plus the common formatting characters
// "+ - ( )" and spaces. Anything else invalidates the number.
var phoneCharset = regexp.MustCompile(`^[\d\s+\-()]+$`)

// ValidatePhone checks the shared phone-format rule used both for phone-kind
// answers and for submitter contact fields: 10 to 15 digits once formatting
// characters are stripped.
func ValidatePhone(phone string) error {
	if phone == "" {
		return errors.New("phone number is required")
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return errors.New("phone number must contain at least 10 digits")
	}
	if digits > 15 {
		return errors.New("phone number must contain at most 15 digits")
	}
	if !phoneCharset.MatchString(phone) {
		return errors.New("phone number contains invalid characters")
	}
	return nil
}
