package forms

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"1234567890",
		"(11) 91234-5678",
		"+55 (11) 91234-5678",
		"123456789012345",
	}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", phone, err)
		}
	}

	invalid := map[string]string{
		"":                 "phone number is required",
		"123456789":        "phone number must contain at least 10 digits",
		"1234567890123456": "phone number must contain at most 15 digits",
		"12345abcde67890":  "phone number contains invalid characters",
	}
	for phone, want := range invalid {
		err := ValidatePhone(phone)
		if err == nil || err.Error() != want {
			t.Errorf("ValidatePhone(%q) = %v, want %q", phone, err, want)
		}
	}
}
