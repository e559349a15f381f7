package utils

import (
	"fmt"
	"strings"
)

// NormalizePhone coerces user input into E.164. A bare 10-digit number is
// assumed to be Indian and gets +91 prefixed; anything else must already
// carry a + and country code.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if len(digits.String()) == 10 && !strings.HasPrefix(phone, "+") {
		return "+91" + digits.String(), nil
	}

	if !strings.HasPrefix(phone, "+") || len(digits.String()) < 10 {
		return "", fmt.Errorf("%w: phone must be an international number starting with + and country code", ErrValidation)
	}

	return "+" + digits.String(), nil
}
