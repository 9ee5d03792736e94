// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeE164 formats a phone number to E.164 on a best-effort basis. It is
// total: unparseable input falls back through simple digit rules and is
// ultimately returned trimmed but otherwise unchanged. A bad phone number must
// never fail a checkout.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	if number, err := phonenumbers.Parse(trimmed, defaultRegion); err == nil {
		if phonenumbers.IsValidNumber(number) {
			return phonenumbers.Format(number, phonenumbers.E164)
		}
	}

	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}

	digits := digitsOnly(trimmed)
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	}

	return trimmed
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
