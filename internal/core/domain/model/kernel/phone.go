package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	// PhoneMinDigits and PhoneMaxDigits bound the digits of a phone number (E.164 allows 15).
	PhoneMinDigits = 7
	PhoneMaxDigits = 15
)

// ErrPhoneIsNotConstructed is returned when a zero-value Phone is validated.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone is a customer phone number normalized to an optional leading '+'
// followed by digits. Spaces, dashes, dots and parentheses are dropped so that
// "+91 98765-43210" and "+919876543210" identify the same customer.
//
// Example:
//
//	phone, err := kernel.NewPhone("+91 (987) 654-3210")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(phone) // +919876543210
type Phone struct {
	value string
	guard guard.ConstructorGuard
}

// NewPhone normalizes raw and checks it holds between PhoneMinDigits and PhoneMaxDigits digits.
func NewPhone(raw string) (Phone, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Phone{}, errs.NewValueIsRequiredError("customerPhone")
	}

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return Phone{}, errs.NewValueIsInvalidErrorWithCause(
				"customerPhone", fmt.Errorf("unexpected character %q", r))
		}
	}

	if digits < PhoneMinDigits || digits > PhoneMaxDigits {
		return Phone{}, errs.NewValueIsOutOfRangeError("customerPhone digits", digits, PhoneMinDigits, PhoneMaxDigits)
	}

	return Phone{value: b.String(), guard: guard.NewConstructorGuard()}, nil
}

// String returns the normalized number.
func (p Phone) String() string {
	return p.value
}

// IsEqual compares normalized numbers.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}

// Validate returns ErrPhoneIsNotConstructed for the zero value.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}
