// Package payment validates the card form submitted when paying for a
// booking. Checks run in a fixed order and stop at the first failure so the
// form can surface one error at a time.
package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	MinCardNumberLength = 13
	MaxCardNumberLength = 19

	// MaxExpiryYearsAhead bounds how far ahead an expiry may lie, so "99"
	// is rejected rather than read as 2099.
	MaxExpiryYearsAhead = 20
)

var expiryRegex = regexp.MustCompile(`^(\d{2})/(\d{2})$`)

// Form holds the raw field values exactly as typed.
type Form struct {
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Clock supplies the current time for expiry checks.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

type Validator struct {
	clock Clock
}

func NewValidator(clock Clock) *Validator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Validator{clock: clock}
}

func (v *Validator) Validate(form Form) Result {
	return Validate(form, v.clock)
}

func Validate(form Form, clock Clock) Result {
	if !ValidName(form.CardName) {
		return invalid(InvalidName)
	}
	if !ValidCardNumber(form.CardNumber) {
		return invalid(InvalidCardNumber)
	}
	if !ValidExpiry(form.Expiry, clock.Now()) {
		return invalid(InvalidExpiry)
	}
	if !ValidCVV(form.CVV) {
		return invalid(InvalidCVV)
	}
	return Result{Valid: true}
}

// ValidName accepts letters and spaces with at least one letter.
func ValidName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func ValidCardNumber(number string) bool {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < MinCardNumberLength || len(digits) > MaxCardNumberLength {
		return false
	}
	return allDigits(digits)
}

// ValidExpiry checks an MM/YY value against now. YY is read as 20YY. A card
// expiring in the current month is still valid. Expiries more than
// MaxExpiryYearsAhead years out are rejected as a policy choice; no card
// issuer prints dates that far ahead.
func ValidExpiry(expiry string, now time.Time) bool {
	m := expiryRegex.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}

	month, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}

	year := 2000 + yy
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return false
	}
	return year <= now.Year()+MaxExpiryYearsAhead
}

func ValidCVV(cvv string) bool {
	if len(cvv) != 3 && len(cvv) != 4 {
		return false
	}
	return allDigits(cvv)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
