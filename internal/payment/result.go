package payment

type Reason string

const (
	InvalidName       Reason = "invalid_name"
	InvalidCardNumber Reason = "invalid_card_number"
	InvalidExpiry     Reason = "invalid_expiry"
	InvalidCVV        Reason = "invalid_cvv"
)

var messages = map[Reason]string{
	InvalidName:       "Please enter the cardholder name (letters and spaces only).",
	InvalidCardNumber: "Please enter a valid card number.",
	InvalidExpiry:     "Expiry must be in MM/YY format and not in the past.",
	InvalidCVV:        "Please enter a valid CVV (3 or 4 digits).",
}

func (r Reason) Message() string {
	return messages[r]
}

// Result is either valid, or invalid with the first failing reason.
type Result struct {
	Valid   bool
	Reason  Reason
	Message string
}

func invalid(r Reason) Result {
	return Result{Reason: r, Message: r.Message()}
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Reason: r.Reason, Message: r.Message}
}

type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
