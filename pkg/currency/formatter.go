package currency

import (
	"fmt"
	"math"
	"strings"
)

// Format renders an amount the way tour cards show prices: "$ 2,850" for
// US dollars and "<CODE> 1,850" for anything else. Cents are shown only
// when the amount is not whole.
func Format(amount float64, code string) string {
	rounded := math.Round(amount*100) / 100

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intPart, frac := math.Modf(rounded)
	formatted := addThousandsSeparator(fmt.Sprintf("%.0f", intPart), ",")
	if cents := math.Round(frac * 100); cents > 0 {
		formatted += fmt.Sprintf(".%02.0f", cents)
	}

	if negative {
		formatted = "-" + formatted
	}

	return symbol(code) + " " + formatted
}

func symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	switch code {
	case "USD", "":
		return "$"
	default:
		return code
	}
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
