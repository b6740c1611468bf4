package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cents holds a monetary amount in centavos. The backend serializes money as
// decimal strings ("150.00"), so Cents converts on the JSON boundary.
type Cents int64

// UnmarshalJSON accepts either a quoted decimal string or a bare number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}

	whole, frac := s, "0"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	// Normalize the fractional part to exactly two digits, rounding
	// half-up on extra precision.
	roundUp := false
	if len(frac) > 2 {
		roundUp = frac[2] >= '5' && frac[2] <= '9'
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	if roundUp {
		f++
	}

	if w < 0 || strings.HasPrefix(whole, "-") {
		*c = Cents(w*100 - f)
	} else {
		*c = Cents(w*100 + f)
	}
	return nil
}

// MarshalJSON emits the backend's decimal-string representation.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Decimal())
}

// Decimal returns the "150.00" form expected on the wire.
func (c Cents) Decimal() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount for display, e.g. "R$ 150,00".
func (c Cents) Format() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, v/100, v%100)
}
