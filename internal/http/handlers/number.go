package handlers

import (
	"errors"
	"strconv"
	"strings"
)

// errNotNumeric rejects request fields that are neither a JSON number nor a
// numeric string.
var errNotNumeric = errors.New("valor não numérico")

// Number is a request-side numeric field that accepts both a JSON number
// and a numeric string ("3" and 3 are equivalent on this API; the admin page
// historically sent either). Anything else is rejected at decode time, which
// surfaces as a 400 instead of a silent zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return errNotNumeric
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errNotNumeric
	}
	*n = Number(f)
	return nil
}

// Int returns the value truncated to an integer, matching the legacy
// parseInt coercion of quantity fields.
func (n Number) Int() int { return int(n) }

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }
