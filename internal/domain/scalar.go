package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Scalar is a reading field that may arrive as a JSON number or a string.
// It holds the text to display: numbers are printed in their shortest form,
// so 22.0 reads "22", and strings pass through unchanged.
type Scalar string

// Float returns a Scalar for a number
func Float(f float64) Scalar {
	return Scalar(formatNumber(f))
}

// Int returns a Scalar for an integer
func Int(i int) Scalar {
	return Scalar(strconv.Itoa(i))
}

func (s Scalar) String() string {
	return string(s)
}

// UnmarshalJSON accepts a number, a string or null
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*s = ""
		return nil
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("domain: invalid scalar string: %w", err)
		}
		*s = Scalar(str)
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("domain: scalar %s is neither a number nor a string", b)
	}
	*s = Float(f)
	return nil
}

// MarshalJSON writes canonical numeric text as a JSON number and anything
// else as a string, so decoding the output yields the same text.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.isNumber() {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

func (s Scalar) isNumber() bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	if !json.Valid([]byte(s)) {
		return false
	}
	f, err := strconv.ParseFloat(string(s), 64)
	return err == nil && formatNumber(f) == string(s)
}

// formatNumber prints f the way a browser's Number#toString does for the
// magnitudes weather data uses. Negative zero prints as "0".
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
