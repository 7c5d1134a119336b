package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Measure is a numeric cell that may be missing. Source cells that fail to
// parse become missing measures instead of zero, so callers can tell
// "unmeasured" apart from a real 0.
type Measure struct {
	value float64
	known bool
}

// Known wraps v. NaN is normalized to a missing measure.
func Known(v float64) Measure {
	if math.IsNaN(v) {
		return Measure{}
	}
	return Measure{value: v, known: true}
}

// Missing returns a measure with no value.
func Missing() Measure { return Measure{} }

// ParseMeasure reads the longest leading decimal number in s, ignoring
// leading whitespace and any trailing text, so "250 K" parses as 250. A
// signed "Infinity" prefix is accepted. Text with no numeric prefix yields a
// missing measure.
func ParseMeasure(s string) Measure {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return Measure{}
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if errors.Is(err, strconv.ErrSyntax) {
		return Measure{}
	}
	// Out-of-range literals keep the ±Inf or 0 that ParseFloat returns.
	return Known(v)
}

// numericPrefix returns the length of the longest prefix of s of the form
// [sign] (digits [. digits] | . digits) [(e|E) [sign] digits] or
// [sign] Infinity. It returns 0 when there is none.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Float returns the value and whether it is present.
func (m Measure) Float() (float64, bool) { return m.value, m.known }

// IsKnown reports whether the measure holds a value.
func (m Measure) IsKnown() bool { return m.known }

// IsFinite reports whether the measure holds a finite value.
func (m Measure) IsFinite() bool { return m.known && !math.IsInf(m.value, 0) }

// Equal reports whether both measures are missing or hold the same value.
func (m Measure) Equal(o Measure) bool {
	if !m.known || !o.known {
		return m.known == o.known
	}
	return m.value == o.value
}

// String renders the value with %g, or "–" when missing.
func (m Measure) String() string {
	if !m.known {
		return "–"
	}
	return strconv.FormatFloat(m.value, 'g', -1, 64)
}

// MarshalJSON encodes a missing or infinite measure as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON accepts a number or null.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Known(v)
	return nil
}
