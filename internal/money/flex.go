package money

import (
	"encoding/json"
	"math"
)

// Amount is integer cents that decodes from TOML or JSON values which may be
// strings ("$1,234.56"), numbers, or absent. It is the normalization boundary
// for user-shaped input: config files and API payloads use Amount, the engine
// only ever sees the int64 behind it.
type Amount int64

// Cents returns the raw cent value.
func (a Amount) Cents() int64 { return int64(a) }

// UnmarshalJSON accepts a JSON string or number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(decodeFlex(data, FloatToCents, ToCents))
	return nil
}

// MarshalJSON encodes as a decimal dollar string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(FromCents(int64(a)))
}

// UnmarshalTOML accepts a TOML string, integer, or float.
func (a *Amount) UnmarshalTOML(v any) error {
	*a = Amount(decodeFlexValue(v, FloatToCents, ToCents))
	return nil
}

// MarshalTOML encodes as a quoted decimal dollar string so a saved file
// round-trips through the string codec.
func (a Amount) MarshalTOML() ([]byte, error) {
	return []byte(`"` + FromCents(int64(a)).StringFixed(2) + `"`), nil
}

// Percent is integer basis points with the same flexible decoding as Amount.
// "5.25%", "5.25", and 5.25 all decode to 525.
type Percent int64

// Bps returns the raw basis-point value.
func (p Percent) Bps() int64 { return int64(p) }

// UnmarshalJSON accepts a JSON string or number.
func (p *Percent) UnmarshalJSON(data []byte) error {
	*p = Percent(decodeFlex(data, FloatToBasisPoints, ToBasisPoints))
	return nil
}

// MarshalJSON encodes as a decimal percentage.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(FromBasisPoints(int64(p)))
}

// UnmarshalTOML accepts a TOML string, integer, or float.
func (p *Percent) UnmarshalTOML(v any) error {
	*p = Percent(decodeFlexValue(v, FloatToBasisPoints, ToBasisPoints))
	return nil
}

// MarshalTOML encodes as a quoted decimal percentage string.
func (p Percent) MarshalTOML() ([]byte, error) {
	return []byte(`"` + FromBasisPoints(int64(p)).StringFixed(2) + `"`), nil
}

func decodeFlex(data []byte, fromFloat func(float64) int64, fromString func(string) int64) int64 {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return fromString(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return fromFloat(f)
	}
	// Malformed input normalizes to zero, matching the string codec.
	return 0
}

func decodeFlexValue(v any, fromFloat func(float64) int64, fromString func(string) int64) int64 {
	switch t := v.(type) {
	case string:
		return fromString(t)
	case int64:
		return fromFloat(float64(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return fromFloat(t)
	default:
		return 0
	}
}
