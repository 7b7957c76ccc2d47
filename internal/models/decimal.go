package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

// The backend stores measurements as fixed-precision decimals. Serializing
// them as quoted strings ("110.00" rather than 110.0) keeps grams, glucose,
// and weights bit-stable across repeated sync attempts.
//
// Dec2, Dec3, and Dec4 carry two, three, and four fractional digits.
type (
	Dec2 float64
	Dec3 float64
	Dec4 float64
)

var ErrInvalidDecimal = errors.New("invalid decimal value")

func marshalFixed(f float64, prec int) ([]byte, error) {
	return strconv.AppendQuote(nil, strconv.FormatFloat(f, 'f', prec, 64)), nil
}

func unmarshalFixed(b []byte) (float64, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return 0, err
	}
	switch value := v.(type) {
	case string:
		return strconv.ParseFloat(value, 64)
	case float64:
		return value, nil
	case nil:
		return 0, nil
	default:
		return 0, ErrInvalidDecimal
	}
}

func (d Dec2) MarshalJSON() ([]byte, error) { return marshalFixed(float64(d), 2) }
func (d Dec3) MarshalJSON() ([]byte, error) { return marshalFixed(float64(d), 3) }
func (d Dec4) MarshalJSON() ([]byte, error) { return marshalFixed(float64(d), 4) }

func (d *Dec2) UnmarshalJSON(b []byte) error {
	f, err := unmarshalFixed(b)
	if err != nil {
		return err
	}
	*d = Dec2(f)
	return nil
}

func (d *Dec3) UnmarshalJSON(b []byte) error {
	f, err := unmarshalFixed(b)
	if err != nil {
		return err
	}
	*d = Dec3(f)
	return nil
}

func (d *Dec4) UnmarshalJSON(b []byte) error {
	f, err := unmarshalFixed(b)
	if err != nil {
		return err
	}
	*d = Dec4(f)
	return nil
}

// Dec2Ptr is a convenience for optional decimal fields.
func Dec2Ptr(f float64) *Dec2 {
	d := Dec2(f)
	return &d
}

// Dec3Ptr is a convenience for optional decimal fields.
func Dec3Ptr(f float64) *Dec3 {
	d := Dec3(f)
	return &d
}
