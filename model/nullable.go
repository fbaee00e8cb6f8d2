package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NullString is a string column value that may be absent, e.g. the customer
// name on a consolidated row whose sale had no matching customer.
type NullString struct {
	Value string
	Valid bool
}

func NewString(s string) NullString {
	return NullString{Value: s, Valid: true}
}

func (n NullString) String() string {
	if !n.Valid {
		return ""
	}
	return n.Value
}

func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *NullString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = NewString(s)
	return nil
}

// NullFloat is a numeric column value. Coercion failures during load become
// invalid values instead of load errors.
type NullFloat struct {
	Value float64
	Valid bool
}

func NewFloat(f float64) NullFloat {
	return NullFloat{Value: f, Valid: true}
}

// ParseFloat coerces a raw CSV field. Empty or malformed input yields an
// invalid value, never an error.
func ParseFloat(raw string) NullFloat {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NullFloat{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return NullFloat{}
	}
	return NewFloat(f)
}

// Or returns the value or the given fallback when invalid.
func (n NullFloat) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullFloat{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = NewFloat(f)
	return nil
}
