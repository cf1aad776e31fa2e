// Package valueobject provides immutable value types shared across domains.
package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Variant identifies a concrete variation of a product, such as a color
// and size combination. Both fields empty means "no variant".
type Variant struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
}

// IsZero reports whether no variant is selected
func (v Variant) IsZero() bool {
	return v.Color == "" && v.Size == ""
}

// Matches reports whether two variants refer to the same variation.
// Two empty variants match; a variant only matches another with the
// same color and size.
func (v Variant) Matches(other Variant) bool {
	if v.IsZero() && other.IsZero() {
		return true
	}
	if v.IsZero() || other.IsZero() {
		return false
	}
	return v.Color == other.Color && v.Size == other.Size
}

// String returns a human-readable representation
func (v Variant) String() string {
	if v.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s/%s", v.Color, v.Size)
}

// Value implements driver.Valuer for JSON column storage
func (v Variant) Value() (driver.Value, error) {
	if v.IsZero() {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for JSON column storage
func (v *Variant) Scan(value interface{}) error {
	if value == nil {
		*v = Variant{}
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return errors.New("unsupported type for Variant")
	}
}
