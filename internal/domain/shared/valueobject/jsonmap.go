package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap is a free-form JSON object stored as a single column.
// Used for product specifications and raw payment gateway payloads.
type JSONMap map[string]interface{}

// Value implements driver.Valuer for JSON column storage
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(m))
}

// Scan implements sql.Scanner for JSON column storage
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, m)
	case string:
		return json.Unmarshal([]byte(data), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}
