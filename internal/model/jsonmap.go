package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap persists a loosely-typed values blob in a jsonb column. Special
// tariff condition/pricing parameters are stored this way and decoded into
// typed variants at the repository boundary.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonmap: tipo de columna no soportado %T", src)
	}
	return json.Unmarshal(data, m)
}
