package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// CheckSet maps checklist item keys to their checked state. It is stored as
// a JSON text column.
type CheckSet map[string]bool

func (c CheckSet) Value() (driver.Value, error) {
	if c == nil {
		c = CheckSet{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *CheckSet) Scan(value interface{}) error {
	if value == nil {
		*c = CheckSet{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for CheckSet")
	}

	return json.Unmarshal(data, c)
}

// DoneCount returns how many items are checked.
func (c CheckSet) DoneCount() int {
	n := 0
	for _, ok := range c {
		if ok {
			n++
		}
	}
	return n
}
