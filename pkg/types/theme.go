package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ThemeConfig carries the storefront colour palette persisted as JSONB.
type ThemeConfig struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// Value marshals the theme into JSON.
func (t ThemeConfig) Value() (driver.Value, error) {
	buf, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes a JSON column into the theme.
func (t *ThemeConfig) Scan(value interface{}) error {
	if value == nil {
		*t = ThemeConfig{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("theme config: unsupported scan type %T", value)
	}

	var result ThemeConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return err
		}
	}
	*t = result
	return nil
}
