package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TaxType says whether sale prices already include tax
type TaxType int

const (
	TaxTypeExclusive TaxType = 0
	TaxTypeInclusive TaxType = 1
)

func (t TaxType) String() string {
	names := [...]string{"exclusive", "inclusive"}
	if int(t) < 0 || int(t) >= len(names) {
		return "exclusive"
	}
	return names[t]
}

// ParseTaxType accepts "exclusive" or "inclusive" in any case
func ParseTaxType(s string) (TaxType, error) {
	switch strings.ToLower(s) {
	case "exclusive":
		return TaxTypeExclusive, nil
	case "inclusive":
		return TaxTypeInclusive, nil
	}
	return 0, fmt.Errorf("unknown tax type %q", s)
}

func (t TaxType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if i != int(TaxTypeExclusive) && i != int(TaxTypeInclusive) {
			return fmt.Errorf("unknown tax type %d", i)
		}
		*t = TaxType(i)
		return nil
	}
	parsed, err := ParseTaxType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TaxType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxType) Scan(value interface{}) error {
	if value == nil {
		*t = TaxTypeExclusive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxType(v)
	case int:
		*t = TaxType(v)
	default:
		return fmt.Errorf("cannot scan %T into TaxType", value)
	}
	return nil
}
