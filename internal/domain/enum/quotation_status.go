package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus int

const (
	QuotationStatusDraft    QuotationStatus = 0
	QuotationStatusSent     QuotationStatus = 1
	QuotationStatusAccepted QuotationStatus = 2
	QuotationStatusRejected QuotationStatus = 3
	QuotationStatusExpired  QuotationStatus = 4
)

var quotationStatusNames = [...]string{"draft", "sent", "accepted", "rejected", "expired"}

// ParseQuotationStatus accepts a status name in any case
func ParseQuotationStatus(s string) (QuotationStatus, error) {
	for i, name := range quotationStatusNames {
		if strings.EqualFold(s, name) {
			return QuotationStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown quotation status %q", s)
}

func (s QuotationStatus) IsValid() bool {
	return s >= QuotationStatusDraft && int(s) < len(quotationStatusNames)
}

func (s QuotationStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("QuotationStatus(%d)", int(s))
	}
	return quotationStatusNames[s]
}

// ExpectedNext reports whether moving from s to next follows the usual flow:
// draft -> sent -> accepted|rejected|expired. Nothing enforces it.
func (s QuotationStatus) ExpectedNext(next QuotationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case QuotationStatusDraft:
		return next == QuotationStatusSent
	case QuotationStatusSent:
		return next == QuotationStatusAccepted || next == QuotationStatusRejected || next == QuotationStatusExpired
	}
	return false
}

func (s QuotationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuotationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !QuotationStatus(i).IsValid() {
			return fmt.Errorf("unknown quotation status %d", i)
		}
		*s = QuotationStatus(i)
		return nil
	}
	parsed, err := ParseQuotationStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuotationStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuotationStatus(v)
	case int:
		*s = QuotationStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into QuotationStatus", value)
	}
	return nil
}
