package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceItemType tags the clinical origin of a billable line item.
// The referenced entity is treated as an opaque reference; this service
// does not validate it against the originating module.
type InvoiceItemType int

const (
	InvoiceItemTypeConsultation InvoiceItemType = 0
	InvoiceItemTypeLabTest      InvoiceItemType = 1
	InvoiceItemTypeMedication   InvoiceItemType = 2
	InvoiceItemTypeProcedure    InvoiceItemType = 3
	InvoiceItemTypeOther        InvoiceItemType = 4
)

func (t InvoiceItemType) String() string {
	names := [...]string{"CONSULTATION", "LAB_TEST", "MEDICATION", "PROCEDURE", "OTHER"}
	if int(t) < 0 || int(t) >= len(names) {
		return "OTHER"
	}
	return names[t]
}

func (t InvoiceItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *InvoiceItemType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = InvoiceItemType(i)
		return nil
	}
	switch str {
	case "CONSULTATION":
		*t = InvoiceItemTypeConsultation
	case "LAB_TEST":
		*t = InvoiceItemTypeLabTest
	case "MEDICATION":
		*t = InvoiceItemTypeMedication
	case "PROCEDURE":
		*t = InvoiceItemTypeProcedure
	case "OTHER":
		*t = InvoiceItemTypeOther
	}
	return nil
}

func (t InvoiceItemType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *InvoiceItemType) Scan(value interface{}) error {
	if value == nil {
		*t = InvoiceItemTypeOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = InvoiceItemType(v)
	case int:
		*t = InvoiceItemType(v)
	}
	return nil
}
