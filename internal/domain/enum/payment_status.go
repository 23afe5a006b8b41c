package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the processing state of a payment
type PaymentStatus int

const (
	PaymentStatusPending   PaymentStatus = 0
	PaymentStatusCompleted PaymentStatus = 1
	PaymentStatusFailed    PaymentStatus = 2
	PaymentStatusRefunded  PaymentStatus = 3
	PaymentStatusCancelled PaymentStatus = 4
)

func (s PaymentStatus) String() string {
	names := [...]string{"PENDING", "COMPLETED", "FAILED", "REFUNDED", "CANCELLED"}
	if int(s) < 0 || int(s) >= len(names) {
		return "PENDING"
	}
	return names[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "PENDING":
		*s = PaymentStatusPending
	case "COMPLETED":
		*s = PaymentStatusCompleted
	case "FAILED":
		*s = PaymentStatusFailed
	case "REFUNDED":
		*s = PaymentStatusRefunded
	case "CANCELLED":
		*s = PaymentStatusCancelled
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
