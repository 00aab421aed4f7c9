package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SubscriptionStatus represents where a barbershop is in its platform subscription
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusSuspended SubscriptionStatus = "suspended"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusTrial, SubscriptionStatusActive, SubscriptionStatusPastDue,
		SubscriptionStatusSuspended, SubscriptionStatusCancelled:
		return true
	}
	return false
}

// AcceptsBookings reports whether the public booking page is open
func (s SubscriptionStatus) AcceptsBookings() bool {
	return s == SubscriptionStatusTrial || s == SubscriptionStatusActive || s == SubscriptionStatusPastDue
}

func (s SubscriptionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *SubscriptionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = SubscriptionStatus(str)
	return nil
}

func (s SubscriptionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SubscriptionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SubscriptionStatusTrial
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(string(v))
	}
	return nil
}
