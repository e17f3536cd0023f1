package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray stores a []string as a JSONB column.
type StringArray []string

// Scan implements sql.Scanner so GORM can read JSONB values.
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value implements driver.Valuer so GORM can write JSONB values.
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // empty JSON array instead of null
	}
	return json.Marshal(o)
}

// RewardTierArray stores the ordered reward tiers of a quiz as JSONB.
// Order matters: tiers are evaluated front to back by the reward resolver.
type RewardTierArray []RewardTier

// Scan implements sql.Scanner for RewardTierArray.
func (r *RewardTierArray) Scan(value interface{}) error {
	if value == nil {
		*r = RewardTierArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*r = RewardTierArray{}
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// Value implements driver.Valuer for RewardTierArray.
func (r RewardTierArray) Value() (driver.Value, error) {
	if len(r) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

// OrderItemList stores order line items as JSONB.
type OrderItemList []OrderItem

// Scan implements sql.Scanner for OrderItemList.
func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = OrderItemList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = OrderItemList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer for OrderItemList.
func (l OrderItemList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}
