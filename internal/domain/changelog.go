package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeLog records one field-level change on a vehicle record.
type ChangeLog struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ChassisNumber string    `json:"chassis_number" db:"chassis_number"`
	PlateNumber   string    `json:"plate_number" db:"plate_number"`
	FieldName     string    `json:"field_name" db:"field_name"`
	OldValue      *string   `json:"old_value" db:"old_value"`
	NewValue      *string   `json:"new_value" db:"new_value"`
	Username      string    `json:"username" db:"username"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DiffSnapshots compares two vehicle snapshots and produces a change-log
// row per changed field.
func DiffSnapshots(before, after map[string]string, chassis, plate, username string) []ChangeLog {
	var changes []ChangeLog
	for field, oldVal := range before {
		newVal, ok := after[field]
		if !ok || oldVal == newVal {
			continue
		}
		o, n := oldVal, newVal
		changes = append(changes, ChangeLog{
			ID:            uuid.New(),
			ChassisNumber: chassis,
			PlateNumber:   plate,
			FieldName:     field,
			OldValue:      &o,
			NewValue:      &n,
			Username:      username,
		})
	}
	return changes
}
