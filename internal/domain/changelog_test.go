package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffSnapshotsNoChanges(t *testing.T) {
	snap := map[string]string{"plate_number": "A-1", "make": "Volvo"}
	changes := DiffSnapshots(snap, snap, "CH1", "A-1", "admin")
	assert.Empty(t, changes)
}

func TestDiffSnapshotsRecordsChangedFields(t *testing.T) {
	before := map[string]string{"plate_number": "A-1", "make": "Volvo"}
	after := map[string]string{"plate_number": "A-2", "make": "Volvo"}

	changes := DiffSnapshots(before, after, "CH1", "A-2", "admin")
	require.Len(t, changes, 1)

	change := changes[0]
	assert.Equal(t, "plate_number", change.FieldName)
	assert.Equal(t, "CH1", change.ChassisNumber)
	assert.Equal(t, "admin", change.Username)
	require.NotNil(t, change.OldValue)
	require.NotNil(t, change.NewValue)
	assert.Equal(t, "A-1", *change.OldValue)
	assert.Equal(t, "A-2", *change.NewValue)
}

func TestVehicleSnapshotTracksExpiryDates(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	v := Vehicle{
		ChassisNumber:                   "CH1",
		PlateNumber:                     "A-1",
		InsuranceRegistrationExpiryDate: &expiry,
	}

	before := v.Snapshot()

	later := expiry.AddDate(1, 0, 0)
	v.InsuranceRegistrationExpiryDate = &later
	after := v.Snapshot()

	changes := DiffSnapshots(before, after, v.ChassisNumber, v.PlateNumber, "admin")
	require.Len(t, changes, 1)
	assert.Equal(t, "insurance_registration_expiry_date", changes[0].FieldName)
}
