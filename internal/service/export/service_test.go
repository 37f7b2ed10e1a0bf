package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/mocks"
)

func TestExportVehiclesCSV(t *testing.T) {
	repo := new(mocks.VehicleRepository)
	svc := NewService(repo)

	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	capacity := int64(3)
	owner := "ACME Logistics"
	vehicles := []domain.Vehicle{
		{
			ChassisNumber:                   "CH1",
			PlateNumber:                     "A-1",
			VehicleCapacityID:               &capacity,
			InsuranceRegistrationExpiryDate: &expiry,
			EmiratePermitIDs:                pq.Int64Array{1, 4},
			TCOwner:                         &owner,
			LiftGate:                        true,
		},
		{ChassisNumber: "CH2", PlateNumber: "A-2"},
	}
	repo.On("ListAll", mock.Anything).Return(vehicles, nil)

	out, err := svc.ExportVehiclesCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, csvHeader, header)

	row := records[1]
	require.Len(t, row, len(header))
	cols := make(map[string]string, len(header))
	for i, name := range header {
		cols[name] = row[i]
	}
	assert.Equal(t, "CH1", cols["chassis_number"])
	assert.Equal(t, "3", cols["vehicle_capacity_id"])
	assert.Equal(t, "2026-12-31", cols["insurance_registration_expiry_date"])
	assert.Equal(t, "1;4", cols["emirate_permit_ids"])
	assert.Equal(t, "ACME Logistics", cols["tc_owner"])
	assert.Equal(t, "true", cols["lift_gate"])

	// Absent values export as empty cells, not literal "nil".
	second := records[2]
	assert.Equal(t, "CH2", second[0])
	assert.Equal(t, "", second[2])
}

func TestExportVehiclesCSVEmptyFleet(t *testing.T) {
	repo := new(mocks.VehicleRepository)
	svc := NewService(repo)

	repo.On("ListAll", mock.Anything).Return([]domain.Vehicle{}, nil)

	out, err := svc.ExportVehiclesCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
