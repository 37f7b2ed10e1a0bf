package vehicle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/mocks"
)

func mustDate(t *testing.T, val string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", val)
	require.NoError(t, err)
	return parsed
}

func newTestService() (Service, *mocks.VehicleRepository, *mocks.ChangeLogRepository) {
	vehicleRepo := new(mocks.VehicleRepository)
	changeLogRepo := new(mocks.ChangeLogRepository)
	return NewService(vehicleRepo, changeLogRepo), vehicleRepo, changeLogRepo
}

func TestCreateRequiresChassisAndPlate(t *testing.T) {
	svc, vehicleRepo, _ := newTestService()

	_, err := svc.Create(context.Background(), domain.CreateVehicleInput{PlateNumber: "A-1"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), domain.CreateVehicleInput{ChassisNumber: "CH1"})
	assert.Error(t, err)

	vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateParsesDates(t *testing.T) {
	svc, vehicleRepo, _ := newTestService()

	expiry := "2026-12-31"
	vehicleRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.ChassisNumber == "CH1" &&
			v.InsuranceRegistrationExpiryDate != nil &&
			v.InsuranceRegistrationExpiryDate.Format("2006-01-02") == expiry
	})).Return(nil).Once()

	created, err := svc.Create(context.Background(), domain.CreateVehicleInput{
		ChassisNumber:                   "CH1",
		PlateNumber:                     "A-1",
		InsuranceRegistrationExpiryDate: &expiry,
	})

	require.NoError(t, err)
	assert.Equal(t, "CH1", created.ChassisNumber)
	vehicleRepo.AssertExpectations(t)
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	svc, vehicleRepo, _ := newTestService()

	bad := "31/12/2026"
	_, err := svc.Create(context.Background(), domain.CreateVehicleInput{
		ChassisNumber:                   "CH1",
		PlateNumber:                     "A-1",
		InsuranceRegistrationExpiryDate: &bad,
	})

	assert.Error(t, err)
	vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetNotFound(t *testing.T) {
	svc, vehicleRepo, _ := newTestService()

	vehicleRepo.On("GetByChassis", mock.Anything, "MISSING").Return(nil, nil)

	_, err := svc.Get(context.Background(), "MISSING")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecordsChangeLog(t *testing.T) {
	svc, vehicleRepo, changeLogRepo := newTestService()

	existing := &domain.Vehicle{ChassisNumber: "CH1", PlateNumber: "A-1"}
	vehicleRepo.On("GetByChassis", mock.Anything, "CH1").Return(existing, nil)
	vehicleRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	changeLogRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ChangeLog) bool {
		return e.FieldName == "plate_number" &&
			e.Username == "admin" &&
			*e.OldValue == "A-1" && *e.NewValue == "A-2"
	})).Return(nil).Once()

	newPlate := "A-2"
	actor := &domain.User{Username: "admin"}
	updated, err := svc.Update(context.Background(), "CH1", domain.UpdateVehicleInput{PlateNumber: &newPlate}, actor)

	require.NoError(t, err)
	assert.Equal(t, "A-2", updated.PlateNumber)
	changeLogRepo.AssertExpectations(t)
}

func TestUpdateNoChangesWritesNoLog(t *testing.T) {
	svc, vehicleRepo, changeLogRepo := newTestService()

	existing := &domain.Vehicle{ChassisNumber: "CH1", PlateNumber: "A-1"}
	vehicleRepo.On("GetByChassis", mock.Anything, "CH1").Return(existing, nil)
	vehicleRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), "CH1", domain.UpdateVehicleInput{}, &domain.User{Username: "admin"})

	require.NoError(t, err)
	changeLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateNotFound(t *testing.T) {
	svc, vehicleRepo, _ := newTestService()

	vehicleRepo.On("GetByChassis", mock.Anything, "MISSING").Return(nil, nil)

	_, err := svc.Update(context.Background(), "MISSING", domain.UpdateVehicleInput{}, nil)

	assert.ErrorIs(t, err, ErrNotFound)
	vehicleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateClearsDateWithEmptyString(t *testing.T) {
	svc, vehicleRepo, changeLogRepo := newTestService()

	expiry := mustDate(t, "2026-12-31")
	existing := &domain.Vehicle{
		ChassisNumber:                "CH1",
		PlateNumber:                  "A-1",
		PermitRegistrationExpiryDate: &expiry,
	}
	vehicleRepo.On("GetByChassis", mock.Anything, "CH1").Return(existing, nil)
	vehicleRepo.On("Update", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.PermitRegistrationExpiryDate == nil
	})).Return(nil)
	changeLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	empty := ""
	_, err := svc.Update(context.Background(), "CH1", domain.UpdateVehicleInput{PermitRegistrationExpiryDate: &empty}, nil)

	require.NoError(t, err)
	vehicleRepo.AssertExpectations(t)
}
