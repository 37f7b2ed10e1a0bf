package vehicle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
)

var (
	ErrNotFound  = errors.New("vehicle not found")
	ErrDuplicate = repository.ErrDuplicateVehicle
)

type Service interface {
	Create(ctx context.Context, input domain.CreateVehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, chassisNumber string) (*domain.Vehicle, error)
	// Update applies a partial update and records a change-log row per
	// changed field, attributed to the acting user.
	Update(ctx context.Context, chassisNumber string, input domain.UpdateVehicleInput, actor *domain.User) (*domain.Vehicle, error)
	List(ctx context.Context, search string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vehicle], error)
}

type service struct {
	vehicleRepo   repository.VehicleRepository
	changeLogRepo repository.ChangeLogRepository
}

func NewService(vehicleRepo repository.VehicleRepository, changeLogRepo repository.ChangeLogRepository) Service {
	return &service{
		vehicleRepo:   vehicleRepo,
		changeLogRepo: changeLogRepo,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateVehicleInput) (*domain.Vehicle, error) {
	if input.ChassisNumber == "" {
		return nil, fmt.Errorf("chassis_number is required")
	}
	if input.PlateNumber == "" {
		return nil, fmt.Errorf("plate_number is required")
	}

	vehicle := &domain.Vehicle{
		ChassisNumber:     input.ChassisNumber,
		PlateNumber:       input.PlateNumber,
		VehicleCapacityID: input.VehicleCapacityID,
		VehicleTypeID:     input.VehicleTypeID,
		ToteCapacityID:    input.ToteCapacityID,
		StatusID:          input.StatusID,
		VehicleConceptID:  input.VehicleConceptID,
		MakeID:            input.MakeID,
		GPSID:             input.GPSID,
		BrandingStatusID:  input.BrandingStatusID,
		TailLiftBrandID:   input.TailLiftBrandID,
		EmiratePermitIDs:  pq.Int64Array(input.EmiratePermitIDs),
		TLNo:              input.TLNo,
		TCNo:              input.TCNo,
		TCOwner:           input.TCOwner,
		SalikAccountNo:    input.SalikAccountNo,
		SalikTagNo:        input.SalikTagNo,
		DarbAccountNo:     input.DarbAccountNo,
		Remarks:           input.Remarks,
	}
	if input.LiftGate != nil {
		vehicle.LiftGate = *input.LiftGate
	}

	dates := []struct {
		src *string
		dst **time.Time
	}{
		{input.TruckRegDate, &vehicle.TruckRegDate},
		{input.TruckRegistrationExpiryDate, &vehicle.TruckRegistrationExpiryDate},
		{input.InsuranceRegistrationDate, &vehicle.InsuranceRegistrationDate},
		{input.InsuranceRegistrationExpiryDate, &vehicle.InsuranceRegistrationExpiryDate},
		{input.MulkiaRegistrationDate, &vehicle.MulkiaRegistrationDate},
		{input.MulkiaRegistrationExpiryDate, &vehicle.MulkiaRegistrationExpiryDate},
		{input.PermitRegistrationDate, &vehicle.PermitRegistrationDate},
		{input.PermitRegistrationExpiryDate, &vehicle.PermitRegistrationExpiryDate},
	}
	for _, d := range dates {
		parsed, err := parseDate(d.src)
		if err != nil {
			return nil, err
		}
		if parsed != nil {
			*d.dst = parsed
		}
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *service) Get(ctx context.Context, chassisNumber string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByChassis(ctx, chassisNumber)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}
	return vehicle, nil
}

func (s *service) Update(ctx context.Context, chassisNumber string, input domain.UpdateVehicleInput, actor *domain.User) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByChassis(ctx, chassisNumber)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}

	before := vehicle.Snapshot()

	if err := applyUpdate(vehicle, input); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	after := vehicle.Snapshot()
	username := ""
	if actor != nil {
		username = actor.Username
	}
	for _, change := range domain.DiffSnapshots(before, after, vehicle.ChassisNumber, vehicle.PlateNumber, username) {
		entry := change
		if err := s.changeLogRepo.Create(ctx, &entry); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"chassis": vehicle.ChassisNumber,
				"field":   change.FieldName,
			}).Warn("failed to record change log entry")
		}
	}

	return vehicle, nil
}

func (s *service) List(ctx context.Context, search string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, search, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Vehicle]{}, err
	}
	return domain.NewPaginatedResponse(vehicles, params.Page, params.PageSize, total), nil
}

func applyUpdate(vehicle *domain.Vehicle, input domain.UpdateVehicleInput) error {
	if input.PlateNumber != nil {
		vehicle.PlateNumber = *input.PlateNumber
	}

	refs := []struct {
		src *int64
		dst **int64
	}{
		{input.VehicleCapacityID, &vehicle.VehicleCapacityID},
		{input.VehicleTypeID, &vehicle.VehicleTypeID},
		{input.ToteCapacityID, &vehicle.ToteCapacityID},
		{input.StatusID, &vehicle.StatusID},
		{input.VehicleConceptID, &vehicle.VehicleConceptID},
		{input.MakeID, &vehicle.MakeID},
		{input.GPSID, &vehicle.GPSID},
		{input.BrandingStatusID, &vehicle.BrandingStatusID},
		{input.TailLiftBrandID, &vehicle.TailLiftBrandID},
		{input.TLNo, &vehicle.TLNo},
		{input.TCNo, &vehicle.TCNo},
	}
	for _, r := range refs {
		if r.src != nil {
			*r.dst = r.src
		}
	}

	dates := []struct {
		src *string
		dst **time.Time
	}{
		{input.TruckRegDate, &vehicle.TruckRegDate},
		{input.TruckRegistrationExpiryDate, &vehicle.TruckRegistrationExpiryDate},
		{input.InsuranceRegistrationDate, &vehicle.InsuranceRegistrationDate},
		{input.InsuranceRegistrationExpiryDate, &vehicle.InsuranceRegistrationExpiryDate},
		{input.MulkiaRegistrationDate, &vehicle.MulkiaRegistrationDate},
		{input.MulkiaRegistrationExpiryDate, &vehicle.MulkiaRegistrationExpiryDate},
		{input.PermitRegistrationDate, &vehicle.PermitRegistrationDate},
		{input.PermitRegistrationExpiryDate, &vehicle.PermitRegistrationExpiryDate},
	}
	for _, d := range dates {
		if d.src == nil {
			continue
		}
		parsed, err := parseDate(d.src)
		if err != nil {
			return err
		}
		*d.dst = parsed
	}

	texts := []struct {
		src *string
		dst **string
	}{
		{input.TCOwner, &vehicle.TCOwner},
		{input.SalikAccountNo, &vehicle.SalikAccountNo},
		{input.SalikTagNo, &vehicle.SalikTagNo},
		{input.DarbAccountNo, &vehicle.DarbAccountNo},
		{input.Remarks, &vehicle.Remarks},
	}
	for _, t := range texts {
		if t.src != nil {
			*t.dst = t.src
		}
	}

	if input.EmiratePermitIDs != nil {
		vehicle.EmiratePermitIDs = pq.Int64Array(input.EmiratePermitIDs)
	}
	if input.LiftGate != nil {
		vehicle.LiftGate = *input.LiftGate
	}

	return nil
}

// parseDate accepts YYYY-MM-DD; an empty string clears the date.
func parseDate(val *string) (*time.Time, error) {
	if val == nil || *val == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *val)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *val)
	}
	return &parsed, nil
}
