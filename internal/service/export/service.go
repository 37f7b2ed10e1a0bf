package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
)

type Service interface {
	ExportVehiclesCSV(ctx context.Context) ([]byte, error)
}

type service struct {
	vehicleRepo repository.VehicleRepository
}

func NewService(vehicleRepo repository.VehicleRepository) Service {
	return &service{vehicleRepo: vehicleRepo}
}

var csvHeader = []string{
	"chassis_number", "plate_number",
	"vehicle_capacity_id", "vehicle_type_id", "tote_capacity_id", "status_id",
	"vehicle_concept_id", "make_id", "gps_id", "branding_status_id", "tail_lift_brand_id",
	"truck_reg_date", "truck_registration_expiry_date",
	"insurance_registration_date", "insurance_registration_expiry_date",
	"mulkia_registration_date", "mulkia_registration_expiry_date",
	"permit_registration_date", "permit_registration_expiry_date",
	"emirate_permit_ids", "tl_no", "tc_no", "tc_owner",
	"salik_account_no", "salik_tag_no", "darb_account_no", "lift_gate", "remarks",
}

func (s *service) ExportVehiclesCSV(ctx context.Context) ([]byte, error) {
	vehicles, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for i := range vehicles {
		if err := w.Write(vehicleRow(&vehicles[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func vehicleRow(v *domain.Vehicle) []string {
	return []string{
		v.ChassisNumber, v.PlateNumber,
		intVal(v.VehicleCapacityID), intVal(v.VehicleTypeID), intVal(v.ToteCapacityID), intVal(v.StatusID),
		intVal(v.VehicleConceptID), intVal(v.MakeID), intVal(v.GPSID), intVal(v.BrandingStatusID), intVal(v.TailLiftBrandID),
		dateVal(v.TruckRegDate), dateVal(v.TruckRegistrationExpiryDate),
		dateVal(v.InsuranceRegistrationDate), dateVal(v.InsuranceRegistrationExpiryDate),
		dateVal(v.MulkiaRegistrationDate), dateVal(v.MulkiaRegistrationExpiryDate),
		dateVal(v.PermitRegistrationDate), dateVal(v.PermitRegistrationExpiryDate),
		idsVal(v.EmiratePermitIDs), intVal(v.TLNo), intVal(v.TCNo), strVal(v.TCOwner),
		strVal(v.SalikAccountNo), strVal(v.SalikTagNo), strVal(v.DarbAccountNo),
		fmt.Sprintf("%t", v.LiftGate), strVal(v.Remarks),
	}
}

func intVal(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func dateVal(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}

func strVal(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func idsVal(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ";")
}
