package domain

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Vehicle is the master record for one fleet truck, keyed by chassis
// number. Dropdown references point at the kinded dropdowns table; the
// four document expiry dates are what the expiry sweep reads. A nil
// expiry date means the document is not tracked and never alerts.
type Vehicle struct {
	ChassisNumber string `json:"chassis_number" db:"chassis_number"`
	PlateNumber   string `json:"plate_number" db:"plate_number"`

	VehicleCapacityID *int64 `json:"vehicle_capacity_id" db:"vehicle_capacity_id"`
	VehicleTypeID     *int64 `json:"vehicle_type_id" db:"vehicle_type_id"`
	ToteCapacityID    *int64 `json:"tote_capacity_id" db:"tote_capacity_id"`
	StatusID          *int64 `json:"status_id" db:"status_id"`
	VehicleConceptID  *int64 `json:"vehicle_concept_id" db:"vehicle_concept_id"`
	MakeID            *int64 `json:"make_id" db:"make_id"`
	GPSID             *int64 `json:"gps_id" db:"gps_id"`
	BrandingStatusID  *int64 `json:"branding_status_id" db:"branding_status_id"`
	TailLiftBrandID   *int64 `json:"tail_lift_brand_id" db:"tail_lift_brand_id"`

	TruckRegDate                    *time.Time `json:"truck_reg_date" db:"truck_reg_date"`
	TruckRegistrationExpiryDate     *time.Time `json:"truck_registration_expiry_date" db:"truck_registration_expiry_date"`
	InsuranceRegistrationDate       *time.Time `json:"insurance_registration_date" db:"insurance_registration_date"`
	InsuranceRegistrationExpiryDate *time.Time `json:"insurance_registration_expiry_date" db:"insurance_registration_expiry_date"`
	MulkiaRegistrationDate          *time.Time `json:"mulkia_registration_date" db:"mulkia_registration_date"`
	MulkiaRegistrationExpiryDate    *time.Time `json:"mulkia_registration_expiry_date" db:"mulkia_registration_expiry_date"`
	PermitRegistrationDate          *time.Time `json:"permit_registration_date" db:"permit_registration_date"`
	PermitRegistrationExpiryDate    *time.Time `json:"permit_registration_expiry_date" db:"permit_registration_expiry_date"`

	EmiratePermitIDs pq.Int64Array `json:"emirate_permit_ids" db:"emirate_permit_ids"`

	TLNo           *int64  `json:"tl_no" db:"tl_no"`
	TCNo           *int64  `json:"tc_no" db:"tc_no"`
	TCOwner        *string `json:"tc_owner" db:"tc_owner"`
	SalikAccountNo *string `json:"salik_account_no" db:"salik_account_no"`
	SalikTagNo     *string `json:"salik_tag_no" db:"salik_tag_no"`
	DarbAccountNo  *string `json:"darb_account_no" db:"darb_account_no"`
	LiftGate       bool    `json:"lift_gate" db:"lift_gate"`
	Remarks        *string `json:"remarks" db:"remarks"`

	InsuranceDocumentPath *string `json:"insurance_document_path" db:"insurance_document_path"`
	MulkiaDocumentPath    *string `json:"mulkia_document_path" db:"mulkia_document_path"`
	PermitDocumentPath    *string `json:"permit_document_path" db:"permit_document_path"`
	TruckPhotoPath        *string `json:"truck_photo_path" db:"truck_photo_path"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ExpiryDate returns the expiry date tracked for the given category,
// nil when the document is not tracked on this vehicle.
func (v *Vehicle) ExpiryDate(category DocumentCategory) *time.Time {
	switch category {
	case CategoryTruckRegistration:
		return v.TruckRegistrationExpiryDate
	case CategoryInsurance:
		return v.InsuranceRegistrationExpiryDate
	case CategoryMulkia:
		return v.MulkiaRegistrationExpiryDate
	case CategoryPermit:
		return v.PermitRegistrationExpiryDate
	default:
		return nil
	}
}

// Snapshot flattens the mutable fields into printable values for
// change-log diffing.
func (v *Vehicle) Snapshot() map[string]string {
	snap := map[string]string{
		"plate_number": v.PlateNumber,
		"lift_gate":    fmt.Sprintf("%t", v.LiftGate),
	}

	refs := map[string]*int64{
		"vehicle_capacity_id": v.VehicleCapacityID,
		"vehicle_type_id":     v.VehicleTypeID,
		"tote_capacity_id":    v.ToteCapacityID,
		"status_id":           v.StatusID,
		"vehicle_concept_id":  v.VehicleConceptID,
		"make_id":             v.MakeID,
		"gps_id":              v.GPSID,
		"branding_status_id":  v.BrandingStatusID,
		"tail_lift_brand_id":  v.TailLiftBrandID,
		"tl_no":               v.TLNo,
		"tc_no":               v.TCNo,
	}
	for field, val := range refs {
		snap[field] = formatInt(val)
	}

	dates := map[string]*time.Time{
		"truck_reg_date":                     v.TruckRegDate,
		"truck_registration_expiry_date":     v.TruckRegistrationExpiryDate,
		"insurance_registration_date":        v.InsuranceRegistrationDate,
		"insurance_registration_expiry_date": v.InsuranceRegistrationExpiryDate,
		"mulkia_registration_date":           v.MulkiaRegistrationDate,
		"mulkia_registration_expiry_date":    v.MulkiaRegistrationExpiryDate,
		"permit_registration_date":           v.PermitRegistrationDate,
		"permit_registration_expiry_date":    v.PermitRegistrationExpiryDate,
	}
	for field, val := range dates {
		snap[field] = formatDate(val)
	}

	texts := map[string]*string{
		"tc_owner":         v.TCOwner,
		"salik_account_no": v.SalikAccountNo,
		"salik_tag_no":     v.SalikTagNo,
		"darb_account_no":  v.DarbAccountNo,
		"remarks":          v.Remarks,
	}
	for field, val := range texts {
		snap[field] = formatString(val)
	}

	snap["emirate_permit_ids"] = fmt.Sprintf("%v", []int64(v.EmiratePermitIDs))

	return snap
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// CreateVehicleInput carries a new vehicle record. Dates are accepted as
// YYYY-MM-DD strings and parsed by the service.
type CreateVehicleInput struct {
	ChassisNumber string `json:"chassis_number" validate:"required"`
	PlateNumber   string `json:"plate_number" validate:"required"`

	VehicleCapacityID *int64 `json:"vehicle_capacity_id"`
	VehicleTypeID     *int64 `json:"vehicle_type_id"`
	ToteCapacityID    *int64 `json:"tote_capacity_id"`
	StatusID          *int64 `json:"status_id"`
	VehicleConceptID  *int64 `json:"vehicle_concept_id"`
	MakeID            *int64 `json:"make_id"`
	GPSID             *int64 `json:"gps_id"`
	BrandingStatusID  *int64 `json:"branding_status_id"`
	TailLiftBrandID   *int64 `json:"tail_lift_brand_id"`

	TruckRegDate                    *string `json:"truck_reg_date"`
	TruckRegistrationExpiryDate     *string `json:"truck_registration_expiry_date"`
	InsuranceRegistrationDate       *string `json:"insurance_registration_date"`
	InsuranceRegistrationExpiryDate *string `json:"insurance_registration_expiry_date"`
	MulkiaRegistrationDate          *string `json:"mulkia_registration_date"`
	MulkiaRegistrationExpiryDate    *string `json:"mulkia_registration_expiry_date"`
	PermitRegistrationDate          *string `json:"permit_registration_date"`
	PermitRegistrationExpiryDate    *string `json:"permit_registration_expiry_date"`

	EmiratePermitIDs []int64 `json:"emirate_permit_ids"`

	TLNo           *int64  `json:"tl_no"`
	TCNo           *int64  `json:"tc_no"`
	TCOwner        *string `json:"tc_owner"`
	SalikAccountNo *string `json:"salik_account_no"`
	SalikTagNo     *string `json:"salik_tag_no"`
	DarbAccountNo  *string `json:"darb_account_no"`
	LiftGate       *bool   `json:"lift_gate"`
	Remarks        *string `json:"remarks"`
}

// UpdateVehicleInput is a partial update; nil fields are left unchanged.
type UpdateVehicleInput struct {
	PlateNumber *string `json:"plate_number"`

	VehicleCapacityID *int64 `json:"vehicle_capacity_id"`
	VehicleTypeID     *int64 `json:"vehicle_type_id"`
	ToteCapacityID    *int64 `json:"tote_capacity_id"`
	StatusID          *int64 `json:"status_id"`
	VehicleConceptID  *int64 `json:"vehicle_concept_id"`
	MakeID            *int64 `json:"make_id"`
	GPSID             *int64 `json:"gps_id"`
	BrandingStatusID  *int64 `json:"branding_status_id"`
	TailLiftBrandID   *int64 `json:"tail_lift_brand_id"`

	TruckRegDate                    *string `json:"truck_reg_date"`
	TruckRegistrationExpiryDate     *string `json:"truck_registration_expiry_date"`
	InsuranceRegistrationDate       *string `json:"insurance_registration_date"`
	InsuranceRegistrationExpiryDate *string `json:"insurance_registration_expiry_date"`
	MulkiaRegistrationDate          *string `json:"mulkia_registration_date"`
	MulkiaRegistrationExpiryDate    *string `json:"mulkia_registration_expiry_date"`
	PermitRegistrationDate          *string `json:"permit_registration_date"`
	PermitRegistrationExpiryDate    *string `json:"permit_registration_expiry_date"`

	EmiratePermitIDs []int64 `json:"emirate_permit_ids"`

	TLNo           *int64  `json:"tl_no"`
	TCNo           *int64  `json:"tc_no"`
	TCOwner        *string `json:"tc_owner"`
	SalikAccountNo *string `json:"salik_account_no"`
	SalikTagNo     *string `json:"salik_tag_no"`
	DarbAccountNo  *string `json:"darb_account_no"`
	LiftGate       *bool   `json:"lift_gate"`
	Remarks        *string `json:"remarks"`
}
