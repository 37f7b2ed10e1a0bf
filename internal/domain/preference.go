package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPreferences holds the per-user toggles gating each document
// category. A user without a stored row is treated as having every
// category enabled; rows are only written through an explicit update,
// never as a side effect of a read.
type NotificationPreferences struct {
	UserID                       uuid.UUID `json:"-" db:"user_id"`
	InsuranceExpiry              bool      `json:"insurance_expiry_notifications" db:"insurance_expiry_notifications"`
	MulkiaExpiry                 bool      `json:"mulkia_expiry_notifications" db:"mulkia_expiry_notifications"`
	PermitExpiry                 bool      `json:"permit_expiry_notifications" db:"permit_expiry_notifications"`
	TruckRegistrationExpiry      bool      `json:"truck_registration_expiry_notifications" db:"truck_registration_expiry_notifications"`
	UpdatedAt                    time.Time `json:"-" db:"updated_at"`
}

func DefaultPreferences(userID uuid.UUID) NotificationPreferences {
	return NotificationPreferences{
		UserID:                  userID,
		InsuranceExpiry:         true,
		MulkiaExpiry:            true,
		PermitExpiry:            true,
		TruckRegistrationExpiry: true,
	}
}

func (p NotificationPreferences) Enabled(category DocumentCategory) bool {
	switch category {
	case CategoryInsurance:
		return p.InsuranceExpiry
	case CategoryMulkia:
		return p.MulkiaExpiry
	case CategoryPermit:
		return p.PermitExpiry
	case CategoryTruckRegistration:
		return p.TruckRegistrationExpiry
	default:
		return false
	}
}

// UpdatePreferencesInput carries a partial preference update. Keys left
// out of the payload resolve to the same default as the read path
// (enabled).
type UpdatePreferencesInput struct {
	InsuranceExpiry         *bool `json:"insurance_expiry_notifications"`
	MulkiaExpiry            *bool `json:"mulkia_expiry_notifications"`
	PermitExpiry            *bool `json:"permit_expiry_notifications"`
	TruckRegistrationExpiry *bool `json:"truck_registration_expiry_notifications"`
}

// Resolve materializes the update against the defaults.
func (in UpdatePreferencesInput) Resolve(userID uuid.UUID) NotificationPreferences {
	prefs := DefaultPreferences(userID)
	if in.InsuranceExpiry != nil {
		prefs.InsuranceExpiry = *in.InsuranceExpiry
	}
	if in.MulkiaExpiry != nil {
		prefs.MulkiaExpiry = *in.MulkiaExpiry
	}
	if in.PermitExpiry != nil {
		prefs.PermitExpiry = *in.PermitExpiry
	}
	if in.TruckRegistrationExpiry != nil {
		prefs.TruckRegistrationExpiry = *in.TruckRegistrationExpiry
	}
	return prefs
}
