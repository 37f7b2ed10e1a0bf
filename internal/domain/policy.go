package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocumentCategory identifies one regulatory document tracked per vehicle.
type DocumentCategory string

const (
	CategoryTruckRegistration DocumentCategory = "truck_registration"
	CategoryInsurance         DocumentCategory = "insurance"
	CategoryMulkia            DocumentCategory = "mulkia"
	CategoryPermit            DocumentCategory = "permit"
)

func (c DocumentCategory) IsValid() bool {
	switch c {
	case CategoryTruckRegistration, CategoryInsurance, CategoryMulkia, CategoryPermit:
		return true
	default:
		return false
	}
}

// Label renders the category for notification messages.
func (c DocumentCategory) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// DocumentPolicy maps a document category to its expiry lead time, the
// vehicle column holding the expiry date and the preference toggle that
// gates it per user.
type DocumentPolicy struct {
	Category     DocumentCategory
	LeadDays     int
	ExpiryColumn string
	Toggle       string
}

var policies = []DocumentPolicy{
	{Category: CategoryTruckRegistration, LeadDays: 90, ExpiryColumn: "truck_registration_expiry_date", Toggle: "truck_registration_expiry_notifications"},
	{Category: CategoryInsurance, LeadDays: 30, ExpiryColumn: "insurance_registration_expiry_date", Toggle: "insurance_expiry_notifications"},
	{Category: CategoryMulkia, LeadDays: 45, ExpiryColumn: "mulkia_registration_expiry_date", Toggle: "mulkia_expiry_notifications"},
	{Category: CategoryPermit, LeadDays: 60, ExpiryColumn: "permit_registration_expiry_date", Toggle: "permit_expiry_notifications"},
}

// Policies returns the static expiry policy table.
func Policies() []DocumentPolicy {
	out := make([]DocumentPolicy, len(policies))
	copy(out, policies)
	return out
}

// PolicyFor looks up the policy row for a category.
func PolicyFor(category DocumentCategory) (DocumentPolicy, bool) {
	for _, p := range policies {
		if p.Category == category {
			return p, true
		}
	}
	return DocumentPolicy{}, false
}

// ExpiryMessage renders the notification message. It is frozen at
// creation time and never re-rendered when the vehicle changes.
func ExpiryMessage(category DocumentCategory, plateNumber string, expiry time.Time) string {
	return fmt.Sprintf("The %s for vehicle %s is expiring on %s.", category.Label(), plateNumber, expiry.Format("2006-01-02"))
}
