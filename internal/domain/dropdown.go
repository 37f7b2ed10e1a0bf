package domain

// DropdownKind names one of the vehicle lookup lists. They all share the
// same (id, name) shape, so they live in a single kinded table.
type DropdownKind string

const (
	KindVehicleCapacity DropdownKind = "vehicle_capacity"
	KindVehicleType     DropdownKind = "vehicle_type"
	KindToteCapacity    DropdownKind = "tote_capacity"
	KindStatus          DropdownKind = "status"
	KindVehicleConcept  DropdownKind = "vehicle_concept"
	KindMake            DropdownKind = "make"
	KindEmirate         DropdownKind = "emirate"
	KindGPS             DropdownKind = "gps"
	KindBrandingStatus  DropdownKind = "branding_status"
	KindTailLiftBrand   DropdownKind = "tail_lift_brand"
)

func DropdownKinds() []DropdownKind {
	return []DropdownKind{
		KindVehicleCapacity,
		KindVehicleType,
		KindToteCapacity,
		KindStatus,
		KindVehicleConcept,
		KindMake,
		KindEmirate,
		KindGPS,
		KindBrandingStatus,
		KindTailLiftBrand,
	}
}

type DropdownOption struct {
	ID   int64        `json:"id" db:"id"`
	Kind DropdownKind `json:"-" db:"kind"`
	Name string       `json:"name" db:"name"`
}
