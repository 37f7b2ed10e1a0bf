package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fleet-registry/internal/domain"
)

var ErrDuplicateVehicle = errors.New("vehicle with this chassis or plate number already exists")

// expiryColumns is the whitelist for ListExpiringBetween; only columns
// named by the policy table are ever interpolated into SQL.
var expiryColumns = func() map[string]bool {
	cols := make(map[string]bool)
	for _, p := range domain.Policies() {
		cols[p.ExpiryColumn] = true
	}
	return cols
}()

var documentColumns = map[string]bool{
	"insurance_document_path": true,
	"mulkia_document_path":    true,
	"permit_document_path":    true,
	"truck_photo_path":        true,
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByChassis(ctx context.Context, chassisNumber string) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	List(ctx context.Context, search string, params domain.PaginationParams) ([]domain.Vehicle, int64, error)
	ListAll(ctx context.Context) ([]domain.Vehicle, error)
	// ListExpiringBetween selects vehicles whose given expiry column falls
	// inside [from, to], both ends inclusive. NULL expiry dates never
	// match.
	ListExpiringBetween(ctx context.Context, expiryColumn string, from, to time.Time) ([]domain.Vehicle, error)
	SetDocumentPath(ctx context.Context, chassisNumber, column, path string) error
}

type vehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `
	chassis_number, plate_number,
	vehicle_capacity_id, vehicle_type_id, tote_capacity_id, status_id,
	vehicle_concept_id, make_id, gps_id, branding_status_id, tail_lift_brand_id,
	truck_reg_date, truck_registration_expiry_date,
	insurance_registration_date, insurance_registration_expiry_date,
	mulkia_registration_date, mulkia_registration_expiry_date,
	permit_registration_date, permit_registration_expiry_date,
	emirate_permit_ids, tl_no, tc_no, tc_owner,
	salik_account_no, salik_tag_no, darb_account_no, lift_gate, remarks`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		vehicle.ChassisNumber, vehicle.PlateNumber,
		vehicle.VehicleCapacityID, vehicle.VehicleTypeID, vehicle.ToteCapacityID, vehicle.StatusID,
		vehicle.VehicleConceptID, vehicle.MakeID, vehicle.GPSID, vehicle.BrandingStatusID, vehicle.TailLiftBrandID,
		vehicle.TruckRegDate, vehicle.TruckRegistrationExpiryDate,
		vehicle.InsuranceRegistrationDate, vehicle.InsuranceRegistrationExpiryDate,
		vehicle.MulkiaRegistrationDate, vehicle.MulkiaRegistrationExpiryDate,
		vehicle.PermitRegistrationDate, vehicle.PermitRegistrationExpiryDate,
		vehicle.EmiratePermitIDs, vehicle.TLNo, vehicle.TCNo, vehicle.TCOwner,
		vehicle.SalikAccountNo, vehicle.SalikTagNo, vehicle.DarbAccountNo, vehicle.LiftGate, vehicle.Remarks,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateVehicle
	}
	return err
}

func (r *vehicleRepository) GetByChassis(ctx context.Context, chassisNumber string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	query := `SELECT * FROM vehicles WHERE chassis_number = $1`

	err := r.db.GetContext(ctx, &vehicle, query, chassisNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles SET
			plate_number = $2,
			vehicle_capacity_id = $3, vehicle_type_id = $4, tote_capacity_id = $5, status_id = $6,
			vehicle_concept_id = $7, make_id = $8, gps_id = $9, branding_status_id = $10, tail_lift_brand_id = $11,
			truck_reg_date = $12, truck_registration_expiry_date = $13,
			insurance_registration_date = $14, insurance_registration_expiry_date = $15,
			mulkia_registration_date = $16, mulkia_registration_expiry_date = $17,
			permit_registration_date = $18, permit_registration_expiry_date = $19,
			emirate_permit_ids = $20, tl_no = $21, tc_no = $22, tc_owner = $23,
			salik_account_no = $24, salik_tag_no = $25, darb_account_no = $26,
			lift_gate = $27, remarks = $28,
			updated_at = NOW()
		WHERE chassis_number = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		vehicle.ChassisNumber, vehicle.PlateNumber,
		vehicle.VehicleCapacityID, vehicle.VehicleTypeID, vehicle.ToteCapacityID, vehicle.StatusID,
		vehicle.VehicleConceptID, vehicle.MakeID, vehicle.GPSID, vehicle.BrandingStatusID, vehicle.TailLiftBrandID,
		vehicle.TruckRegDate, vehicle.TruckRegistrationExpiryDate,
		vehicle.InsuranceRegistrationDate, vehicle.InsuranceRegistrationExpiryDate,
		vehicle.MulkiaRegistrationDate, vehicle.MulkiaRegistrationExpiryDate,
		vehicle.PermitRegistrationDate, vehicle.PermitRegistrationExpiryDate,
		vehicle.EmiratePermitIDs, vehicle.TLNo, vehicle.TCNo, vehicle.TCOwner,
		vehicle.SalikAccountNo, vehicle.SalikTagNo, vehicle.DarbAccountNo,
		vehicle.LiftGate, vehicle.Remarks,
	).Scan(&vehicle.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateVehicle
	}
	return err
}

func (r *vehicleRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	params.Validate()

	var total int64
	var vehicles []domain.Vehicle

	if search != "" {
		pattern := "%" + search + "%"
		countQuery := `SELECT COUNT(*) FROM vehicles WHERE chassis_number ILIKE $1 OR plate_number ILIKE $1`
		if err := r.db.GetContext(ctx, &total, countQuery, pattern); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM vehicles
			WHERE chassis_number ILIKE $1 OR plate_number ILIKE $1
			ORDER BY chassis_number
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &vehicles, query, pattern, params.PageSize, params.Offset())
		return vehicles, total, err
	}

	countQuery := `SELECT COUNT(*) FROM vehicles`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM vehicles
		ORDER BY chassis_number
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &vehicles, query, params.PageSize, params.Offset())
	return vehicles, total, err
}

func (r *vehicleRepository) ListAll(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	query := `SELECT * FROM vehicles ORDER BY chassis_number`
	err := r.db.SelectContext(ctx, &vehicles, query)
	return vehicles, err
}

func (r *vehicleRepository) ListExpiringBetween(ctx context.Context, expiryColumn string, from, to time.Time) ([]domain.Vehicle, error) {
	if !expiryColumns[expiryColumn] {
		return nil, fmt.Errorf("unknown expiry column: %s", expiryColumn)
	}

	var vehicles []domain.Vehicle
	query := fmt.Sprintf(`
		SELECT * FROM vehicles
		WHERE %s >= $1 AND %s <= $2
		ORDER BY %s, chassis_number`, expiryColumn, expiryColumn, expiryColumn)

	err := r.db.SelectContext(ctx, &vehicles, query, from, to)
	return vehicles, err
}

func (r *vehicleRepository) SetDocumentPath(ctx context.Context, chassisNumber, column, path string) error {
	if !documentColumns[column] {
		return fmt.Errorf("unknown document column: %s", column)
	}

	query := fmt.Sprintf(`UPDATE vehicles SET %s = $2, updated_at = NOW() WHERE chassis_number = $1`, column)
	res, err := r.db.ExecContext(ctx, query, chassisNumber, path)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
