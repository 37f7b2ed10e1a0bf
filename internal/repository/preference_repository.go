package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fleet-registry/internal/domain"
)

type PreferenceRepository interface {
	// Get returns the stored preference row, nil when the user has never
	// saved one.
	Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error)
	Upsert(ctx context.Context, prefs *domain.NotificationPreferences) error
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error) {
	var prefs domain.NotificationPreferences
	query := `SELECT * FROM notification_preferences WHERE user_id = $1`

	err := r.db.GetContext(ctx, &prefs, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, prefs *domain.NotificationPreferences) error {
	query := `
		INSERT INTO notification_preferences
			(user_id, insurance_expiry_notifications, mulkia_expiry_notifications,
			 permit_expiry_notifications, truck_registration_expiry_notifications)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			insurance_expiry_notifications = EXCLUDED.insurance_expiry_notifications,
			mulkia_expiry_notifications = EXCLUDED.mulkia_expiry_notifications,
			permit_expiry_notifications = EXCLUDED.permit_expiry_notifications,
			truck_registration_expiry_notifications = EXCLUDED.truck_registration_expiry_notifications,
			updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		prefs.UserID, prefs.InsuranceExpiry, prefs.MulkiaExpiry,
		prefs.PermitExpiry, prefs.TruckRegistrationExpiry,
	).Scan(&prefs.UpdatedAt)
}
