package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fleet-registry/internal/domain"
)

type ChangeLogRepository interface {
	Create(ctx context.Context, entry *domain.ChangeLog) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.ChangeLog, int64, error)
	ListByChassis(ctx context.Context, chassisNumber string, params domain.PaginationParams) ([]domain.ChangeLog, int64, error)
}

type changeLogRepository struct {
	db *sqlx.DB
}

func NewChangeLogRepository(db *sqlx.DB) ChangeLogRepository {
	return &changeLogRepository{db: db}
}

func (r *changeLogRepository) Create(ctx context.Context, entry *domain.ChangeLog) error {
	query := `
		INSERT INTO change_logs (id, chassis_number, plate_number, field_name, old_value, new_value, username)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.ChassisNumber, entry.PlateNumber, entry.FieldName,
		entry.OldValue, entry.NewValue, entry.Username,
	).Scan(&entry.CreatedAt)
}

func (r *changeLogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.ChangeLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM change_logs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM change_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var logs []domain.ChangeLog
	err := r.db.SelectContext(ctx, &logs, query, params.PageSize, params.Offset())
	return logs, total, err
}

func (r *changeLogRepository) ListByChassis(ctx context.Context, chassisNumber string, params domain.PaginationParams) ([]domain.ChangeLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM change_logs WHERE chassis_number = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, chassisNumber); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM change_logs
		WHERE chassis_number = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var logs []domain.ChangeLog
	err := r.db.SelectContext(ctx, &logs, query, chassisNumber, params.PageSize, params.Offset())
	return logs, total, err
}
