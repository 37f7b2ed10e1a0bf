package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fleet-registry/internal/domain"
)

type NotificationRepository interface {
	// CreateIfAbsent inserts the notification unless one already exists
	// for the same (user, vehicle, category) triple, whatever its status.
	// It reports whether a row was inserted. The dedup is enforced by a
	// unique index, so concurrent sweeps cannot double-create.
	CreateIfAbsent(ctx context.Context, notif *domain.Notification) (bool, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *domain.NotificationStatus, params domain.PaginationParams) ([]domain.Notification, int64, error)
	// SetStatus applies one lifecycle transition scoped to the owning
	// user. It reports whether a row was updated; false means the
	// notification does not exist or is not theirs.
	SetStatus(ctx context.Context, id, userID uuid.UUID, status domain.NotificationStatus, snoozedUntil *time.Time) (bool, error)
	ListUnreadByRole(ctx context.Context, role string) ([]domain.FeedEntry, error)
	CountUnreadByRole(ctx context.Context, role string) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateIfAbsent(ctx context.Context, notif *domain.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (id, user_id, chassis_number, category, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, chassis_number, category) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		notif.ID, notif.UserID, notif.ChassisNumber, notif.Category, notif.Message, notif.Status,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *notificationRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &notif, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.NotificationStatus, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	var notifications []domain.Notification

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND status = $2`
		if err := r.db.GetContext(ctx, &total, countQuery, userID, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM notifications
			WHERE user_id = $1 AND status = $2
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4`
		err := r.db.SelectContext(ctx, &notifications, query, userID, *status, params.PageSize, params.Offset())
		return notifications, total, err
	}

	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) SetStatus(ctx context.Context, id, userID uuid.UUID, status domain.NotificationStatus, snoozedUntil *time.Time) (bool, error) {
	query := `
		UPDATE notifications
		SET status = $3, snoozed_until = $4
		WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID, status, snoozedUntil)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *notificationRepository) ListUnreadByRole(ctx context.Context, role string) ([]domain.FeedEntry, error) {
	query := `
		SELECT n.id, n.message, n.created_at,
		       v.plate_number AS vehicle_plate,
		       v.chassis_number AS vehicle_chassis
		FROM notifications n
		JOIN users u ON n.user_id = u.id
		JOIN vehicles v ON n.chassis_number = v.chassis_number
		WHERE n.status = 'unread' AND u.role = $1 AND u.deleted_at IS NULL
		ORDER BY n.created_at DESC`

	var entries []domain.FeedEntry
	err := r.db.SelectContext(ctx, &entries, query, role)
	return entries, err
}

func (r *notificationRepository) CountUnreadByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM notifications n
		JOIN users u ON n.user_id = u.id
		WHERE n.status = 'unread' AND u.role = $1 AND u.deleted_at IS NULL`

	err := r.db.GetContext(ctx, &count, query, role)
	return count, err
}
