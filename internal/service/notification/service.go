package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
)

var ErrNotFound = errors.New("notification not found")

const unreadCountKey = "notifications:unread_count"

// Service exposes the unread feed and the notification lifecycle. Every
// lifecycle operation is scoped to the acting user; a notification that
// exists but belongs to someone else behaves exactly like one that does
// not exist.
type Service interface {
	UnreadFeed(ctx context.Context) (domain.NotificationFeed, error)
	ListMine(ctx context.Context, userID uuid.UUID, status *domain.NotificationStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkUnread(ctx context.Context, id, userID uuid.UUID) error
	Snooze(ctx context.Context, id, userID uuid.UUID, days int) (domain.SnoozeResult, error)
}

type service struct {
	notifRepo    repository.NotificationRepository
	redis        *redis.Client
	notifiedRole string
	now          func() time.Time
}

func NewService(notifRepo repository.NotificationRepository, redisClient *redis.Client, notifiedRole string) Service {
	return &service{
		notifRepo:    notifRepo,
		redis:        redisClient,
		notifiedRole: notifiedRole,
		now:          time.Now,
	}
}

func (s *service) UnreadFeed(ctx context.Context) (domain.NotificationFeed, error) {
	entries, err := s.notifRepo.ListUnreadByRole(ctx, s.notifiedRole)
	if err != nil {
		return domain.NotificationFeed{}, err
	}

	for i := range entries {
		entries[i].EditLink = fmt.Sprintf("/vehicles/%s", entries[i].VehicleChassis)
	}

	count, err := s.unreadCount(ctx)
	if err != nil {
		return domain.NotificationFeed{}, err
	}

	return domain.NotificationFeed{
		Notifications: entries,
		UnreadCount:   count,
	}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, status *domain.NotificationStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.setStatus(ctx, id, userID, domain.NotificationRead, nil)
}

func (s *service) MarkUnread(ctx context.Context, id, userID uuid.UUID) error {
	return s.setStatus(ctx, id, userID, domain.NotificationUnread, nil)
}

// Snooze hides the notification from the unread feed until the user acts
// on it again. Out-of-range durations silently fall back to the default
// window; re-snoozing replaces the previous window. The status never
// flips back by itself once snoozed_until passes.
func (s *service) Snooze(ctx context.Context, id, userID uuid.UUID, days int) (domain.SnoozeResult, error) {
	days = domain.NormalizeSnoozeDays(days)
	until := s.now().Add(time.Duration(days) * 24 * time.Hour)

	if err := s.setStatus(ctx, id, userID, domain.NotificationSnoozed, &until); err != nil {
		return domain.SnoozeResult{}, err
	}

	return domain.SnoozeResult{
		Status:       domain.NotificationSnoozed,
		Days:         days,
		SnoozedUntil: until,
	}, nil
}

func (s *service) setStatus(ctx context.Context, id, userID uuid.UUID, status domain.NotificationStatus, snoozedUntil *time.Time) error {
	updated, err := s.notifRepo.SetStatus(ctx, id, userID, status, snoozedUntil)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	s.invalidateUnreadCount(ctx)
	return nil
}

func (s *service) unreadCount(ctx context.Context) (int64, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, unreadCountKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnreadByRole(ctx, s.notifiedRole)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, unreadCountKey, count, time.Minute).Err()
	}
	return count, nil
}

func (s *service) invalidateUnreadCount(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadCountKey).Err()
	}
}
