package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/mocks"
)

func newTestService(repo *mocks.NotificationRepository, now time.Time) *service {
	return &service{
		notifRepo:    repo,
		notifiedRole: domain.RoleOfficeUser,
		now:          func() time.Time { return now },
	}
}

func TestUnreadFeed(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	entries := []domain.FeedEntry{
		{ID: uuid.New(), Message: "The permit for vehicle A-1 is expiring on 2026-09-01.", VehicleChassis: "CH1", VehiclePlate: "A-1"},
		{ID: uuid.New(), Message: "The mulkia for vehicle A-2 is expiring on 2026-09-03.", VehicleChassis: "CH2", VehiclePlate: "A-2"},
	}
	repo.On("ListUnreadByRole", mock.Anything, domain.RoleOfficeUser).Return(entries, nil)
	repo.On("CountUnreadByRole", mock.Anything, domain.RoleOfficeUser).Return(int64(2), nil)

	feed, err := svc.UnreadFeed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), feed.UnreadCount)
	require.Len(t, feed.Notifications, 2)
	assert.Equal(t, "/vehicles/CH1", feed.Notifications[0].EditLink)
	assert.Equal(t, "/vehicles/CH2", feed.Notifications[1].EditLink)
}

func TestMarkReadClearsSnoozeWindow(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	id, userID := uuid.New(), uuid.New()
	repo.On("SetStatus", mock.Anything, id, userID, domain.NotificationRead, (*time.Time)(nil)).
		Return(true, nil).Once()

	err := svc.MarkRead(context.Background(), id, userID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkUnreadClearsSnoozeWindow(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	id, userID := uuid.New(), uuid.New()
	repo.On("SetStatus", mock.Anything, id, userID, domain.NotificationUnread, (*time.Time)(nil)).
		Return(true, nil).Once()

	err := svc.MarkUnread(context.Background(), id, userID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkReadNotOwned(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	// Someone else's notification updates zero rows, which surfaces as
	// not found rather than forbidden.
	repo.On("SetStatus", mock.Anything, mock.Anything, mock.Anything, domain.NotificationRead, (*time.Time)(nil)).
		Return(false, nil)

	err := svc.MarkRead(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnooze(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		days     int
		expected int
	}{
		{"seven days", 7, 7},
		{"fourteen days", 14, 14},
		{"thirty days", 30, 30},
		{"zero falls back", 0, 7},
		{"unsupported falls back", 99, 7},
		{"negative falls back", -1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.NotificationRepository)
			svc := newTestService(repo, now)

			id, userID := uuid.New(), uuid.New()
			wantUntil := now.Add(time.Duration(tt.expected) * 24 * time.Hour)

			repo.On("SetStatus", mock.Anything, id, userID, domain.NotificationSnoozed, &wantUntil).
				Return(true, nil).Once()

			result, err := svc.Snooze(context.Background(), id, userID, tt.days)

			require.NoError(t, err)
			assert.Equal(t, domain.NotificationSnoozed, result.Status)
			assert.Equal(t, tt.expected, result.Days)
			assert.Equal(t, wantUntil, result.SnoozedUntil)
			repo.AssertExpectations(t)
		})
	}
}

func TestSnoozeNotFound(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	repo.On("SetStatus", mock.Anything, mock.Anything, mock.Anything, domain.NotificationSnoozed, mock.Anything).
		Return(false, nil)

	_, err := svc.Snooze(context.Background(), uuid.New(), uuid.New(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMine(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	userID := uuid.New()
	status := domain.NotificationRead
	params := domain.PaginationParams{Page: 1, PageSize: 10}
	items := []domain.Notification{{ID: uuid.New(), UserID: userID, Status: status}}

	repo.On("ListByUser", mock.Anything, userID, &status, params).Return(items, int64(1), nil)

	result, err := svc.ListMine(context.Background(), userID, &status, params)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalItems)
	require.Len(t, result.Data, 1)
}

func TestListMinePassesThroughErrors(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := newTestService(repo, time.Now())

	params := domain.PaginationParams{Page: 1, PageSize: 10}
	repo.On("ListByUser", mock.Anything, mock.Anything, (*domain.NotificationStatus)(nil), params).
		Return(nil, int64(0), errors.New("boom"))

	_, err := svc.ListMine(context.Background(), uuid.New(), nil, params)

	assert.Error(t, err)
}
