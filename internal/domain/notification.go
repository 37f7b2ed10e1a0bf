package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationUnread  NotificationStatus = "unread"
	NotificationRead    NotificationStatus = "read"
	NotificationSnoozed NotificationStatus = "snoozed"
)

func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationUnread, NotificationRead, NotificationSnoozed:
		return true
	default:
		return false
	}
}

// Notification is a document expiry alert for one user. The
// (user_id, chassis_number, category) triple is unique: once created, a
// notification for that document lifetime is never created again, whatever
// its status. Only Status and SnoozedUntil ever change after creation.
type Notification struct {
	ID            uuid.UUID          `json:"id" db:"id"`
	UserID        uuid.UUID          `json:"user_id" db:"user_id"`
	ChassisNumber string             `json:"chassis_number" db:"chassis_number"`
	Category      DocumentCategory   `json:"category" db:"category"`
	Message       string             `json:"message" db:"message"`
	Status        NotificationStatus `json:"status" db:"status"`
	SnoozedUntil  *time.Time         `json:"snoozed_until,omitempty" db:"snoozed_until"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
}

// FeedEntry is one row of the unread feed, joined with its vehicle so the
// client can deep-link back to the record.
type FeedEntry struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Message       string    `json:"message" db:"message"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	VehiclePlate  string    `json:"vehicle_plate" db:"vehicle_plate"`
	VehicleChassis string   `json:"vehicle_chassis" db:"vehicle_chassis"`
	EditLink      string    `json:"edit_link" db:"-"`
}

type NotificationFeed struct {
	Notifications []FeedEntry `json:"notifications"`
	UnreadCount   int64       `json:"unread_count"`
}

// SnoozeDays are the accepted snooze windows. Anything else falls back to
// the shortest window rather than being rejected.
var SnoozeDays = []int{7, 14, 30}

const DefaultSnoozeDays = 7

func NormalizeSnoozeDays(days int) int {
	for _, d := range SnoozeDays {
		if days == d {
			return d
		}
	}
	return DefaultSnoozeDays
}

type SnoozeResult struct {
	Status       NotificationStatus `json:"status"`
	Days         int                `json:"days"`
	SnoozedUntil time.Time          `json:"snoozed_until"`
}

// SweepReport summarizes one expiry sweep run.
type SweepReport struct {
	Date            time.Time `json:"date"`
	VehiclesMatched int       `json:"vehicles_matched"`
	Created         int       `json:"created"`
	Deduplicated    int       `json:"deduplicated"`
	Suppressed      int       `json:"suppressed"`
	Errors          int       `json:"errors"`
}
