package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Vehicle      VehicleRepository
	Dropdown     DropdownRepository
	ChangeLog    ChangeLogRepository
	Notification NotificationRepository
	Preference   PreferenceRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Vehicle:      NewVehicleRepository(db),
		Dropdown:     NewDropdownRepository(db),
		ChangeLog:    NewChangeLogRepository(db),
		Notification: NewNotificationRepository(db),
		Preference:   NewPreferenceRepository(db),
	}
}
