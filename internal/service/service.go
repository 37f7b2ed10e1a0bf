package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"fleet-registry/internal/config"
	"fleet-registry/internal/repository"
	"fleet-registry/internal/service/auth"
	"fleet-registry/internal/service/changelog"
	"fleet-registry/internal/service/document"
	"fleet-registry/internal/service/dropdown"
	"fleet-registry/internal/service/email"
	"fleet-registry/internal/service/expiry"
	"fleet-registry/internal/service/export"
	"fleet-registry/internal/service/notification"
	"fleet-registry/internal/service/preference"
	"fleet-registry/internal/service/vehicle"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Vehicle      vehicle.Service
	Dropdown     dropdown.Service
	ChangeLog    changelog.Service
	Document     document.Service
	Export       export.Service
	Preference   preference.Service
	Notification notification.Service
	Expiry       expiry.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	vehicleService := vehicle.NewService(repos.Vehicle, repos.ChangeLog)
	dropdownService := dropdown.NewService(repos.Dropdown, redisClient)
	changeLogService := changelog.NewService(repos.ChangeLog)
	documentService := document.NewService(repos.Vehicle, minioClient, cfg)
	exportService := export.NewService(repos.Vehicle)
	preferenceService := preference.NewService(repos.Preference)
	notificationService := notification.NewService(repos.Notification, redisClient, cfg.NotifiedRole)
	expiryService := expiry.NewService(repos.Vehicle, repos.User, repos.Notification, preferenceService, emailService, cfg.NotifiedRole, cfg.SweepDigest)

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Vehicle:      vehicleService,
		Dropdown:     dropdownService,
		ChangeLog:    changeLogService,
		Document:     documentService,
		Export:       exportService,
		Preference:   preferenceService,
		Notification: notificationService,
		Expiry:       expiryService,
	}
}
