package expiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
	"fleet-registry/internal/service/email"
	"fleet-registry/internal/service/preference"
)

// Service runs the document expiry sweep: for every policy row it finds
// vehicles whose expiry date falls inside the lead-time window and
// creates an unread notification per eligible notified user. At most one
// notification ever exists per (user, vehicle, category), so rerunning a
// sweep is safe.
type Service interface {
	RunSweep(ctx context.Context, today time.Time) (domain.SweepReport, error)
}

type service struct {
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	notifRepo    repository.NotificationRepository
	prefService  preference.Service
	emailService email.Service
	notifiedRole string
	sendDigest   bool
}

func NewService(
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	prefService preference.Service,
	emailService email.Service,
	notifiedRole string,
	sendDigest bool,
) Service {
	return &service{
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		notifRepo:    notifRepo,
		prefService:  prefService,
		emailService: emailService,
		notifiedRole: notifiedRole,
		sendDigest:   sendDigest,
	}
}

func (s *service) RunSweep(ctx context.Context, today time.Time) (domain.SweepReport, error) {
	today = truncateToDay(today)
	report := domain.SweepReport{Date: today}

	users, err := s.userRepo.ListByRole(ctx, s.notifiedRole)
	if err != nil {
		return report, err
	}
	if len(users) == 0 {
		logrus.WithField("role", s.notifiedRole).Info("expiry sweep: no users to notify")
		return report, nil
	}

	// Preferences are resolved once per user per run.
	prefs := make(map[uuid.UUID]domain.NotificationPreferences, len(users))
	digests := make(map[uuid.UUID][]string)

	for _, policy := range domain.Policies() {
		windowEnd := today.AddDate(0, 0, policy.LeadDays)

		vehicles, err := s.vehicleRepo.ListExpiringBetween(ctx, policy.ExpiryColumn, today, windowEnd)
		if err != nil {
			logrus.WithError(err).WithField("category", policy.Category).Error("expiry sweep: vehicle selection failed")
			report.Errors++
			continue
		}

		for _, vehicle := range vehicles {
			expiry := vehicle.ExpiryDate(policy.Category)
			if expiry == nil {
				continue
			}
			report.VehiclesMatched++

			for _, user := range users {
				pr, ok := prefs[user.ID]
				if !ok {
					var err error
					pr, err = s.prefService.Effective(ctx, user.ID)
					if err != nil {
						logrus.WithError(err).WithField("user", user.Username).Warn("expiry sweep: preference lookup failed, skipping pair")
						report.Errors++
						continue
					}
					prefs[user.ID] = pr
				}

				if !pr.Enabled(policy.Category) {
					report.Suppressed++
					continue
				}

				notif := &domain.Notification{
					ID:            uuid.New(),
					UserID:        user.ID,
					ChassisNumber: vehicle.ChassisNumber,
					Category:      policy.Category,
					Message:       domain.ExpiryMessage(policy.Category, vehicle.PlateNumber, *expiry),
					Status:        domain.NotificationUnread,
				}

				created, err := s.notifRepo.CreateIfAbsent(ctx, notif)
				if err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"user":     user.Username,
						"vehicle":  vehicle.ChassisNumber,
						"category": policy.Category,
					}).Warn("expiry sweep: notification create failed, skipping pair")
					report.Errors++
					continue
				}

				if created {
					report.Created++
					digests[user.ID] = append(digests[user.ID], notif.Message)
					logrus.WithFields(logrus.Fields{
						"user":     user.Username,
						"vehicle":  vehicle.PlateNumber,
						"category": policy.Category,
					}).Info("expiry sweep: notification created")
				} else {
					report.Deduplicated++
				}
			}
		}
	}

	if s.sendDigest {
		s.sendDigests(ctx, users, digests)
	}

	logrus.WithFields(logrus.Fields{
		"created":      report.Created,
		"deduplicated": report.Deduplicated,
		"suppressed":   report.Suppressed,
		"errors":       report.Errors,
	}).Info("expiry sweep finished")

	return report, nil
}

func (s *service) sendDigests(ctx context.Context, users []domain.User, digests map[uuid.UUID][]string) {
	for _, user := range users {
		messages := digests[user.ID]
		if len(messages) == 0 {
			continue
		}
		if err := s.emailService.SendExpiryDigest(ctx, user.Email, user.FullName, messages); err != nil {
			logrus.WithError(err).WithField("user", user.Username).Warn("expiry sweep: digest email failed")
		}
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
