package preference

import (
	"context"

	"github.com/google/uuid"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/repository"
)

// Service resolves and stores per-user notification toggles. The read
// path is pure: a user with no stored row resolves to all categories
// enabled, and nothing is written until they explicitly save.
type Service interface {
	Effective(ctx context.Context, userID uuid.UUID) (domain.NotificationPreferences, error)
	Set(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (domain.NotificationPreferences, error)
}

type service struct {
	prefRepo repository.PreferenceRepository
}

func NewService(prefRepo repository.PreferenceRepository) Service {
	return &service{prefRepo: prefRepo}
}

func (s *service) Effective(ctx context.Context, userID uuid.UUID) (domain.NotificationPreferences, error) {
	stored, err := s.prefRepo.Get(ctx, userID)
	if err != nil {
		return domain.NotificationPreferences{}, err
	}
	if stored == nil {
		return domain.DefaultPreferences(userID), nil
	}
	return *stored, nil
}

func (s *service) Set(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (domain.NotificationPreferences, error) {
	prefs := input.Resolve(userID)
	if err := s.prefRepo.Upsert(ctx, &prefs); err != nil {
		return domain.NotificationPreferences{}, err
	}
	return prefs, nil
}
