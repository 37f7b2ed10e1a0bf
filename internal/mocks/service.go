package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fleet-registry/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	args := m.Called(ctx, toEmail, fullName, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendExpiryDigest(ctx context.Context, toEmail, fullName string, messages []string) error {
	args := m.Called(ctx, toEmail, fullName, messages)
	return args.Error(0)
}

type PreferenceService struct {
	mock.Mock
}

func (m *PreferenceService) Effective(ctx context.Context, userID uuid.UUID) (domain.NotificationPreferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.NotificationPreferences), args.Error(1)
}

func (m *PreferenceService) Set(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (domain.NotificationPreferences, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.NotificationPreferences), args.Error(1)
}
