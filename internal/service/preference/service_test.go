package preference

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/mocks"
)

func TestEffectiveNoStoredRow(t *testing.T) {
	repo := new(mocks.PreferenceRepository)
	svc := NewService(repo)

	userID := uuid.New()
	repo.On("Get", mock.Anything, userID).Return(nil, nil)

	prefs, err := svc.Effective(context.Background(), userID)

	require.NoError(t, err)
	for _, p := range domain.Policies() {
		assert.True(t, prefs.Enabled(p.Category), "category %s should default to enabled", p.Category)
	}
	// Reading never writes a row.
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestEffectiveStoredRow(t *testing.T) {
	repo := new(mocks.PreferenceRepository)
	svc := NewService(repo)

	userID := uuid.New()
	stored := domain.DefaultPreferences(userID)
	stored.MulkiaExpiry = false
	repo.On("Get", mock.Anything, userID).Return(&stored, nil)

	prefs, err := svc.Effective(context.Background(), userID)

	require.NoError(t, err)
	assert.False(t, prefs.Enabled(domain.CategoryMulkia))
	assert.True(t, prefs.Enabled(domain.CategoryInsurance))
}

func TestEffectiveRepoError(t *testing.T) {
	repo := new(mocks.PreferenceRepository)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := svc.Effective(context.Background(), uuid.New())

	assert.Error(t, err)
}

func TestSetMissingKeysDefaultToEnabled(t *testing.T) {
	repo := new(mocks.PreferenceRepository)
	svc := NewService(repo)

	userID := uuid.New()
	off := false
	input := domain.UpdatePreferencesInput{PermitExpiry: &off}

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.NotificationPreferences) bool {
		return p.UserID == userID &&
			!p.PermitExpiry &&
			p.InsuranceExpiry && p.MulkiaExpiry && p.TruckRegistrationExpiry
	})).Return(nil).Once()

	prefs, err := svc.Set(context.Background(), userID, input)

	require.NoError(t, err)
	assert.False(t, prefs.Enabled(domain.CategoryPermit))
	assert.True(t, prefs.Enabled(domain.CategoryTruckRegistration))
	repo.AssertExpectations(t)
}

func TestSetOverwritesPreviousRow(t *testing.T) {
	repo := new(mocks.PreferenceRepository)
	svc := NewService(repo)

	userID := uuid.New()
	// A key omitted from a later update resets to enabled, matching how
	// the read path treats an absent row.
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.NotificationPreferences) bool {
		return p.InsuranceExpiry && p.MulkiaExpiry && p.PermitExpiry && p.TruckRegistrationExpiry
	})).Return(nil).Once()

	prefs, err := svc.Set(context.Background(), userID, domain.UpdatePreferencesInput{})

	require.NoError(t, err)
	assert.True(t, prefs.Enabled(domain.CategoryInsurance))
	repo.AssertExpectations(t)
}
