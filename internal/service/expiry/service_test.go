package expiry

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

type sweepFixture struct {
	vehicleRepo *mocks.VehicleRepository
	userRepo    *mocks.UserRepository
	notifRepo   *mocks.NotificationRepository
	prefService *mocks.PreferenceService
	email       *mocks.EmailService
	service     Service
}

func newSweepFixture(sendDigest bool) *sweepFixture {
	f := &sweepFixture{
		vehicleRepo: new(mocks.VehicleRepository),
		userRepo:    new(mocks.UserRepository),
		notifRepo:   new(mocks.NotificationRepository),
		prefService: new(mocks.PreferenceService),
		email:       new(mocks.EmailService),
	}
	f.service = NewService(f.vehicleRepo, f.userRepo, f.notifRepo, f.prefService, f.email, domain.RoleOfficeUser, sendDigest)
	return f
}

// expectNoVehicles stubs every policy column except the listed ones to
// return no matches.
func (f *sweepFixture) expectNoVehicles(except ...string) {
	skip := make(map[string]bool, len(except))
	for _, col := range except {
		skip[col] = true
	}
	for _, p := range domain.Policies() {
		if skip[p.ExpiryColumn] {
			continue
		}
		f.vehicleRepo.On("ListExpiringBetween", mock.Anything, p.ExpiryColumn, mock.Anything, mock.Anything).
			Return([]domain.Vehicle{}, nil)
	}
}

func officeUser() domain.User {
	return domain.User{
		ID:       uuid.New(),
		Username: "clerk",
		Email:    "clerk@example.com",
		FullName: "Office Clerk",
		Role:     domain.RoleOfficeUser,
		IsActive: true,
	}
}

func TestRunSweepNoNotifiedUsers(t *testing.T) {
	f := newSweepFixture(false)
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{}, nil)

	report, err := f.service.RunSweep(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, report.Created)
	f.vehicleRepo.AssertNotCalled(t, "ListExpiringBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunSweepUsesPolicyWindows(t *testing.T) {
	f := newSweepFixture(false)
	user := officeUser()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{user}, nil)

	// The sweep must truncate the run time to midnight and query each
	// category with a closed [today, today+lead] window.
	now := time.Date(2026, 8, 29, 13, 45, 12, 0, time.UTC)
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	for _, p := range domain.Policies() {
		f.vehicleRepo.On("ListExpiringBetween", mock.Anything, p.ExpiryColumn, today, today.AddDate(0, 0, p.LeadDays)).
			Return([]domain.Vehicle{}, nil).Once()
	}

	_, err := f.service.RunSweep(context.Background(), now)

	require.NoError(t, err)
	f.vehicleRepo.AssertExpectations(t)
}

func TestRunSweepCreatesNotification(t *testing.T) {
	f := newSweepFixture(false)
	user := officeUser()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{user}, nil)

	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	vehicle := domain.Vehicle{
		ChassisNumber:                   "CH100",
		PlateNumber:                     "A-100",
		InsuranceRegistrationExpiryDate: &expiry,
	}

	f.expectNoVehicles("insurance_registration_expiry_date")
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "insurance_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{vehicle}, nil)

	f.prefService.On("Effective", mock.Anything, user.ID).Return(domain.DefaultPreferences(user.ID), nil)

	f.notifRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == user.ID &&
			n.ChassisNumber == "CH100" &&
			n.Category == domain.CategoryInsurance &&
			n.Status == domain.NotificationUnread &&
			n.Message == "The insurance for vehicle A-100 is expiring on 2026-09-10."
	})).Return(true, nil).Once()

	report, err := f.service.RunSweep(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 1, report.VehiclesMatched)
	assert.Equal(t, 1, report.Created)
	assert.Zero(t, report.Deduplicated)
	assert.Zero(t, report.Suppressed)
	f.notifRepo.AssertExpectations(t)
}

func TestRunSweepIsIdempotent(t *testing.T) {
	f := newSweepFixture(false)
	user := officeUser()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{user}, nil)

	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	vehicle := domain.Vehicle{
		ChassisNumber:                "CH200",
		PlateNumber:                  "A-200",
		PermitRegistrationExpiryDate: &expiry,
	}

	f.expectNoVehicles("permit_registration_expiry_date")
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "permit_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{vehicle}, nil)

	f.prefService.On("Effective", mock.Anything, user.ID).Return(domain.DefaultPreferences(user.ID), nil)

	// A notification for this (user, vehicle, category) already exists,
	// whatever its status. The sweep counts it and moves on.
	f.notifRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Once()

	report, err := f.service.RunSweep(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Equal(t, 1, report.Deduplicated)
}

func TestRunSweepHonorsPreferenceToggle(t *testing.T) {
	f := newSweepFixture(false)
	user := officeUser()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{user}, nil)

	expiry := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	vehicle := domain.Vehicle{
		ChassisNumber:                   "CH300",
		PlateNumber:                     "A-300",
		InsuranceRegistrationExpiryDate: &expiry,
	}

	f.expectNoVehicles("insurance_registration_expiry_date")
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "insurance_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{vehicle}, nil)

	prefs := domain.DefaultPreferences(user.ID)
	prefs.InsuranceExpiry = false
	f.prefService.On("Effective", mock.Anything, user.ID).Return(prefs, nil)

	report, err := f.service.RunSweep(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Equal(t, 1, report.Suppressed)
	f.notifRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestRunSweepFansOutPerUser(t *testing.T) {
	f := newSweepFixture(false)
	alice := officeUser()
	bob := officeUser()
	bob.Username = "bob"
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{alice, bob}, nil)

	expiry := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	vehicle := domain.Vehicle{
		ChassisNumber:               "CH400",
		PlateNumber:                 "A-400",
		TruckRegistrationExpiryDate: &expiry,
	}

	f.expectNoVehicles("truck_registration_expiry_date")
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "truck_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{vehicle}, nil)

	f.prefService.On("Effective", mock.Anything, alice.ID).Return(domain.DefaultPreferences(alice.ID), nil).Once()
	f.prefService.On("Effective", mock.Anything, bob.ID).Return(domain.DefaultPreferences(bob.ID), nil).Once()

	f.notifRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Twice()

	report, err := f.service.RunSweep(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	f.prefService.AssertExpectations(t)
	f.notifRepo.AssertExpectations(t)
}

func TestRunSweepContinuesPastCategoryErrors(t *testing.T) {
	f := newSweepFixture(false)
	user := officeUser()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{user}, nil)

	expiry := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	vehicle := domain.Vehicle{
		ChassisNumber:                "CH500",
		PlateNumber:                  "A-500",
		MulkiaRegistrationExpiryDate: &expiry,
	}

	// The truck registration query fails; the remaining categories still
	// run and the mulkia notification is still created.
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "truck_registration_expiry_date", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "insurance_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{}, nil)
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "mulkia_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{vehicle}, nil)
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "permit_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{}, nil)

	f.prefService.On("Effective", mock.Anything, user.ID).Return(domain.DefaultPreferences(user.ID), nil)
	f.notifRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Once()

	report, err := f.service.RunSweep(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 1, report.Created)
}

func TestRunSweepSendsDigest(t *testing.T) {
	f := newSweepFixture(true)
	user := officeUser()
	f.userRepo.On("ListByRole", mock.Anything, domain.RoleOfficeUser).Return([]domain.User{user}, nil)

	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	vehicle := domain.Vehicle{
		ChassisNumber:                   "CH600",
		PlateNumber:                     "A-600",
		InsuranceRegistrationExpiryDate: &expiry,
	}

	f.expectNoVehicles("insurance_registration_expiry_date")
	f.vehicleRepo.On("ListExpiringBetween", mock.Anything, "insurance_registration_expiry_date", mock.Anything, mock.Anything).
		Return([]domain.Vehicle{vehicle}, nil)

	f.prefService.On("Effective", mock.Anything, user.ID).Return(domain.DefaultPreferences(user.ID), nil)
	f.notifRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	f.email.On("SendExpiryDigest", mock.Anything, user.Email, user.FullName,
		[]string{"The insurance for vehicle A-600 is expiring on 2026-09-10."}).
		Return(nil).Once()

	_, err := f.service.RunSweep(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	f.email.AssertExpectations(t)
}
