package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	bookingRepo "github.com/aibekm/TezUsta-BookingEngine/internal/infra/storage/booking"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/bookings/models"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/ptr"
)

type fakeRepo struct {
	booking       *domain.Booking
	bookings      []*domain.Booking
	getErr        error
	listErr       error
	updateErr     error
	updatedStatus *domain.BookingStatus
	lastFilter    domain.ClientBookingsFilter
}

func (f *fakeRepo) GetByID(_ context.Context, _ string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) GetByClientWithFilter(_ context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bookings, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ string, status domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedStatus = &status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         "b-1",
		ClientID:   100,
		ProviderID: 200,
		Status:     domain.StatusConfirmed,
	}
}

func TestService_GetByID_ParticipantsOnly(t *testing.T) {
	repo := &fakeRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	// Клиент и мастер видят бронирование
	resp, err := svc.GetByID(context.Background(), "b-1", 100)
	require.NoError(t, err)
	assert.Equal(t, "b-1", resp.ID)

	_, err = svc.GetByID(context.Background(), "b-1", 200)
	require.NoError(t, err)

	// Посторонний пользователь получает отказ в доступе
	_, err = svc.GetByID(context.Background(), "b-1", 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "missing", 100)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetClientBookings_StatusFilter(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{confirmedBooking()}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: 100,
		Status:   ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(100), repo.lastFilter.ClientID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
}

func TestService_GetClientBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: 100,
		Status:   ptr.Ptr("paused"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetClientBookings_EmptyHistory(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{ClientID: 100})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestService_Cancel(t *testing.T) {
	repo := &fakeRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), "b-1", 100)

	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.updatedStatus)
}

func TestService_Cancel_AccessDenied(t *testing.T) {
	repo := &fakeRepo{booking: confirmedBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), "b-1", 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updatedStatus)
}

func TestService_Cancel_TerminalStates(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = status
			repo := &fakeRepo{booking: booking}
			svc := NewService(repo, nopLogger{})

			err := svc.Cancel(context.Background(), "b-1", 100)

			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Nil(t, repo.updatedStatus)
		})
	}
}

func TestService_Cancel_RepositoryError(t *testing.T) {
	repo := &fakeRepo{booking: confirmedBooking(), updateErr: errors.New("connection lost")}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), "b-1", 100)

	assert.ErrorIs(t, err, ErrInternal)
}
