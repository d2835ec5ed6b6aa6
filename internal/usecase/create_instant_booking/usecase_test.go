package create_instant_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/infra/events"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/profileservice"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/servicecatalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/notify"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/pricing"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/ptr"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = booking
	return booking, nil
}

type fakeChecker struct {
	result *availability.Result
	err    error
}

func (f *fakeChecker) Check(_ context.Context, _ int64, _ time.Time, _ int, _ domain.Region) (*availability.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCatalogClient struct {
	service *servicecatalog.Service
	err     error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*servicecatalog.Service, error) {
	return f.service, f.err
}

type fakeProfileClient struct {
	provider    *profileservice.Provider
	client      *profileservice.ClientProfile
	providerErr error
	clientErr   error
}

func (f *fakeProfileClient) GetProvider(_ context.Context, _ int64) (*profileservice.Provider, error) {
	return f.provider, f.providerErr
}

func (f *fakeProfileClient) GetClient(_ context.Context, _ int64) (*profileservice.ClientProfile, error) {
	return f.client, f.clientErr
}

type fakeNotifier struct {
	result notify.ConfirmationResult
	called bool
}

func (f *fakeNotifier) SendBookingConfirmation(_ context.Context, _ *domain.Booking, _ *profileservice.Provider, _ *profileservice.ClientProfile) notify.ConfirmationResult {
	f.called = true
	return f.result
}

type fakePublisher struct {
	events []events.BookingConfirmedEvent
	err    error
}

func (f *fakePublisher) PublishBookingConfirmed(_ context.Context, event events.BookingConfirmedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseEnv struct {
	uc            *UseCase
	bookingRepo   *fakeBookingRepo
	checker       *fakeChecker
	catalogClient *fakeCatalogClient
	profileClient *fakeProfileClient
	notifier      *fakeNotifier
	publisher     *fakePublisher
	txManager     *fakeTxManager
}

func okConfirmation() notify.ConfirmationResult {
	return notify.ConfirmationResult{
		Provider: notify.SendResult{Success: true, MessageID: "m1"},
		Client:   notify.SendResult{Success: true, MessageID: "m2"},
	}
}

func newUseCaseEnv(t *testing.T) *useCaseEnv {
	t.Helper()
	cat, err := catalog.New(catalog.Kyrgyzstan())
	require.NoError(t, err)

	env := &useCaseEnv{
		bookingRepo: &fakeBookingRepo{},
		checker:     &fakeChecker{result: &availability.Result{Available: true}},
		catalogClient: &fakeCatalogClient{service: &servicecatalog.Service{
			ID:                    300,
			Name:                  "Сантехник",
			BasePricePerHour:      1000,
			InstantBookingEnabled: true,
			Regions:               []domain.Region{domain.RegionBishkek, domain.RegionOsh},
			PaymentMethods:        []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard},
		}},
		profileClient: &fakeProfileClient{
			provider: &profileservice.Provider{
				ID:                     200,
				Phone:                  "+996770123456",
				DisplayName:            "Бакыт",
				PreferredLanguage:      domain.LanguageKyrgyz,
				WorkingRegions:         []domain.Region{domain.RegionBishkek},
				AcceptedPaymentMethods: []domain.PaymentMethod{domain.PaymentCash, domain.PaymentCard},
			},
			client: &profileservice.ClientProfile{
				ID:                100,
				Phone:             "+996550111222",
				DisplayName:       "Айбек",
				PreferredLanguage: domain.LanguageRussian,
			},
		},
		notifier:  &fakeNotifier{result: okConfirmation()},
		publisher: &fakePublisher{},
		txManager: &fakeTxManager{},
	}

	env.uc = NewUseCase(
		env.bookingRepo,
		env.checker,
		pricing.NewEngine(cat),
		env.catalogClient,
		env.profileClient,
		env.notifier,
		env.publisher,
		cat,
		env.txManager,
		nopLogger{},
	)

	return env
}

func validRequest() *Request {
	return &Request{
		ClientID:        100,
		ProviderID:      200,
		ServiceID:       300,
		ScheduledStart:  time.Now().Add(48 * time.Hour).Truncate(time.Hour),
		DurationMinutes: 60,
		Region:          domain.RegionBishkek,
		Urgency:         domain.UrgencyNormal,
		PaymentMethod:   domain.PaymentCash,
		Address: domain.Address{
			Type: domain.AddressExact,
			Text: "ул. Киевская 95, кв. 12",
		},
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	env := newUseCaseEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.Booking)

	// Бронирование подтверждено сразу, без ручного акцепта мастером
	assert.Equal(t, string(domain.StatusConfirmed), resp.Booking.Status)
	assert.NotNil(t, resp.Booking.ConfirmedAt)
	assert.Equal(t, string(domain.PaymentStatusPending), resp.Booking.PaymentStatus)

	_, uuidErr := uuid.Parse(resp.Booking.ID)
	assert.NoError(t, uuidErr)

	// Название услуги денормализуется из каталога
	assert.Equal(t, "Сантехник", resp.Booking.ServiceName)

	// 1000 * 1.0 * 1.0 * 0.95 = 950
	assert.Equal(t, 950.0, resp.Booking.TotalPrice)
	assert.InDelta(t, 95.0, resp.Booking.Commission, 0.0001)
	assert.Equal(t, "KGS", resp.Currency)

	// Язык не задан в запросе: берется из профиля клиента
	assert.Equal(t, string(domain.LanguageRussian), resp.Booking.Language)
	assert.Contains(t, resp.PaymentInstructions, "наличными")
	assert.NotEmpty(t, resp.NextSteps)
	assert.Empty(t, resp.Warnings)

	assert.Equal(t, 1, env.txManager.calls)
	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, resp.Booking.ID, event.BookingID)
	assert.Equal(t, int64(100), event.ClientID)
	assert.Equal(t, "KGS", event.Currency)
	assert.True(t, env.notifier.called)
}

func TestUseCase_Execute_ExplicitLanguageOverridesProfile(t *testing.T) {
	env := newUseCaseEnv(t)
	req := validRequest()
	req.Language = ptr.Ptr(domain.LanguageKyrgyz)

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.LanguageKyrgyz), resp.Booking.Language)
	assert.Contains(t, resp.PaymentInstructions, "накталай")
}

func TestUseCase_Execute_NotificationFailuresBecomeWarnings(t *testing.T) {
	env := newUseCaseEnv(t)
	env.notifier.result = notify.ConfirmationResult{
		Provider: notify.SendResult{Error: errors.New("gateway down")},
		Client:   notify.SendResult{Success: true},
	}
	env.publisher.err = errors.New("broker unavailable")

	resp, err := env.uc.Execute(context.Background(), validRequest())

	// Сбои уведомлений и события не отменяют созданное бронирование
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Booking.Status)
	assert.ElementsMatch(t, []string{
		"booking event was not published",
		"provider notification was not delivered",
	}, resp.Warnings)
}

func TestUseCase_Execute_SlotNotAvailable(t *testing.T) {
	env := newUseCaseEnv(t)
	alternatives := []time.Time{
		time.Now().Add(49 * time.Hour),
		time.Now().Add(50 * time.Hour),
	}
	env.checker.result = &availability.Result{
		Available:    false,
		Reason:       availability.ReasonTimeConflict,
		Alternatives: alternatives,
	}

	_, err := env.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var slotErr *SlotNotAvailableError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, availability.ReasonTimeConflict, slotErr.Reason)
	assert.Equal(t, alternatives, slotErr.Alternatives)

	// Занятый слот не приводит к записи и уведомлениям
	assert.Nil(t, env.bookingRepo.created)
	assert.False(t, env.notifier.called)
	assert.Empty(t, env.publisher.events)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "duration below minimum",
			mutate:  func(req *Request) { req.DurationMinutes = 10 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "scheduled start in the past",
			mutate:  func(req *Request) { req.ScheduledStart = time.Now().Add(-time.Hour) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown urgency",
			mutate:  func(req *Request) { req.Urgency = domain.Urgency("whenever") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "address text too short",
			mutate:  func(req *Request) { req.Address.Text = "кв. 1" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "client notes too long",
			mutate: func(req *Request) {
				notes := make([]rune, domain.MaxClientNotesLength+1)
				for i := range notes {
					notes[i] = 'а'
				}
				req.ClientNotes = ptr.Ptr(string(notes))
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newUseCaseEnv(t)
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, env.bookingRepo.created)
		})
	}
}

func TestUseCase_Execute_ReferenceLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(env *useCaseEnv)
		wantErr error
	}{
		{
			name: "service not found",
			setup: func(env *useCaseEnv) {
				env.catalogClient.service = nil
				env.catalogClient.err = servicecatalog.ErrServiceNotFound
			},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "instant booking disabled",
			setup: func(env *useCaseEnv) {
				env.catalogClient.service.InstantBookingEnabled = false
			},
			wantErr: ErrInstantBookingDisabled,
		},
		{
			name: "service not offered in region",
			setup: func(env *useCaseEnv) {
				env.catalogClient.service.Regions = []domain.Region{domain.RegionNaryn}
			},
			wantErr: ErrServiceNotInRegion,
		},
		{
			name: "service does not accept payment method",
			setup: func(env *useCaseEnv) {
				env.catalogClient.service.PaymentMethods = []domain.PaymentMethod{domain.PaymentCrypto}
			},
			wantErr: ErrPaymentMethodNotAccepted,
		},
		{
			name: "provider not found",
			setup: func(env *useCaseEnv) {
				env.profileClient.provider = nil
				env.profileClient.providerErr = profileservice.ErrProviderNotFound
			},
			wantErr: ErrProviderNotFound,
		},
		{
			name: "provider does not work in region",
			setup: func(env *useCaseEnv) {
				env.profileClient.provider.WorkingRegions = []domain.Region{domain.RegionOsh}
			},
			wantErr: ErrProviderNotInRegion,
		},
		{
			name: "provider does not accept payment method",
			setup: func(env *useCaseEnv) {
				env.profileClient.provider.AcceptedPaymentMethods = []domain.PaymentMethod{domain.PaymentCard}
			},
			wantErr: ErrPaymentMethodNotAccepted,
		},
		{
			name: "client not found",
			setup: func(env *useCaseEnv) {
				env.profileClient.client = nil
				env.profileClient.clientErr = profileservice.ErrClientNotFound
			},
			wantErr: ErrClientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newUseCaseEnv(t)
			tt.setup(env)

			_, err := env.uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, env.bookingRepo.created)
		})
	}
}

func TestUseCase_Execute_CreateFailureRollsBack(t *testing.T) {
	env := newUseCaseEnv(t)
	env.bookingRepo.err = errors.New("serialization conflict")

	_, err := env.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, env.notifier.called)
	assert.Empty(t, env.publisher.events)
}

func TestUseCase_Execute_NilPublisherSkipsEvent(t *testing.T) {
	env := newUseCaseEnv(t)
	cat, err := catalog.New(catalog.Kyrgyzstan())
	require.NoError(t, err)
	env.uc = NewUseCase(
		env.bookingRepo,
		env.checker,
		pricing.NewEngine(cat),
		env.catalogClient,
		env.profileClient,
		env.notifier,
		nil,
		cat,
		env.txManager,
		nopLogger{},
	)

	resp, execErr := env.uc.Execute(context.Background(), validRequest())

	require.NoError(t, execErr)
	assert.Empty(t, resp.Warnings)
}
