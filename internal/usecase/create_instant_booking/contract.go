package create_instant_booking

import (
	"context"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/infra/events"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/profileservice"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/servicecatalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/notify"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker интерфейс проверки доступности слота
type AvailabilityChecker interface {
	Check(ctx context.Context, providerID int64, requestedStart time.Time, durationMinutes int, region domain.Region) (*availability.Result, error)
}

// PricingEngine интерфейс расчета цены
type PricingEngine interface {
	Compute(req pricing.Request) (*pricing.Quote, error)
}

// ServiceCatalogClient интерфейс клиента для ServiceCatalog
type ServiceCatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*servicecatalog.Service, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*profileservice.Provider, error)
	GetClient(ctx context.Context, clientID int64) (*profileservice.ClientProfile, error)
}

// Notifier интерфейс отправки уведомлений о бронировании
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking, provider *profileservice.Provider, client *profileservice.ClientProfile) notify.ConfirmationResult
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event events.BookingConfirmedEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
