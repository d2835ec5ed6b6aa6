package availability

import (
	"context"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
// Выборку за календарный день выполняет хранилище
type BookingRepository interface {
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
