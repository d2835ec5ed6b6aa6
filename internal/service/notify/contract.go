package notify

import (
	"context"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/smsgateway"
)

// Transport интерфейс шлюза доставки сообщений
type Transport interface {
	SendMessage(ctx context.Context, address, body, priorityClass string, metadata map[string]string) (*smsgateway.SendResult, error)
}

// PhoneClassifier интерфейс классификатора телефонных номеров
type PhoneClassifier interface {
	Normalize(raw string) string
	Validate(raw string) bool
	ClassifyCarrier(canonical string) (catalog.CarrierProfile, bool)
	Mask(phone string) string
}

// DeliveryLogRepository интерфейс журнала доставки
type DeliveryLogRepository interface {
	Append(ctx context.Context, entry *domain.DeliveryLogEntry) error
	GetByDay(ctx context.Context, day time.Time) ([]*domain.DeliveryLogEntry, error)
}

// Metrics интерфейс сборщика метрик отправки уведомлений
type Metrics interface {
	ObserveNotificationSent(carrier, template string)
	ObserveNotificationFailed(carrier, template string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
