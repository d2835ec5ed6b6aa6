package check_availability

import (
	"context"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
)

type AvailabilityChecker interface {
	Check(ctx context.Context, providerID int64, requestedStart time.Time, durationMinutes int, region domain.Region) (*availability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
