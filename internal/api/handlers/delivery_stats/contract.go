package delivery_stats

import (
	"context"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

type StatsProvider interface {
	GetStats(ctx context.Context, dateFrom, dateTo time.Time) *domain.DeliveryStats
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
