package notify

import (
	"context"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// GetStats агрегирует журнал доставки за период [dateFrom, dateTo] включительно
// Журнал читается по одному календарному дню за запрос; ошибка выборки
// одного дня логируется и не попадает в итоги, остальные дни учитываются
func (d *Dispatcher) GetStats(ctx context.Context, dateFrom, dateTo time.Time) *domain.DeliveryStats {
	stats := domain.NewDeliveryStats()

	from := truncateToDay(dateFrom)
	to := truncateToDay(dateTo)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		entries, err := d.logRepo.GetByDay(ctx, day)
		if err != nil {
			d.logger.Warn("GetStats: failed to load delivery log for %s: %v",
				day.Format(domain.DateFormat), err)
			continue
		}

		for _, entry := range entries {
			if entry.Success {
				stats.TotalSent++
			} else {
				stats.TotalFailed++
			}
			stats.ByCarrier[entry.Carrier]++
			stats.ByTemplate[entry.TemplateID]++
			stats.ByLanguage[entry.Language]++
		}
	}

	return stats
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
