package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// Reason причина отказа в бронировании слота
type Reason string

const (
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonTimeConflict        Reason = "time_conflict"
)

// Result результат проверки доступности слота
type Result struct {
	Available bool
	Reason    Reason
	// Alternatives альтернативные слоты при отказе
	// Предложения наилучшего приближения: их доступность повторно не проверяется
	Alternatives []time.Time
}

// Checker проверяет доступность временного слота мастера
// Не имеет побочных эффектов: только читает бронирования через репозиторий
type Checker struct {
	bookingRepo  BookingRepository
	catalog      *catalog.Catalog
	alternatives int
	stepMinutes  int
	logger       Logger
}

// NewChecker создает новый чекер доступности
// alternatives и stepMinutes задают количество и шаг альтернативных слотов
func NewChecker(
	bookingRepo BookingRepository,
	cat *catalog.Catalog,
	alternatives int,
	stepMinutes int,
	logger Logger,
) *Checker {
	return &Checker{
		bookingRepo:  bookingRepo,
		catalog:      cat,
		alternatives: alternatives,
		stepMinutes:  stepMinutes,
		logger:       logger,
	}
}

// Check проверяет, можно ли забронировать мастера на запрошенный слот
//
// 1. Локальный час начала (в таймзоне региона) должен попадать в рабочие часы
// 2. Слот не должен пересекаться с подтвержденными и выполняемыми
//    бронированиями мастера на этот календарный день
//
// Соприкасающиеся границы интервалов пересечением не считаются
func (c *Checker) Check(
	ctx context.Context,
	providerID int64,
	requestedStart time.Time,
	durationMinutes int,
	region domain.Region,
) (*Result, error) {
	settings, ok := c.catalog.Region(region)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	local := requestedStart.In(settings.Location())

	// 1. Рабочие часы региона (границы включительно)
	if local.Hour() < settings.WorkStartHour || local.Hour() > settings.WorkEndHour {
		c.logger.Info("Check: provider=%d start=%s outside working hours [%d..%d]",
			providerID, local.Format(domain.TimeFormat), settings.WorkStartHour, settings.WorkEndHour)
		return &Result{
			Available:    false,
			Reason:       ReasonOutsideWorkingHours,
			Alternatives: c.suggestAlternatives(requestedStart, settings),
		}, nil
	}

	// 2. Пересечения с бронированиями мастера за календарный день
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, settings.Location())
	filter := domain.ProviderBookingsFilter{
		ProviderID:  providerID,
		WindowStart: dayStart,
		WindowEnd:   dayStart.AddDate(0, 0, 1),
		Statuses:    domain.OccupyingStatuses,
	}

	existing, err := c.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		c.logger.Error("Check: provider=%d booking lookup failed: %v", providerID, err)
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	for _, booking := range existing {
		if booking.Overlaps(requestedStart, durationMinutes) {
			c.logger.Info("Check: provider=%d slot %s conflicts with booking id=%s",
				providerID, local.Format(domain.TimeFormat), booking.ID)
			return &Result{
				Available:    false,
				Reason:       ReasonTimeConflict,
				Alternatives: c.suggestAlternatives(requestedStart, settings),
			}, nil
		}
	}

	return &Result{Available: true}, nil
}

// suggestAlternatives предлагает альтернативные слоты с фиксированным шагом
// Если очередной слот выходит за конец рабочего дня, переносим его
// на следующий календарный день со сдвигом от начала рабочего дня
func (c *Checker) suggestAlternatives(requestedStart time.Time, settings catalog.RegionalSettings) []time.Time {
	alternatives := make([]time.Time, 0, c.alternatives)
	candidate := requestedStart

	for len(alternatives) < c.alternatives {
		candidate = candidate.Add(time.Duration(c.stepMinutes) * time.Minute)
		local := candidate.In(settings.Location())

		if local.Hour() > settings.WorkEndHour {
			overflow := local.Hour() - settings.WorkEndHour - 1
			next := local.AddDate(0, 0, 1)
			candidate = time.Date(next.Year(), next.Month(), next.Day(),
				settings.WorkStartHour+overflow, local.Minute(), 0, 0, settings.Location())
		} else if local.Hour() < settings.WorkStartHour {
			candidate = time.Date(local.Year(), local.Month(), local.Day(),
				settings.WorkStartHour, local.Minute(), 0, 0, settings.Location())
		}

		alternatives = append(alternatives, candidate)
	}

	return alternatives
}
