package create_instant_booking

import (
	"fmt"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Форма адреса проверяется на границе: некорректный вариант не доходит
// до проверки доступности и расчета цены
func validateRequest(req *Request, now time.Time) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ScheduledStart.IsZero() {
		return fmt.Errorf("%w: scheduledStart is required", ErrInvalidInput)
	}

	if req.ScheduledStart.Before(now) {
		return fmt.Errorf("%w: scheduledStart is in the past", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be within [%d, %d]",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if !domain.ValidUrgency(req.Urgency) {
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalidInput, req.Urgency)
	}

	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.Language != nil && !domain.ValidLanguage(*req.Language) {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, *req.Language)
	}

	if err := req.Address.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ClientNotes != nil && len([]rune(*req.ClientNotes)) > domain.MaxClientNotesLength {
		return fmt.Errorf("%w: clientNotes exceeds %d characters", ErrInvalidInput, domain.MaxClientNotesLength)
	}

	return nil
}
