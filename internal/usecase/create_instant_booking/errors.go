package create_instant_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_instant_booking: service not found")

	// ErrInstantBookingDisabled возвращается, когда услуга не поддерживает мгновенное бронирование
	ErrInstantBookingDisabled = errors.New("create_instant_booking: instant booking is disabled for this service")

	// ErrServiceNotInRegion возвращается, когда услуга не предлагается в регионе
	ErrServiceNotInRegion = errors.New("create_instant_booking: service is not available in this region")

	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("create_instant_booking: provider not found")

	// ErrProviderNotInRegion возвращается, когда мастер не работает в регионе
	ErrProviderNotInRegion = errors.New("create_instant_booking: provider does not work in this region")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_instant_booking: client not found")

	// ErrPaymentMethodNotAccepted возвращается, когда способ оплаты не принимается
	ErrPaymentMethodNotAccepted = errors.New("create_instant_booking: payment method is not accepted")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот недоступен
	ErrSlotNotAvailable = errors.New("create_instant_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_instant_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_instant_booking: internal error")
)

// SlotNotAvailableError несет причину отказа и альтернативные слоты
// Разворачивается в ErrSlotNotAvailable через errors.Is
type SlotNotAvailableError struct {
	Reason       availability.Reason
	Alternatives []time.Time
}

func (e *SlotNotAvailableError) Error() string {
	return fmt.Sprintf("%v: reason=%s", ErrSlotNotAvailable, e.Reason)
}

func (e *SlotNotAvailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
