package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers"
	"github.com/aibekm/TezUsta-BookingEngine/internal/api/middleware"
	createBooking "github.com/aibekm/TezUsta-BookingEngine/internal/usecase/create_instant_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidScheduledStart = "некорректный формат времени начала, ожидается RFC 3339"
	msgSlotNotAvailable      = "выбранный временной слот недоступен"
	msgServiceNotFound       = "услуга не найдена"
	msgInstantDisabled       = "услуга не поддерживает мгновенное бронирование"
	msgServiceNotInRegion    = "услуга не предлагается в выбранном регионе"
	msgProviderNotFound      = "мастер не найден"
	msgProviderNotInRegion   = "мастер не работает в выбранном регионе"
	msgClientNotFound        = "профиль клиента не найден"
	msgPaymentNotAccepted    = "способ оплаты не принимается"
	msgInvalidInput          = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "пользователь не аутентифицирован")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse scheduledStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var slotErr *createBooking.SlotNotAvailableError

		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, provider_id=%d, reason=%s",
				clientID, req.ProviderID, slotErr.Reason)
			handlers.RespondJSON(w, http.StatusConflict, newSlotConflictResponse(slotErr))

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInstantBookingDisabled):
			h.logger.Warn("POST /bookings - Instant booking disabled: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgInstantDisabled)

		case errors.Is(err, createBooking.ErrServiceNotInRegion):
			h.logger.Warn("POST /bookings - Service not in region: service_id=%d, region=%s", req.ServiceID, req.Region)
			handlers.RespondBadRequest(w, msgServiceNotInRegion)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrProviderNotInRegion):
			h.logger.Warn("POST /bookings - Provider not in region: provider_id=%d, region=%s", req.ProviderID, req.Region)
			handlers.RespondBadRequest(w, msgProviderNotInRegion)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrPaymentMethodNotAccepted):
			h.logger.Warn("POST /bookings - Payment method not accepted: client_id=%d, payment=%s", clientID, req.PaymentMethod)
			handlers.RespondBadRequest(w, msgPaymentNotAccepted)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, provider_id=%d, error=%v",
				clientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, client_id=%d, provider_id=%d",
		result.Booking.ID, clientID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func newSlotConflictResponse(slotErr *createBooking.SlotNotAvailableError) *SlotConflictResponse {
	alternatives := make([]string, 0, len(slotErr.Alternatives))
	for _, slot := range slotErr.Alternatives {
		alternatives = append(alternatives, slot.Format(time.RFC3339))
	}

	return &SlotConflictResponse{
		Code:         http.StatusConflict,
		Message:      msgSlotNotAvailable,
		Reason:       string(slotErr.Reason),
		Alternatives: alternatives,
	}
}
