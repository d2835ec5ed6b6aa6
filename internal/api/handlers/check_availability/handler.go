package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
)

const (
	msgInvalidProviderID = "некорректный ID мастера"
	msgInvalidStart      = "некорректный параметр start, ожидается RFC 3339"
	msgInvalidDuration   = "некорректный параметр durationMinutes"
	msgUnknownRegion     = "неизвестный регион"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability
// Query: start (RFC 3339), durationMinutes, region
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerIDStr := vars["providerId"]

	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	durationMinutes, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil || durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		h.logger.Warn("GET /providers/{id}/availability - Invalid duration: %s", query.Get("durationMinutes"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	region := domain.Region(query.Get("region"))

	result, err := h.checker.Check(r.Context(), providerID, start, durationMinutes, region)
	if err != nil {
		if errors.Is(err, availability.ErrUnknownRegion) {
			h.logger.Warn("GET /providers/{id}/availability - Unknown region: %s", region)
			handlers.RespondBadRequest(w, msgUnknownRegion)
			return
		}
		h.logger.Error("GET /providers/{id}/availability - Check failed: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Checked: provider_id=%d, available=%t", providerID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
