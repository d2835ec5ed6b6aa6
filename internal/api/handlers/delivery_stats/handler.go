package delivery_stats

import (
	"net/http"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

const (
	msgInvalidDateFrom = "некорректный параметр dateFrom, ожидается YYYY-MM-DD"
	msgInvalidDateTo   = "некорректный параметр dateTo, ожидается YYYY-MM-DD"
	msgInvalidRange    = "dateFrom должен быть не позже dateTo"
)

type Handler struct {
	stats  StatsProvider
	logger Logger
}

func NewHandler(stats StatsProvider, logger Logger) *Handler {
	return &Handler{
		stats:  stats,
		logger: logger,
	}
}

// Handle GET /api/v1/notifications/stats
// Query: dateFrom, dateTo (YYYY-MM-DD, границы включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateFrom, err := time.Parse(domain.DateFormat, query.Get("dateFrom"))
	if err != nil {
		h.logger.Warn("GET /notifications/stats - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFrom)
		return
	}

	dateTo, err := time.Parse(domain.DateFormat, query.Get("dateTo"))
	if err != nil {
		h.logger.Warn("GET /notifications/stats - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTo)
		return
	}

	if dateFrom.After(dateTo) {
		h.logger.Warn("GET /notifications/stats - Invalid range: %s..%s", query.Get("dateFrom"), query.Get("dateTo"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	stats := h.stats.GetStats(r.Context(), dateFrom, dateTo)

	h.logger.Info("GET /notifications/stats - Stats retrieved: sent=%d, failed=%d", stats.TotalSent, stats.TotalFailed)
	handlers.RespondJSON(w, http.StatusOK, FromDomainStats(stats))
}
