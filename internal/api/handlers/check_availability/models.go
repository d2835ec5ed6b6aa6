package check_availability

import (
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
)

// AvailabilityResponse HTTP модель результата проверки доступности
type AvailabilityResponse struct {
	Available    bool     `json:"available"`
	Reason       string   `json:"reason,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"` // RFC 3339
}

// FromServiceResult конвертирует результат проверки в HTTP response
func FromServiceResult(result *availability.Result) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		Available: result.Available,
		Reason:    string(result.Reason),
	}

	for _, slot := range result.Alternatives {
		resp.Alternatives = append(resp.Alternatives, slot.Format(time.RFC3339))
	}

	return resp
}
