package delivery_stats

import (
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// DeliveryStatsResponse HTTP модель статистики доставки
type DeliveryStatsResponse struct {
	TotalSent   int            `json:"totalSent"`
	TotalFailed int            `json:"totalFailed"`
	ByCarrier   map[string]int `json:"byCarrier"`
	ByTemplate  map[string]int `json:"byTemplate"`
	ByLanguage  map[string]int `json:"byLanguage"`
}

// FromDomainStats конвертирует доменную статистику в HTTP response
func FromDomainStats(stats *domain.DeliveryStats) *DeliveryStatsResponse {
	byLanguage := make(map[string]int, len(stats.ByLanguage))
	for lang, count := range stats.ByLanguage {
		byLanguage[string(lang)] = count
	}

	return &DeliveryStatsResponse{
		TotalSent:   stats.TotalSent,
		TotalFailed: stats.TotalFailed,
		ByCarrier:   stats.ByCarrier,
		ByTemplate:  stats.ByTemplate,
		ByLanguage:  byLanguage,
	}
}
