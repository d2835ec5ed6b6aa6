package domain

import "time"

// DeliveryLogEntry одна запись журнала доставки уведомлений
// Append-only: запись никогда не изменяется после создания
type DeliveryLogEntry struct {
	ID            int64
	SentAt        time.Time
	MaskedPhone   string // телефон с замаскированными цифрами, кроме последних четырех
	Carrier       string
	TemplateID    string
	Language      Language
	Success       bool
	Error         *string
	MessageLength int
}

// DeliveryStats агрегированная статистика доставки за период
type DeliveryStats struct {
	TotalSent   int
	TotalFailed int
	ByCarrier   map[string]int
	ByTemplate  map[string]int
	ByLanguage  map[Language]int
}

// NewDeliveryStats создает пустую статистику с инициализированными картами
func NewDeliveryStats() *DeliveryStats {
	return &DeliveryStats{
		ByCarrier:  make(map[string]int),
		ByTemplate: make(map[string]int),
		ByLanguage: make(map[Language]int),
	}
}
