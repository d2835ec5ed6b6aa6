package events

import "time"

// BookingConfirmedEvent событие подтверждения мгновенного бронирования
// Публикуется после коммита транзакции создания бронирования
type BookingConfirmedEvent struct {
	BookingID      string    `json:"booking_id"`
	ClientID       int64     `json:"client_id"`
	ProviderID     int64     `json:"provider_id"`
	ServiceID      int64     `json:"service_id"`
	Region         string    `json:"region"`
	ScheduledStart time.Time `json:"scheduled_start"`
	TotalPrice     float64   `json:"total_price"`
	Currency       string    `json:"currency"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}
