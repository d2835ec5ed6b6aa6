package domain

// Business validation constants
const (
	MinDurationMinutes   = 30
	MaxDurationMinutes   = 480 // 8 hours
	MaxClientNotesLength = 1000
	MinAddressTextLength = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы бронирований, занимающих временной слот
// Используется при проверке доступности мастера
var OccupyingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusInProgress,
}
