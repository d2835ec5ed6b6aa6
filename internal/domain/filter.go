package domain

import "time"

// ProviderBookingsFilter фильтр для выборки бронирований мастера
// WindowStart/WindowEnd задают полуоткрытое окно [start, end)
type ProviderBookingsFilter struct {
	ProviderID  int64
	WindowStart time.Time
	WindowEnd   time.Time
	Statuses    []BookingStatus // пустой список - без фильтра по статусу
}

// ClientBookingsFilter фильтр для выборки бронирований клиента
type ClientBookingsFilter struct {
	ClientID int64
	Status   *BookingStatus // опционально
}
