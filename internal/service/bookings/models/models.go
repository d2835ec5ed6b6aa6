package models

import (
	"errors"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetClientBookingsRequest запрос на получение истории бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// AddressResponse адрес выполнения заказа
type AddressResponse struct {
	Type                      string  `json:"type"`
	Text                      string  `json:"text"`
	District                  *string `json:"district,omitempty"`
	Landmark                  *string `json:"landmark,omitempty"`
	RequiresPhoneConfirmation bool    `json:"requiresPhoneConfirmation"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string          `json:"id"`
	ClientID        int64           `json:"clientId"`
	ProviderID      int64           `json:"providerId"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	ScheduledStart  time.Time       `json:"scheduledStart"`
	DurationMinutes int             `json:"durationMinutes"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	Address         AddressResponse `json:"address"`
	Region          string          `json:"region"`
	Language        string          `json:"language"`
	Urgency         string          `json:"urgency"`

	BasePrice          float64 `json:"basePrice"`
	RegionalMultiplier float64 `json:"regionalMultiplier"`
	UrgencyMultiplier  float64 `json:"urgencyMultiplier"`
	PaymentMultiplier  float64 `json:"paymentMultiplier"`
	TotalPrice         float64 `json:"totalPrice"`
	Commission         float64 `json:"commission"`

	ClientNotes *string `json:"clientNotes,omitempty"`
	Status      string  `json:"status"`

	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ConfirmedAt *string   `json:"confirmedAt,omitempty"` // ISO 8601
	CompletedAt *string   `json:"completedAt,omitempty"` // ISO 8601
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ClientID:        b.ClientID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ScheduledStart:  b.ScheduledStart,
		DurationMinutes: b.DurationMinutes,
		PaymentMethod:   string(b.PaymentMethod),
		PaymentStatus:   string(b.PaymentStatus),
		Address: AddressResponse{
			Type:                      string(b.Address.Type),
			Text:                      b.Address.Text,
			District:                  b.Address.District,
			Landmark:                  b.Address.Landmark,
			RequiresPhoneConfirmation: b.Address.RequiresPhoneConfirmation,
		},
		Region:             string(b.Region),
		Language:           string(b.Language),
		Urgency:            string(b.Urgency),
		BasePrice:          b.BasePrice,
		RegionalMultiplier: b.RegionalMultiplier,
		UrgencyMultiplier:  b.UrgencyMultiplier,
		PaymentMultiplier:  b.PaymentMultiplier,
		TotalPrice:         b.TotalPrice,
		Commission:         b.Commission,
		ClientNotes:        b.ClientNotes,
		Status:             string(b.Status),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.ConfirmedAt = formatTimestamp(b.ConfirmedAt)
	resp.CompletedAt = formatTimestamp(b.CompletedAt)
	resp.CancelledAt = formatTimestamp(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
