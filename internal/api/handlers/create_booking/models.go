package create_booking

import (
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/bookings/models"
	createBooking "github.com/aibekm/TezUsta-BookingEngine/internal/usecase/create_instant_booking"
)

// AddressPayload HTTP модель адреса
type AddressPayload struct {
	Type                      string  `json:"type" validate:"required,oneof=exact landmark district"`
	Text                      string  `json:"text" validate:"required"`
	District                  *string `json:"district,omitempty"`
	Landmark                  *string `json:"landmark,omitempty"`
	RequiresPhoneConfirmation bool    `json:"requiresPhoneConfirmation"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID      int64          `json:"providerId" validate:"required,gt=0"`
	ServiceID       int64          `json:"serviceId" validate:"required,gt=0"`
	ScheduledStart  string         `json:"scheduledStart" validate:"required"` // RFC 3339
	DurationMinutes int            `json:"durationMinutes" validate:"required,gt=0"`
	Region          string         `json:"region" validate:"required"`
	Urgency         string         `json:"urgency" validate:"required,oneof=normal urgent asap"`
	PaymentMethod   string         `json:"paymentMethod" validate:"required,oneof=cash card mobile_wallet crypto"`
	Address         AddressPayload `json:"address" validate:"required"`
	Language        *string        `json:"language,omitempty" validate:"omitempty,oneof=ky ru"`
	Notes           *string        `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking             *models.BookingResponse `json:"booking"`
	Currency            string                  `json:"currency"`
	PaymentInstructions string                  `json:"paymentInstructions"`
	NextSteps           string                  `json:"nextSteps"`
	Warnings            []string                `json:"warnings,omitempty"`
}

// SlotConflictResponse HTTP модель отказа по занятому слоту
type SlotConflictResponse struct {
	Code         int      `json:"code"`
	Message      string   `json:"message"`
	Reason       string   `json:"reason"`
	Alternatives []string `json:"alternatives"` // RFC 3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	scheduledStart, err := time.Parse(time.RFC3339, r.ScheduledStart)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		ClientID:        clientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		ScheduledStart:  scheduledStart,
		DurationMinutes: r.DurationMinutes,
		Region:          domain.Region(r.Region),
		Urgency:         domain.Urgency(r.Urgency),
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		Address: domain.Address{
			Type:                      domain.AddressType(r.Address.Type),
			Text:                      r.Address.Text,
			District:                  r.Address.District,
			Landmark:                  r.Address.Landmark,
			RequiresPhoneConfirmation: r.Address.RequiresPhoneConfirmation,
		},
		ClientNotes: r.Notes,
	}

	if r.Language != nil {
		lang := domain.Language(*r.Language)
		req.Language = &lang
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:             resp.Booking,
		Currency:            resp.Currency,
		PaymentInstructions: resp.PaymentInstructions,
		NextSteps:           resp.NextSteps,
		Warnings:            resp.Warnings,
	}
}
