package servicecatalog

import "github.com/aibekm/TezUsta-BookingEngine/internal/domain"

// Service справочная карточка услуги
// Неизменяемые данные, запрашиваются на каждый запрос бронирования
type Service struct {
	ID                    int64                  `json:"id"`
	Name                  string                 `json:"name"`
	BasePricePerHour      float64                `json:"base_price_per_hour"`
	InstantBookingEnabled bool                   `json:"instant_booking_enabled"`
	Regions               []domain.Region        `json:"regions"`
	PaymentMethods        []domain.PaymentMethod `json:"payment_methods"`
}

// AvailableInRegion проверяет, что услуга предлагается в регионе
func (s *Service) AvailableInRegion(region domain.Region) bool {
	for _, r := range s.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// AcceptsPaymentMethod проверяет, что услуга принимает способ оплаты
func (s *Service) AcceptsPaymentMethod(method domain.PaymentMethod) bool {
	for _, m := range s.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от ServiceCatalog
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
