package profileservice

import "github.com/aibekm/TezUsta-BookingEngine/internal/domain"

// NotificationPreferences настройки каналов уведомлений пользователя
type NotificationPreferences struct {
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
	Email bool `json:"email"`
}

// Provider профиль мастера из ProfileService
type Provider struct {
	ID                     int64                   `json:"id"`
	Phone                  string                  `json:"phone"`
	DisplayName            string                  `json:"display_name"`
	PreferredLanguage      domain.Language         `json:"preferred_language"`
	WorkingRegions         []domain.Region         `json:"working_regions"`
	AcceptedPaymentMethods []domain.PaymentMethod  `json:"accepted_payment_methods"`
	Notifications          NotificationPreferences `json:"notifications"`
}

// WorksInRegion проверяет, что мастер работает в регионе
func (p *Provider) WorksInRegion(region domain.Region) bool {
	for _, r := range p.WorkingRegions {
		if r == region {
			return true
		}
	}
	return false
}

// AcceptsPaymentMethod проверяет, что мастер принимает способ оплаты
func (p *Provider) AcceptsPaymentMethod(method domain.PaymentMethod) bool {
	for _, m := range p.AcceptedPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// ClientProfile профиль клиента из ProfileService
type ClientProfile struct {
	ID                     int64                `json:"id"`
	Phone                  string               `json:"phone"`
	DisplayName            string               `json:"display_name"`
	PreferredLanguage      domain.Language      `json:"preferred_language"`
	PreferredRegion        domain.Region        `json:"preferred_region"`
	PreferredPaymentMethod domain.PaymentMethod `json:"preferred_payment_method"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
