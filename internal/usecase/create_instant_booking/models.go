package create_instant_booking

import (
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/bookings/models"
)

// Request модель запроса на создание мгновенного бронирования
type Request struct {
	ClientID        int64
	ProviderID      int64
	ServiceID       int64
	ScheduledStart  time.Time
	DurationMinutes int
	Region          domain.Region
	Urgency         domain.Urgency
	PaymentMethod   domain.PaymentMethod
	Address         domain.Address
	Language        *domain.Language // язык ответа; по умолчанию язык клиента из профиля
	ClientNotes     *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *models.BookingResponse

	// Currency валюта итоговой цены
	Currency string

	// PaymentInstructions локализованная инструкция по оплате для выбранного способа
	PaymentInstructions string

	// NextSteps локализованный текст следующих шагов для клиента
	NextSteps string

	// Warnings деградации доставки уведомлений
	// Бронирование создано и подтверждено даже при непустом списке
	Warnings []string
}
