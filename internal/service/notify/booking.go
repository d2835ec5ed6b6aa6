package notify

import (
	"context"
	"strconv"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/profileservice"
)

// ConfirmationResult результаты отправки пары уведомлений о бронировании
// Обе отправки выполняются независимо: неудача одной не отменяет другую
// и никогда не эскалируется вызывающему коду как ошибка
type ConfirmationResult struct {
	Provider SendResult
	Client   SendResult
}

// Degraded возвращает true, если хотя бы одно уведомление не доставлено
func (r *ConfirmationResult) Degraded() bool {
	return !r.Provider.Success || !r.Client.Success
}

// SendBookingConfirmation отправляет два уведомления о созданном бронировании:
// мастеру о новом заказе и клиенту о подтверждении, каждому на его языке
// и с высоким приоритетом доставки
func (d *Dispatcher) SendBookingConfirmation(
	ctx context.Context,
	booking *domain.Booking,
	provider *profileservice.Provider,
	client *profileservice.ClientProfile,
) ConfirmationResult {
	currency := ""
	dateText := booking.ScheduledStart.Format(domain.DateFormat)
	timeText := booking.ScheduledStart.Format(domain.TimeFormat)
	if settings, ok := d.catalog.Region(booking.Region); ok {
		currency = settings.Currency
		local := booking.ScheduledStart.In(settings.Location())
		dateText = local.Format(domain.DateFormat)
		timeText = local.Format(domain.TimeFormat)
	}
	totalText := strconv.FormatFloat(booking.TotalPrice, 'f', -1, 64)

	providerResult := d.Send(ctx, SendRequest{
		Phone:      provider.Phone,
		TemplateID: catalog.TemplateNewBookingProvider,
		Language:   provider.PreferredLanguage,
		Priority:   PriorityHigh,
		Variables: map[string]string{
			"service_name": booking.ServiceName,
			"date":         dateText,
			"time":         timeText,
			"address":      booking.Address.Text,
			"client_name":  client.DisplayName,
			"client_phone": client.Phone,
			"total_price":  totalText,
			"currency":     currency,
		},
	})
	if !providerResult.Success {
		d.logger.Warn("SendBookingConfirmation: provider notification failed for booking=%s: %v",
			booking.ID, providerResult.Error)
	}

	clientResult := d.Send(ctx, SendRequest{
		Phone:      client.Phone,
		TemplateID: catalog.TemplateBookingConfirmedClient,
		Language:   client.PreferredLanguage,
		Priority:   PriorityHigh,
		Variables: map[string]string{
			"service_name":   booking.ServiceName,
			"date":           dateText,
			"time":           timeText,
			"provider_name":  provider.DisplayName,
			"provider_phone": provider.Phone,
			"total_price":    totalText,
			"currency":       currency,
		},
	})
	if !clientResult.Success {
		d.logger.Warn("SendBookingConfirmation: client notification failed for booking=%s: %v",
			booking.ID, clientResult.Error)
	}

	return ConfirmationResult{Provider: providerResult, Client: clientResult}
}
