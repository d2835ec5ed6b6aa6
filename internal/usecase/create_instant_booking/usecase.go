package create_instant_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/infra/events"
	profileClient "github.com/aibekm/TezUsta-BookingEngine/internal/integrations/profileservice"
	catalogClient "github.com/aibekm/TezUsta-BookingEngine/internal/integrations/servicecatalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/bookings/models"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/pricing"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/ptr"
)

// UseCase use case создания мгновенного бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	availability  AvailabilityChecker
	pricingEngine PricingEngine
	catalogClient ServiceCatalogClient
	profileClient ProfileServiceClient
	notifier      Notifier
	publisher     EventPublisher
	catalog       *catalog.Catalog
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// publisher может быть nil, если публикация событий отключена
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityChecker AvailabilityChecker,
	pricingEngine PricingEngine,
	serviceCatalogClient ServiceCatalogClient,
	profileServiceClient ProfileServiceClient,
	notifier Notifier,
	publisher EventPublisher,
	cat *catalog.Catalog,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		availability:  availabilityChecker,
		pricingEngine: pricingEngine,
		catalogClient: serviceCatalogClient,
		profileClient: profileServiceClient,
		notifier:      notifier,
		publisher:     publisher,
		catalog:       cat,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания мгновенного бронирования
//
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: выборка дня идет с блокировкой строк, поэтому два
// одновременных запроса на пересекающиеся слоты не могут оба пройти
// проверку и записаться
//
// Бронирование подтверждается синхронно, без ручного акцепта мастером.
// Сбои уведомлений и публикации события не отменяют созданное
// бронирование и возвращаются предупреждениями в ответе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateInstantBooking: client=%d, provider=%d, service=%d, start=%s, duration=%d, region=%s",
		req.ClientID, req.ProviderID, req.ServiceID,
		req.ScheduledStart.Format(domain.DateFormat+" "+domain.TimeFormat), req.DurationMinutes, req.Region)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateInstantBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу и проверяем, что мгновенное бронирование возможно
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateInstantBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateInstantBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.InstantBookingEnabled {
		uc.logger.Warn("CreateInstantBooking: instant booking disabled for service id=%d", req.ServiceID)
		return nil, ErrInstantBookingDisabled
	}
	if !service.AvailableInRegion(req.Region) {
		uc.logger.Warn("CreateInstantBooking: service id=%d not offered in region=%s", req.ServiceID, req.Region)
		return nil, ErrServiceNotInRegion
	}
	if !service.AcceptsPaymentMethod(req.PaymentMethod) {
		uc.logger.Warn("CreateInstantBooking: service id=%d does not accept payment=%s", req.ServiceID, req.PaymentMethod)
		return nil, ErrPaymentMethodNotAccepted
	}

	// 4. Получаем мастера и проверяем регион и способ оплаты
	provider, err := uc.profileClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, profileClient.ErrProviderNotFound) {
			uc.logger.Warn("CreateInstantBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateInstantBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.WorksInRegion(req.Region) {
		uc.logger.Warn("CreateInstantBooking: provider id=%d does not work in region=%s", req.ProviderID, req.Region)
		return nil, ErrProviderNotInRegion
	}
	if !provider.AcceptsPaymentMethod(req.PaymentMethod) {
		uc.logger.Warn("CreateInstantBooking: provider id=%d does not accept payment=%s", req.ProviderID, req.PaymentMethod)
		return nil, ErrPaymentMethodNotAccepted
	}

	// 5. Получаем клиента
	client, err := uc.profileClient.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, profileClient.ErrClientNotFound) {
			uc.logger.Warn("CreateInstantBooking: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateInstantBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 6. Рассчитываем цену (чистая функция, вне транзакции)
	quote, err := uc.pricingEngine.Compute(pricing.Request{
		BasePrice:       service.BasePricePerHour,
		DurationMinutes: req.DurationMinutes,
		Region:          req.Region,
		PaymentMethod:   req.PaymentMethod,
		Urgency:         req.Urgency,
	})
	if err != nil {
		uc.logger.Warn("CreateInstantBooking: pricing failed for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Определяем язык ответа и уведомлений клиента
	language := client.PreferredLanguage
	if req.Language != nil {
		language = *req.Language
	}
	if !domain.ValidLanguage(language) {
		language = uc.catalog.DefaultLanguage()
	}

	var result *domain.Booking

	// 8. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Проверяем доступность слота с блокировкой бронирований дня
		check, err := uc.availability.Check(txCtx, req.ProviderID, req.ScheduledStart, req.DurationMinutes, req.Region)
		if err != nil {
			uc.logger.Error("CreateInstantBooking: availability check failed for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !check.Available {
			uc.logger.Warn("CreateInstantBooking: slot not available for provider=%d, reason=%s",
				req.ProviderID, check.Reason)
			return &SlotNotAvailableError{
				Reason:       check.Reason,
				Alternatives: check.Alternatives,
			}
		}

		// 8.2. Собираем бронирование: подтверждено сразу, без ручного акцепта
		booking := &domain.Booking{
			ID:              uuid.NewString(),
			ClientID:        req.ClientID,
			ProviderID:      req.ProviderID,
			ServiceID:       req.ServiceID,
			ServiceName:     service.Name,
			ScheduledStart:  req.ScheduledStart,
			DurationMinutes: req.DurationMinutes,
			PaymentMethod:   req.PaymentMethod,
			PaymentStatus:   domain.PaymentStatusPending,
			Address:         req.Address,
			Region:          req.Region,
			Language:        language,
			Urgency:         req.Urgency,

			BasePrice:          service.BasePricePerHour,
			RegionalMultiplier: quote.RegionalMultiplier,
			UrgencyMultiplier:  quote.UrgencyMultiplier,
			PaymentMultiplier:  quote.PaymentMultiplier,
			TotalPrice:         quote.Total,
			Commission:         quote.Commission,

			ClientNotes: req.ClientNotes,
			Status:      domain.StatusConfirmed,
			ConfirmedAt: ptr.Ptr(now),
		}

		// 8.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateInstantBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateInstantBooking: successfully created booking id=%s, total=%.0f %s",
		result.ID, result.TotalPrice, quote.Currency)

	warnings := make([]string, 0, 2)

	// 9. Публикуем событие подтверждения (после коммита, best-effort)
	if uc.publisher != nil {
		event := events.BookingConfirmedEvent{
			BookingID:      result.ID,
			ClientID:       result.ClientID,
			ProviderID:     result.ProviderID,
			ServiceID:      result.ServiceID,
			Region:         string(result.Region),
			ScheduledStart: result.ScheduledStart,
			TotalPrice:     result.TotalPrice,
			Currency:       quote.Currency,
			ConfirmedAt:    now,
		}
		if err := uc.publisher.PublishBookingConfirmed(ctx, event); err != nil {
			uc.logger.Error("CreateInstantBooking: event publish failed for booking=%s: %v", result.ID, err)
			warnings = append(warnings, "booking event was not published")
		}
	}

	// 10. Отправляем уведомления: сбои не отменяют бронирование
	confirmation := uc.notifier.SendBookingConfirmation(ctx, result, provider, client)
	if !confirmation.Provider.Success {
		warnings = append(warnings, "provider notification was not delivered")
	}
	if !confirmation.Client.Success {
		warnings = append(warnings, "client notification was not delivered")
	}

	return &Response{
		Booking:             models.FromDomainBooking(result),
		Currency:            quote.Currency,
		PaymentInstructions: uc.catalog.Message(paymentInstructionsKey(req.PaymentMethod), language),
		NextSteps:           uc.catalog.Message(catalog.MsgNextSteps, language),
		Warnings:            warnings,
	}, nil
}

// paymentInstructionsKey возвращает ключ инструкции по оплате для способа оплаты
func paymentInstructionsKey(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentCash:
		return catalog.MsgPaymentCash
	case domain.PaymentCard:
		return catalog.MsgPaymentCard
	case domain.PaymentMobileWallet:
		return catalog.MsgPaymentMobileWallet
	case domain.PaymentCrypto:
		return catalog.MsgPaymentCrypto
	default:
		return catalog.MsgNextSteps
	}
}
