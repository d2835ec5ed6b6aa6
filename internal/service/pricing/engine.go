package pricing

import (
	"fmt"
	"math"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// Request входные данные расчета цены
type Request struct {
	BasePrice       float64 // цена услуги за час
	DurationMinutes int
	Region          domain.Region
	PaymentMethod   domain.PaymentMethod
	Urgency         domain.Urgency
}

// Quote результат расчета цены
type Quote struct {
	DurationPrice      float64 // базовая цена с учетом длительности, до множителей
	RegionalMultiplier float64
	UrgencyMultiplier  float64
	PaymentMultiplier  float64
	Commission         float64 // комиссия платформы, не округляется
	Total              float64 // итог, округленный до целых сомов
	Currency           string
}

// Engine движок расчета цены
// Чистая функция над справочником: без I/O, без обращения к часам,
// одинаковые входные данные всегда дают одинаковый результат
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine создает новый движок расчета цены
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Compute рассчитывает итоговую цену и комиссию платформы
//
// durationPrice = basePrice * (minutes / 60)
// adjusted      = durationPrice * региональный * срочность * оплата
// commission    = adjusted * ставка комиссии способа оплаты
// total         = adjusted, округленный до целой единицы валюты
func (e *Engine) Compute(req Request) (*Quote, error) {
	if req.BasePrice <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidBasePrice, req.BasePrice)
	}
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, req.DurationMinutes)
	}

	regionSettings, ok := e.catalog.Region(req.Region)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, req.Region)
	}

	urgencyMultiplier, ok := e.catalog.UrgencyMultiplier(req.Urgency)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUrgency, req.Urgency)
	}

	paymentMultiplier, ok := e.catalog.PaymentMultiplier(req.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, req.PaymentMethod)
	}

	commissionRate, ok := e.catalog.CommissionRate(req.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, req.PaymentMethod)
	}

	durationPrice := req.BasePrice * float64(req.DurationMinutes) / 60.0
	adjusted := durationPrice * regionSettings.Multiplier * urgencyMultiplier * paymentMultiplier

	return &Quote{
		DurationPrice:      durationPrice,
		RegionalMultiplier: regionSettings.Multiplier,
		UrgencyMultiplier:  urgencyMultiplier,
		PaymentMultiplier:  paymentMultiplier,
		Commission:         adjusted * commissionRate,
		Total:              roundHalfAwayFromZero(adjusted),
		Currency:           regionSettings.Currency,
	}, nil
}

// roundHalfAwayFromZero округляет до целого, 0.5 уходит от нуля
// Валюта KGS не имеет копеек в обращении, итог округляется до целых сомов
func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}
