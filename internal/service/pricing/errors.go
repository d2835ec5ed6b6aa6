package pricing

import "errors"

var (
	// ErrUnknownRegion возвращается, когда регион отсутствует в справочнике
	ErrUnknownRegion = errors.New("pricing: unknown region")

	// ErrUnknownUrgency возвращается, когда срочность отсутствует в справочнике
	ErrUnknownUrgency = errors.New("pricing: unknown urgency")

	// ErrUnknownPaymentMethod возвращается, когда способ оплаты отсутствует в справочнике
	ErrUnknownPaymentMethod = errors.New("pricing: unknown payment method")

	// ErrInvalidBasePrice возвращается при неположительной базовой цене
	ErrInvalidBasePrice = errors.New("pricing: base price must be positive")

	// ErrInvalidDuration возвращается при длительности вне допустимых границ
	ErrInvalidDuration = errors.New("pricing: duration out of range")
)
