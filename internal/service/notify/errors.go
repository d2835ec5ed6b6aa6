package notify

import "errors"

var (
	// ErrInvalidPhone возвращается при невалидном номере телефона
	// Отправка в транспорт при этом не выполняется
	ErrInvalidPhone = errors.New("notify: invalid phone number")

	// ErrTemplateNotFound возвращается, когда шаблон не найден
	// ни на запрошенном языке, ни на языке по умолчанию
	ErrTemplateNotFound = errors.New("notify: template not found")

	// ErrTransport возвращается при ошибке шлюза доставки
	ErrTransport = errors.New("notify: transport error")
)
