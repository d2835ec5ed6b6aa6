package events

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации события в брокер
	ErrPublish = errors.New("events: failed to publish event")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events: failed to marshal event")
)
