package availability

import "errors"

var (
	// ErrUnknownRegion возвращается, когда регион отсутствует в справочнике
	ErrUnknownRegion = errors.New("availability: unknown region")

	// ErrLookupFailed возвращается при ошибке выборки бронирований из хранилища
	// Ошибка хранилища никогда не трактуется как "слот свободен"
	ErrLookupFailed = errors.New("availability: booking lookup failed")
)
