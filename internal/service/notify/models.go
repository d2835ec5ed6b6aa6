package notify

import "github.com/aibekm/TezUsta-BookingEngine/internal/domain"

// Priority приоритет доставки уведомления
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// transportClass отображает приоритет в класс доставки шлюза
func transportClass(p Priority) string {
	switch p {
	case PriorityHigh:
		return "transactional"
	case PriorityLow:
		return "bulk"
	default:
		return "standard"
	}
}

// SendRequest запрос на отправку одного уведомления
type SendRequest struct {
	Phone      string
	TemplateID string
	Language   domain.Language
	Variables  map[string]string
	Priority   Priority
}

// SendResult результат отправки одного уведомления
// Ошибка представлена значением: вызывающий код сам решает,
// эскалировать деградацию доставки или проигнорировать
type SendResult struct {
	Success   bool
	MessageID string
	Error     error
}

// BulkResult агрегированный результат массовой рассылки
type BulkResult struct {
	Sent    int
	Failed  int
	Results []SendResult
}
