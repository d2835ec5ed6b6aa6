package smsgateway

// sendRequest тело запроса к шлюзу
type sendRequest struct {
	To       string            `json:"to"`
	Body     string            `json:"body"`
	Priority string            `json:"priority"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SendResult результат отправки сообщения
type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
