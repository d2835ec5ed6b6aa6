package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/ptr"
)

// truncationMarker добавляется в конец обрезанного сообщения
const truncationMarker = "..."

// Config настройки диспетчера уведомлений
type Config struct {
	// DefaultMaxMessageLength лимит длины для неизвестного оператора
	DefaultMaxMessageLength int
	// BatchSize размер пачки при массовой рассылке
	BatchSize int
	// BatchDelay пауза между пачками для соблюдения лимитов шлюза
	BatchDelay time.Duration
}

// Dispatcher диспетчер уведомлений
// Рендерит локализованные шаблоны, обрезает сообщения под лимиты оператора,
// отправляет через шлюз и ведет журнал доставки
type Dispatcher struct {
	phones    PhoneClassifier
	catalog   *catalog.Catalog
	transport Transport
	logRepo   DeliveryLogRepository
	metrics   Metrics
	cfg       Config
	logger    Logger
}

// NewDispatcher создает новый диспетчер уведомлений
// metrics может быть nil, если сбор метрик отключен
func NewDispatcher(
	phones PhoneClassifier,
	cat *catalog.Catalog,
	transport Transport,
	logRepo DeliveryLogRepository,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		phones:    phones,
		catalog:   cat,
		transport: transport,
		logRepo:   logRepo,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// Send отправляет одно уведомление
// Ошибка возвращается значением в SendResult и никогда не паникует:
// деградация доставки не должна ломать основную операцию вызывающего кода
func (d *Dispatcher) Send(ctx context.Context, req SendRequest) SendResult {
	// 1. Валидация номера: при невалидном номере шлюз не вызывается
	if !d.phones.Validate(req.Phone) {
		d.logger.Warn("Send: invalid phone %s, template=%s", d.phones.Mask(req.Phone), req.TemplateID)
		return SendResult{Error: fmt.Errorf("%w: %s", ErrInvalidPhone, d.phones.Mask(req.Phone))}
	}
	canonical := d.phones.Normalize(req.Phone)

	// 2. Шаблон с откатом на язык по умолчанию
	template, ok := d.catalog.Template(req.TemplateID, req.Language)
	if !ok {
		d.logger.Warn("Send: template %s not found for language %s", req.TemplateID, req.Language)
		return SendResult{Error: fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplateID)}
	}

	// 3. Подстановка переменных: несовпавшие плейсхолдеры остаются как есть
	body := renderTemplate(template, req.Variables)

	// 4. Обрезка под лимит оператора
	carrierName := "unknown"
	maxLength := d.cfg.DefaultMaxMessageLength
	if carrier, found := d.phones.ClassifyCarrier(canonical); found {
		carrierName = carrier.Name
		maxLength = carrier.MaxMessageLength
	}
	body = truncate(body, maxLength)

	// 5. Отправка через шлюз
	result := SendResult{}
	transportResult, err := d.transport.SendMessage(ctx, canonical, body, transportClass(req.Priority), map[string]string{
		"template": req.TemplateID,
		"language": string(req.Language),
	})
	if err != nil {
		d.logger.Error("Send: transport failed for %s, template=%s: %v", d.phones.Mask(canonical), req.TemplateID, err)
		result.Error = fmt.Errorf("%w: %v", ErrTransport, err)
	} else {
		result.Success = true
		result.MessageID = transportResult.MessageID
	}

	if d.metrics != nil {
		if result.Success {
			d.metrics.ObserveNotificationSent(carrierName, req.TemplateID)
		} else {
			d.metrics.ObserveNotificationFailed(carrierName, req.TemplateID)
		}
	}

	// 6. Запись в журнал доставки независимо от исхода отправки
	// Ошибка записи логируется и не влияет на результат
	d.appendLog(ctx, canonical, carrierName, req, result, len([]rune(body)))

	return result
}

// appendLog пишет запись журнала доставки с маскированным номером
func (d *Dispatcher) appendLog(ctx context.Context, canonical, carrierName string, req SendRequest, result SendResult, messageLength int) {
	entry := &domain.DeliveryLogEntry{
		SentAt:        time.Now().UTC(),
		MaskedPhone:   d.phones.Mask(canonical),
		Carrier:       carrierName,
		TemplateID:    req.TemplateID,
		Language:      req.Language,
		Success:       result.Success,
		MessageLength: messageLength,
	}
	if result.Error != nil {
		entry.Error = ptr.Ptr(result.Error.Error())
	}

	if err := d.logRepo.Append(ctx, entry); err != nil {
		d.logger.Error("Send: failed to append delivery log for %s: %v", entry.MaskedPhone, err)
	}
}

// SendBulk отправляет пачку уведомлений
// Запросы обрабатываются пачками фиксированного размера: внутри пачки
// отправки идут конкурентно, между пачками выдерживается пауза,
// чтобы не превысить лимиты шлюза. Ошибка одного сообщения не прерывает
// ни пачку, ни последующие пачки
func (d *Dispatcher) SendBulk(ctx context.Context, requests []SendRequest) BulkResult {
	results := make([]SendResult, len(requests))

	batchSize := d.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	for offset := 0; offset < len(requests); offset += batchSize {
		end := offset + batchSize
		if end > len(requests) {
			end = len(requests)
		}

		var wg sync.WaitGroup
		for i := offset; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = d.Send(ctx, requests[idx])
			}(i)
		}
		wg.Wait()

		// Пауза между пачками, кроме последней
		if end < len(requests) && d.cfg.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				// Оставшиеся запросы помечаем неотправленными
				for i := end; i < len(requests); i++ {
					results[i] = SendResult{Error: fmt.Errorf("%w: %v", ErrTransport, ctx.Err())}
				}
				return foldResults(results)
			case <-time.After(d.cfg.BatchDelay):
			}
		}
	}

	return foldResults(results)
}

func foldResults(results []SendResult) BulkResult {
	bulk := BulkResult{Results: results}
	for _, r := range results {
		if r.Success {
			bulk.Sent++
		} else {
			bulk.Failed++
		}
	}
	return bulk
}

// renderTemplate подставляет переменные в плейсхолдеры вида {key}
// Плейсхолдеры без соответствующей переменной остаются в тексте как есть
func renderTemplate(template string, variables map[string]string) string {
	if len(variables) == 0 {
		return template
	}

	pairs := make([]string, 0, len(variables)*2)
	for key, value := range variables {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// truncate обрезает сообщение до лимита оператора, добавляя маркер обрезки
// Длина считается в рунах: для UCS-2 кодировки лимит тоже посимвольный
func truncate(body string, maxLength int) string {
	runes := []rune(body)
	if len(runes) <= maxLength {
		return body
	}

	marker := []rune(truncationMarker)
	if maxLength <= len(marker) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(marker)]) + truncationMarker
}
