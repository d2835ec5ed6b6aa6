package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/integrations/smsgateway"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/phone"
)

type sentMessage struct {
	Address       string
	Body          string
	PriorityClass string
	Metadata      map[string]string
}

type fakeTransport struct {
	mu            sync.Mutex
	sent          []sentMessage
	failAddresses map[string]error
	inFlight      int
	maxInFlight   int
}

func (f *fakeTransport) SendMessage(_ context.Context, address, body, priorityClass string, metadata map[string]string) (*smsgateway.SendResult, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	time.Sleep(time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--

	if err, ok := f.failAddresses[address]; ok {
		return nil, err
	}
	f.sent = append(f.sent, sentMessage{Address: address, Body: body, PriorityClass: priorityClass, Metadata: metadata})
	return &smsgateway.SendResult{MessageID: fmt.Sprintf("msg-%d", len(f.sent)), Status: "accepted"}, nil
}

type fakeDeliveryLog struct {
	mu        sync.Mutex
	entries   []*domain.DeliveryLogEntry
	appendErr error
	dayErrors map[string]error
	byDay     map[string][]*domain.DeliveryLogEntry
}

func (f *fakeDeliveryLog) Append(_ context.Context, entry *domain.DeliveryLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeDeliveryLog) GetByDay(_ context.Context, day time.Time) ([]*domain.DeliveryLogEntry, error) {
	key := day.Format(domain.DateFormat)
	if err, ok := f.dayErrors[key]; ok {
		return nil, err
	}
	return f.byDay[key], nil
}

type dispatcherEnv struct {
	dispatcher *Dispatcher
	transport  *fakeTransport
	logRepo    *fakeDeliveryLog
}

func newDispatcherEnv(t *testing.T, cfg Config) *dispatcherEnv {
	t.Helper()
	cat, err := catalog.New(catalog.Kyrgyzstan())
	require.NoError(t, err)

	if cfg.DefaultMaxMessageLength == 0 {
		cfg.DefaultMaxMessageLength = 160
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 10
	}

	transport := &fakeTransport{failAddresses: map[string]error{}}
	logRepo := &fakeDeliveryLog{dayErrors: map[string]error{}, byDay: map[string][]*domain.DeliveryLogEntry{}}

	dispatcher := NewDispatcher(
		phone.NewClassifier(catalog.Kyrgyzstan().Carriers),
		cat,
		transport,
		logRepo,
		nil,
		cfg,
		nopLogger{},
	)

	return &dispatcherEnv{dispatcher: dispatcher, transport: transport, logRepo: logRepo}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedVariables() map[string]string {
	return map[string]string{
		"service_name": "Сантехник",
		"date":         "14.09.2026",
		"time":         "10:00",
		"address":      "ул. Киевская 95",
		"client_name":  "Айбек",
		"client_phone": "+996550111222",
		"total_price":  "950",
		"currency":     "KGS",
	}
}

func TestDispatcher_Send_Success(t *testing.T) {
	env := newDispatcherEnv(t, Config{})

	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "770 123 456",
		TemplateID: catalog.TemplateNewBookingProvider,
		Language:   domain.LanguageRussian,
		Variables:  confirmedVariables(),
		Priority:   PriorityHigh,
	})

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.MessageID)

	require.Len(t, env.transport.sent, 1)
	msg := env.transport.sent[0]
	// Номер приводится к каноническому виду до вызова шлюза
	assert.Equal(t, "+996770123456", msg.Address)
	assert.Equal(t, "transactional", msg.PriorityClass)
	assert.Contains(t, msg.Body, "Сантехник")
	assert.Contains(t, msg.Body, "+996550111222")
	assert.Equal(t, catalog.TemplateNewBookingProvider, msg.Metadata["template"])

	require.Len(t, env.logRepo.entries, 1)
	entry := env.logRepo.entries[0]
	assert.True(t, entry.Success)
	assert.Equal(t, "Beeline KG", entry.Carrier)
	assert.Equal(t, "+********3456", entry.MaskedPhone)
	assert.Nil(t, entry.Error)
	assert.Equal(t, len([]rune(msg.Body)), entry.MessageLength)
}

func TestDispatcher_Send_InvalidPhoneSkipsTransport(t *testing.T) {
	env := newDispatcherEnv(t, Config{})

	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "12345",
		TemplateID: catalog.TemplateBookingReminder,
		Language:   domain.LanguageRussian,
	})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, ErrInvalidPhone)
	// Шлюз не вызывается и журнал не пополняется
	assert.Empty(t, env.transport.sent)
	assert.Empty(t, env.logRepo.entries)
}

func TestDispatcher_Send_TemplateNotFound(t *testing.T) {
	env := newDispatcherEnv(t, Config{})

	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "+996770123456",
		TemplateID: "no_such_template",
		Language:   domain.LanguageRussian,
	})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, ErrTemplateNotFound)
	assert.Empty(t, env.transport.sent)
}

func TestDispatcher_Send_TransportFailureIsLogged(t *testing.T) {
	env := newDispatcherEnv(t, Config{})
	env.transport.failAddresses["+996770123456"] = errors.New("gateway timeout")

	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "+996770123456",
		TemplateID: catalog.TemplateBookingCancelled,
		Language:   domain.LanguageRussian,
		Variables:  map[string]string{"booking_id": "b-1", "reason": "клиент отменил"},
	})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, ErrTransport)

	// Неудачная отправка тоже попадает в журнал
	require.Len(t, env.logRepo.entries, 1)
	entry := env.logRepo.entries[0]
	assert.False(t, entry.Success)
	require.NotNil(t, entry.Error)
	assert.Contains(t, *entry.Error, "gateway timeout")
}

func TestDispatcher_Send_UnmatchedPlaceholdersStayVerbatim(t *testing.T) {
	env := newDispatcherEnv(t, Config{})

	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "+996770123456",
		TemplateID: catalog.TemplateBookingCancelled,
		Language:   domain.LanguageRussian,
		Variables:  map[string]string{"booking_id": "b-42"},
	})

	require.True(t, result.Success)
	require.Len(t, env.transport.sent, 1)
	body := env.transport.sent[0].Body
	assert.Contains(t, body, "b-42")
	assert.Contains(t, body, "{reason}")
}

func TestDispatcher_Send_TruncatesToCarrierLimit(t *testing.T) {
	env := newDispatcherEnv(t, Config{})

	vars := confirmedVariables()
	vars["address"] = strings.Repeat("очень длинный адрес ", 20)

	// O! лимитирует сообщение 140 символами
	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "+996700111222",
		TemplateID: catalog.TemplateNewBookingProvider,
		Language:   domain.LanguageRussian,
		Variables:  vars,
	})

	require.True(t, result.Success)
	require.Len(t, env.transport.sent, 1)
	body := []rune(env.transport.sent[0].Body)
	assert.Len(t, body, 140)
	assert.True(t, strings.HasSuffix(string(body), "..."))
}

func TestDispatcher_Send_LanguageFallback(t *testing.T) {
	env := newDispatcherEnv(t, Config{})

	// Для неизвестного языка используется шаблон языка по умолчанию
	result := env.dispatcher.Send(context.Background(), SendRequest{
		Phone:      "+996770123456",
		TemplateID: catalog.TemplateBookingReminder,
		Language:   domain.Language("en"),
		Variables:  map[string]string{"service_name": "Электрик", "time": "09:00", "address": "мкр. Джал 23"},
	})

	require.True(t, result.Success)
	require.Len(t, env.transport.sent, 1)
	assert.Contains(t, env.transport.sent[0].Body, "Напоминание")
}

func TestDispatcher_SendBulk_BatchesAndCountsFailures(t *testing.T) {
	env := newDispatcherEnv(t, Config{BatchSize: 10})
	env.transport.failAddresses["+996770000003"] = errors.New("rejected")
	env.transport.failAddresses["+996770000017"] = errors.New("rejected")

	requests := make([]SendRequest, 25)
	for i := range requests {
		requests[i] = SendRequest{
			Phone:      fmt.Sprintf("+99677%07d", i),
			TemplateID: catalog.TemplateBookingReminder,
			Language:   domain.LanguageRussian,
			Variables:  map[string]string{"service_name": "Уборка", "time": "12:00", "address": "центр"},
		}
	}

	bulk := env.dispatcher.SendBulk(context.Background(), requests)

	require.Len(t, bulk.Results, 25)
	assert.Equal(t, 23, bulk.Sent)
	assert.Equal(t, 2, bulk.Failed)
	assert.Equal(t, 25, bulk.Sent+bulk.Failed)
	// Конкурентность ограничена размером пачки
	assert.LessOrEqual(t, env.transport.maxInFlight, 10)
}

func TestDispatcher_SendBulk_CancelledContextMarksRemaining(t *testing.T) {
	env := newDispatcherEnv(t, Config{BatchSize: 2, BatchDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requests := make([]SendRequest, 5)
	for i := range requests {
		requests[i] = SendRequest{
			Phone:      fmt.Sprintf("+99677%07d", i),
			TemplateID: catalog.TemplateBookingReminder,
			Language:   domain.LanguageRussian,
		}
	}

	bulk := env.dispatcher.SendBulk(ctx, requests)

	require.Len(t, bulk.Results, 5)
	// Первая пачка успевает до проверки контекста, остальные помечаются ошибкой
	assert.Equal(t, 2, bulk.Sent)
	assert.Equal(t, 3, bulk.Failed)
	for _, r := range bulk.Results[2:] {
		assert.ErrorIs(t, r.Error, ErrTransport)
	}
}
