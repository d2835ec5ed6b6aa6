package catalog

import (
	"fmt"
	"time"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

// RegionalSettings настройки региона
type RegionalSettings struct {
	Multiplier    float64
	WorkStartHour int // локальный час начала рабочего дня (включительно)
	WorkEndHour   int // локальный час конца рабочего дня (включительно)
	Currency      string
	Timezone      string

	location *time.Location
}

// Location возвращает загруженную таймзону региона
func (s RegionalSettings) Location() *time.Location {
	return s.location
}

// CarrierProfile профиль мобильного оператора
type CarrierProfile struct {
	Name             string
	Prefixes         []string // префиксы в каноническом формате (+996XXX)
	MaxMessageLength int
	Encoding         string
}

// Catalog неизменяемый справочник регионов, тарифов, операторов и шаблонов
// Строится один раз при старте процесса и передается компонентам через конструкторы
type Catalog struct {
	regions         map[domain.Region]RegionalSettings
	urgency         map[domain.Urgency]float64
	payment         map[domain.PaymentMethod]float64
	commission      map[domain.PaymentMethod]float64
	carriers        []CarrierProfile
	templates       map[templateKey]string
	messages        map[messageKey]string
	defaultLanguage domain.Language
}

type templateKey struct {
	ID       string
	Language domain.Language
}

type messageKey struct {
	Key      string
	Language domain.Language
}

// Config исходные данные справочника
type Config struct {
	Regions         map[domain.Region]RegionalSettings
	Urgency         map[domain.Urgency]float64
	Payment         map[domain.PaymentMethod]float64
	Commission      map[domain.PaymentMethod]float64
	Carriers        []CarrierProfile
	Templates       map[string]map[domain.Language]string
	Messages        map[string]map[domain.Language]string
	DefaultLanguage domain.Language
}

// New строит справочник, загружая таймзоны регионов
func New(cfg Config) (*Catalog, error) {
	c := &Catalog{
		regions:         make(map[domain.Region]RegionalSettings, len(cfg.Regions)),
		urgency:         cfg.Urgency,
		payment:         cfg.Payment,
		commission:      cfg.Commission,
		carriers:        cfg.Carriers,
		templates:       make(map[templateKey]string),
		messages:        make(map[messageKey]string),
		defaultLanguage: cfg.DefaultLanguage,
	}

	for region, settings := range cfg.Regions {
		loc, err := time.LoadLocation(settings.Timezone)
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to load timezone %q for region %q: %w", settings.Timezone, region, err)
		}
		settings.location = loc
		c.regions[region] = settings
	}

	for id, byLang := range cfg.Templates {
		for lang, text := range byLang {
			c.templates[templateKey{ID: id, Language: lang}] = text
		}
	}

	for key, byLang := range cfg.Messages {
		for lang, text := range byLang {
			c.messages[messageKey{Key: key, Language: lang}] = text
		}
	}

	return c, nil
}

// Region возвращает настройки региона
func (c *Catalog) Region(r domain.Region) (RegionalSettings, bool) {
	settings, ok := c.regions[r]
	return settings, ok
}

// UrgencyMultiplier возвращает множитель срочности
func (c *Catalog) UrgencyMultiplier(u domain.Urgency) (float64, bool) {
	m, ok := c.urgency[u]
	return m, ok
}

// PaymentMultiplier возвращает множитель способа оплаты
func (c *Catalog) PaymentMultiplier(p domain.PaymentMethod) (float64, bool) {
	m, ok := c.payment[p]
	return m, ok
}

// CommissionRate возвращает ставку комиссии платформы для способа оплаты
func (c *Catalog) CommissionRate(p domain.PaymentMethod) (float64, bool) {
	rate, ok := c.commission[p]
	return rate, ok
}

// Carriers возвращает профили мобильных операторов
func (c *Catalog) Carriers() []CarrierProfile {
	return c.carriers
}

// DefaultLanguage возвращает язык по умолчанию
func (c *Catalog) DefaultLanguage() domain.Language {
	return c.defaultLanguage
}

// Template возвращает шаблон уведомления для языка
// При отсутствии шаблона на запрошенном языке откатывается на язык по умолчанию
// Второе возвращаемое значение false, если шаблон не найден и на языке по умолчанию
func (c *Catalog) Template(id string, lang domain.Language) (string, bool) {
	if text, ok := c.templates[templateKey{ID: id, Language: lang}]; ok {
		return text, true
	}
	text, ok := c.templates[templateKey{ID: id, Language: c.defaultLanguage}]
	return text, ok
}

// Message возвращает локализованное сообщение по ключу
// При отсутствии перевода откатывается на язык по умолчанию, затем на сам ключ
func (c *Catalog) Message(key string, lang domain.Language) string {
	if text, ok := c.messages[messageKey{Key: key, Language: lang}]; ok {
		return text
	}
	if text, ok := c.messages[messageKey{Key: key, Language: c.defaultLanguage}]; ok {
		return text
	}
	return key
}
