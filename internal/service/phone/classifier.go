package phone

import (
	"strings"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
)

const (
	// CountryCode телефонный код Кыргызстана
	CountryCode = "996"
	// nsnLength длина национального значимого номера
	nsnLength = 9
)

// Classifier нормализует и классифицирует телефонные номера по операторам
type Classifier struct {
	carriers []catalog.CarrierProfile
}

// NewClassifier создает новый классификатор
// Профили операторов берутся из справочника и не меняются после старта
func NewClassifier(carriers []catalog.CarrierProfile) *Classifier {
	return &Classifier{carriers: carriers}
}

// Normalize приводит номер к каноническому виду +996XXXXXXXXX
// Если привести не удается, возвращает вход без изменений:
// ошибка нормализации представима значением, а не исключением
func (c *Classifier) Normalize(raw string) string {
	digits := stripNonDigits(raw)

	switch {
	case strings.HasPrefix(digits, CountryCode):
		return "+" + digits
	case len(digits) == nsnLength:
		return "+" + CountryCode + digits
	default:
		return raw
	}
}

// Validate проверяет, что номер приводится к каноническому виду +996 и 9 цифр
func (c *Classifier) Validate(raw string) bool {
	canonical := c.Normalize(raw)

	if !strings.HasPrefix(canonical, "+"+CountryCode) {
		return false
	}

	nsn := canonical[len("+"+CountryCode):]
	if len(nsn) != nsnLength {
		return false
	}
	for _, r := range nsn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ClassifyCarrier определяет оператора по самому длинному совпавшему префиксу
// При равной длине выигрывает первый оператор в списке
// Если ни один префикс не подошел, возвращает false: вызывающий код
// использует лимиты по умолчанию
func (c *Classifier) ClassifyCarrier(canonical string) (catalog.CarrierProfile, bool) {
	var (
		best      catalog.CarrierProfile
		bestLen   int
		bestFound bool
	)

	for _, carrier := range c.carriers {
		for _, prefix := range carrier.Prefixes {
			if strings.HasPrefix(canonical, prefix) && len(prefix) > bestLen {
				best = carrier
				bestLen = len(prefix)
				bestFound = true
			}
		}
	}

	return best, bestFound
}

// Mask маскирует все цифры номера, кроме последних четырех
// Используется перед записью номера в журнал доставки
func (c *Classifier) Mask(phone string) string {
	runes := []rune(phone)
	digitsSeen := 0

	// Считаем цифры с конца, первые четыре оставляем открытыми
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] < '0' || runes[i] > '9' {
			continue
		}
		digitsSeen++
		if digitsSeen > 4 {
			runes[i] = '*'
		}
	}

	return string(runes)
}

// stripNonDigits удаляет из строки все символы, кроме цифр
func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
