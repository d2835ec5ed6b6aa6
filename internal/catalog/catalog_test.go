package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := New(Kyrgyzstan())
	require.NoError(t, err)
	return cat
}

func TestCatalog_Region(t *testing.T) {
	cat := newTestCatalog(t)

	settings, ok := cat.Region(domain.RegionBishkek)
	require.True(t, ok)
	assert.Equal(t, 1.0, settings.Multiplier)
	assert.Equal(t, "KGS", settings.Currency)
	require.NotNil(t, settings.Location())
	assert.Equal(t, "Asia/Bishkek", settings.Location().String())

	_, ok = cat.Region(domain.Region("almaty"))
	assert.False(t, ok)
}

func TestCatalog_Template_LanguageFallback(t *testing.T) {
	cat := newTestCatalog(t)

	ky, ok := cat.Template(TemplateBookingReminder, domain.LanguageKyrgyz)
	require.True(t, ok)
	assert.Contains(t, ky, "Эскертүү")

	// Для неизвестного языка возвращается шаблон языка по умолчанию
	fallback, ok := cat.Template(TemplateBookingReminder, domain.Language("en"))
	require.True(t, ok)
	ru, _ := cat.Template(TemplateBookingReminder, domain.LanguageRussian)
	assert.Equal(t, ru, fallback)

	_, ok = cat.Template("no_such_template", domain.LanguageRussian)
	assert.False(t, ok)
}

func TestCatalog_Message_FallsBackToKey(t *testing.T) {
	cat := newTestCatalog(t)

	msg := cat.Message(MsgNextSteps, domain.LanguageRussian)
	assert.Contains(t, msg, "Мастер")

	// Отсутствующий ключ возвращается как есть
	assert.Equal(t, "no_such_key", cat.Message("no_such_key", domain.LanguageRussian))
}

func TestNew_InvalidTimezone(t *testing.T) {
	cfg := Kyrgyzstan()
	settings := cfg.Regions[domain.RegionOsh]
	settings.Timezone = "Mars/Olympus"
	cfg.Regions[domain.RegionOsh] = settings

	_, err := New(cfg)

	assert.Error(t, err)
}
