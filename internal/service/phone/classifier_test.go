package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
)

func newTestClassifier() *Classifier {
	return NewClassifier(catalog.Kyrgyzstan().Carriers)
}

func TestClassifier_Normalize(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "+996770123456", "+996770123456"},
		{"country code without plus", "996770123456", "+996770123456"},
		{"national significant number", "770123456", "+996770123456"},
		{"spaces and dashes", "+996 770 123-456", "+996770123456"},
		{"parentheses", "996(770)123456", "+996770123456"},
		{"too short returns input unchanged", "12345", "12345"},
		{"leading zero returns input unchanged", "0770123456", "0770123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Normalize(tt.raw))
		})
	}
}

func TestClassifier_Normalize_Idempotent(t *testing.T) {
	c := newTestClassifier()

	inputs := []string{"+996770123456", "770123456", "996550111222", "bad-input"}
	for _, raw := range inputs {
		once := c.Normalize(raw)
		assert.Equal(t, once, c.Normalize(once), "normalize must be idempotent for %q", raw)
	}
}

func TestClassifier_Validate(t *testing.T) {
	c := newTestClassifier()

	assert.True(t, c.Validate("+996770123456"))
	assert.True(t, c.Validate("770123456"))
	assert.True(t, c.Validate("996 700 111 222"))

	assert.False(t, c.Validate("12345"))
	assert.False(t, c.Validate("0770123456"))
	assert.False(t, c.Validate("+79161234567"))
	assert.False(t, c.Validate(""))
	// Лишняя цифра после кода страны
	assert.False(t, c.Validate("9967701234567"))
}

func TestClassifier_ClassifyCarrier(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		phone   string
		carrier string
	}{
		{"+996770123456", "Beeline KG"},
		{"+996550111222", "MegaCom"},
		{"+996700111222", "O!"},
	}

	for _, tt := range tests {
		t.Run(tt.carrier, func(t *testing.T) {
			carrier, found := c.ClassifyCarrier(tt.phone)
			require.True(t, found)
			assert.Equal(t, tt.carrier, carrier.Name)
		})
	}
}

func TestClassifier_ClassifyCarrier_Unknown(t *testing.T) {
	c := newTestClassifier()

	_, found := c.ClassifyCarrier("+996999123456")
	assert.False(t, found)
}

func TestClassifier_Mask(t *testing.T) {
	c := newTestClassifier()

	assert.Equal(t, "+********3456", c.Mask("+996770123456"))
	assert.Equal(t, "********3456", c.Mask("996770123456"))
	// Четыре и меньше цифр остаются открытыми
	assert.Equal(t, "1236", c.Mask("1236"))
	assert.Equal(t, "456", c.Mask("456"))
}
