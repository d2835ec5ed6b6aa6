package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.New(catalog.Kyrgyzstan())
	require.NoError(t, err)
	return NewEngine(cat)
}

func TestEngine_Compute_BaseCase(t *testing.T) {
	engine := newTestEngine(t)

	// 1000 сом/час, 60 минут, Бишкек, обычная срочность, наличные
	quote, err := engine.Compute(Request{
		BasePrice:       1000,
		DurationMinutes: 60,
		Region:          domain.RegionBishkek,
		PaymentMethod:   domain.PaymentCash,
		Urgency:         domain.UrgencyNormal,
	})

	require.NoError(t, err)
	assert.Equal(t, 1000.0, quote.DurationPrice)
	assert.Equal(t, 1.0, quote.RegionalMultiplier)
	assert.Equal(t, 1.0, quote.UrgencyMultiplier)
	assert.Equal(t, 0.95, quote.PaymentMultiplier)
	assert.Equal(t, 950.0, quote.Total)
	assert.Equal(t, "KGS", quote.Currency)
	// Комиссия считается от неокругленной суммы
	assert.InDelta(t, 95.0, quote.Commission, 0.0001)
}

func TestEngine_Compute_AllMultipliers(t *testing.T) {
	engine := newTestEngine(t)

	// 1000 * 1.5 (90 мин) * 0.9 (Ош) * 1.2 (срочно) * 1.02 (кошелек) = 1652.4
	quote, err := engine.Compute(Request{
		BasePrice:       1000,
		DurationMinutes: 90,
		Region:          domain.RegionOsh,
		PaymentMethod:   domain.PaymentMobileWallet,
		Urgency:         domain.UrgencyUrgent,
	})

	require.NoError(t, err)
	assert.Equal(t, 1500.0, quote.DurationPrice)
	assert.Equal(t, 1652.0, quote.Total)
	assert.InDelta(t, 1652.4*0.12, quote.Commission, 0.0001)
}

func TestEngine_Compute_RoundsHalfAwayFromZero(t *testing.T) {
	engine := newTestEngine(t)

	// 1001 * 0.5 = 500.5 -> 501
	quote, err := engine.Compute(Request{
		BasePrice:       1001,
		DurationMinutes: 30,
		Region:          domain.RegionBishkek,
		PaymentMethod:   domain.PaymentCard,
		Urgency:         domain.UrgencyNormal,
	})

	require.NoError(t, err)
	assert.Equal(t, 501.0, quote.Total)
}

func TestEngine_Compute_Deterministic(t *testing.T) {
	engine := newTestEngine(t)

	req := Request{
		BasePrice:       777,
		DurationMinutes: 150,
		Region:          domain.RegionNaryn,
		PaymentMethod:   domain.PaymentCrypto,
		Urgency:         domain.UrgencyASAP,
	}

	first, err := engine.Compute(req)
	require.NoError(t, err)
	second, err := engine.Compute(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Compute_Errors(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name: "non-positive base price",
			req: Request{
				BasePrice:       0,
				DurationMinutes: 60,
				Region:          domain.RegionBishkek,
				PaymentMethod:   domain.PaymentCash,
				Urgency:         domain.UrgencyNormal,
			},
			wantErr: ErrInvalidBasePrice,
		},
		{
			name: "duration below minimum",
			req: Request{
				BasePrice:       1000,
				DurationMinutes: 15,
				Region:          domain.RegionBishkek,
				PaymentMethod:   domain.PaymentCash,
				Urgency:         domain.UrgencyNormal,
			},
			wantErr: ErrInvalidDuration,
		},
		{
			name: "duration above maximum",
			req: Request{
				BasePrice:       1000,
				DurationMinutes: 600,
				Region:          domain.RegionBishkek,
				PaymentMethod:   domain.PaymentCash,
				Urgency:         domain.UrgencyNormal,
			},
			wantErr: ErrInvalidDuration,
		},
		{
			name: "unknown region",
			req: Request{
				BasePrice:       1000,
				DurationMinutes: 60,
				Region:          domain.Region("moscow"),
				PaymentMethod:   domain.PaymentCash,
				Urgency:         domain.UrgencyNormal,
			},
			wantErr: ErrUnknownRegion,
		},
		{
			name: "unknown urgency",
			req: Request{
				BasePrice:       1000,
				DurationMinutes: 60,
				Region:          domain.RegionBishkek,
				PaymentMethod:   domain.PaymentCash,
				Urgency:         domain.Urgency("sometime"),
			},
			wantErr: ErrUnknownUrgency,
		},
		{
			name: "unknown payment method",
			req: Request{
				BasePrice:       1000,
				DurationMinutes: 60,
				Region:          domain.RegionBishkek,
				PaymentMethod:   domain.PaymentMethod("barter"),
				Urgency:         domain.UrgencyNormal,
			},
			wantErr: ErrUnknownPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compute(tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
