package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerbridge/internal/pricing"
)

func TestNewEngineFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		margin float64
		want   float64
	}{
		{name: "valid margin kept", margin: 0.25, want: 0.25},
		{name: "zero kept", margin: 0, want: 0},
		{name: "negative falls back", margin: -0.1, want: pricing.FallbackMargin},
		{name: "one falls back", margin: 1, want: pricing.FallbackMargin},
		{name: "above one falls back", margin: 1.5, want: pricing.FallbackMargin},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pricing.NewEngine(tt.margin).DefaultMargin())
		})
	}
}

func TestSellingPrice(t *testing.T) {
	t.Parallel()

	engine := pricing.NewEngine(0.30)

	tests := []struct {
		name   string
		price  float64
		margin float64
		want   float64
	}{
		{name: "thirty percent margin", price: 70, margin: 0.30, want: 100.00},
		{name: "zero margin passes through", price: 42.50, margin: 0, want: 42.50},
		{name: "rounds down below the half cent", price: 10.004, margin: 0, want: 10.00},
		{name: "rounds up above the half cent", price: 10.006, margin: 0, want: 10.01},
		{name: "divides before rounding", price: 99.99, margin: 0.5, want: 199.98},
		{name: "zero price", price: 0, margin: 0.5, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := engine.SellingPriceWithMargin(tt.price, tt.margin)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSellingPriceUsesDefaultMargin(t *testing.T) {
	t.Parallel()

	engine := pricing.NewEngine(0.30)

	got, err := engine.SellingPrice(70)
	require.NoError(t, err)
	assert.InDelta(t, 100.00, got, 1e-9)
}

func TestSellingPriceDomainErrors(t *testing.T) {
	t.Parallel()

	engine := pricing.NewEngine(0.30)

	tests := []struct {
		name   string
		price  float64
		margin float64
	}{
		{name: "negative price", price: -1, margin: 0.3},
		{name: "margin of one", price: 10, margin: 1},
		{name: "negative margin", price: 10, margin: -0.1},
		{name: "margin above one", price: 10, margin: 1.2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := engine.SellingPriceWithMargin(tt.price, tt.margin)
			require.Error(t, err)

			var domainErr *pricing.DomainError
			assert.ErrorAs(t, err, &domainErr)
		})
	}
}

func TestMarginFromPrices(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.3000, pricing.MarginFromPrices(70, 100.00), 1e-9)
	assert.InDelta(t, 0, pricing.MarginFromPrices(50, 50), 1e-9)

	// Zero selling price is a defined edge case, not an error
	assert.Equal(t, 0.0, pricing.MarginFromPrices(10, 0))
}

// The two transforms are algebraic inverses for valid inputs, within
// rounding tolerance.
func TestMarginRoundTrip(t *testing.T) {
	t.Parallel()

	engine := pricing.NewEngine(0.30)

	for _, margin := range []float64{0, 0.1, 0.25, 0.3333, 0.5, 0.75, 0.99} {
		for _, price := range []float64{0.01, 1, 9.99, 70, 123.45, 10000} {
			selling, err := engine.SellingPriceWithMargin(price, margin)
			require.NoError(t, err)

			recovered := pricing.MarginFromPrices(price, selling)

			// Cent rounding of the selling price bounds how precisely the
			// margin can be recovered; the bound shrinks as prices grow.
			tolerance := math.Max(0.005/math.Max(selling, 0.01), 0.00005)
			assert.InDelta(t, margin, recovered, tolerance,
				"price=%v margin=%v selling=%v", price, margin, recovered)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100.00", pricing.FormatPrice(100))
	assert.Equal(t, "9.99", pricing.FormatPrice(9.99))
	assert.Equal(t, "10.01", pricing.FormatPrice(10.006))
	assert.Equal(t, "0.00", pricing.FormatPrice(0))
}
