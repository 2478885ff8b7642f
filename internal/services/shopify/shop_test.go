package shopify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerbridge/internal/services/shopify"
)

func TestNormalizeShopDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "full domain", in: "alpha.myshopify.com", want: "alpha.myshopify.com"},
		{name: "bare subdomain", in: "alpha", want: "alpha.myshopify.com"},
		{name: "uppercase", in: "Alpha.MyShopify.com", want: "alpha.myshopify.com"},
		{name: "https prefix", in: "https://alpha.myshopify.com/", want: "alpha.myshopify.com"},
		{name: "hyphenated", in: "alpha-store-2", want: "alpha-store-2.myshopify.com"},
		{name: "surrounding whitespace", in: "  alpha  ", want: "alpha.myshopify.com"},
		{name: "empty", in: "", wantErr: true},
		{name: "leading hyphen", in: "-alpha", wantErr: true},
		{name: "foreign domain", in: "shop.example.com", wantErr: true},
		{name: "embedded path", in: "alpha.myshopify.com/admin", wantErr: true},
		{name: "suffix only", in: ".myshopify.com", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := shopify.NormalizeShopDomain(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeShopDomainIdempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"alpha", "alpha.myshopify.com", "https://beta-2.myshopify.com"} {
		first, err := shopify.NormalizeShopDomain(in)
		require.NoError(t, err)

		second, err := shopify.NormalizeShopDomain(first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
