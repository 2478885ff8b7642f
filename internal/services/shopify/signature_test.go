package shopify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerbridge/internal/services/shopify"
)

func TestSign(t *testing.T) {
	t.Parallel()

	digest := shopify.Sign([]byte("hello"), []byte("secret"))
	require.Len(t, digest, 64)

	// Deterministic for fixed inputs
	assert.Equal(t, digest, shopify.Sign([]byte("hello"), []byte("secret")))

	// Sensitive to both data and secret
	assert.NotEqual(t, digest, shopify.Sign([]byte("hello!"), []byte("secret")))
	assert.NotEqual(t, digest, shopify.Sign([]byte("hello"), []byte("secret2")))
}

func TestVerifyConstantTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "equal", a: "abcdef", b: "abcdef", want: true},
		{name: "both empty", a: "", b: "", want: true},
		{name: "differs at start", a: "abcdef", b: "xbcdef", want: false},
		{name: "differs at end", a: "abcdef", b: "abcdex", want: false},
		{name: "length mismatch", a: "abcdef", b: "abcde", want: false},
		{name: "one empty", a: "abc", b: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shopify.VerifyConstantTime(tt.a, tt.b))
		})
	}
}
