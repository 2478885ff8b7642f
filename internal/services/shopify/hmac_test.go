package shopify_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerbridge/internal/services/shopify"
)

const testSecret = "hmac-test-secret"

// webhookSignature computes the base64 body signature the platform sends in
// X-Shopify-Hmac-Sha256.
func webhookSignature(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// signedParams builds a callback parameter set with a valid hmac computed
// over the lexicographically sorted key=value joins.
func signedParams(t *testing.T) url.Values {
	t.Helper()

	params := url.Values{}
	params.Set("code", "authcode123")
	params.Set("shop", "alpha.myshopify.com")
	params.Set("state", "opaque-state-token")
	params.Set("timestamp", "1700000000")

	message := "code=authcode123&shop=alpha.myshopify.com&state=opaque-state-token&timestamp=1700000000"
	params.Set("hmac", shopify.Sign([]byte(message), []byte(testSecret)))
	return params
}

func TestValidateHMAC(t *testing.T) {
	t.Parallel()

	t.Run("accepts correctly signed params", func(t *testing.T) {
		t.Parallel()
		assert.True(t, shopify.ValidateHMAC(signedParams(t), testSecret))
	})

	t.Run("ordering does not matter", func(t *testing.T) {
		t.Parallel()
		// Round-trip through an encoded query string; url.Values has no
		// ordering anyway, so a reparse exercises arbitrary arrival order.
		reparsed, err := url.ParseQuery(signedParams(t).Encode())
		require.NoError(t, err)
		assert.True(t, shopify.ValidateHMAC(reparsed, testSecret))
	})

	t.Run("rejects altered parameter", func(t *testing.T) {
		t.Parallel()
		params := signedParams(t)
		params.Set("shop", "omega.myshopify.com")
		assert.False(t, shopify.ValidateHMAC(params, testSecret))
	})

	t.Run("rejects altered hmac", func(t *testing.T) {
		t.Parallel()
		params := signedParams(t)
		digest := params.Get("hmac")
		flipped := "0"
		if digest[0] == '0' {
			flipped = "1"
		}
		params.Set("hmac", flipped+digest[1:])
		assert.False(t, shopify.ValidateHMAC(params, testSecret))
	})

	t.Run("rejects missing hmac", func(t *testing.T) {
		t.Parallel()
		params := signedParams(t)
		params.Del("hmac")
		assert.False(t, shopify.ValidateHMAC(params, testSecret))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		t.Parallel()
		assert.False(t, shopify.ValidateHMAC(signedParams(t), "other-secret"))
	})

	t.Run("rejects added parameter", func(t *testing.T) {
		t.Parallel()
		params := signedParams(t)
		params.Set("extra", "1")
		assert.False(t, shopify.ValidateHMAC(params, testSecret))
	})
}

func TestValidateWebhookHMAC(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"id":42,"domain":"alpha.myshopify.com"}`)

	t.Run("accepts valid signature", func(t *testing.T) {
		t.Parallel()
		// Webhook signatures are base64; recompute via a signed request the
		// way the platform does.
		header := webhookSignature(payload, testSecret)
		assert.True(t, shopify.ValidateWebhookHMAC(payload, header, testSecret))
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		t.Parallel()
		header := webhookSignature(payload, testSecret)
		assert.False(t, shopify.ValidateWebhookHMAC([]byte(`{"id":43}`), header, testSecret))
	})

	t.Run("rejects empty header", func(t *testing.T) {
		t.Parallel()
		assert.False(t, shopify.ValidateWebhookHMAC(payload, "", testSecret))
	})
}
