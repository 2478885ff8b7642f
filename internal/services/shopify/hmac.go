package shopify

import (
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// ValidateHMAC verifies that callback query parameters were signed by the
// platform. The received hmac parameter is removed, the remaining pairs are
// sorted lexicographically by key, joined as key=value with "&", and the
// HMAC-SHA256 hex digest of that string is compared against the received
// value in constant time. Missing hmac parameter is a plain false.
func ValidateHMAC(params url.Values, secret string) bool {
	received := params.Get("hmac")
	if received == "" {
		return false
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "hmac" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params.Get(key))
	}
	message := strings.Join(pairs, "&")

	expected := Sign([]byte(message), []byte(secret))
	return VerifyConstantTime(expected, received)
}

// ValidateWebhookHMAC verifies the X-Shopify-Hmac-Sha256 header over a raw
// webhook body. Webhook signatures are base64, not hex, so the expected
// digest is recomputed in that encoding before the constant-time compare.
func ValidateWebhookHMAC(payload []byte, received, secret string) bool {
	if received == "" {
		return false
	}
	expected := signBase64(payload, []byte(secret))
	return VerifyConstantTime(expected, received)
}

func signBase64(data, secret []byte) string {
	return base64.StdEncoding.EncodeToString(hmacSum(data, secret))
}
