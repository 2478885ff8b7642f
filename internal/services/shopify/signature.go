package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the HMAC-SHA256 hex digest of data using secret.
func Sign(data, secret []byte) string {
	return hex.EncodeToString(hmacSum(data, secret))
}

func hmacSum(data, secret []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write(data)
	return h.Sum(nil)
}

// VerifyConstantTime compares two strings in time independent of where they
// first differ. Length mismatch is a plain false, never an error.
func VerifyConstantTime(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
