// Package sku encodes and decodes cross-store SKUs. An encoded SKU of the form
// PARTNER-{shopPrefix}-{originalSku} is the join key between an item in the
// owner catalog and the partner item it was imported from.
package sku

import (
	"regexp"
	"strings"

	"partnerbridge/internal/services/shopify"
)

const (
	// Prefix marks a SKU as partner-encoded.
	Prefix = "PARTNER"
	// Separator joins the prefix, shop prefix and original SKU.
	Separator = "-"
	// MissingPlaceholder stands in for an absent original SKU.
	MissingPlaceholder = "NO-SKU"
)

var (
	invalidChars = regexp.MustCompile(`[^A-Z0-9\-_]`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// ShopPrefix strips the platform domain suffix from a shop domain.
func ShopPrefix(shop string) string {
	return strings.TrimSuffix(shop, shopify.PlatformSuffix)
}

// Normalize maps a native SKU onto the encoded alphabet: uppercase, anything
// outside [A-Z0-9-_] becomes a hyphen, hyphen runs collapse, leading and
// trailing hyphens are trimmed. This is one-way; case and punctuation are not
// recoverable.
func Normalize(raw string) string {
	s := strings.ToUpper(raw)
	s = invalidChars.ReplaceAllString(s, Separator)
	s = dashRuns.ReplaceAllString(s, Separator)
	return strings.Trim(s, Separator)
}

// Encode builds the namespaced SKU for an item of shop. Hyphens in the shop
// prefix are swapped for underscores so the prefix always occupies exactly one
// separator-delimited segment; shop domains cannot contain underscores, so the
// swap is reversible. An empty original SKU gets the fixed placeholder
// segment.
func Encode(shop, originalSKU string) string {
	normalized := Normalize(originalSKU)
	if normalized == "" {
		normalized = MissingPlaceholder
	}
	return Prefix + Separator + escapeShopPrefix(ShopPrefix(shop)) + Separator + normalized
}

// IsEncoded reports whether s carries the partner prefix.
func IsEncoded(s string) bool {
	return strings.HasPrefix(s, Prefix+Separator)
}

// Decoded is the result of taking an encoded SKU apart.
type Decoded struct {
	Shop        string
	OriginalSKU string
}

// Decode splits an encoded SKU back into the originating shop domain and the
// normalized original SKU. The first segment after the prefix is the escaped
// shop prefix; everything after it is rejoined as the original SKU, because a
// normalized SKU may itself contain the separator.
func Decode(s string) (*Decoded, bool) {
	if !IsEncoded(s) {
		return nil, false
	}
	parts := strings.Split(s, Separator)
	if len(parts) < 3 {
		return nil, false
	}
	return &Decoded{
		Shop:        unescapeShopPrefix(parts[1]) + shopify.PlatformSuffix,
		OriginalSKU: strings.Join(parts[2:], Separator),
	}, true
}

func escapeShopPrefix(prefix string) string {
	return strings.ReplaceAll(prefix, Separator, "_")
}

func unescapeShopPrefix(segment string) string {
	return strings.ReplaceAll(segment, "_", Separator)
}
