package shopify

import (
	"fmt"
	"regexp"
	"strings"
)

// PlatformSuffix is the domain suffix shared by every shop on the platform.
const PlatformSuffix = ".myshopify.com"

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// NormalizeShopDomain cleans up a shop domain and validates its format. A bare
// subdomain gets the platform suffix appended before validation, so the
// function is idempotent: normalizing its own output returns the same value.
func NormalizeShopDomain(shop string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(shop))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")

	if s != "" && !strings.HasSuffix(s, PlatformSuffix) {
		s += PlatformSuffix
	}

	if !shopDomainPattern.MatchString(s) {
		return "", fmt.Errorf("invalid shop domain: %q", shop)
	}
	return s, nil
}
