package shopify

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// StateTTL is how long an issued state token stays valid.
const StateTTL = 10 * time.Minute

// StateManager issues and validates self-contained OAuth state tokens. A token
// is url-safe base64 of "timestamp:shop:signature" where the signature covers
// "timestamp:shop". Validity is fully recomputable from the token bytes plus
// the signing secret, so no server-side session is needed and concurrent
// handshakes share no state.
type StateManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewStateManager(secret string) *StateManager {
	return &StateManager{
		secret: []byte(secret),
		ttl:    StateTTL,
		now:    time.Now,
	}
}

// Issue builds a signed, time-limited state token for shop.
func (m *StateManager) Issue(shop string) string {
	payload := fmt.Sprintf("%d:%s", m.now().Unix(), shop)
	signature := Sign([]byte(payload), m.secret)
	return base64.URLEncoding.EncodeToString([]byte(payload + ":" + signature))
}

// Validate checks a state token and returns the embedded shop domain. Any
// malformed, expired or tampered token yields ok=false; Validate never panics
// on hostile input.
func (m *StateManager) Validate(token string) (shop string, ok bool) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil || !utf8.Valid(raw) {
		return "", false
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return "", false
	}

	issued, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return "", false
	}

	now := m.now()
	issuedAt := time.Unix(issued, 0)
	if issuedAt.After(now) || now.Sub(issuedAt) > m.ttl {
		return "", false
	}

	expected := Sign([]byte(parts[0]+":"+parts[1]), m.secret)
	if !VerifyConstantTime(expected, parts[2]) {
		return "", false
	}

	return parts[1], true
}
