package shopify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"partnerbridge/internal/config"
	"partnerbridge/internal/logger"
)

// ExchangeResult is a successful code-for-token exchange.
type ExchangeResult struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ExchangeError is a failed exchange. Exchange codes are single-use and
// expire, so this client never retries; retry policy belongs to the caller.
type ExchangeError struct {
	Shop   string
	Reason string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed for %s: %s", e.Shop, e.Reason)
}

type OAuthService struct {
	config     *config.Config
	logger     *logger.Logger
	states     *StateManager
	httpClient *http.Client

	// tokenURL is swapped out in tests to point at a local server.
	tokenURL func(shop string) string
}

func NewOAuthService(cfg *config.Config, logger *logger.Logger) *OAuthService {
	return &OAuthService{
		config: cfg,
		logger: logger,
		states: NewStateManager(cfg.ShopifyClientSecret),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokenURL: func(shop string) string {
			return fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
		},
	}
}

// States exposes the state manager so the callback handler can validate the
// state parameter against the same signing secret.
func (s *OAuthService) States() *StateManager {
	return s.states
}

// InstallURL builds the Shopify OAuth authorization URL for a shop, carrying
// a freshly issued state token and requesting an offline access token.
func (s *OAuthService) InstallURL(shop string) (string, error) {
	domain, err := NormalizeShopDomain(shop)
	if err != nil {
		return "", err
	}

	redirectURI := strings.TrimSuffix(s.config.AppURL, "/") + "/api/v1/shopify/callback"

	q := url.Values{}
	q.Set("client_id", s.config.ShopifyClientID)
	q.Set("scope", s.config.ShopifyScopes)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", s.states.Issue(domain))
	q.Add("grant_options[]", "offline")

	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", domain, q.Encode()), nil
}

// ExchangeCode trades an authorization code for an access token. Failures come
// back as *ExchangeError with a human-readable reason; the HTTP transport is
// hit exactly once.
func (s *OAuthService) ExchangeCode(shop, code string) (*ExchangeResult, error) {
	data := url.Values{}
	data.Set("client_id", s.config.ShopifyClientID)
	data.Set("client_secret", s.config.ShopifyClientSecret)
	data.Set("code", code)

	req, err := http.NewRequest("POST", s.tokenURL(shop), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &ExchangeError{Shop: shop, Reason: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ExchangeError{Shop: shop, Reason: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExchangeError{Shop: shop, Reason: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ExchangeError{Shop: shop, Reason: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body))}
	}

	var result ExchangeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ExchangeError{Shop: shop, Reason: fmt.Sprintf("invalid token response: %v", err)}
	}
	if result.AccessToken == "" {
		return nil, &ExchangeError{Shop: shop, Reason: "token response missing access_token"}
	}

	s.logger.Debug("Exchanged code for %s token (shop=%s, scope=%s)", classifyToken(result.AccessToken), shop, result.Scope)

	return &result, nil
}

// classifyToken labels the token shape for diagnostics. The label never
// changes behavior; both kinds are stored and used the same way.
func classifyToken(token string) string {
	switch {
	case strings.HasPrefix(token, "shpat_"):
		return "offline"
	case strings.HasPrefix(token, "shpua_"):
		return "online"
	default:
		return "unrecognized"
	}
}
