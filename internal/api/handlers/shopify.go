package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"partnerbridge/internal/config"
	"partnerbridge/internal/logger"
	"partnerbridge/internal/models"
	"partnerbridge/internal/services/shopify"
)

// Reason codes surfaced on the connect error page. The callback pipeline
// maps each failing step to exactly one of these.
const (
	ReasonMissingParams = "missing_params"
	ReasonInvalidShop   = "invalid_shop"
	ReasonInvalidHMAC   = "invalid_hmac"
	ReasonInvalidState  = "invalid_state"
	ReasonTokenExchange = "token_exchange"
	ReasonDatabaseError = "database_error"
)

// OAuth is the slice of the OAuth service the handler needs.
type OAuth interface {
	InstallURL(shop string) (string, error)
	ExchangeCode(shop, code string) (*shopify.ExchangeResult, error)
	States() *shopify.StateManager
}

// PartnerWriter persists the onboarding result.
type PartnerWriter interface {
	Upsert(ctx context.Context, shop, token, scope string) (*models.Partner, error)
	SoftDelete(ctx context.Context, shop string) error
}

type ShopifyHandler struct {
	config   *config.Config
	logger   *logger.Logger
	oauth    OAuth
	partners PartnerWriter
}

func NewShopifyHandler(cfg *config.Config, logger *logger.Logger, oauth OAuth, partners PartnerWriter) *ShopifyHandler {
	return &ShopifyHandler{
		config:   cfg,
		logger:   logger,
		oauth:    oauth,
		partners: partners,
	}
}

// Install initiates the OAuth flow for a partner shop.
func (h *ShopifyHandler) Install(c *gin.Context) {
	var request struct {
		ShopDomain string `json:"shop_domain" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authURL, err := h.oauth.InstallURL(request.ShopDomain)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop domain"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"auth_url": authURL,
		"message":  "Redirect the merchant to auth_url to complete the OAuth flow",
	})
}

// Callback handles the OAuth callback. The steps run in fixed order: params,
// shop format, HMAC, state token, code exchange, persistence. The first
// failing step redirects to the error surface with its reason code and no
// later step runs.
func (h *ShopifyHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	shop := c.Query("shop")
	state := c.Query("state")

	if code == "" || shop == "" || state == "" {
		h.fail(c, ReasonMissingParams)
		return
	}

	domain, err := shopify.NormalizeShopDomain(shop)
	if err != nil {
		h.fail(c, ReasonInvalidShop)
		return
	}

	if !shopify.ValidateHMAC(c.Request.URL.Query(), h.config.ShopifyClientSecret) {
		h.fail(c, ReasonInvalidHMAC)
		return
	}

	stateShop, ok := h.oauth.States().Validate(state)
	if !ok || stateShop != domain {
		h.fail(c, ReasonInvalidState)
		return
	}

	result, err := h.oauth.ExchangeCode(domain, code)
	if err != nil {
		h.logger.Error("Token exchange failed: %v", err)
		h.fail(c, ReasonTokenExchange)
		return
	}

	if _, err := h.partners.Upsert(c.Request.Context(), domain, result.AccessToken, result.Scope); err != nil {
		h.logger.Error("Failed to persist partner: %v", err)
		h.fail(c, ReasonDatabaseError)
		return
	}

	c.Redirect(http.StatusFound, "/connect/success?shop="+url.QueryEscape(domain))
}

// Webhook handles platform webhooks. app/uninstalled soft-deletes the
// partner; everything else is acknowledged and ignored.
func (h *ShopifyHandler) Webhook(c *gin.Context) {
	topic := c.GetHeader("X-Shopify-Topic")
	shopDomain := c.GetHeader("X-Shopify-Shop-Domain")
	signature := c.GetHeader("X-Shopify-Hmac-Sha256")

	if topic == "" || shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required headers"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	if !shopify.ValidateWebhookHMAC(payload, signature, h.config.ShopifyClientSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	domain, err := shopify.NormalizeShopDomain(shopDomain)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop domain"})
		return
	}

	switch topic {
	case "app/uninstalled":
		if err := h.partners.SoftDelete(c.Request.Context(), domain); err != nil {
			h.logger.Error("Failed to soft-delete partner %s: %v", domain, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process uninstall"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Partner disconnected"})
	default:
		h.logger.Debug("Unhandled webhook topic: %s", topic)
		c.JSON(http.StatusOK, gin.H{"message": "Webhook received but not processed"})
	}
}

// ConnectError is the single error surface all OAuth failures redirect to.
func (h *ShopifyHandler) ConnectError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "Partner connection failed",
		"reason": c.DefaultQuery("reason", "unknown"),
	})
}

// ConnectSuccess confirms a completed connection.
func (h *ShopifyHandler) ConnectSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Partner store connected",
		"shop":    c.Query("shop"),
	})
}

func (h *ShopifyHandler) fail(c *gin.Context, reason string) {
	h.logger.Warn("OAuth callback rejected: reason=%s", reason)
	c.Redirect(http.StatusFound, "/connect/error?reason="+reason)
}
