package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"partnerbridge/internal/logger"
	"partnerbridge/internal/models"
	"partnerbridge/internal/services/shopify"
	"partnerbridge/internal/store"
)

// PartnerReader is the read side of the partner store.
type PartnerReader interface {
	All(ctx context.Context) ([]models.Partner, error)
	FindByShop(ctx context.Context, shop string) (*models.Partner, error)
}

// SyncPublisher enqueues catalog sync requests for the worker.
type SyncPublisher interface {
	PublishSync(ctx context.Context, shop string) error
}

type PartnerHandler struct {
	logger    *logger.Logger
	partners  PartnerReader
	deleter   PartnerWriter
	publisher SyncPublisher
}

func NewPartnerHandler(logger *logger.Logger, partners PartnerReader, deleter PartnerWriter, publisher SyncPublisher) *PartnerHandler {
	return &PartnerHandler{
		logger:    logger,
		partners:  partners,
		deleter:   deleter,
		publisher: publisher,
	}
}

func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.partners.All(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list partners: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list partners"})
		return
	}

	out := make([]gin.H, 0, len(partners))
	for _, p := range partners {
		out = append(out, partnerView(&p))
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *PartnerHandler) Get(c *gin.Context) {
	domain, err := shopify.NormalizeShopDomain(c.Param("shop"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop domain"})
		return
	}

	partner, err := h.partners.FindByShop(c.Request.Context(), domain)
	if errors.Is(err, store.ErrPartnerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to fetch partner %s: %v", domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partner"})
		return
	}

	c.JSON(http.StatusOK, partnerView(partner))
}

// Sync enqueues a catalog sync for one partner.
func (h *PartnerHandler) Sync(c *gin.Context) {
	domain, err := shopify.NormalizeShopDomain(c.Param("shop"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop domain"})
		return
	}

	partner, err := h.partners.FindByShop(c.Request.Context(), domain)
	if errors.Is(err, store.ErrPartnerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partner"})
		return
	}
	if !partner.Usable() {
		c.JSON(http.StatusConflict, gin.H{"error": "Partner has no usable credential", "state": partner.State()})
		return
	}

	if err := h.publisher.PublishSync(c.Request.Context(), domain); err != nil {
		h.logger.Error("Failed to enqueue sync for %s: %v", domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue sync"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Sync enqueued", "shop": domain})
}

// Delete soft-deletes a partner connection.
func (h *PartnerHandler) Delete(c *gin.Context) {
	domain, err := shopify.NormalizeShopDomain(c.Param("shop"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop domain"})
		return
	}

	if err := h.deleter.SoftDelete(c.Request.Context(), domain); err != nil {
		if errors.Is(err, store.ErrPartnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
			return
		}
		h.logger.Error("Failed to delete partner %s: %v", domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete partner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner disconnected", "shop": domain})
}

func partnerView(p *models.Partner) gin.H {
	return gin.H{
		"id":             p.ID,
		"shop_domain":    p.ShopDomain,
		"scope":          p.Scope,
		"state":          p.State(),
		"active":         p.Active,
		"last_synced_at": p.LastSyncedAt,
		"created_at":     p.CreatedAt,
	}
}
