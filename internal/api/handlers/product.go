package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"partnerbridge/internal/logger"
	"partnerbridge/internal/models"
	"partnerbridge/internal/pricing"
	"partnerbridge/internal/services/shopify"
	"partnerbridge/internal/sku"
	"partnerbridge/internal/store"
)

type ProductHandler struct {
	logger   *logger.Logger
	products *store.ProductStore
}

func NewProductHandler(logger *logger.Logger, products *store.ProductStore) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		products: products,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	products, err := h.products.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": productViews(products),
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
		},
	})
}

// ListByPartner returns the imported items of one partner shop.
func (h *ProductHandler) ListByPartner(c *gin.Context) {
	domain, err := shopify.NormalizeShopDomain(c.Param("shop"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop domain"})
		return
	}

	products, err := h.products.ListByPartner(c.Request.Context(), domain)
	if err != nil {
		h.logger.Error("Failed to list products for %s: %v", domain, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": productViews(products), "shop": domain})
}

// productViews renders items for the API boundary. Prices go out as fixed
// two-decimal strings and the encoded SKU is decoded back into its source
// parts for display.
func productViews(products []models.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		view := gin.H{
			"id":                 p.ID,
			"sku":                p.SKU,
			"title":              p.Title,
			"variant_title":      p.VariantTitle,
			"vendor":             p.Vendor,
			"product_type":       p.ProductType,
			"partner_price":      pricing.FormatPrice(p.PartnerPrice),
			"price":              pricing.FormatPrice(p.Price),
			"currency":           p.Currency,
			"inventory_quantity": p.InventoryQuantity,
			"availability":       p.Availability,
			"updated_at":         p.UpdatedAt,
		}
		if decoded, ok := sku.Decode(p.SKU); ok {
			view["source"] = gin.H{
				"shop":         decoded.Shop,
				"original_sku": decoded.OriginalSKU,
			}
		}
		out = append(out, view)
	}
	return out
}
