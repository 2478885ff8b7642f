// Package sync drains partner catalogs into the owner catalog: it pages
// through each partner's products, rewrites SKUs into the partner namespace,
// applies the markup margin and upserts the result.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	gosync "sync"
	"time"

	"partnerbridge/internal/logger"
	"partnerbridge/internal/models"
	"partnerbridge/internal/pagination"
	"partnerbridge/internal/pricing"
	"partnerbridge/internal/services/shopify"
	"partnerbridge/internal/sku"
)

// CatalogClient is the slice of the Shopify client the importer needs.
type CatalogClient interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

// PartnerSource is the slice of the partner store the importer needs.
type PartnerSource interface {
	FindByShop(ctx context.Context, shop string) (*models.Partner, error)
	All(ctx context.Context) ([]models.Partner, error)
	TouchSync(ctx context.Context, shop string, at time.Time) error
}

// ProductSink receives imported items.
type ProductSink interface {
	UpsertBySKU(ctx context.Context, product *models.Product) (bool, error)
}

// Stats summarizes one partner sync.
type Stats struct {
	Shop     string        `json:"shop"`
	Pages    int           `json:"pages"`
	Items    int           `json:"items"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Importer runs catalog syncs. Pages within one partner are fetched strictly
// sequentially; different partners sync concurrently.
type Importer struct {
	partners PartnerSource
	products ProductSink
	pricing  *pricing.Engine
	logger   *logger.Logger

	// newClient builds the catalog client for a partner; swapped in tests.
	newClient func(shop, token string) CatalogClient

	pageSize int
	maxPages int
}

func NewImporter(partners PartnerSource, products ProductSink, pricingEngine *pricing.Engine, logger *logger.Logger) *Importer {
	return &Importer{
		partners: partners,
		products: products,
		pricing:  pricingEngine,
		logger:   logger,
		newClient: func(shop, token string) CatalogClient {
			return shopify.NewClient(shop, token, logger)
		},
		pageSize: pagination.DefaultPageSize,
		maxPages: 200,
	}
}

// SyncPartner imports one partner's catalog.
func (im *Importer) SyncPartner(ctx context.Context, shop string) (*Stats, error) {
	partner, err := im.partners.FindByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	if !partner.Usable() {
		return nil, fmt.Errorf("partner %s is not usable (state=%s)", shop, partner.State())
	}

	start := time.Now()
	client := im.newClient(partner.ShopDomain, *partner.AccessToken)

	stats := &Stats{Shop: shop}

	// Pages are counted here rather than in the extractors, which stay pure.
	query := func(ctx context.Context, variables map[string]interface{}) (shopify.ProductsData, error) {
		var data shopify.ProductsData
		resp, err := client.Execute(ctx, shopify.ProductsQuery, variables)
		if err != nil {
			return data, err
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return data, fmt.Errorf("failed to decode products page: %w", err)
		}
		stats.Pages++
		return data, nil
	}

	items, err := pagination.FetchAllPages(
		ctx,
		query,
		func(d shopify.ProductsData) []shopify.ProductEdge {
			return d.Products.Edges
		},
		func(d shopify.ProductsData) pagination.PageInfo {
			return pagination.PageInfo{
				HasNextPage: d.Products.PageInfo.HasNextPage,
				EndCursor:   d.Products.PageInfo.EndCursor,
			}
		},
		nil,
		pagination.Options{PageSize: im.pageSize, MaxPages: im.maxPages},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog for %s: %w", shop, err)
	}

	for _, edge := range items {
		for _, variant := range edge.Node.Variants.Edges {
			product, err := im.buildProduct(partner.ShopDomain, edge.Node, variant.Node)
			if err != nil {
				im.logger.Warn("Skipping variant %s of %s: %v", variant.Node.ID, shop, err)
				stats.Skipped++
				continue
			}

			created, err := im.products.UpsertBySKU(ctx, product)
			if err != nil {
				im.logger.Error("Failed to upsert %s: %v", product.SKU, err)
				stats.Skipped++
				continue
			}
			stats.Items++
			if created {
				stats.Created++
			} else {
				stats.Updated++
			}
		}
	}

	stats.Duration = time.Since(start)

	if err := im.partners.TouchSync(ctx, shop, time.Now()); err != nil {
		im.logger.Warn("Failed to record sync time for %s: %v", shop, err)
	}

	im.logger.Info("Synced %s: pages=%d items=%d created=%d updated=%d skipped=%d in %s",
		shop, stats.Pages, stats.Items, stats.Created, stats.Updated, stats.Skipped, stats.Duration)

	return stats, nil
}

// SyncAll imports every usable partner's catalog. Partners run concurrently;
// they share no state beyond the sink.
func (im *Importer) SyncAll(ctx context.Context) ([]*Stats, error) {
	partners, err := im.partners.All(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg      gosync.WaitGroup
		mu      gosync.Mutex
		results []*Stats
	)

	for _, partner := range partners {
		if !partner.Usable() {
			im.logger.Debug("Skipping partner %s (state=%s)", partner.ShopDomain, partner.State())
			continue
		}

		wg.Add(1)
		go func(shop string) {
			defer wg.Done()
			stats, err := im.SyncPartner(ctx, shop)
			if err != nil {
				im.logger.Error("Sync failed for %s: %v", shop, err)
				return
			}
			mu.Lock()
			results = append(results, stats)
			mu.Unlock()
		}(partner.ShopDomain)
	}

	wg.Wait()
	return results, nil
}

func (im *Importer) buildProduct(shop string, node shopify.ProductNode, variant shopify.VariantNode) (*models.Product, error) {
	partnerPrice, err := strconv.ParseFloat(variant.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", variant.Price, err)
	}

	sellingPrice, err := im.pricing.SellingPrice(partnerPrice)
	if err != nil {
		return nil, err
	}

	availability := string(models.AvailabilityInStock)
	if variant.InventoryQuantity <= 0 {
		availability = string(models.AvailabilityOutOfStock)
	}

	product := &models.Product{
		PartnerShop:       shop,
		ExternalID:        variant.ID,
		SKU:               sku.Encode(shop, variant.SKU),
		OriginalSKU:       variant.SKU,
		Title:             node.Title,
		PartnerPrice:      partnerPrice,
		Price:             sellingPrice,
		InventoryQuantity: variant.InventoryQuantity,
		Availability:      availability,
	}
	if variant.Title != "" && variant.Title != "Default Title" {
		product.VariantTitle = &variant.Title
	}
	if node.Vendor != "" {
		product.Vendor = &node.Vendor
	}
	if node.ProductType != "" {
		product.ProductType = &node.ProductType
	}

	return product, nil
}
