package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a partner catalog item imported into the owner catalog. SKU is
// the encoded partner SKU and joins the row back to the originating partner
// item; Price already carries the markup.
type Product struct {
	ID                string    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PartnerShop       string    `json:"partner_shop" gorm:"index;not null"`
	ExternalID        string    `json:"external_id" gorm:"not null"`
	SKU               string    `json:"sku" gorm:"uniqueIndex;not null"`
	OriginalSKU       string    `json:"original_sku"`
	Title             string    `json:"title" gorm:"not null"`
	VariantTitle      *string   `json:"variant_title"`
	Vendor            *string   `json:"vendor"`
	ProductType       *string   `json:"product_type"`
	PartnerPrice      float64   `json:"partner_price" gorm:"type:decimal(10,2)"`
	Price             float64   `json:"price" gorm:"type:decimal(10,2)"`
	Currency          string    `json:"currency" gorm:"default:USD"`
	InventoryQuantity int       `json:"inventory_quantity"`
	Availability      string    `json:"availability" gorm:"default:IN_STOCK"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ProductAvailability string

const (
	AvailabilityInStock    ProductAvailability = "IN_STOCK"
	AvailabilityOutOfStock ProductAvailability = "OUT_OF_STOCK"
)

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
