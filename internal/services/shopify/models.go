package shopify

// PageInfo mirrors the pageInfo block every Shopify connection returns.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// ProductsData is the decoded data payload of ProductsQuery.
type ProductsData struct {
	Products struct {
		PageInfo PageInfo      `json:"pageInfo"`
		Edges    []ProductEdge `json:"edges"`
	} `json:"products"`
}

type ProductEdge struct {
	Node ProductNode `json:"node"`
}

// ProductNode is a product as returned by the Admin GraphQL API.
type ProductNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Vendor      string `json:"vendor"`
	ProductType string `json:"productType"`
	Status      string `json:"status"`
	Variants    struct {
		Edges []VariantEdge `json:"edges"`
	} `json:"variants"`
}

type VariantEdge struct {
	Node VariantNode `json:"node"`
}

// VariantNode carries the fields the importer needs: SKU, price, inventory.
type VariantNode struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventoryQuantity"`
}
