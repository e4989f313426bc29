package domain

// CartLine is one purchasable unit of sale in a cart. Name, price and image
// are snapshots taken at add time and are not re-synced from the catalog.
// JSON field names match the snapshot format written to durable storage.
type CartLine struct {
	ProductID      string `json:"id"`
	VariantKey     string `json:"size,omitempty"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"price_cents"`
	Quantity       int    `json:"qty"`
	StockLimit     *int   `json:"stock,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// Key returns the line key identifying this line within a cart.
func (l CartLine) Key() string {
	return LineKey(l.ProductID, l.VariantKey)
}

// LineKey combines product id and variant key into the unique identity of a
// cart line. An absent variant key is an identity of its own, distinct from
// any concrete value.
func LineKey(productID, variantKey string) string {
	if variantKey != "" {
		return productID + "__" + variantKey
	}
	return productID
}

// ClampQuantity constrains qty to [1, stockLimit]. A nil limit means
// unconstrained above 1. A limit of zero or less yields 0: the line must not
// exist at all.
func ClampQuantity(qty int, stockLimit *int) int {
	if qty < 1 {
		qty = 1
	}
	if stockLimit != nil {
		if *stockLimit <= 0 {
			return 0
		}
		if qty > *stockLimit {
			return *stockLimit
		}
	}
	return qty
}
