// Package catalog defines the canonical relational model the reconciliation
// pipeline produces: locations, categories, products, product variations,
// product aliases, orders, order items, and payments. Every record carries
// a generated identifier and an opaque RawData field retaining the original
// vendor record for audit; lineage is preserved, not discarded.
package catalog

import "time"

// Location is the unified identity for a physical restaurant. It holds one
// identifier per vendor plus address and timezone sourced preferentially
// from the richest vendor feed. Created once per configured location entry
// and immutable afterward.
type Location struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ToastID    string `json:"toast_id,omitempty"`
	DoorDashID string `json:"doordash_id,omitempty"`
	SquareID   string `json:"square_id,omitempty"`
	Address    string `json:"address,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	RawData    any    `json:"raw_data,omitempty"`
}

// Category is a canonical menu category, keyed by a normalized name. At
// most one exists per normalized name regardless of source.
type Category struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	RawData        any    `json:"raw_data,omitempty"`
}

// Product is a canonical menu item. It owns zero or more variations and
// zero or more aliases (raw vendor strings that resolve to it).
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id,omitempty"`
	Description string `json:"description,omitempty"`
	RawData     any    `json:"raw_data,omitempty"`
}

// VariationType classifies what a variation differentiates.
type VariationType string

// Variation type tags.
const (
	VariationQuantity VariationType = "quantity"
	VariationSize     VariationType = "size"
	VariationServing  VariationType = "serving"
	VariationStrength VariationType = "strength"
	VariationSemantic VariationType = "semantic"
)

// ProductVariation is a differentiator of a canonical product (size,
// quantity, serving, strength, or an ad-hoc semantic label from a
// configured group). Variation names are unique per product after fuzzy
// deduplication.
type ProductVariation struct {
	ID        string        `json:"id"`
	ProductID string        `json:"product_id"`
	Name      string        `json:"name"`
	Type      VariationType `json:"type,omitempty"`
	RawData   any           `json:"raw_data,omitempty"`
}

// ProductAlias records a raw vendor string as evidence that it resolves to
// a given canonical product. Deduplicated by (name, source).
type ProductAlias struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Source    Source `json:"source"`
	RawData   any    `json:"raw_data,omitempty"`
}

// Order is one vendor order, tagged with its originating source. Money
// fields are integer cents, never floating point. An order with zero
// resolved items is discarded and never persisted.
type Order struct {
	ID         string    `json:"id"`
	Source     Source    `json:"source"`
	LocationID string    `json:"location_id"`
	ExternalID string    `json:"external_id"`
	OrderedAt  time.Time `json:"ordered_at"`
	Status     string    `json:"status,omitempty"`
	Channel    string    `json:"channel,omitempty"`

	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	Tip         int64 `json:"tip"`
	Total       int64 `json:"total"`
	DeliveryFee int64 `json:"delivery_fee,omitempty"`
	Commission  int64 `json:"commission,omitempty"`

	Alcohol  bool `json:"alcohol,omitempty"`
	Catering bool `json:"catering,omitempty"`

	RawData any `json:"raw_data,omitempty"`
}

// OrderItem is one line item or selection. ProductID and VariationID are
// nil when no canonical match was found; the original name is retained
// verbatim for audit either way.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   *string `json:"product_id,omitempty"`
	VariationID *string `json:"variation_id,omitempty"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   int64   `json:"unit_price"`
	Total       int64   `json:"total"`
	RawData     any     `json:"raw_data,omitempty"`
}

// Payment is one settled payment against an order. DoorDash orders carry
// exactly one synthetic payment representing the vendor payout, since the
// vendor, not the merchant, processes payment.
type Payment struct {
	ID         string      `json:"id"`
	OrderID    string      `json:"order_id"`
	Type       PaymentType `json:"type"`
	CardBrand  string      `json:"card_brand,omitempty"`
	Amount     int64       `json:"amount"`
	Tip        int64       `json:"tip,omitempty"`
	Fee        int64       `json:"fee,omitempty"`
	ExternalID string      `json:"external_id,omitempty"`
	RawData    any         `json:"raw_data,omitempty"`
}
