package catalog

// Bundle is the in-memory output of one batch run: eight ordered
// collections handed to the persistence collaborator and the integrity
// check. Collection order is append order, which is deterministic given a
// fixed source-processing order.
type Bundle struct {
	Locations         []Location         `json:"locations"`
	Categories        []Category         `json:"categories"`
	Products          []Product          `json:"products"`
	ProductVariations []ProductVariation `json:"product_variations"`
	ProductAliases    []ProductAlias     `json:"product_aliases"`
	Orders            []Order            `json:"orders"`
	OrderItems        []OrderItem        `json:"order_items"`
	Payments          []Payment          `json:"payments"`
}

// Counts summarizes collection sizes, used in logs and the integrity
// report.
func (b *Bundle) Counts() map[string]int {
	return map[string]int{
		"locations":          len(b.Locations),
		"categories":         len(b.Categories),
		"products":           len(b.Products),
		"product_variations": len(b.ProductVariations),
		"product_aliases":    len(b.ProductAliases),
		"orders":             len(b.Orders),
		"order_items":        len(b.OrderItems),
		"payments":           len(b.Payments),
	}
}
