package sources

import (
	"strings"
	"time"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
)

// SquareExport is the second POS/payments platform export: locations, a
// typed catalog of objects, orders, and an itemized payment feed. Money is
// integer cents inside money objects; line item quantities arrive as
// strings.
type SquareExport struct {
	Locations SquareLocations `json:"locations"`
	Catalog   SquareCatalog   `json:"catalog"`
	Orders    SquareOrders    `json:"orders"`
	Payments  SquarePayments  `json:"payments"`
}

// SquareLocations wraps the location list.
type SquareLocations struct {
	Locations []SquareLocation `json:"locations"`
}

// SquareLocation is one location, the richest vendor source for address
// and timezone.
type SquareLocation struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Address  SquareAddress `json:"address"`
	Timezone string        `json:"timezone"`
}

// SquareAddress is a structured postal address.
type SquareAddress struct {
	AddressLine1 string `json:"address_line_1"`
	Locality     string `json:"locality"`
	State        string `json:"administrative_district_level_1"`
	PostalCode   string `json:"postal_code"`
}

// Format joins the populated address parts into one line.
func (a SquareAddress) Format() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.AddressLine1, a.Locality, a.State, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SquareCatalog wraps the typed object list.
type SquareCatalog struct {
	Objects []SquareCatalogObject `json:"objects"`
}

// SquareCatalogObject is one catalog object, discriminated by Type
// (ITEM, CATEGORY, MODIFIER, ITEM_VARIATION).
type SquareCatalogObject struct {
	Type              string                   `json:"type"`
	ID                string                   `json:"id"`
	ItemData          *SquareItemData          `json:"item_data,omitempty"`
	CategoryData      *SquareCategoryData      `json:"category_data,omitempty"`
	ItemVariationData *SquareItemVariationData `json:"item_variation_data,omitempty"`
}

// SquareItemData is the payload of an ITEM object.
type SquareItemData struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	CategoryID  string                `json:"category_id"`
	Variations  []SquareCatalogObject `json:"variations"`
}

// SquareCategoryData is the payload of a CATEGORY object.
type SquareCategoryData struct {
	Name string `json:"name"`
}

// SquareItemVariationData is the payload of an ITEM_VARIATION object.
type SquareItemVariationData struct {
	ItemID     string      `json:"item_id"`
	Name       string      `json:"name"`
	PriceMoney SquareMoney `json:"price_money"`
}

// SquareMoney is an integer-cents amount.
type SquareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// SquareOrders wraps the order list.
type SquareOrders struct {
	Orders []SquareOrder `json:"orders"`
}

// SquareOrder is one order.
type SquareOrder struct {
	ID            string            `json:"id"`
	LocationID    string            `json:"location_id"`
	CreatedAt     time.Time         `json:"created_at"`
	State         string            `json:"state"`
	Source        SquareOrderSource `json:"source"`
	LineItems     []SquareLineItem  `json:"line_items"`
	TotalMoney    SquareMoney       `json:"total_money"`
	TotalTaxMoney SquareMoney       `json:"total_tax_money"`
	TotalTipMoney SquareMoney       `json:"total_tip_money"`
}

// SquareOrderSource names the channel the order came in on.
type SquareOrderSource struct {
	Name string `json:"name"`
}

// SquareLineItem is one line on an order. CatalogObjectID references the
// purchased ITEM_VARIATION, not the parent ITEM.
type SquareLineItem struct {
	UID             string      `json:"uid"`
	CatalogObjectID string      `json:"catalog_object_id"`
	Name            string      `json:"name"`
	VariationName   string      `json:"variation_name"`
	Quantity        string      `json:"quantity"`
	BasePriceMoney  SquareMoney `json:"base_price_money"`
	TotalMoney      SquareMoney `json:"total_money"`
}

// SquarePayments wraps the payment list.
type SquarePayments struct {
	Payments []SquarePayment `json:"payments"`
}

// SquarePayment is one payment.
type SquarePayment struct {
	ID          string             `json:"id"`
	OrderID     string             `json:"order_id"`
	Status      string             `json:"status"`
	SourceType  string             `json:"source_type"`
	AmountMoney SquareMoney        `json:"amount_money"`
	TipMoney    SquareMoney        `json:"tip_money"`
	CardDetails *SquareCardDetails `json:"card_details,omitempty"`
}

// SquareCardDetails carries the card brand for CARD payments.
type SquareCardDetails struct {
	Card SquareCard `json:"card"`
}

// SquareCard is the card description inside card details.
type SquareCard struct {
	CardBrand string `json:"card_brand"`
}

// CollectSquareItems projects ITEM catalog objects onto RawProductItems,
// deduplicated by lower-cased trimmed name with the first occurrence
// winning. CATEGORY objects become category observations carrying their
// vendor ID so orders can resolve categories by either key.
func CollectSquareItems(export *SquareExport, patterns *match.PatternSet) ([]RawProductItem, []CategoryObservation) {
	if export == nil {
		return nil, nil
	}

	var items []RawProductItem
	var categories []CategoryObservation
	seen := make(map[string]bool)

	for i := range export.Catalog.Objects {
		obj := &export.Catalog.Objects[i]
		switch obj.Type {
		case "CATEGORY":
			if obj.CategoryData == nil || strings.TrimSpace(obj.CategoryData.Name) == "" {
				continue
			}
			categories = append(categories, CategoryObservation{
				Source:   catalog.SourceSquare,
				SourceID: obj.ID,
				Name:     strings.TrimSpace(obj.CategoryData.Name),
				Raw:      obj,
			})

		case "ITEM":
			if obj.ItemData == nil {
				continue
			}
			name := strings.TrimSpace(obj.ItemData.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true

			item := RawProductItem{
				Source:       catalog.SourceSquare,
				SourceID:     obj.ID,
				OriginalName: name,
				BaseName:     name,
				CategoryRef:  obj.ItemData.CategoryID,
				Description:  obj.ItemData.Description,
				Raw:          obj,
			}
			if ex, ok := patterns.Extract(name); ok {
				item.BaseName = ex.BaseName
				item.Variation = ex.Variation
				item.VariationType = ex.Type
				item.HasVariation = ex.Variation != ""
			}
			for _, v := range obj.ItemData.Variations {
				if v.ItemVariationData == nil {
					continue
				}
				item.SourceVariations = append(item.SourceVariations, SourceVariation{
					ID:   v.ID,
					Name: strings.TrimSpace(v.ItemVariationData.Name),
				})
			}
			items = append(items, item)
		}
	}

	return items, categories
}
