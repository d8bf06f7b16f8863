package sources

import (
	"strings"
	"time"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
)

// DoorDashExport is the delivery-marketplace feed: merchant, stores, and
// orders with flat item lists. Money fields arrive as integer cents; the
// marketplace, not the merchant, processes payment, so there is no
// itemized payment feed.
type DoorDashExport struct {
	Merchant DoorDashMerchant `json:"merchant"`
	Stores   []DoorDashStore  `json:"stores"`
	Orders   []DoorDashOrder  `json:"orders"`
}

// DoorDashMerchant identifies the merchant account.
type DoorDashMerchant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DoorDashStore is one store in the feed.
type DoorDashStore struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

// DoorDashOrder is one marketplace order.
type DoorDashOrder struct {
	ID              string              `json:"id"`
	StoreID         string              `json:"store_id"`
	CreatedAt       time.Time           `json:"created_at"`
	Status          string              `json:"status"`
	Subtotal        int64               `json:"subtotal"`
	TaxAmount       int64               `json:"tax_amount"`
	TipAmount       int64               `json:"tip_amount"`
	Total           int64               `json:"total"`
	DeliveryFee     int64               `json:"delivery_fee"`
	Commission      int64               `json:"commission"`
	Payout          int64               `json:"payout"`
	ContainsAlcohol bool                `json:"contains_alcohol"`
	IsCatering      bool                `json:"is_catering"`
	Items           []DoorDashOrderItem `json:"order_items"`
}

// DoorDashOrderItem is one line item on a marketplace order.
type DoorDashOrderItem struct {
	ID                 string  `json:"id"`
	MerchantSuppliedID string  `json:"merchant_supplied_id"`
	Name               string  `json:"name"`
	CategoryName       string  `json:"category_name"`
	Description        string  `json:"description"`
	Quantity           float64 `json:"quantity"`
	Price              int64   `json:"price"`
}

// CollectDoorDashItems projects the distinct item names in a DoorDash feed
// onto RawProductItems, deduplicated by lower-cased trimmed name with the
// first occurrence winning. Category names observed on items are collected
// alongside.
func CollectDoorDashItems(export *DoorDashExport, patterns *match.PatternSet) ([]RawProductItem, []CategoryObservation) {
	if export == nil {
		return nil, nil
	}

	var items []RawProductItem
	var categories []CategoryObservation
	seenItems := make(map[string]bool)
	seenCategories := make(map[string]bool)

	for oi := range export.Orders {
		for ii := range export.Orders[oi].Items {
			line := &export.Orders[oi].Items[ii]

			if cat := strings.TrimSpace(line.CategoryName); cat != "" {
				key := strings.ToLower(cat)
				if !seenCategories[key] {
					seenCategories[key] = true
					categories = append(categories, CategoryObservation{
						Source: catalog.SourceDoorDash,
						Name:   cat,
						Raw:    line.CategoryName,
					})
				}
			}

			name := strings.TrimSpace(line.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seenItems[key] {
				continue
			}
			seenItems[key] = true

			item := RawProductItem{
				Source:       catalog.SourceDoorDash,
				SourceID:     line.MerchantSuppliedID,
				OriginalName: name,
				BaseName:     name,
				CategoryRef:  line.CategoryName,
				Description:  line.Description,
				Raw:          line,
			}
			if ex, ok := patterns.Extract(name); ok {
				item.BaseName = ex.BaseName
				item.Variation = ex.Variation
				item.VariationType = ex.Type
				item.HasVariation = ex.Variation != ""
			}
			items = append(items, item)
		}
	}

	return items, categories
}
