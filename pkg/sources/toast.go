package sources

import (
	"strings"
	"time"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
)

// ToastExport is the table-service POS export: one restaurant, its
// locations, and orders composed of checks, selections, and payments.
// Money fields arrive as float dollars.
type ToastExport struct {
	Restaurant ToastRestaurant `json:"restaurant"`
	Locations  []ToastLocation `json:"locations"`
	Orders     []ToastOrder    `json:"orders"`
}

// ToastRestaurant identifies the restaurant the export belongs to.
type ToastRestaurant struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

// ToastLocation is one physical location in the export.
type ToastLocation struct {
	GUID     string `json:"guid"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Timezone string `json:"timeZone"`
}

// ToastOrder is one order with its nested checks.
type ToastOrder struct {
	GUID           string       `json:"guid"`
	RestaurantGUID string       `json:"restaurantGuid"`
	OpenedDate     time.Time    `json:"openedDate"`
	Source         string       `json:"source"`
	Voided         bool         `json:"voided"`
	Deleted        bool         `json:"deleted"`
	Checks         []ToastCheck `json:"checks"`
}

// Skip reports whether the order is excluded from normalization and from
// source-side integrity counts.
func (o *ToastOrder) Skip() bool {
	return o.Voided || o.Deleted
}

// ToastCheck is one check on an order.
type ToastCheck struct {
	GUID        string           `json:"guid"`
	Voided      bool             `json:"voided"`
	Deleted     bool             `json:"deleted"`
	Amount      float64          `json:"amount"`
	TaxAmount   float64          `json:"taxAmount"`
	TotalAmount float64          `json:"totalAmount"`
	Selections  []ToastSelection `json:"selections"`
	Payments    []ToastPayment   `json:"payments"`
}

// ToastSelection is one line item, possibly with nested modifiers.
type ToastSelection struct {
	GUID             string           `json:"guid"`
	DisplayName      string           `json:"displayName"`
	Quantity         float64          `json:"quantity"`
	Price            float64          `json:"price"`
	ReceiptLinePrice float64          `json:"receiptLinePrice"`
	Voided           bool             `json:"voided"`
	Item             ToastRef         `json:"item"`
	ItemGroup        ToastRef         `json:"itemGroup"`
	Modifiers        []ToastSelection `json:"modifiers"`
}

// ToastRef is a GUID reference to another Toast entity.
type ToastRef struct {
	GUID string `json:"guid"`
}

// ToastPayment is one payment on a check. Fully-refunded payments do not
// represent settled revenue and are excluded everywhere.
type ToastPayment struct {
	GUID         string  `json:"guid"`
	Type         string  `json:"type"`
	CardType     string  `json:"cardType"`
	Amount       float64 `json:"amount"`
	TipAmount    float64 `json:"tipAmount"`
	RefundStatus string  `json:"refundStatus"`
}

// FullyRefunded reports whether the payment was refunded in full.
func (p *ToastPayment) FullyRefunded() bool {
	return strings.EqualFold(p.RefundStatus, "FULL")
}

// CollectToastItems projects the distinct selection names in a Toast
// export onto RawProductItems. Toast exports carry no separate menu, so
// items are observed through order selections and their modifiers,
// deduplicated by lower-cased trimmed name with the first occurrence
// winning. Toast selections carry no category, so no category
// observations are produced.
func CollectToastItems(export *ToastExport, patterns *match.PatternSet) ([]RawProductItem, []CategoryObservation) {
	if export == nil {
		return nil, nil
	}

	var items []RawProductItem
	seen := make(map[string]bool)

	for oi := range export.Orders {
		order := &export.Orders[oi]
		if order.Skip() {
			continue
		}
		for ci := range order.Checks {
			for si := range order.Checks[ci].Selections {
				items = projectToastSelection(items, &order.Checks[ci].Selections[si], patterns, seen)
			}
		}
	}

	return items, nil
}

func projectToastSelection(items []RawProductItem, sel *ToastSelection, patterns *match.PatternSet, seen map[string]bool) []RawProductItem {
	name := strings.TrimSpace(sel.DisplayName)
	if name == "" || seen[strings.ToLower(name)] {
		return projectToastModifiers(items, sel, patterns, seen)
	}
	seen[strings.ToLower(name)] = true

	item := RawProductItem{
		Source:       catalog.SourceToast,
		SourceID:     sel.Item.GUID,
		OriginalName: name,
		BaseName:     name,
		Raw:          sel,
	}
	if ex, ok := patterns.Extract(name); ok {
		item.BaseName = ex.BaseName
		item.Variation = ex.Variation
		item.VariationType = ex.Type
		item.HasVariation = ex.Variation != ""
	}
	items = append(items, item)

	return projectToastModifiers(items, sel, patterns, seen)
}

func projectToastModifiers(items []RawProductItem, sel *ToastSelection, patterns *match.PatternSet, seen map[string]bool) []RawProductItem {
	for mi := range sel.Modifiers {
		items = projectToastSelection(items, &sel.Modifiers[mi], patterns, seen)
	}
	return items
}
