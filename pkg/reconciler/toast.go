package reconciler

import (
	"strings"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

// normalizeToast flattens Toast orders: each order aggregates its live
// checks, selections and their modifiers become order items, and check
// payments become canonical payments. Voided or deleted orders, checks,
// and selections are skipped; fully-refunded payments are dropped. All
// dollar amounts convert to cents at this boundary.
func (n *normalizer) normalizeToast(export *sources.ToastExport) *normalized {
	out := &normalized{}
	if export == nil {
		return out
	}

	dropped := 0
	for oi := range export.Orders {
		src := &export.Orders[oi]
		if src.Skip() {
			continue
		}

		locationID, ok := n.locations.toast[src.RestaurantGUID]
		if !ok {
			dropped++
			n.logger.Warn().
				Str("order_id", src.GUID).
				Str("restaurant_guid", src.RestaurantGUID).
				Msg("Dropping Toast order for unmapped location")
			continue
		}

		orderID := n.newID()
		order := catalog.Order{
			ID:         orderID,
			Source:     catalog.SourceToast,
			LocationID: locationID,
			ExternalID: src.GUID,
			OrderedAt:  src.OpenedDate,
			Channel:    src.Source,
			RawData:    src,
		}

		var items []catalog.OrderItem
		var payments []catalog.Payment

		for ci := range src.Checks {
			check := &src.Checks[ci]
			if check.Voided || check.Deleted {
				continue
			}

			order.Subtotal += catalog.CentsFromDollars(check.Amount)
			order.Tax += catalog.CentsFromDollars(check.TaxAmount)
			order.Total += catalog.CentsFromDollars(check.TotalAmount)

			for si := range check.Selections {
				items = n.appendToastSelection(items, orderID, &check.Selections[si])
			}

			for pi := range check.Payments {
				pay := &check.Payments[pi]
				if pay.FullyRefunded() {
					continue
				}
				tip := catalog.CentsFromDollars(pay.TipAmount)
				order.Tip += tip
				payments = append(payments, catalog.Payment{
					ID:         n.newID(),
					OrderID:    orderID,
					Type:       toastPaymentType(pay.Type),
					CardBrand:  pay.CardType,
					Amount:     catalog.CentsFromDollars(pay.Amount),
					Tip:        tip,
					ExternalID: pay.GUID,
					RawData:    pay,
				})
			}
		}

		if len(items) == 0 {
			dropped++
			n.logger.Debug().Str("order_id", src.GUID).Msg("Dropping Toast order with no line items")
			continue
		}

		out.Orders = append(out.Orders, order)
		out.Items = append(out.Items, items...)
		out.Payments = append(out.Payments, payments...)
	}

	n.logger.Info().
		Int("orders", len(out.Orders)).
		Int("items", len(out.Items)).
		Int("payments", len(out.Payments)).
		Int("dropped", dropped).
		Msg("Normalized Toast orders")

	return out
}

// appendToastSelection emits one order item for the selection and one for
// each of its modifiers. Unresolved names still produce items with a nil
// product reference.
func (n *normalizer) appendToastSelection(items []catalog.OrderItem, orderID string, sel *sources.ToastSelection) []catalog.OrderItem {
	if sel.Voided {
		return items
	}
	name := strings.TrimSpace(sel.DisplayName)
	if name != "" {
		item := catalog.OrderItem{
			ID:        n.newID(),
			OrderID:   orderID,
			Name:      name,
			Quantity:  sel.Quantity,
			UnitPrice: catalog.CentsFromDollars(sel.Price),
			Total:     catalog.CentsFromDollars(sel.ReceiptLinePrice),
			RawData:   sel,
		}
		if pid, ok := n.resolveProduct(sel.Item.GUID, name); ok {
			item.ProductID = &pid
			item.VariationID = n.itemVariation(pid, name)
			n.aliases.record(name, catalog.SourceToast, pid, sel)
		}
		items = append(items, item)
	}
	for mi := range sel.Modifiers {
		items = n.appendToastSelection(items, orderID, &sel.Modifiers[mi])
	}
	return items
}

// toastPaymentType maps Toast's payment vocabulary onto the canonical
// classification.
func toastPaymentType(t string) catalog.PaymentType {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "CREDIT":
		return catalog.PaymentCredit
	case "CASH":
		return catalog.PaymentCash
	case "WALLET", "APPLE_PAY", "GOOGLE_PAY":
		return catalog.PaymentWallet
	default:
		return catalog.PaymentOther
	}
}
