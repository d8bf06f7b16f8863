package reconciler

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

// normalizeSquare converts Square orders and attaches the itemized
// payment feed. The feed reports totals but no subtotal, so subtotal is
// derived as total minus tax minus tip. Line item quantities arrive as
// strings and are coerced numerically. Payments join by order ID and are
// only kept for orders that survived normalization.
func (n *normalizer) normalizeSquare(export *sources.SquareExport) *normalized {
	out := &normalized{}
	if export == nil {
		return out
	}

	// Canonical order IDs by vendor order ID, for payment attachment.
	emitted := make(map[string]string)

	dropped := 0
	for oi := range export.Orders.Orders {
		src := &export.Orders.Orders[oi]

		locationID, ok := n.locations.square[src.LocationID]
		if !ok {
			dropped++
			n.logger.Warn().
				Str("order_id", src.ID).
				Str("location_id", src.LocationID).
				Msg("Dropping Square order for unmapped location")
			continue
		}

		orderID := n.newID()
		var items []catalog.OrderItem

		for li := range src.LineItems {
			line := &src.LineItems[li]
			name := strings.TrimSpace(line.Name)
			if name == "" {
				continue
			}

			item := catalog.OrderItem{
				ID:        n.newID(),
				OrderID:   orderID,
				Name:      name,
				Quantity:  cast.ToFloat64(line.Quantity),
				UnitPrice: line.BasePriceMoney.Amount,
				Total:     line.TotalMoney.Amount,
				RawData:   line,
			}
			if pid, ok := n.resolveProduct(line.CatalogObjectID, name); ok {
				item.ProductID = &pid
				if v := strings.TrimSpace(line.VariationName); v != "" {
					item.VariationID = n.resolveVariation(pid, v, "")
				} else {
					item.VariationID = n.itemVariation(pid, name)
				}
				n.aliases.record(name, catalog.SourceSquare, pid, line)
			}
			items = append(items, item)
		}

		if len(items) == 0 {
			dropped++
			n.logger.Debug().Str("order_id", src.ID).Msg("Dropping Square order with no line items")
			continue
		}

		tax := src.TotalTaxMoney.Amount
		tip := src.TotalTipMoney.Amount
		total := src.TotalMoney.Amount

		out.Orders = append(out.Orders, catalog.Order{
			ID:         orderID,
			Source:     catalog.SourceSquare,
			LocationID: locationID,
			ExternalID: src.ID,
			OrderedAt:  src.CreatedAt,
			Status:     src.State,
			Channel:    src.Source.Name,
			Subtotal:   total - tax - tip,
			Tax:        tax,
			Tip:        tip,
			Total:      total,
			RawData:    src,
		})
		out.Items = append(out.Items, items...)
		emitted[src.ID] = orderID
	}

	attached := 0
	for pi := range export.Payments.Payments {
		pay := &export.Payments.Payments[pi]
		orderID, ok := emitted[pay.OrderID]
		if !ok {
			continue
		}
		payment := catalog.Payment{
			ID:         n.newID(),
			OrderID:    orderID,
			Type:       squarePaymentType(pay.SourceType),
			Amount:     pay.AmountMoney.Amount,
			Tip:        pay.TipMoney.Amount,
			ExternalID: pay.ID,
			RawData:    pay,
		}
		if pay.CardDetails != nil {
			payment.CardBrand = pay.CardDetails.Card.CardBrand
		}
		out.Payments = append(out.Payments, payment)
		attached++
	}

	n.logger.Info().
		Int("orders", len(out.Orders)).
		Int("items", len(out.Items)).
		Int("payments", attached).
		Int("dropped", dropped).
		Msg("Normalized Square orders")

	return out
}

// squarePaymentType maps Square's source_type vocabulary onto the
// canonical classification.
func squarePaymentType(t string) catalog.PaymentType {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "CARD":
		return catalog.PaymentCredit
	case "CASH":
		return catalog.PaymentCash
	case "WALLET":
		return catalog.PaymentWallet
	default:
		return catalog.PaymentOther
	}
}
