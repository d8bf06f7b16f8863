package reconciler

import (
	"math"
	"strings"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

// normalizeDoorDash converts marketplace orders. Money is already integer
// cents and passes through untouched. The marketplace settles payment
// itself, so each emitted order carries exactly one synthetic payment for
// the payout, with the commission recorded as the fee.
func (n *normalizer) normalizeDoorDash(export *sources.DoorDashExport) *normalized {
	out := &normalized{}
	if export == nil {
		return out
	}

	dropped := 0
	for oi := range export.Orders {
		src := &export.Orders[oi]

		locationID, ok := n.locations.doordash[src.StoreID]
		if !ok {
			dropped++
			n.logger.Warn().
				Str("order_id", src.ID).
				Str("store_id", src.StoreID).
				Msg("Dropping DoorDash order for unmapped location")
			continue
		}

		orderID := n.newID()
		var items []catalog.OrderItem

		for ii := range src.Items {
			line := &src.Items[ii]
			name := strings.TrimSpace(line.Name)
			if name == "" {
				continue
			}

			// Quantities can be fractional (weighed items); round the
			// extended total once, after multiplying in float.
			item := catalog.OrderItem{
				ID:        n.newID(),
				OrderID:   orderID,
				Name:      name,
				Quantity:  line.Quantity,
				UnitPrice: line.Price,
				Total:     int64(math.Round(float64(line.Price) * line.Quantity)),
				RawData:   line,
			}
			if pid, ok := n.resolveProduct(line.MerchantSuppliedID, name); ok {
				item.ProductID = &pid
				item.VariationID = n.itemVariation(pid, name)
				n.aliases.record(name, catalog.SourceDoorDash, pid, line)
			}
			items = append(items, item)
		}

		if len(items) == 0 {
			dropped++
			n.logger.Debug().Str("order_id", src.ID).Msg("Dropping DoorDash order with no line items")
			continue
		}

		out.Orders = append(out.Orders, catalog.Order{
			ID:          orderID,
			Source:      catalog.SourceDoorDash,
			LocationID:  locationID,
			ExternalID:  src.ID,
			OrderedAt:   src.CreatedAt,
			Status:      src.Status,
			Subtotal:    src.Subtotal,
			Tax:         src.TaxAmount,
			Tip:         src.TipAmount,
			Total:       src.Total,
			DeliveryFee: src.DeliveryFee,
			Commission:  src.Commission,
			Alcohol:     src.ContainsAlcohol,
			Catering:    src.IsCatering,
			RawData:     src,
		})
		out.Items = append(out.Items, items...)
		out.Payments = append(out.Payments, catalog.Payment{
			ID:      n.newID(),
			OrderID: orderID,
			Type:    catalog.PaymentDoorDash,
			Amount:  src.Payout,
			Tip:     src.TipAmount,
			Fee:     src.Commission,
			RawData: src,
		})
	}

	n.logger.Info().
		Int("orders", len(out.Orders)).
		Int("items", len(out.Items)).
		Int("payments", len(out.Payments)).
		Int("dropped", dropped).
		Msg("Normalized DoorDash orders")

	return out
}
