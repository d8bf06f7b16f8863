package reconciler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/logging"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

func newTestNormalizer(t *testing.T, lookups *Lookups) *normalizer {
	t.Helper()
	patterns, err := match.CompilePatterns(testPatternConfig())
	require.NoError(t, err)

	newID := seqIDs()
	return &normalizer{
		lookups:  lookups,
		patterns: patterns,
		locations: newLocationIndex([]catalog.Location{
			{ID: "loc-1", Name: "Main", ToastID: "T-LOC", DoorDashID: "D-STORE", SquareID: "SQ-LOC"},
		}),
		aliases: newAliasSet(newID),
		newID:   newID,
		logger:  logging.NewNopLogger(),
	}
}

func friesLookups() *Lookups {
	return &Lookups{
		ProductMap: map[string]string{
			"item-fries": "prod-fries",
			"sq-var-lg":  "prod-fries",
			"fries":      "prod-fries",
		},
		VariationMap: map[string]string{"prod-fries:large": "var-lg"},
		CategoryMap:  map[string]string{},
	}
}

func TestNormalizeToast(t *testing.T) {
	n := newTestNormalizer(t, friesLookups())
	opened := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

	export := &sources.ToastExport{
		Orders: []sources.ToastOrder{
			{
				GUID:           "ord-1",
				RestaurantGUID: "T-LOC",
				OpenedDate:     opened,
				Source:         "In Store",
				Checks: []sources.ToastCheck{{
					Amount:      10.00,
					TaxAmount:   0.83,
					TotalAmount: 10.83,
					Selections: []sources.ToastSelection{{
						GUID:             "sel-1",
						DisplayName:      "Fries (lg)",
						Quantity:         2,
						Price:            4.50,
						ReceiptLinePrice: 9.00,
						Item:             sources.ToastRef{GUID: "item-fries"},
						Modifiers: []sources.ToastSelection{{
							DisplayName: "Extra Cheese",
							Quantity:    1,
							Price:       0.50,
						}},
					}},
					Payments: []sources.ToastPayment{
						{GUID: "pay-1", Type: "CREDIT", CardType: "VISA", Amount: 10.83, TipAmount: 1.50},
						{GUID: "pay-2", Type: "CREDIT", Amount: 5.00, RefundStatus: "FULL"},
					},
				}},
			},
			{GUID: "ord-2", RestaurantGUID: "T-LOC", Voided: true, Checks: []sources.ToastCheck{{
				Selections: []sources.ToastSelection{{DisplayName: "Ghost"}},
			}}},
		},
	}

	out := n.normalizeToast(export)
	require.Len(t, out.Orders, 1, "voided order is skipped")

	order := out.Orders[0]
	assert.Equal(t, catalog.SourceToast, order.Source)
	assert.Equal(t, "loc-1", order.LocationID)
	assert.Equal(t, "ord-1", order.ExternalID)
	assert.Equal(t, opened, order.OrderedAt)
	assert.Equal(t, int64(1000), order.Subtotal)
	assert.Equal(t, int64(83), order.Tax)
	assert.Equal(t, int64(1083), order.Total)
	assert.Equal(t, int64(150), order.Tip)

	require.Len(t, out.Items, 2, "selection plus its modifier")
	item := out.Items[0]
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "prod-fries", *item.ProductID)
	require.NotNil(t, item.VariationID)
	assert.Equal(t, "var-lg", *item.VariationID)
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, int64(450), item.UnitPrice)
	assert.Equal(t, int64(900), item.Total)

	assert.Nil(t, out.Items[1].ProductID, "unmatched modifier keeps a nil product")
	assert.Equal(t, "Extra Cheese", out.Items[1].Name)

	require.Len(t, out.Payments, 1, "fully refunded payment is dropped")
	pay := out.Payments[0]
	assert.Equal(t, catalog.PaymentCredit, pay.Type)
	assert.Equal(t, "VISA", pay.CardBrand)
	assert.Equal(t, int64(1083), pay.Amount)
	assert.Equal(t, int64(150), pay.Tip)
}

func TestNormalizeToastDropsOrders(t *testing.T) {
	n := newTestNormalizer(t, friesLookups())

	export := &sources.ToastExport{
		Orders: []sources.ToastOrder{
			// Unmapped location.
			{GUID: "ord-1", RestaurantGUID: "unknown", Checks: []sources.ToastCheck{{
				Selections: []sources.ToastSelection{{DisplayName: "Fries"}},
			}}},
			// No line items at all.
			{GUID: "ord-2", RestaurantGUID: "T-LOC"},
		},
	}

	out := n.normalizeToast(export)
	assert.Empty(t, out.Orders)
	assert.Empty(t, out.Items)
	assert.Empty(t, out.Payments)
}

func TestNormalizeDoorDash(t *testing.T) {
	n := newTestNormalizer(t, friesLookups())
	created := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	export := &sources.DoorDashExport{
		Orders: []sources.DoorDashOrder{
			{
				ID:         "dd-1",
				StoreID:    "D-STORE",
				CreatedAt:  created,
				Status:     "delivered",
				Subtotal:   1400,
				TaxAmount:  116,
				TipAmount:  300,
				Total:      1816,
				Commission: 210,
				Payout:     1606,
				Items: []sources.DoorDashOrderItem{
					{Name: "Fries", Quantity: 2, Price: 450},
					{Name: "Mystery Box", Quantity: 1, Price: 500},
				},
			},
			{ID: "dd-2", StoreID: "nope", Items: []sources.DoorDashOrderItem{{Name: "Fries", Quantity: 1}}},
			{ID: "dd-3", StoreID: "D-STORE"},
		},
	}

	out := n.normalizeDoorDash(export)
	require.Len(t, out.Orders, 1, "unmapped store and empty order are dropped")

	order := out.Orders[0]
	assert.Equal(t, catalog.SourceDoorDash, order.Source)
	assert.Equal(t, int64(1400), order.Subtotal)
	assert.Equal(t, int64(1816), order.Total)
	assert.Equal(t, int64(210), order.Commission)
	assert.Equal(t, created, order.OrderedAt)

	require.Len(t, out.Items, 2)
	require.NotNil(t, out.Items[0].ProductID)
	assert.Equal(t, "prod-fries", *out.Items[0].ProductID)
	assert.Equal(t, int64(900), out.Items[0].Total)
	assert.Nil(t, out.Items[1].ProductID)

	require.Len(t, out.Payments, 1, "exactly one synthetic payout payment")
	pay := out.Payments[0]
	assert.Equal(t, catalog.PaymentDoorDash, pay.Type)
	assert.Equal(t, int64(1606), pay.Amount)
	assert.Equal(t, int64(300), pay.Tip)
	assert.Equal(t, int64(210), pay.Fee)
}

func TestNormalizeDoorDashFractionalQuantity(t *testing.T) {
	n := newTestNormalizer(t, friesLookups())

	export := &sources.DoorDashExport{
		Orders: []sources.DoorDashOrder{{
			ID:      "dd-1",
			StoreID: "D-STORE",
			Items: []sources.DoorDashOrderItem{
				{Name: "Fries", Quantity: 1.5, Price: 450},
				{Name: "Fries", Quantity: 0.25, Price: 999},
			},
		}},
	}

	out := n.normalizeDoorDash(export)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 1.5, out.Items[0].Quantity)
	assert.Equal(t, int64(675), out.Items[0].Total, "fractional quantity must not truncate")
	assert.Equal(t, int64(250), out.Items[1].Total, "extended total rounds to the nearest cent")
}

func TestNormalizeSquare(t *testing.T) {
	n := newTestNormalizer(t, friesLookups())

	export := &sources.SquareExport{
		Orders: sources.SquareOrders{Orders: []sources.SquareOrder{
			{
				ID:         "sq-1",
				LocationID: "SQ-LOC",
				State:      "COMPLETED",
				LineItems: []sources.SquareLineItem{{
					UID:             "li-1",
					CatalogObjectID: "sq-var-lg",
					Name:            "Fries",
					VariationName:   "Large",
					Quantity:        "2",
					BasePriceMoney:  sources.SquareMoney{Amount: 399},
					TotalMoney:      sources.SquareMoney{Amount: 798},
				}},
				TotalMoney:    sources.SquareMoney{Amount: 865},
				TotalTaxMoney: sources.SquareMoney{Amount: 67},
			},
			{ID: "sq-2", LocationID: "unknown", LineItems: []sources.SquareLineItem{{Name: "Fries"}}},
		}},
		Payments: sources.SquarePayments{Payments: []sources.SquarePayment{
			{ID: "pay-1", OrderID: "sq-1", SourceType: "CARD",
				AmountMoney: sources.SquareMoney{Amount: 865},
				CardDetails: &sources.SquareCardDetails{Card: sources.SquareCard{CardBrand: "VISA"}}},
			{ID: "pay-2", OrderID: "sq-2", SourceType: "CASH", AmountMoney: sources.SquareMoney{Amount: 100}},
		}},
	}

	out := n.normalizeSquare(export)
	require.Len(t, out.Orders, 1)

	order := out.Orders[0]
	assert.Equal(t, catalog.SourceSquare, order.Source)
	assert.Equal(t, int64(798), order.Subtotal, "subtotal is derived from totals")
	assert.Equal(t, int64(67), order.Tax)
	assert.Equal(t, int64(865), order.Total)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, 2.0, item.Quantity, "string quantity is coerced")
	require.NotNil(t, item.ProductID)
	assert.Equal(t, "prod-fries", *item.ProductID)
	require.NotNil(t, item.VariationID)
	assert.Equal(t, "var-lg", *item.VariationID)

	require.Len(t, out.Payments, 1, "payments only attach to emitted orders")
	assert.Equal(t, catalog.PaymentCredit, out.Payments[0].Type)
	assert.Equal(t, "VISA", out.Payments[0].CardBrand)
	assert.Equal(t, order.ID, out.Payments[0].OrderID)
}

func TestNormalizeEmitsOrdersWithNoResolvedItems(t *testing.T) {
	requireAllUnresolved := func(t *testing.T, out *normalized, wantItems int) {
		t.Helper()
		require.Len(t, out.Orders, 1, "an order whose items all fail resolution is still emitted")
		require.Len(t, out.Items, wantItems)
		for _, item := range out.Items {
			assert.Nil(t, item.ProductID)
			assert.Nil(t, item.VariationID)
			assert.NotEmpty(t, item.Name, "original name is retained for audit")
		}
	}

	t.Run("toast", func(t *testing.T) {
		n := newTestNormalizer(t, friesLookups())
		out := n.normalizeToast(&sources.ToastExport{
			Orders: []sources.ToastOrder{{
				GUID:           "ord-1",
				RestaurantGUID: "T-LOC",
				Checks: []sources.ToastCheck{{
					Selections: []sources.ToastSelection{
						{DisplayName: "Secret Special", Quantity: 1, Price: 7.00},
						{DisplayName: "Off Menu Combo", Quantity: 1, Price: 3.00},
					},
				}},
			}},
		})
		requireAllUnresolved(t, out, 2)
	})

	t.Run("doordash", func(t *testing.T) {
		n := newTestNormalizer(t, friesLookups())
		out := n.normalizeDoorDash(&sources.DoorDashExport{
			Orders: []sources.DoorDashOrder{{
				ID:      "dd-1",
				StoreID: "D-STORE",
				Items: []sources.DoorDashOrderItem{
					{Name: "Secret Special", Quantity: 1, Price: 700},
				},
			}},
		})
		requireAllUnresolved(t, out, 1)
	})

	t.Run("square", func(t *testing.T) {
		n := newTestNormalizer(t, friesLookups())
		out := n.normalizeSquare(&sources.SquareExport{
			Orders: sources.SquareOrders{Orders: []sources.SquareOrder{{
				ID:         "sq-1",
				LocationID: "SQ-LOC",
				LineItems: []sources.SquareLineItem{{
					UID: "li-1", Name: "Secret Special", Quantity: "1",
					BasePriceMoney: sources.SquareMoney{Amount: 700},
					TotalMoney:     sources.SquareMoney{Amount: 700},
				}},
			}}},
		})
		requireAllUnresolved(t, out, 1)
	})
}

func TestPaymentTypeMappings(t *testing.T) {
	assert.Equal(t, catalog.PaymentCredit, toastPaymentType("CREDIT"))
	assert.Equal(t, catalog.PaymentCash, toastPaymentType("cash"))
	assert.Equal(t, catalog.PaymentWallet, toastPaymentType("APPLE_PAY"))
	assert.Equal(t, catalog.PaymentOther, toastPaymentType("GIFTCARD"))

	assert.Equal(t, catalog.PaymentCredit, squarePaymentType("CARD"))
	assert.Equal(t, catalog.PaymentCash, squarePaymentType("CASH"))
	assert.Equal(t, catalog.PaymentWallet, squarePaymentType("WALLET"))
	assert.Equal(t, catalog.PaymentOther, squarePaymentType("BANK_ACCOUNT"))
}
