package reconciler

import (
	"fmt"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

// IntegrityReport is the result of reconciling the produced bundle against
// the source feeds. Counts are per vendor on the source side; warnings are
// human-readable and non-fatal.
type IntegrityReport struct {
	SourceOrders   map[string]int `json:"source_orders"`
	SourcePayments map[string]int `json:"source_payments"`
	BundleOrders   int            `json:"bundle_orders"`
	BundlePayments int            `json:"bundle_payments"`
	Warnings       []string       `json:"warnings,omitempty"`
	Success        bool           `json:"success"`
}

// CheckIntegrity counts what the source feeds promised and compares
// against what the bundle delivered. Source-side counts apply the same
// exclusions normalization does (voided and deleted Toast records,
// fully-refunded Toast payments), so a clean run reconciles exactly.
// Orders legitimately dropped during normalization still surface here as
// count mismatches; that is the point of the check.
func CheckIntegrity(inputs *sources.Inputs, bundle *catalog.Bundle) *IntegrityReport {
	report := &IntegrityReport{
		SourceOrders:   make(map[string]int),
		SourcePayments: make(map[string]int),
		BundleOrders:   len(bundle.Orders),
		BundlePayments: len(bundle.Payments),
	}

	countToast(inputs.Toast, report)
	countDoorDash(inputs.DoorDash, report)
	countSquare(inputs.Square, report)

	totalOrders := 0
	for _, c := range report.SourceOrders {
		totalOrders += c
	}
	totalPayments := 0
	for _, c := range report.SourcePayments {
		totalPayments += c
	}

	if totalOrders != report.BundleOrders {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"Order count mismatch: sources reported %d (toast=%d doordash=%d square=%d), bundle has %d",
			totalOrders,
			report.SourceOrders[catalog.SourceToast.String()],
			report.SourceOrders[catalog.SourceDoorDash.String()],
			report.SourceOrders[catalog.SourceSquare.String()],
			report.BundleOrders))
	}
	if totalPayments != report.BundlePayments {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"Payment count mismatch: sources reported %d (toast=%d doordash=%d square=%d), bundle has %d",
			totalPayments,
			report.SourcePayments[catalog.SourceToast.String()],
			report.SourcePayments[catalog.SourceDoorDash.String()],
			report.SourcePayments[catalog.SourceSquare.String()],
			report.BundlePayments))
	}

	paid := make(map[string]bool, len(bundle.Payments))
	for i := range bundle.Payments {
		paid[bundle.Payments[i].OrderID] = true
	}
	for i := range bundle.Orders {
		order := &bundle.Orders[i]
		if !paid[order.ID] {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"Order %s (%s %s) has no payments", order.ID, order.Source, order.ExternalID))
		}
	}

	report.Success = len(report.Warnings) == 0
	return report
}

func countToast(export *sources.ToastExport, report *IntegrityReport) {
	src := catalog.SourceToast.String()
	report.SourceOrders[src] = 0
	report.SourcePayments[src] = 0
	if export == nil {
		return
	}
	for oi := range export.Orders {
		order := &export.Orders[oi]
		if order.Skip() {
			continue
		}
		report.SourceOrders[src]++
		for ci := range order.Checks {
			check := &order.Checks[ci]
			if check.Voided || check.Deleted {
				continue
			}
			for pi := range check.Payments {
				if !check.Payments[pi].FullyRefunded() {
					report.SourcePayments[src]++
				}
			}
		}
	}
}

func countDoorDash(export *sources.DoorDashExport, report *IntegrityReport) {
	src := catalog.SourceDoorDash.String()
	report.SourceOrders[src] = 0
	report.SourcePayments[src] = 0
	if export == nil {
		return
	}
	// One synthetic payout payment per marketplace order.
	report.SourceOrders[src] = len(export.Orders)
	report.SourcePayments[src] = len(export.Orders)
}

func countSquare(export *sources.SquareExport, report *IntegrityReport) {
	src := catalog.SourceSquare.String()
	report.SourceOrders[src] = 0
	report.SourcePayments[src] = 0
	if export == nil {
		return
	}
	report.SourceOrders[src] = len(export.Orders.Orders)
	report.SourcePayments[src] = len(export.Payments.Payments)
}
