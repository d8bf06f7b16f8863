// Package sources defines the typed shapes of the three vendor exports
// (Toast, DoorDash, Square) and projects each of them onto the shared
// RawProductItem form the catalog builder consumes. The projection is the
// only place vendor-specific menu shapes are understood; everything
// downstream is source-agnostic.
package sources

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
)

// json decodes vendor payloads. Order exports run to tens of megabytes, so
// the jsoniter drop-in is used instead of encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawProductItem is the tagged, source-agnostic projection of one distinct
// menu item observed in a vendor feed. BaseName and the extracted variation
// come from the variation pattern engine applied during projection.
type RawProductItem struct {
	Source        catalog.Source
	SourceID      string
	OriginalName  string
	BaseName      string
	Variation     string
	VariationType catalog.VariationType
	HasVariation  bool
	CategoryRef   string
	Description   string
	// SourceVariations are first-class sub-variations the vendor catalog
	// attaches to the item (Square item variations).
	SourceVariations []SourceVariation
	Raw              any
}

// SourceVariation is a vendor-declared sub-variation of an item.
type SourceVariation struct {
	ID   string
	Name string
}

// CategoryObservation is one category seen in a vendor feed. The catalog
// builder normalizes names and keeps the first write per normalized name.
type CategoryObservation struct {
	Source   catalog.Source
	SourceID string
	Name     string
	Raw      any
}

// Inputs bundles the already-parsed vendor payloads for one batch run.
// Nil members mean the vendor contributed no export this batch.
type Inputs struct {
	Toast    *ToastExport
	DoorDash *DoorDashExport
	Square   *SquareExport
}

// DecodeToast decodes a Toast export payload.
func DecodeToast(r io.Reader) (*ToastExport, error) {
	var export ToastExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, err
	}
	return &export, nil
}

// DecodeDoorDash decodes a DoorDash export payload.
func DecodeDoorDash(r io.Reader) (*DoorDashExport, error) {
	var export DoorDashExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, err
	}
	return &export, nil
}

// DecodeSquare decodes a Square export payload.
func DecodeSquare(r io.Reader) (*SquareExport, error) {
	var export SquareExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, err
	}
	return &export, nil
}
