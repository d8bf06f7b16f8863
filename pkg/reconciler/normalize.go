package reconciler

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
)

// locationIndex resolves vendor location identifiers to canonical location
// IDs. Built once from the configured location entries.
type locationIndex struct {
	toast    map[string]string
	doordash map[string]string
	square   map[string]string
}

func newLocationIndex(locations []catalog.Location) *locationIndex {
	idx := &locationIndex{
		toast:    make(map[string]string),
		doordash: make(map[string]string),
		square:   make(map[string]string),
	}
	for _, loc := range locations {
		if loc.ToastID != "" {
			idx.toast[loc.ToastID] = loc.ID
		}
		if loc.DoorDashID != "" {
			idx.doordash[loc.DoorDashID] = loc.ID
		}
		if loc.SquareID != "" {
			idx.square[loc.SquareID] = loc.ID
		}
	}
	return idx
}

// aliasSet collects product aliases deduplicated by (lower-cased name,
// source) across the whole run.
type aliasSet struct {
	newID   catalog.IDGenerator
	seen    map[string]bool
	aliases []catalog.ProductAlias
}

func newAliasSet(newID catalog.IDGenerator) *aliasSet {
	return &aliasSet{newID: newID, seen: make(map[string]bool)}
}

func (s *aliasSet) record(name string, src catalog.Source, productID string, raw any) {
	name = strings.TrimSpace(name)
	if name == "" || productID == "" {
		return
	}
	key := strings.ToLower(name) + "\x00" + string(src)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.aliases = append(s.aliases, catalog.ProductAlias{
		ID:        s.newID(),
		ProductID: productID,
		Name:      name,
		Source:    src,
		RawData:   raw,
	})
}

// normalizer turns one vendor's export into canonical orders, order items,
// and payments using the lookups the builder produced. One instance is
// shared across sources so alias deduplication spans the whole run.
type normalizer struct {
	lookups   *Lookups
	patterns  *match.PatternSet
	locations *locationIndex
	aliases   *aliasSet
	newID     catalog.IDGenerator
	logger    *zerolog.Logger
}

// normalized is one source's contribution to the bundle.
type normalized struct {
	Orders   []catalog.Order
	Items    []catalog.OrderItem
	Payments []catalog.Payment
}

// resolveProduct probes the product map with the strongest key first: the
// vendor record ID, then the lower-cased raw name, then the lower-cased
// base name left after pattern extraction.
func (n *normalizer) resolveProduct(sourceID, name string) (string, bool) {
	if sourceID != "" {
		if id, ok := n.lookups.ProductMap[sourceID]; ok {
			return id, true
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if id, ok := n.lookups.ProductMap[strings.ToLower(name)]; ok {
		return id, true
	}
	if ex, ok := n.patterns.Extract(name); ok {
		if id, ok := n.lookups.ProductMap[strings.ToLower(ex.BaseName)]; ok {
			return id, true
		}
	}
	return "", false
}

// resolveVariation maps a raw variation label onto the product's canonical
// variation, if one survived folding.
func (n *normalizer) resolveVariation(productID, label string, hint catalog.VariationType) *string {
	label = strings.TrimSpace(label)
	if productID == "" || label == "" {
		return nil
	}
	name, _ := n.patterns.NormalizeVariation(label, hint)
	if name == "" {
		return nil
	}
	if id, ok := n.lookups.VariationMap[productID+":"+strings.ToLower(name)]; ok {
		return &id
	}
	return nil
}

// itemVariation extracts a variation label from a raw line name and
// resolves it against the product.
func (n *normalizer) itemVariation(productID, name string) *string {
	if ex, ok := n.patterns.Extract(name); ok && ex.Variation != "" {
		return n.resolveVariation(productID, ex.Variation, ex.Type)
	}
	return nil
}
