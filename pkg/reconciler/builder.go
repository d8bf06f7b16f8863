package reconciler

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/normalize"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/strdist"
)

// Clustering caps. Tuned empirically against real vendor exports;
// preserved as-is for behavioral compatibility.
const (
	// groupJoinCap is the maximum edit distance at which an unconfigured
	// item joins an existing product group.
	groupJoinCap = 3

	// variationMergeCap is the maximum edit distance at which two
	// variation spellings of the same product collapse into one.
	variationMergeCap = 2
)

// Lookups are the resolution maps the order normalizers probe. ProductMap
// resolves any known key (vendor item ID, vendor variation ID, lower-cased
// original name, lower-cased base name) to a product ID. VariationMap is
// keyed "productID:lowercaseVariationName". CategoryMap resolves a
// normalized category name or a vendor category ID.
type Lookups struct {
	ProductMap   map[string]string
	VariationMap map[string]string
	CategoryMap  map[string]string
}

func newLookups() *Lookups {
	return &Lookups{
		ProductMap:   make(map[string]string),
		VariationMap: make(map[string]string),
		CategoryMap:  make(map[string]string),
	}
}

// buildOutput is what the catalog builder hands the rest of the pipeline.
type buildOutput struct {
	Categories []catalog.Category
	Products   []catalog.Product
	Variations []catalog.ProductVariation
	Lookups    *Lookups
	GroupCount int
}

// builder performs entity resolution: it groups raw vendor items into
// canonical products and materializes categories, products, variations,
// and the lookup maps. Grouping is a single pass in input order; the walk
// order is part of the algorithm's contract.
type builder struct {
	patterns *match.PatternSet
	groups   *match.GroupSet
	newID    catalog.IDGenerator
	aliases  *aliasSet
	logger   *zerolog.Logger
}

// productGroup accumulates the raw items that resolve to one canonical
// product. Configured groups come from the curated group matcher and are
// never subject to edit-distance clustering.
type productGroup struct {
	configured    bool
	canonicalName string
	normKey       string
	members       []groupMember
}

// groupMember pairs a raw item with the variation attributed to it, which
// comes from the group matcher for configured groups and from the pattern
// engine otherwise.
type groupMember struct {
	item          sources.RawProductItem
	variation     string
	variationType catalog.VariationType
	hasVariation  bool
}

func (b *builder) build(items []sources.RawProductItem, categories []sources.CategoryObservation) *buildOutput {
	groups := b.cluster(items)

	out := &buildOutput{
		Lookups:    newLookups(),
		GroupCount: len(groups),
	}
	b.materializeCategories(categories, out)
	b.materializeProducts(groups, out)

	b.logger.Info().
		Int("raw_items", len(items)).
		Int("groups", len(groups)).
		Int("categories", len(out.Categories)).
		Int("variations", len(out.Variations)).
		Msg("Built canonical catalog")

	return out
}

// cluster performs the single grouping pass. Each item first gets a shot
// at a curated group; on a miss it joins the first existing unconfigured
// group within groupJoinCap of its normalized base name, in group
// formation order, or founds a new group.
func (b *builder) cluster(items []sources.RawProductItem) []*productGroup {
	var groups []*productGroup
	configured := make(map[string]*productGroup)

	for _, item := range items {
		if m := b.groups.Match(item.OriginalName); m != nil {
			key := strings.ToLower(m.BaseName)
			g := configured[key]
			if g == nil {
				g = &productGroup{configured: true, canonicalName: m.BaseName}
				configured[key] = g
				groups = append(groups, g)
			}
			g.members = append(g.members, configuredMember(item, m))
			continue
		}

		member := groupMember{
			item:          item,
			variation:     item.Variation,
			variationType: item.VariationType,
			hasVariation:  item.HasVariation,
		}

		key := normalize.Key(item.BaseName)
		opts := &strdist.Options{MaxDistance: groupJoinCap}

		var target *productGroup
		for _, g := range groups {
			if g.configured {
				continue
			}
			if strdist.Distance(key, g.normKey, opts) <= groupJoinCap {
				target = g
				break
			}
		}

		if target == nil {
			groups = append(groups, &productGroup{
				canonicalName: item.BaseName,
				normKey:       key,
				members:       []groupMember{member},
			})
			continue
		}

		target.members = append(target.members, member)
		target.rederiveCanonical()
	}

	return groups
}

// configuredMember attributes a variation to a curated-group member: the
// matcher's derived variation when it produced one, otherwise whatever
// the pattern engine extracted during projection.
func configuredMember(item sources.RawProductItem, m *match.GroupMatch) groupMember {
	member := groupMember{item: item}
	switch {
	case m.VariationOK:
		member.variation = m.Variation
		member.variationType = catalog.VariationSemantic
		member.hasVariation = true
	case item.HasVariation:
		member.variation = item.Variation
		member.variationType = item.VariationType
		member.hasVariation = true
	}
	return member
}

// rederiveCanonical re-picks the group's canonical name from its members'
// raw base names: prefer one starting with an uppercase letter, tie-broken
// by longer length. The scan is stable, so identical input order yields
// identical names.
func (g *productGroup) rederiveCanonical() {
	best := g.members[0].item.BaseName
	for _, m := range g.members[1:] {
		if betterCanonical(m.item.BaseName, best) {
			best = m.item.BaseName
		}
	}
	g.canonicalName = best
	g.normKey = normalize.Key(best)
}

func betterCanonical(cand, best string) bool {
	cu, bu := startsUpper(cand), startsUpper(best)
	if cu != bu {
		return cu
	}
	return len([]rune(cand)) > len([]rune(best))
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// materializeCategories creates one category per normalized name,
// first-write-wins, and registers both the normalized name and any vendor
// category ID in the category map.
func (b *builder) materializeCategories(observations []sources.CategoryObservation, out *buildOutput) {
	byKey := make(map[string]string)

	for _, obs := range observations {
		key := normalize.CategoryKey(obs.Name)
		if key == "" {
			continue
		}

		id, exists := byKey[key]
		if !exists {
			id = b.newID()
			byKey[key] = id
			out.Categories = append(out.Categories, catalog.Category{
				ID:             id,
				Name:           obs.Name,
				NormalizedName: key,
				RawData:        obs.Raw,
			})
			out.Lookups.CategoryMap[key] = id
		}
		if obs.SourceID != "" {
			out.Lookups.CategoryMap[obs.SourceID] = id
		}
	}
}

// materializeProducts turns each group into one canonical product, wiring
// every member's keys into the product map and folding variations through
// the per-product canonicalization.
func (b *builder) materializeProducts(groups []*productGroup, out *buildOutput) {
	for _, g := range groups {
		pid := b.newID()

		product := catalog.Product{
			ID:   pid,
			Name: g.canonicalName,
		}
		if len(g.members) > 0 {
			product.RawData = g.members[0].item.Raw
		}

		folder := &variationFolder{newID: b.newID, keys: make(map[string]*varEntry)}

		for _, m := range g.members {
			item := m.item

			if product.CategoryID == "" && item.CategoryRef != "" {
				product.CategoryID = b.resolveCategory(item.CategoryRef, out.Lookups)
			}
			if product.Description == "" {
				product.Description = item.Description
			}

			if item.SourceID != "" {
				out.Lookups.ProductMap[item.SourceID] = pid
			}
			out.Lookups.ProductMap[strings.ToLower(item.OriginalName)] = pid
			out.Lookups.ProductMap[strings.ToLower(item.BaseName)] = pid
			b.aliases.record(item.OriginalName, item.Source, pid, item.Raw)

			if m.hasVariation {
				if name, typ := b.patterns.NormalizeVariation(m.variation, m.variationType); name != "" {
					folder.fold(name, typ)
				}
			}

			// Vendor sub-variations resolve to the product by their own
			// ID either way; "Regular" is the vendor's spelling of "no
			// variation" and is never materialized.
			for _, sv := range item.SourceVariations {
				if sv.ID != "" {
					out.Lookups.ProductMap[sv.ID] = pid
				}
				if sv.Name == "" || strings.EqualFold(sv.Name, "Regular") {
					continue
				}
				if name, typ := b.patterns.NormalizeVariation(sv.Name, ""); name != "" {
					folder.fold(name, typ)
				}
			}
		}

		out.Products = append(out.Products, product)

		for _, e := range folder.entries {
			out.Variations = append(out.Variations, catalog.ProductVariation{
				ID:        e.id,
				ProductID: pid,
				Name:      e.name,
				Type:      e.typ,
			})
		}
		for key, e := range folder.keys {
			out.Lookups.VariationMap[pid+":"+key] = e.id
		}
	}
}

func (b *builder) resolveCategory(ref string, lookups *Lookups) string {
	if id, ok := lookups.CategoryMap[ref]; ok {
		return id
	}
	if id, ok := lookups.CategoryMap[normalize.CategoryKey(ref)]; ok {
		return id
	}
	return ""
}

// varEntry is one surviving variation spelling for a product.
type varEntry struct {
	id   string
	name string
	typ  catalog.VariationType
}

// variationFolder canonicalizes variation names per product: a new name
// within variationMergeCap of a previously seen one merges into whichever
// spelling is longer, and every lower-case key observed along the way
// keeps resolving to the surviving entry.
type variationFolder struct {
	newID   catalog.IDGenerator
	entries []*varEntry
	keys    map[string]*varEntry
}

func (f *variationFolder) fold(name string, typ catalog.VariationType) *varEntry {
	key := strings.ToLower(name)
	if e, ok := f.keys[key]; ok {
		return e
	}

	opts := &strdist.Options{MaxDistance: variationMergeCap}
	for _, e := range f.entries {
		if strdist.Distance(e.name, name, opts) <= variationMergeCap {
			if len([]rune(name)) > len([]rune(e.name)) {
				f.keys[strings.ToLower(e.name)] = e
				e.name = name
			}
			f.keys[key] = e
			return e
		}
	}

	e := &varEntry{id: f.newID(), name: name, typ: typ}
	f.entries = append(f.entries, e)
	f.keys[key] = e
	return e
}
