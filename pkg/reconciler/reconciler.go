// Package reconciler orchestrates the batch pipeline: collect raw vendor
// items, resolve them into canonical products, normalize orders and
// payments per source, and reconcile the produced bundle against the
// source feeds. Processing order across sources is fixed and semantic,
// since product grouping is order-dependent.
package reconciler

import (
	"context"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/config"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

// Reconciler runs the reconciliation pipeline. Construct with New; the
// zero value is not usable.
type Reconciler struct {
	patterns  *match.PatternSet
	groups    *match.GroupSet
	locations *config.LocationsConfig
	opts      *options
}

// New validates and compiles the configuration up front, so a Reconciler
// that constructs successfully cannot fail on matching at run time.
func New(patternCfg *config.PatternConfig, groupCfg *config.GroupConfig, locationCfg *config.LocationsConfig, opts ...Option) (*Reconciler, error) {
	if patternCfg == nil {
		return nil, &errors.ValidationError{Field: "patterns", Message: "pattern config is required"}
	}
	if groupCfg == nil {
		return nil, &errors.ValidationError{Field: "groups", Message: "group config is required"}
	}
	if locationCfg == nil {
		return nil, &errors.ValidationError{Field: "locations", Message: "location config is required"}
	}
	if err := locationCfg.Validate(); err != nil {
		return nil, err
	}

	patterns, err := match.CompilePatterns(patternCfg)
	if err != nil {
		return nil, err
	}
	groups, err := match.CompileGroups(groupCfg)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return &Reconciler{
		patterns:  patterns,
		groups:    groups,
		locations: locationCfg,
		opts:      o,
	}, nil
}

// Reconcile runs the full pipeline over the given vendor payloads and
// returns the canonical bundle with its integrity report. The input
// struct is required; individual vendor exports inside it may be nil.
func (r *Reconciler) Reconcile(ctx context.Context, inputs *sources.Inputs) (*Result, error) {
	if inputs == nil {
		return nil, &errors.ValidationError{Field: "inputs", Message: "inputs are required"}
	}

	result := newResult(r.opts.sourceOrder)
	logger := r.opts.logger
	newID := r.opts.newID

	result.Bundle.Locations = r.buildLocations(inputs, newID)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, categories := newCollector(inputs, r.patterns, r.opts.sourceOrder, logger).collect()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aliases := newAliasSet(newID)
	b := &builder{
		patterns: r.patterns,
		groups:   r.groups,
		newID:    newID,
		aliases:  aliases,
		logger:   logger,
	}
	built := b.build(items, categories)
	result.Bundle.Categories = built.Categories
	result.Bundle.Products = built.Products
	result.Bundle.ProductVariations = built.Variations
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := &normalizer{
		lookups:   built.Lookups,
		patterns:  r.patterns,
		locations: newLocationIndex(result.Bundle.Locations),
		aliases:   aliases,
		newID:     newID,
		logger:    logger,
	}
	for _, src := range r.opts.sourceOrder {
		var part *normalized
		switch src {
		case catalog.SourceSquare:
			part = n.normalizeSquare(inputs.Square)
		case catalog.SourceToast:
			part = n.normalizeToast(inputs.Toast)
		case catalog.SourceDoorDash:
			part = n.normalizeDoorDash(inputs.DoorDash)
		default:
			continue
		}
		result.Bundle.Orders = append(result.Bundle.Orders, part.Orders...)
		result.Bundle.OrderItems = append(result.Bundle.OrderItems, part.Items...)
		result.Bundle.Payments = append(result.Bundle.Payments, part.Payments...)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	result.Bundle.ProductAliases = aliases.aliases

	result.Integrity = CheckIntegrity(inputs, result.Bundle)
	for _, w := range result.Integrity.Warnings {
		logger.Warn().Str("warning", w).Msg("Integrity check")
	}
	logger.Info().
		Bool("success", result.Integrity.Success).
		Interface("counts", result.Bundle.Counts()).
		Msg("Reconciliation complete")

	return result.Finalize(), nil
}

// buildLocations creates one canonical location per configured entry,
// enriched with address and timezone from the richest vendor feed that
// knows the location: Square first, Toast as fallback. DoorDash stores
// fill in only what is still missing.
func (r *Reconciler) buildLocations(inputs *sources.Inputs, newID catalog.IDGenerator) []catalog.Location {
	locations := make([]catalog.Location, 0, len(r.locations.Locations))

	for _, entry := range r.locations.Locations {
		loc := catalog.Location{
			ID:         newID(),
			Name:       entry.Name,
			ToastID:    entry.ToastID,
			DoorDashID: entry.DoorDashID,
			SquareID:   entry.SquareID,
		}

		if inputs.Square != nil && entry.SquareID != "" {
			for i := range inputs.Square.Locations.Locations {
				sq := &inputs.Square.Locations.Locations[i]
				if sq.ID == entry.SquareID {
					loc.Address = sq.Address.Format()
					loc.Timezone = sq.Timezone
					loc.RawData = sq
					break
				}
			}
		}
		if inputs.Toast != nil && entry.ToastID != "" && (loc.Address == "" || loc.Timezone == "") {
			for i := range inputs.Toast.Locations {
				ts := &inputs.Toast.Locations[i]
				if ts.GUID == entry.ToastID {
					if loc.Address == "" {
						loc.Address = ts.Address
					}
					if loc.Timezone == "" {
						loc.Timezone = ts.Timezone
					}
					if loc.RawData == nil {
						loc.RawData = ts
					}
					break
				}
			}
		}
		if inputs.DoorDash != nil && entry.DoorDashID != "" && (loc.Address == "" || loc.Timezone == "") {
			for i := range inputs.DoorDash.Stores {
				st := &inputs.DoorDash.Stores[i]
				if st.ID == entry.DoorDashID {
					if loc.Address == "" {
						loc.Address = st.Address
					}
					if loc.Timezone == "" {
						loc.Timezone = st.Timezone
					}
					if loc.RawData == nil {
						loc.RawData = st
					}
					break
				}
			}
		}

		locations = append(locations, loc)
	}

	return locations
}
