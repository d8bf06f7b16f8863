package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

// collector walks the vendor payloads in the configured source order and
// produces the flat raw item and category lists the builder groups. The
// order is semantic, not cosmetic: grouping is order-dependent, so a
// different walk order can change which items merge into which product.
type collector struct {
	inputs   *sources.Inputs
	patterns *match.PatternSet
	order    []catalog.Source
	logger   *zerolog.Logger
}

func newCollector(inputs *sources.Inputs, patterns *match.PatternSet, order []catalog.Source, logger *zerolog.Logger) *collector {
	return &collector{
		inputs:   inputs,
		patterns: patterns,
		order:    order,
		logger:   logger,
	}
}

// collect returns all raw product items and category observations, in
// source order then feed order within each source.
func (c *collector) collect() ([]sources.RawProductItem, []sources.CategoryObservation) {
	var items []sources.RawProductItem
	var categories []sources.CategoryObservation

	for _, src := range c.order {
		var srcItems []sources.RawProductItem
		var srcCategories []sources.CategoryObservation

		switch src {
		case catalog.SourceSquare:
			srcItems, srcCategories = sources.CollectSquareItems(c.inputs.Square, c.patterns)
		case catalog.SourceToast:
			srcItems, srcCategories = sources.CollectToastItems(c.inputs.Toast, c.patterns)
		case catalog.SourceDoorDash:
			srcItems, srcCategories = sources.CollectDoorDashItems(c.inputs.DoorDash, c.patterns)
		}

		c.logger.Debug().
			Str("source", src.String()).
			Int("items", len(srcItems)).
			Int("categories", len(srcCategories)).
			Msg("Collected raw items")

		items = append(items, srcItems...)
		categories = append(categories, srcCategories...)
	}

	return items, categories
}
