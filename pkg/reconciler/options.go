package reconciler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/logging"
)

// options holds the reconciler's configurable behavior.
type options struct {
	sourceOrder []catalog.Source
	newID       catalog.IDGenerator
	logger      *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		sourceOrder: []catalog.Source{catalog.SourceSquare, catalog.SourceToast, catalog.SourceDoorDash},
		newID:       catalog.NewID,
		logger:      logging.Default(),
	}
}

// WithSourceOrder overrides the order sources are collected and
// normalized in. Grouping is order-dependent, so changing this changes
// which raw items found groups and which join them; the default order is
// Square, Toast, DoorDash.
func WithSourceOrder(order ...catalog.Source) Option {
	return func(o *options) error {
		if len(order) == 0 {
			return &errors.ValidationError{Field: "source_order", Message: "must name at least one source"}
		}
		seen := make(map[catalog.Source]bool, len(order))
		for _, src := range order {
			if !src.Valid() {
				return &errors.ValidationError{Field: "source_order", Message: fmt.Sprintf("unknown source %q", src)}
			}
			if seen[src] {
				return &errors.ValidationError{Field: "source_order", Message: fmt.Sprintf("source %q listed twice", src)}
			}
			seen[src] = true
		}
		o.sourceOrder = append([]catalog.Source(nil), order...)
		return nil
	}
}

// WithIDGenerator overrides identifier generation, mainly so tests can
// produce stable IDs.
func WithIDGenerator(gen catalog.IDGenerator) Option {
	return func(o *options) error {
		if gen == nil {
			return &errors.ValidationError{Field: "id_generator", Message: "must not be nil"}
		}
		o.newID = gen
		return nil
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "must not be nil"}
		}
		o.logger = logger
		return nil
	}
}
