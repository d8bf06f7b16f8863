package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "location",
			ID:       "loc-123",
		}
		assert.Equal(t, "location with ID loc-123 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("product", "prod-1")
		assert.Equal(t, "product with ID prod-1 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field path", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "groups[2]",
			Message: "requires at least one of suffix or keywords",
		}
		assert.Equal(t, "validation failed for field groups[2]: requires at least one of suffix or keywords", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("locations", 0, "at least one location required")
		assert.Contains(t, err.Error(), "locations")
		assert.Contains(t, err.Error(), "at least one location required")
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("unexpected token")
	err := pkgerrors.NewConfigError("variation-patterns", "malformed document", base)
	assert.Contains(t, err.Error(), "variation-patterns")
	assert.Contains(t, err.Error(), "malformed document")
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestNotInitializedError(t *testing.T) {
	err := &pkgerrors.NotInitializedError{Component: "pattern set"}
	assert.Equal(t, "pattern set used before initialization", err.Error())
	assert.True(t, pkgerrors.IsNotInitialized(err))
	assert.True(t, errors.Is(err, pkgerrors.ErrNotInitialized))
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "groups.yaml", "bad indent", nil)
		assert.Equal(t, "parse error in yaml file groups.yaml: bad indent", err.Error())
	})

	t.Run("without file", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "", "unexpected EOF", nil)
		assert.Equal(t, "json parse error: unexpected EOF", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("json", "orders.json", nil))
		base := errors.New("boom")
		err := pkgerrors.WrapParse("json", "orders.json", base)
		assert.ErrorIs(t, err, base)
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("read", "/tmp/toast.json", base)
	assert.Contains(t, err.Error(), "read")
	assert.Contains(t, err.Error(), "/tmp/toast.json")
	assert.ErrorIs(t, err, base)
}
