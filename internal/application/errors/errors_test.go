package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reglet-dev/imgres/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	assert.Equal(t, "validation failed: flags: unknown flag: x", NewValidationError("flags", "unknown flag: x").Error())
	assert.Equal(t, "validation failed: manifest: schema (2 issues)",
		NewValidationError("manifest", "schema", "a", "b").Error())
}

func TestConfigurationError(t *testing.T) {
	cause := errors.New("module not found")
	err := NewConfigurationError("module", "failed to get module handle", cause)

	assert.Equal(t, "configuration error (module): failed to get module handle: module not found", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "configuration error (cache_size): negative", NewConfigurationError("cache_size", "negative", nil).Error())
}

func TestKindOf(t *testing.T) {
	cfg := fmt.Errorf("load: %w", NewConfigurationError("module", "missing", nil))
	loader := entities.NewResourceError(entities.KindPlatformLoad, "ResourceBuilder.Load", "failed")
	reserved := entities.NewResourceError(entities.KindReservedValue, "ResourceBuilder.Load", "reserved")

	assert.Equal(t, entities.KindUnclassified, KindOf(nil))
	assert.Equal(t, entities.KindConfiguration, KindOf(cfg))
	assert.Equal(t, entities.KindPlatformLoad, KindOf(loader))
	assert.Equal(t, entities.KindUnclassified, KindOf(errors.New("plain")))

	assert.True(t, IsLoaderFailure(loader))
	assert.False(t, IsResolutionFailure(loader))
	assert.True(t, IsResolutionFailure(reserved))
	assert.False(t, IsResolutionFailure(cfg))
}
