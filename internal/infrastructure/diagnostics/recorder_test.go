package diagnostics

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Recorder(t *testing.T) {
	rec := NewRecorder(slog.LevelDebug)
	logger := rec.Logger().With("origin", "ResourceBuilder.Load")

	logger.Warn("original image width will be used", "check", "dimensions")
	logger.Error("failed to create a handle for the resource")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "ResourceBuilder.Load", entries[0].Origin)
	assert.Equal(t, "dimensions", entries[0].Attrs["check"])
	assert.Len(t, rec.Warnings(), 1)
	assert.Len(t, rec.Errors(), 1)
	assert.Equal(t, []string{
		"original image width will be used",
		"failed to create a handle for the resource",
	}, rec.Messages())

	rec.Reset()
	assert.Empty(t, rec.Entries())
}

func Test_Recorder_Level(t *testing.T) {
	rec := NewRecorder(slog.LevelWarn)
	rec.Logger().Info("dropped")
	assert.Empty(t, rec.Entries())
}
