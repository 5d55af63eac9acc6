package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFormats = []string{"table", "json", "yaml", "junit", "sarif"}

func TestCommonOptions_ApplyToContext(t *testing.T) {
	t.Parallel()

	t.Run("with timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 100 * time.Millisecond}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 10*time.Millisecond)
	})

	t.Run("no timeout", func(t *testing.T) {
		t.Parallel()
		opts := CommonOptions{Timeout: 0}
		ctx, cancel := opts.ApplyToContext(context.Background())
		defer cancel()

		_, ok := ctx.Deadline()
		assert.False(t, ok)
	})
}

func TestCommonOptions_ValidateFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    CommonOptions
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid options",
			opts:    CommonOptions{Format: "table"},
			wantErr: false,
		},
		{
			name:    "invalid format",
			opts:    CommonOptions{Format: "xml"},
			wantErr: true,
			errMsg:  "invalid format",
		},
		{
			name:    "negative timeout",
			opts:    CommonOptions{Format: "json", Timeout: -time.Second},
			wantErr: true,
			errMsg:  "timeout",
		},
		{
			name:    "valid format sarif",
			opts:    CommonOptions{Format: "sarif"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.ValidateFlags(testFormats)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultCommonOptions(t *testing.T) {
	t.Parallel()
	opts := DefaultCommonOptions()
	assert.Equal(t, time.Minute, opts.Timeout)
	assert.Equal(t, "table", opts.Format)
	assert.True(t, opts.Indent)
	assert.False(t, opts.NoColor)
}

func TestCommonOptions_OpenOutput(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	opts := CommonOptions{}
	w, closeOutput, err := opts.openOutput(&stdout)
	require.NoError(t, err)
	assert.Same(t, &stdout, w)
	closeOutput()

	opts.OutFile = filepath.Join(t.TempDir(), "report.txt")
	w, closeOutput, err = opts.openOutput(&stdout)
	require.NoError(t, err)
	_, err = w.Write([]byte("ok"))
	require.NoError(t, err)
	closeOutput()

	data, err := os.ReadFile(opts.OutFile)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}
