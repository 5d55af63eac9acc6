package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseResourceKind(t *testing.T) {
	tests := []struct {
		input   string
		want    ResourceKind
		wantErr bool
	}{
		{"icon", KindIcon, false},
		{"ICO", KindIcon, false},
		{" cursor ", KindCursor, false},
		{"bmp", KindBitmap, false},
		{"", KindUnknown, false},
		{"png", KindUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResourceKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ResourceKind_ImageType(t *testing.T) {
	assert.Equal(t, ImageIcon, KindIcon.ImageType())
	assert.Equal(t, ImageCursor, KindCursor.ImageType())
	assert.Equal(t, ImageBitmap, KindBitmap.ImageType())
	assert.Equal(t, ImageBitmap, KindUnknown.ImageType())
	assert.Equal(t, "IMAGE_CURSOR", KindCursor.PlatformName())
}

func Test_ResourceKind_JSON(t *testing.T) {
	data, err := json.Marshal(KindCursor)
	require.NoError(t, err)
	assert.Equal(t, `"cursor"`, string(data))

	data, err = json.Marshal(KindUnknown)
	require.NoError(t, err)
	assert.Equal(t, `"unknown"`, string(data))
}
