package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LoadFlags_Set(t *testing.T) {
	var f LoadFlags
	assert.False(t, f.Has(FlagShared))
	assert.Equal(t, "none", f.String())

	f = f.With(FlagShared).With(FlagMonochrome)
	assert.True(t, f.Has(FlagShared))
	assert.True(t, f.Has(FlagShared|FlagMonochrome))
	assert.False(t, f.Has(FlagShared|FlagVGAColors))
	assert.Equal(t, "monochrome|shared", f.String())

	f = f.Without(FlagShared)
	assert.False(t, f.Has(FlagShared))
}

func Test_LoadFlags_PlatformValues(t *testing.T) {
	assert.Equal(t, LoadFlags(0x8000), FlagShared)
	assert.Equal(t, LoadFlags(0x0010), FlagLoadFromFile)
	assert.Equal(t, LoadFlags(0x2000), FlagCreateDIBSection)
}

func Test_ParseLoadFlag(t *testing.T) {
	f, ok := ParseLoadFlag("Default_Size")
	assert.True(t, ok)
	assert.Equal(t, FlagDefaultSize, f)

	_, ok = ParseLoadFlag("load_from_file")
	assert.False(t, ok, "load_from_file is internal")

	_, ok = ParseLoadFlag("sparkle")
	assert.False(t, ok)
}
