package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	apperrors "github.com/reglet-dev/imgres/internal/application/errors"
	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/domain/entities"
	"github.com/reglet-dev/imgres/internal/domain/values"
	"github.com/reglet-dev/imgres/internal/infrastructure/diagnostics"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProcess = values.Handle(0x400000)
	testModule  = values.Handle(0x7ff0000)
	testLoaded  = values.Handle(0x1234)
)

type fakeLoader struct {
	err     error
	images  []ports.ImageRequest
	icons   []ports.ImageRequest
	cursors []ports.ImageRequest
}

func (f *fakeLoader) LoadImage(_ context.Context, req ports.ImageRequest) (values.Handle, error) {
	f.images = append(f.images, req)
	return f.result(req.Identifier)
}

func (f *fakeLoader) LoadIcon(_ context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	f.icons = append(f.icons, ports.ImageRequest{Module: module, Identifier: id})
	return f.result(id)
}

func (f *fakeLoader) LoadCursor(_ context.Context, module values.Handle, id values.Identifier) (values.Handle, error) {
	f.cursors = append(f.cursors, ports.ImageRequest{Module: module, Identifier: id})
	return f.result(id)
}

func (f *fakeLoader) result(id values.Identifier) (values.Handle, error) {
	if f.err != nil {
		return 0, f.err
	}
	if id.IsNull() {
		return 0, errors.New("invalid resource name")
	}
	return testLoaded, nil
}

func (f *fakeLoader) calls() int {
	return len(f.images) + len(f.icons) + len(f.cursors)
}

type fakeHandles struct{}

func (fakeHandles) CurrentProcess() (values.Handle, error) {
	return testProcess, nil
}

func (fakeHandles) HandleFor(name string) (values.Handle, error) {
	if name == "shell32.dll" {
		return testModule, nil
	}
	return 0, fmt.Errorf("module %q is not loaded", name)
}

type builderFixture struct {
	builder  *ResourceBuilder
	loader   *fakeLoader
	recorder *diagnostics.Recorder
	fs       afero.Fs
}

func newBuilderFixture(t *testing.T) *builderFixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "assets/app.ico", []byte{0, 0, 1, 0}, 0o644))
	require.NoError(t, afero.WriteFile(fs, "assets/pointer.cur", []byte{0, 0, 2, 0}, 0o644))

	loader := &fakeLoader{}
	rec := diagnostics.NewRecorder(slog.LevelDebug)
	b := NewResourceBuilder(loader, fakeHandles{}, WithLogger(rec.Logger()), WithFs(fs))
	return &builderFixture{builder: b, loader: loader, recorder: rec, fs: fs}
}

func requireOneError(t *testing.T, rec *diagnostics.Recorder, contains string) diagnostics.Entry {
	t.Helper()
	errs := rec.Errors()
	require.Len(t, errs, 1, "error diagnostics: %v", rec.Messages())
	assert.Contains(t, errs[0].Message, contains)
	return errs[0]
}

func Test_ResourceBuilder_NewTargetsCurrentProcess(t *testing.T) {
	f := newBuilderFixture(t)
	assert.Equal(t, testProcess, f.builder.ProcessHandle())
	assert.Equal(t, values.VariantEmpty, f.builder.Name().Variant())
	assert.Equal(t, values.LoadFlags(0), f.builder.Flags())
}

func Test_ResourceBuilder_EmptyNames(t *testing.T) {
	tests := []struct {
		name    string
		rn      values.ResourceName
		message string
	}{
		{"unset", nil, "name is empty"},
		{"empty variant", values.EmptyName{}, "name is empty"},
		{"empty symbolic name", values.NewSymbolicName(""), "name can not be empty"},
		{"empty file path", values.NewFilePath(""), "filename can not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBuilderFixture(t)
			res, err := f.builder.SetName(tt.rn).Load(context.Background())

			assert.Nil(t, res)
			require.Error(t, err)
			assert.Equal(t, entities.KindEmptyIdentity, apperrors.KindOf(err))
			e := requireOneError(t, f.recorder, tt.message)
			assert.Equal(t, "NameResolver.Resolve", e.Origin)
			assert.Zero(t, f.loader.calls())
		})
	}
}

func Test_ResourceBuilder_SymbolicNameInference(t *testing.T) {
	tests := []struct {
		text string
		want values.ResourceKind
	}{
		{"LOGOBMP\x00", values.KindBitmap},
		{"logobmp\x00", values.KindBitmap},
		{"POINTER_CUR\x00", values.KindCursor},
		{"appIco\x00", values.KindIcon},
		{"BMPCURICO\x00", values.KindBitmap},
		{"ICOCUR\x00", values.KindCursor},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := newBuilderFixture(t)
			res, err := f.builder.SetName(values.NewSymbolicName(tt.text)).Load(context.Background())

			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.want, f.builder.Kind())
			require.Len(t, f.loader.images, 1)
			assert.Equal(t, tt.want, f.loader.images[0].Kind)
			assert.Equal(t, tt.text, f.loader.images[0].Identifier.Text())
			assert.Empty(t, f.recorder.Errors())
		})
	}
}

func Test_ResourceBuilder_LogoBitmapScenario(t *testing.T) {
	f := newBuilderFixture(t)

	res, err := f.builder.SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.IsZero())
	assert.Equal(t, testLoaded, res.Handle())
	assert.Equal(t, values.KindBitmap, f.builder.Kind())

	require.Len(t, f.loader.images, 1)
	req := f.loader.images[0]
	assert.False(t, req.Flags.Has(values.FlagLoadFromFile))
	assert.False(t, req.Flags.Has(values.FlagShared))
	assert.Equal(t, testProcess, req.Module)

	// Only the unset-dimension observations are reported.
	assert.Empty(t, f.recorder.Errors())
	for _, e := range f.recorder.Entries() {
		assert.Equal(t, OriginValidator, e.Origin)
		assert.Equal(t, "dimensions", e.Attrs["check"])
	}
}

func Test_ResourceBuilder_InvalidNames(t *testing.T) {
	tests := []struct {
		name    string
		rn      values.ResourceName
		kind    entities.ErrorKind
		message string
	}{
		{"name without terminator", values.NewSymbolicName("LOGOBMP"), entities.KindMalformedIdentity, "name needs to end in terminator: LOGOBMP"},
		{"name without kind", values.NewSymbolicName("LOGO\x00"), entities.KindMalformedIdentity, "name is invalid: LOGO"},
		{"file without terminator", values.NewFilePath("assets/app.ico"), entities.KindMalformedIdentity, "filename needs to end in terminator: assets/app.ico"},
		{"file without extension", values.NewFilePath("assets/app\x00"), entities.KindMalformedIdentity, "no file extension"},
		{"file with png extension", values.NewFilePath("assets/logo.png\x00"), entities.KindMalformedIdentity, "file extension is not valid: .png"},
		{"file with jpeg extension", values.NewFilePath("logo.JPEG\x00"), entities.KindMalformedIdentity, "file extension is not valid: .JPEG"},
		{"file with invalid text", values.NewFilePath("assets/\xffapp.ico\x00"), entities.KindMalformedIdentity, "file should not have invalid Unicode"},
		{"file missing", values.NewFilePath("assets\\missing.ico\x00"), entities.KindMissingResource, "file does not exist: assets\\missing.ico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBuilderFixture(t)
			res, err := f.builder.SetName(tt.rn).Load(context.Background())

			assert.Nil(t, res)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
			assert.True(t, apperrors.IsResolutionFailure(err))
			requireOneError(t, f.recorder, tt.message)
			assert.Empty(t, f.recorder.Warnings(), "validator must not run after a resolution failure")
			assert.Zero(t, f.loader.calls())
		})
	}
}

func Test_ResourceBuilder_MissingFileScenario(t *testing.T) {
	f := newBuilderFixture(t)

	res, err := f.builder.SetName(values.NewFilePath("assets\\missing.ico\x00")).Load(context.Background())

	assert.Nil(t, res)
	require.Error(t, err)
	e := requireOneError(t, f.recorder, "does not exist")
	assert.Contains(t, e.Message, `assets\missing.ico`)
	assert.Empty(t, f.loader.images)
}

func Test_ResourceBuilder_FilePathForcesLoadFromFile(t *testing.T) {
	f := newBuilderFixture(t)
	ctx := context.Background()

	res, err := f.builder.SetName(values.NewFilePath("assets/app.ico\x00")).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, f.loader.images, 1)
	req := f.loader.images[0]
	assert.Equal(t, values.KindIcon, req.Kind)
	assert.True(t, req.Flags.Has(values.FlagLoadFromFile))
	assert.Equal(t, "assets/app.ico\x00", req.Identifier.Text())
	assert.True(t, f.builder.Flags().Has(values.FlagLoadFromFile))

	// The forced flag belongs to that call only.
	_, err = f.builder.SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(ctx)
	require.NoError(t, err)
	require.Len(t, f.loader.images, 2)
	assert.False(t, f.loader.images[1].Flags.Has(values.FlagLoadFromFile))
	assert.False(t, f.builder.Flags().Has(values.FlagLoadFromFile))
}

func Test_ResourceBuilder_SystemConstantForcing(t *testing.T) {
	f := newBuilderFixture(t)

	res, err := f.builder.
		SetName(values.SystemConstant{Kind: values.KindIcon, ID: values.IconWarning}).
		Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, f.loader.images, 1)
	req := f.loader.images[0]
	assert.Equal(t, values.SystemHandle, req.Module)
	assert.True(t, req.Flags.Has(values.FlagShared))
	assert.True(t, req.Identifier.IsOrdinal())
	assert.Equal(t, values.IconWarning, req.Identifier.Ordinal())
	assert.Equal(t, values.KindIcon, req.Kind)
	assert.Equal(t, values.SystemHandle, f.builder.ProcessHandle())
}

func Test_ResourceBuilder_EmbeddedOrdinalForcing(t *testing.T) {
	f := newBuilderFixture(t)

	_, err := f.builder.
		SetModule("shell32.dll").
		SetName(values.EmbeddedOrdinal{Kind: values.KindBitmap, ID: 101}).
		Load(context.Background())

	require.NoError(t, err)
	require.Len(t, f.loader.images, 1)
	assert.Equal(t, values.SystemHandle, f.loader.images[0].Module)
	assert.True(t, f.loader.images[0].Flags.Has(values.FlagShared))
	assert.Equal(t, values.KindBitmap, f.builder.Kind())
}

func Test_ResourceBuilder_ReservedCursorIDs(t *testing.T) {
	for _, id := range []uint16{values.CursorReservedSize, values.CursorReservedIcon, values.CursorReservedIcoCur} {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			f := newBuilderFixture(t)

			res, err := f.builder.
				SetName(values.SystemConstant{Kind: values.KindCursor, ID: id}).
				Load(context.Background())

			assert.Nil(t, res)
			require.Error(t, err)
			assert.Equal(t, entities.KindReservedValue, apperrors.KindOf(err))
			requireOneError(t, f.recorder, "reserved ids are no-op with system cursor constants")
			assert.Zero(t, f.loader.calls())

			// Forcing happens before the rejection.
			assert.True(t, f.builder.Flags().Has(values.FlagShared))
			assert.Equal(t, values.SystemHandle, f.builder.ProcessHandle())
			assert.Equal(t, values.KindCursor, f.builder.Kind())
		})
	}
}

func Test_ResourceBuilder_LoaderFailure(t *testing.T) {
	f := newBuilderFixture(t)
	denied := errors.New("access denied")
	f.loader.err = denied

	res, err := f.builder.SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(context.Background())

	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, entities.KindPlatformLoad, apperrors.KindOf(err))
	assert.True(t, apperrors.IsLoaderFailure(err))
	assert.False(t, apperrors.IsResolutionFailure(err))
	e := requireOneError(t, f.recorder, "failed to create a handle for the resource")
	assert.Equal(t, OriginLoad, e.Origin)
}

func Test_ResourceBuilder_DimensionWarnings(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
		defaultSize   bool
		want          []string
	}{
		{"unset with default size", 0, 0, true, []string{"default system width will be used", "default system height will be used"}},
		{"unset without default size", 0, 0, false, []string{"original image width will be used", "original image height will be used"}},
		{"width set", 32, 0, false, []string{"original image height will be used"}},
		{"height set", 0, 16, true, []string{"default system width will be used"}},
		{"both set", 32, 32, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBuilderFixture(t)
			b := f.builder.SetName(values.NewSymbolicName("LOGOBMP\x00")).SetDimensions(tt.width, tt.height)
			if tt.defaultSize {
				b.UseDefaultSize()
			}

			_, err := b.Load(context.Background())
			require.NoError(t, err)

			var got []string
			for _, w := range f.recorder.Warnings() {
				got = append(got, w.Message)
			}
			assert.Equal(t, tt.want, got)
			assert.Len(t, b.LastFindings(), len(tt.want))
		})
	}
}

func Test_ResourceBuilder_ValidatorOrder(t *testing.T) {
	f := newBuilderFixture(t)

	_, err := f.builder.
		SetName(values.SystemConstant{Kind: values.KindIcon, ID: values.IconShield}).
		SetDimensions(0, 48).
		UseDIBSection().
		UseMonochrome().
		UseVGAColors().
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"original image width will be used",
		"DIB section bitmap is no-op with resource type: IMAGE_ICON",
		"3D and VGA color are no-op when mono is used",
	}, f.recorder.Messages())
	assert.Empty(t, f.recorder.Errors())
}

func Test_ResourceBuilder_Idempotent(t *testing.T) {
	ctx := context.Background()
	run := func() (values.ResourceKind, []string) {
		f := newBuilderFixture(t)
		_, err := f.builder.
			SetName(values.NewFilePath("assets/pointer.cur\x00")).
			UseMonochrome().
			Use3DColors().
			Load(ctx)
		require.NoError(t, err)
		return f.builder.Kind(), f.recorder.Messages()
	}

	kind1, msgs1 := run()
	kind2, msgs2 := run()
	assert.Equal(t, values.KindCursor, kind1)
	assert.Equal(t, kind1, kind2)
	assert.Equal(t, msgs1, msgs2)
	assert.NotEmpty(t, msgs1)
}

func Test_ResourceBuilder_Reusable(t *testing.T) {
	f := newBuilderFixture(t)
	ctx := context.Background()

	b := f.builder.SetDimensions(32, 32).UseTransparent()

	_, err := b.SetName(values.NewSymbolicName("")).Load(ctx)
	require.Error(t, err)

	res, err := b.SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)

	res, err = b.SetName(values.NewSymbolicName("APPICO\x00")).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Len(t, f.loader.images, 2)
	for _, req := range f.loader.images {
		assert.Equal(t, values.NewDimensions(32, 32), req.Dimensions)
		assert.True(t, req.Flags.Has(values.FlagTransparent))
	}
	assert.Equal(t, values.KindIcon, f.loader.images[1].Kind)
}

func Test_ResourceBuilder_KindOverrideLosesToInference(t *testing.T) {
	f := newBuilderFixture(t)

	f.builder.SetKindIcon().SetKindCursor()
	assert.Equal(t, values.KindCursor, f.builder.Kind())

	_, err := f.builder.SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, values.KindBitmap, f.builder.Kind())

	f.builder.SetKindBitmap()
	assert.Equal(t, values.KindBitmap, f.builder.Kind())
}

func Test_ResourceBuilder_SetFlagsIgnoresLoadFromFile(t *testing.T) {
	f := newBuilderFixture(t)
	f.builder.SetFlags(values.FlagLoadFromFile | values.FlagShared)
	assert.Equal(t, values.FlagShared, f.builder.Flags())
}

func Test_ResourceBuilder_SetModule(t *testing.T) {
	t.Run("known module", func(t *testing.T) {
		f := newBuilderFixture(t)
		_, err := f.builder.SetModule("shell32.dll").SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, f.loader.images, 1)
		assert.Equal(t, testModule, f.loader.images[0].Module)
	})

	t.Run("unknown module", func(t *testing.T) {
		f := newBuilderFixture(t)
		res, err := f.builder.SetModule("missing.dll").SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(context.Background())

		assert.Nil(t, res)
		var cfgErr *apperrors.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "module", cfgErr.Aspect)
		assert.Equal(t, entities.KindConfiguration, apperrors.KindOf(err))
		e := requireOneError(t, f.recorder, "missing.dll")
		assert.Equal(t, OriginSetModule, e.Origin)
		assert.Zero(t, f.loader.calls())

		// Selecting a valid module clears the failure.
		_, err = f.builder.SetModule("").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testProcess, f.loader.images[0].Module)
	})

	t.Run("explicit handle", func(t *testing.T) {
		f := newBuilderFixture(t)
		_, err := f.builder.SetProcessHandle(values.Handle(0x999)).SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, values.Handle(0x999), f.loader.images[0].Module)
	})
}

func Test_ResourceBuilder_LoadIcon(t *testing.T) {
	t.Run("system icon", func(t *testing.T) {
		f := newBuilderFixture(t)
		res, err := f.builder.SetName(values.SystemConstant{Kind: values.KindIcon, ID: values.IconApplication}).LoadIcon(context.Background())

		require.NoError(t, err)
		require.NotNil(t, res)
		require.Len(t, f.loader.icons, 1)
		assert.Equal(t, values.SystemHandle, f.loader.icons[0].Module)
		assert.Equal(t, values.IconApplication, f.loader.icons[0].Identifier.Ordinal())
		assert.Empty(t, f.loader.images)
		assert.Empty(t, f.recorder.Entries(), "icon loads skip the validator")
	})

	t.Run("embedded icon", func(t *testing.T) {
		f := newBuilderFixture(t)
		res, err := f.builder.SetName(values.EmbeddedOrdinal{Kind: values.KindIcon, ID: 1}).LoadIcon(context.Background())
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, values.KindIcon, f.builder.Kind())
	})

	t.Run("loader failure", func(t *testing.T) {
		f := newBuilderFixture(t)
		f.loader.err = errors.New("no icon")
		_, err := f.builder.SetName(values.SystemConstant{Kind: values.KindIcon, ID: values.IconError}).LoadIcon(context.Background())
		require.Error(t, err)
		assert.Equal(t, entities.KindPlatformLoad, apperrors.KindOf(err))
		requireOneError(t, f.recorder, "failed to create a handle for the icon")
	})
}

func Test_ResourceBuilder_LoadIconWrongVariant(t *testing.T) {
	tests := []struct {
		name string
		rn   values.ResourceName
	}{
		{"system cursor", values.SystemConstant{Kind: values.KindCursor, ID: values.CursorArrow}},
		{"embedded cursor", values.EmbeddedOrdinal{Kind: values.KindCursor, ID: 1}},
		{"embedded bitmap", values.EmbeddedOrdinal{Kind: values.KindBitmap, ID: 1}},
		{"missing file", values.NewFilePath("assets\\missing.ico\x00")},
		{"bad extension", values.NewFilePath("logo.png\x00")},
		{"symbolic name", values.NewSymbolicName("APPICO\x00")},
		{"empty", values.EmptyName{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBuilderFixture(t)
			res, err := f.builder.SetName(tt.rn).LoadIcon(context.Background())

			assert.Nil(t, res)
			require.Error(t, err)
			assert.Equal(t, entities.KindWrongVariant, apperrors.KindOf(err))
			e := requireOneError(t, f.recorder, "wrong variant for icon loading")
			assert.Equal(t, OriginLoadIcon, e.Origin)
			assert.NotContains(t, e.Message, "does not exist")
			assert.NotContains(t, e.Message, "extension")
			assert.Zero(t, f.loader.calls())
		})
	}
}

func Test_ResourceBuilder_LoadCursor(t *testing.T) {
	t.Run("system cursor", func(t *testing.T) {
		f := newBuilderFixture(t)
		res, err := f.builder.SetName(values.SystemConstant{Kind: values.KindCursor, ID: values.CursorHand}).LoadCursor(context.Background())

		require.NoError(t, err)
		require.NotNil(t, res)
		require.Len(t, f.loader.cursors, 1)
		assert.Equal(t, values.CursorHand, f.loader.cursors[0].Identifier.Ordinal())
	})

	t.Run("wrong variant", func(t *testing.T) {
		f := newBuilderFixture(t)
		_, err := f.builder.SetName(values.SystemConstant{Kind: values.KindIcon, ID: values.IconApplication}).LoadCursor(context.Background())
		require.Error(t, err)
		requireOneError(t, f.recorder, "wrong variant for cursor loading")
		assert.Zero(t, f.loader.calls())
	})

	t.Run("reserved id loads null identifier", func(t *testing.T) {
		f := newBuilderFixture(t)
		res, err := f.builder.SetName(values.SystemConstant{Kind: values.KindCursor, ID: values.CursorReservedIcon}).LoadCursor(context.Background())

		assert.Nil(t, res)
		require.Error(t, err)
		assert.Equal(t, entities.KindPlatformLoad, apperrors.KindOf(err))
		require.Len(t, f.loader.cursors, 1)
		assert.True(t, f.loader.cursors[0].Identifier.IsNull())
		assert.Equal(t, values.SystemHandle, f.loader.cursors[0].Module)

		errs := f.recorder.Errors()
		require.Len(t, errs, 2, "error diagnostics: %v", f.recorder.Messages())
		assert.Contains(t, errs[0].Message, "reserved ids are no-op with system cursor constants")
		assert.Contains(t, errs[1].Message, "failed to create a handle for the cursor")
		assert.Empty(t, f.recorder.Warnings())
	})
}

func Test_ResourceBuilder_ModuleRestoredAfterSystemLoad(t *testing.T) {
	f := newBuilderFixture(t)
	ctx := context.Background()

	_, err := f.builder.SetName(values.SystemConstant{Kind: values.KindIcon, ID: values.IconApplication}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, values.SystemHandle, f.builder.ProcessHandle())

	_, err = f.builder.SetName(values.NewSymbolicName("LOGOBMP\x00")).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testProcess, f.loader.images[1].Module)
	assert.False(t, f.loader.images[1].Flags.Has(values.FlagShared))
}
