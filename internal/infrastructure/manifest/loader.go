// Package manifest loads batch manifests of resource requests.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/reglet-dev/imgres/internal/application/dto"
	apperrors "github.com/reglet-dev/imgres/internal/application/errors"
	"github.com/reglet-dev/imgres/internal/application/ports"
	"github.com/reglet-dev/imgres/internal/version"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
)

//go:embed schema.json
var schemaJSON []byte

// SupportedAPIVersions is the apiVersion constraint manifests must meet.
const SupportedAPIVersions = version.ManifestAPIConstraint

// Loader reads, validates and normalizes manifests.
type Loader struct {
	fs          afero.Fs
	schema      *jsonschema.Schema
	constraint  *semver.Constraints
	substitutor *VariableSubstitutor
}

// Compile-time safety: *Loader implements ports.ManifestLoader.
var _ ports.ManifestLoader = (*Loader)(nil)

// NewLoader creates a manifest loader reading from fs. A nil fs means the
// OS filesystem.
func NewLoader(fs afero.Fs) (*Loader, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("manifest.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add manifest schema: %w", err)
	}
	schema, err := compiler.Compile("manifest.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest schema: %w", err)
	}

	constraint, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		return nil, fmt.Errorf("invalid api version constraint: %w", err)
	}

	return &Loader{
		fs:          fs,
		schema:      schema,
		constraint:  constraint,
		substitutor: NewVariableSubstitutor(),
	}, nil
}

// LoadManifest loads the manifest at path.
func (l *Loader) LoadManifest(path string) (*dto.Manifest, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() {
		_ = f.Close() // Best-effort cleanup
	}()

	return l.LoadFromReader(f)
}

// LoadFromReader loads a manifest from r.
func (l *Loader) LoadFromReader(r io.Reader) (*dto.Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := l.validateSchema(data); err != nil {
		return nil, err
	}

	var m dto.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest YAML: %w", err)
	}

	if err := l.checkAPIVersion(m.APIVersion); err != nil {
		return nil, err
	}
	if err := normalize(&m); err != nil {
		return nil, err
	}
	if err := l.substitutor.Substitute(&m); err != nil {
		return nil, apperrors.NewValidationError("vars", err.Error())
	}

	return &m, nil
}

func (l *Loader) validateSchema(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to decode manifest YAML: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode manifest: %w", err)
	}

	if err := l.schema.Validate(doc); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return apperrors.NewValidationError("manifest", "schema validation failed", flatten(verr)...)
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func (l *Loader) checkAPIVersion(apiVersion string) error {
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return apperrors.NewValidationError("apiVersion", fmt.Sprintf("%q is not a version", apiVersion))
	}
	if !l.constraint.Check(v) {
		return apperrors.NewValidationError("apiVersion",
			fmt.Sprintf("unsupported version %s (supported: %s)", v, SupportedAPIVersions))
	}
	return nil
}

// normalize assigns missing request ids and rejects duplicates.
func normalize(m *dto.Manifest) error {
	seen := make(map[string]bool, len(m.Requests))
	var dupes []string
	for i := range m.Requests {
		req := &m.Requests[i]
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if seen[req.ID] {
			dupes = append(dupes, req.ID)
		}
		seen[req.ID] = true
	}
	if len(dupes) > 0 {
		return apperrors.NewValidationError("requests", "duplicate request id: "+strings.Join(dupes, ", "), dupes...)
	}
	return nil
}

// flatten collects the leaf messages of a schema validation error.
func flatten(err *jsonschema.ValidationError) []string {
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(err)
	return out
}
