// Package dto contains data transfer objects for application layer use cases.
package dto

// Load modes select the terminal builder operation.
const (
	ModeImage  = "image"
	ModeIcon   = "icon"
	ModeCursor = "cursor"
)

// Manifest is a decoded batch of resource requests.
type Manifest struct {
	// Vars are referenced from request values as {{ .vars.key }}
	Vars       map[string]interface{} `json:"vars,omitempty" yaml:"vars,omitempty"`
	APIVersion string                 `json:"apiVersion" yaml:"apiVersion"`
	Module     string                 `json:"module,omitempty" yaml:"module,omitempty"`
	Requests   []LoadRequest          `json:"requests" yaml:"requests"`
}

// LoadRequest describes a single resource request.
type LoadRequest struct {
	// Tags are free-form labels usable from filter expressions
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// ID uniquely identifies this request within a batch
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Source is the name variant: file, ordinal, system, name or empty
	Source string `json:"source" yaml:"source"`

	// Value is the path or symbolic name. For system constants it may
	// carry a well-known constant name instead of Ordinal.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Kind is required for ordinal and system sources; for the others it
	// is only an initial guess that resolution overrides
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Mode is image (default), icon or cursor
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Module redirects the process handle to a named module
	Module string `json:"module,omitempty" yaml:"module,omitempty"`

	Flags   []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Width   int32    `json:"width,omitempty" yaml:"width,omitempty"`
	Height  int32    `json:"height,omitempty" yaml:"height,omitempty"`
	Ordinal uint16   `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
}

// EffectiveMode returns Mode, defaulting to ModeImage.
func (r LoadRequest) EffectiveMode() string {
	if r.Mode == "" {
		return ModeImage
	}
	return r.Mode
}

// BatchOptions controls how a manifest is executed.
type BatchOptions struct {
	// Filter is an expression selecting requests (empty = all)
	Filter string

	// Parallelism limits concurrent builders (0 = one per CPU)
	Parallelism int

	// FailFast stops scheduling new requests after the first failure
	FailFast bool
}
