package manifest

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reglet-dev/imgres/internal/application/dto"
	"github.com/reglet-dev/imgres/internal/application/ports"
)

// RequestEnv defines the variables available during filter expression
// evaluation.
type RequestEnv struct {
	Tags    map[string]string `expr:"tags"`
	ID      string            `expr:"id"`
	Source  string            `expr:"source"`
	Value   string            `expr:"value"`
	Kind    string            `expr:"kind"`
	Mode    string            `expr:"mode"`
	Module  string            `expr:"module"`
	Flags   []string          `expr:"flags"`
	Width   int               `expr:"width"`
	Height  int               `expr:"height"`
	Ordinal int               `expr:"ordinal"`
}

// ExprFilter selects requests with a boolean expr program, e.g.
//
//	source == "system" && kind == "cursor"
//	"shared" in flags || tags.group == "ui"
type ExprFilter struct {
	program *vm.Program
}

// Compile-time safety: *ExprFilter implements ports.RequestFilter.
var _ ports.RequestFilter = (*ExprFilter)(nil)

// CompileFilter compiles a filter expression.
func CompileFilter(src string) (*ExprFilter, error) {
	program, err := expr.Compile(src, expr.Env(RequestEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return &ExprFilter{program: program}, nil
}

// Matches evaluates the filter against req.
func (f *ExprFilter) Matches(req dto.LoadRequest) (bool, error) {
	tags := req.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	flags := req.Flags
	if flags == nil {
		flags = []string{}
	}
	env := RequestEnv{
		ID:      req.ID,
		Source:  req.Source,
		Value:   req.Value,
		Kind:    req.Kind,
		Mode:    req.EffectiveMode(),
		Module:  req.Module,
		Flags:   flags,
		Tags:    tags,
		Width:   int(req.Width),
		Height:  int(req.Height),
		Ordinal: int(req.Ordinal),
	}

	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("filter expression error: %w", err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean: %v", output)
	}
	return result, nil
}
