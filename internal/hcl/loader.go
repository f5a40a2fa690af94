package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/technige/n4/internal/config"
	"github.com/technige/n4/internal/ctxlog"
	"github.com/technige/n4/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a loader whose env object reflects the process
// environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// WithEnviron returns a loader whose env object is built from environ, given
// in the KEY=value form of os.Environ.
func (l *Loader) WithEnviron(environ []string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

// Load applies each existing path, in order, on top of a copy of base. A
// directory contributes every .hcl file beneath it in lexical order.
func (l *Loader) Load(ctx context.Context, base *config.Model, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := *base
	parser := hclparse.NewParser()
	evalCtx := l.evalContext()

	for _, path := range paths {
		files, err := fsutil.ExpandPath(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Debug("No configuration found, skipping.", "path", path)
			continue
		}

		for _, file := range files {
			if err := l.apply(parser, evalCtx, file, &model); err != nil {
				return nil, err
			}
			logger.Debug("Configuration file applied.", "path", file)
		}
	}
	return &model, nil
}

func (l *Loader) apply(parser *hclparse.Parser, evalCtx *hcl.EvalContext, path string, model *config.Model) error {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	root.applyTo(model)
	return nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
