package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the files at paths and applies the settings they contain on
	// top of base, returning the merged model. Missing files are skipped.
	Load(ctx context.Context, base *Model, paths ...string) (*Model, error)
}
