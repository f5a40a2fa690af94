// Package config defines the format-agnostic configuration model for the
// console, along with the Loader interface for reading it from a file.
//
// Settings are layered: Defaults, then a configuration file, then the
// NEO4J_* environment variables, then command-line flags. Concrete file
// formats, such as HCL, are provided in separate packages.
package config
