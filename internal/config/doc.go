// Package config defines the application settings and how they are loaded
// from an optional YAML file.
//
// Settings come from three layers: Default, then the YAML file, then CLI
// flags applied by the caller. Validate checks the merged result.
package config
