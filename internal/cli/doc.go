// Package cli builds the shadergraph command tree and turns its failures into
// exit codes.
package cli
