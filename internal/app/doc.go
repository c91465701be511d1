// Package app wires configuration, logging, metrics and documents into the
// operations the command line exposes. It knows nothing about flags.
package app
