// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Bemtest is the canonical application identifier used for filesystem paths and env prefixes.
	Bemtest = "bemtest"

	// Version is the current library semantic version string.
	Version = "0.1.0"
)
