// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the harness configuration schema.
const DefinedFieldsCount = 4

// Logging Infrastructure - these keys manage the harness's internal diagnostics system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Loader Behavior - these keys govern how technology modules are compiled and loaded.
const (
	LoaderBytecodeCache = "loader.bytecode_cache"
)
