// Package schema has configs, models and defaults for all parts of casemap.
package schema

// AxisKind identifies which scoring dimension an axis belongs to.
type AxisKind string

// Axis kinds for the two scoring dimensions.
const (
	ValueKind      AxisKind = "value"
	ComplexityKind AxisKind = "complexity"
)

// OutputMode represents the output format.
type OutputMode string

// Output modes for exports and listings.
const (
	TextOut    OutputMode = "text"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// DatabaseBackend represents the type of database backend for the store.
type DatabaseBackend string

// Database backends for the key-value store.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// StoreStatus holds status information about the key-value store.
type StoreStatus struct {
	Backend  DatabaseBackend `json:"backend"`
	Location string          `json:"location"`
	Keys     int             `json:"keys"`
	SizeKB   float64         `json:"size_kb"`
}

// MinLevel and MaxLevel bound the discrete classification scale.
// Level 0 is the "unscored" sentinel and never appears in a grid.
const (
	MinLevel = 1
	MaxLevel = 5
)

// LevelCount is the number of discrete levels on each dimension.
const LevelCount = MaxLevel - MinLevel + 1
