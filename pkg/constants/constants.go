// Package constants provides shared constants used throughout the orderrate
// codebase: file permissions, run-directory layout names, and the produced
// file names that downstream tooling depends on.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Run directory layout constants
const (
	// RunTimestampFormat stamps run directory names (local time, matches
	// the analyst-facing naming of existing result sets)
	RunTimestampFormat = "20060102_150405"

	// RunHashLength is the number of hex digits of the input-pair digest
	// appended to the run directory name for uniqueness
	RunHashLength = 8

	// DefaultOutputPrefix is the default run directory name prefix
	DefaultOutputPrefix = "results"

	// IntermediateDirName holds per-category working files inside a run directory
	IntermediateDirName = "intermediate"
)

// Produced file names inside a run directory. These names are a contract
// with downstream tooling and must not change.
const (
	ConnectLinesFile   = "call_connect.csv"
	IntentionLinesFile = "A_intention.csv"
	ConnectMatchFile   = "call_connect_model.csv"
	ConnectCountFile   = "call_connect_model_count.csv"
	IntentionMatchFile = "A_intention_model.csv"
	IntentionCountFile = "A_intention_model_count.csv"
	FinalResultsFile   = "order_success_rate_results.csv"
	RunMetadataFile    = "run_info.yaml"
)

// Spreadsheet constants
const (
	// DefaultConnectSheet is the sheet holding call-connected numbers.
	// Its first row is a title row and is skipped.
	DefaultConnectSheet = "接通"

	// DefaultIntentionSheet is the sheet holding purchase-intention numbers.
	// All of its rows are data.
	DefaultIntentionSheet = "A"

	// PreviewRows is how many rows `orderrate inspect` shows per sheet
	PreviewRows = 3
)

// Category labels used in logs and metadata
const (
	ConnectLabel   = "call_connect"
	IntentionLabel = "A_intention"
)

// MetadataTimeFormat formats timestamps in run metadata
const MetadataTimeFormat = "2006-01-02 15:04:05"
