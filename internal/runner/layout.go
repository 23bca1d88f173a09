package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"orderrate/internal/lookup"
	"orderrate/pkg/constants"
	"orderrate/pkg/errors"
)

// Layout is the on-disk layout of one run: a unique timestamped directory
// holding the final report and metadata, with per-category working files
// in an intermediate subdirectory.
type Layout struct {
	Dir             string
	IntermediateDir string
}

// NewLayout derives the run directory for a pair:
// <prefix>_<YYYYMMDD_HHMMSS>_<hash8>, where hash8 digests the input paths
// so simultaneous runs over different inputs never collide.
func NewLayout(pair Pair, prefix string, now time.Time) Layout {
	pairHash := lookup.Key(fmt.Sprintf("%s_%s", pair.LookupPath, pair.SpreadsheetPath))
	dir := fmt.Sprintf("%s_%s_%s",
		prefix,
		now.Format(constants.RunTimestampFormat),
		pairHash[:constants.RunHashLength],
	)
	return Layout{
		Dir:             dir,
		IntermediateDir: filepath.Join(dir, constants.IntermediateDirName),
	}
}

// Create makes the run directory tree.
func (l Layout) Create() error {
	return errors.WrapIO("create", l.IntermediateDir, os.MkdirAll(l.IntermediateDir, constants.DirPermissions))
}

// ConnectLinesPath is the flattened call-connected sheet snapshot.
func (l Layout) ConnectLinesPath() string {
	return filepath.Join(l.IntermediateDir, constants.ConnectLinesFile)
}

// IntentionLinesPath is the flattened intention sheet snapshot.
func (l Layout) IntentionLinesPath() string {
	return filepath.Join(l.IntermediateDir, constants.IntentionLinesFile)
}

// ConnectMatchPath is the per-record match file for the connect category.
func (l Layout) ConnectMatchPath() string {
	return filepath.Join(l.IntermediateDir, constants.ConnectMatchFile)
}

// ConnectCountPath is the per-model frequency file for the connect category.
func (l Layout) ConnectCountPath() string {
	return filepath.Join(l.IntermediateDir, constants.ConnectCountFile)
}

// IntentionMatchPath is the per-record match file for the intention category.
func (l Layout) IntentionMatchPath() string {
	return filepath.Join(l.IntermediateDir, constants.IntentionMatchFile)
}

// IntentionCountPath is the per-model frequency file for the intention category.
func (l Layout) IntentionCountPath() string {
	return filepath.Join(l.IntermediateDir, constants.IntentionCountFile)
}

// ResultsPath is the final success-rate report.
func (l Layout) ResultsPath() string {
	return filepath.Join(l.Dir, constants.FinalResultsFile)
}

// MetadataPath is the run metadata record.
func (l Layout) MetadataPath() string {
	return filepath.Join(l.Dir, constants.RunMetadataFile)
}
