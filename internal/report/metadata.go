package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"orderrate/pkg/constants"
	"orderrate/pkg/errors"
)

// Metadata is the run record written alongside the results, success or
// failure. It captures timing, inputs, and the size of every produced
// file.
type Metadata struct {
	StartTime       string     `yaml:"start_time"`
	EndTime         string     `yaml:"end_time"`
	DurationSeconds float64    `yaml:"duration_seconds"`
	Status          string     `yaml:"status"`
	Error           string     `yaml:"error,omitempty"`
	LookupFile      string     `yaml:"lookup_file"`
	SpreadsheetFile string     `yaml:"spreadsheet_file"`
	OutputDir       string     `yaml:"output_dir"`
	Files           []FileSize `yaml:"files,omitempty"`
}

// FileSize records one produced file and its size in bytes.
type FileSize struct {
	Name      string `yaml:"name"`
	SizeBytes int64  `yaml:"size_bytes"`
}

// Run metadata status values.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// NewMetadata builds the run record for the given window and outcome.
func NewMetadata(start, end time.Time, runErr error, lookupFile, spreadsheetFile, outputDir string) Metadata {
	md := Metadata{
		StartTime:       start.Format(constants.MetadataTimeFormat),
		EndTime:         end.Format(constants.MetadataTimeFormat),
		DurationSeconds: end.Sub(start).Seconds(),
		Status:          StatusSuccess,
		LookupFile:      lookupFile,
		SpreadsheetFile: spreadsheetFile,
		OutputDir:       outputDir,
	}
	if runErr != nil {
		md.Status = StatusFailed
		md.Error = runErr.Error()
	}
	md.Files = collectFileSizes(outputDir)
	return md
}

// WriteMetadata persists the run record as YAML.
func WriteMetadata(path string, md Metadata) error {
	data, err := yaml.Marshal(md)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}

// collectFileSizes lists every regular file under dir, relative to dir.
// A failure here degrades the metadata, it never fails the run.
func collectFileSizes(dir string) []FileSize {
	var sizes []FileSize
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}
		sizes = append(sizes, FileSize{Name: rel, SizeBytes: info.Size()})
		return nil
	})
	return sizes
}
