// Package runner orchestrates full pipeline runs: one isolated output
// directory per (lookup file, workbook) file pair, both category
// pipelines, the final report, and the always-written run metadata.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"orderrate/internal/lookup"
	"orderrate/internal/pipeline"
	"orderrate/internal/report"
	"orderrate/internal/spreadsheet"
	"orderrate/pkg/constants"
	"orderrate/pkg/errors"
	"orderrate/pkg/logging"
)

// Pair is one unit of work: a lookup file joined against a workbook.
type Pair struct {
	LookupPath      string
	SpreadsheetPath string
}

// Name identifies the pair in logs and errors.
func (p Pair) Name() string {
	return fmt.Sprintf("%s+%s", filepath.Base(p.LookupPath), filepath.Base(p.SpreadsheetPath))
}

// Options configures a Runner.
type Options struct {
	// OutputPrefix prefixes every run directory name. May contain a path.
	OutputPrefix string

	// Sheets names the two category sheets in the workbook.
	Sheets spreadsheet.Config

	// Now supplies run timestamps; defaults to time.Now.
	Now func() time.Time

	// Logger defaults to the package default logger.
	Logger *zerolog.Logger
}

// Runner processes file pairs sequentially, each to full completion, with
// no shared state between pairs beyond the result list.
type Runner struct {
	prefix string
	sheets spreadsheet.Config
	now    func() time.Time
	logger zerolog.Logger
}

// New creates a Runner, filling in defaults for unset options.
func New(opts Options) *Runner {
	r := &Runner{
		prefix: opts.OutputPrefix,
		sheets: opts.Sheets,
		now:    opts.Now,
		logger: *logging.Default(),
	}
	if r.prefix == "" {
		r.prefix = constants.DefaultOutputPrefix
	}
	if r.sheets == (spreadsheet.Config{}) {
		r.sheets = spreadsheet.DefaultConfig()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if opts.Logger != nil {
		r.logger = *opts.Logger
	}
	return r
}

// Result is the outcome of one pair.
type Result struct {
	Pair      Pair
	OutputDir string
	Rates     []pipeline.RateRow
	Err       error
}

// Summary aggregates the outcomes of a multi-pair invocation.
type Summary struct {
	Results []Result
}

// Succeeded returns the results of pairs that completed.
func (s Summary) Succeeded() []Result {
	var ok []Result
	for _, r := range s.Results {
		if r.Err == nil {
			ok = append(ok, r)
		}
	}
	return ok
}

// FailedCount returns how many pairs failed.
func (s Summary) FailedCount() int {
	return len(s.Results) - len(s.Succeeded())
}

// Run processes every pair in order. A pair's failure is recorded and the
// next pair is still attempted; only context cancellation stops the loop
// early.
func (r *Runner) Run(ctx context.Context, pairs []Pair) Summary {
	var summary Summary
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn().Err(err).Msg("run cancelled, skipping remaining pairs")
			break
		}

		r.logger.Info().
			Int("pair", i+1).
			Int("total", len(pairs)).
			Str("lookup", pair.LookupPath).
			Str("spreadsheet", pair.SpreadsheetPath).
			Msg("processing file pair")

		result := r.ProcessPair(pair)
		if result.Err != nil {
			r.logger.Error().Err(result.Err).Str("pair", pair.Name()).Msg("file pair failed")
		} else {
			r.logger.Info().Str("pair", pair.Name()).Str("output_dir", result.OutputDir).Msg("file pair completed")
		}
		summary.Results = append(summary.Results, result)
	}
	return summary
}

// ProcessPair runs the full pipeline for one pair. The run metadata is
// written whether the pipeline succeeds or fails; a fatal stage error
// aborts the remaining stages of this pair only.
func (r *Runner) ProcessPair(pair Pair) Result {
	start := r.now()
	layout := NewLayout(pair, r.prefix, start)
	result := Result{Pair: pair, OutputDir: layout.Dir}

	if err := layout.Create(); err != nil {
		// Without the run directory there is nowhere to record metadata.
		result.Err = err
		return result
	}

	result.Rates, result.Err = r.process(pair, layout)

	md := report.NewMetadata(start, r.now(), result.Err, pair.LookupPath, pair.SpreadsheetPath, layout.Dir)
	if err := report.WriteMetadata(layout.MetadataPath(), md); err != nil {
		r.logger.Warn().Err(err).Msg("failed to write run metadata")
	}
	return result
}

func (r *Runner) process(pair Pair, layout Layout) ([]pipeline.RateRow, error) {
	sheets, err := spreadsheet.Extract(pair.SpreadsheetPath, r.sheets)
	if err != nil {
		return nil, errors.WrapPipeline("extract", pair.Name(), err)
	}
	r.logger.Debug().
		Int("connect_rows", len(sheets.Connect)).
		Int("intention_rows", len(sheets.Intention)).
		Msg("flattened workbook sheets")

	if err := report.WriteLines(layout.ConnectLinesPath(), sheets.Connect); err != nil {
		return nil, errors.WrapPipeline("snapshot", pair.Name(), err)
	}
	if err := report.WriteLines(layout.IntentionLinesPath(), sheets.Intention); err != nil {
		return nil, errors.WrapPipeline("snapshot", pair.Name(), err)
	}

	table, err := lookup.Load(pair.LookupPath)
	if err != nil {
		return nil, errors.WrapPipeline("lookup", pair.Name(), err)
	}
	r.logger.Info().Int("mappings", table.Len()).Msg("loaded model mappings")
	if table.Overwritten() > 0 {
		r.logger.Debug().Int("overwritten", table.Overwritten()).Msg("duplicate lookup keys, last write wins")
	}

	connect, err := r.processCategory(constants.ConnectLabel, sheets.Connect, table,
		layout.ConnectMatchPath(), layout.ConnectCountPath(), pair)
	if err != nil {
		return nil, err
	}
	intention, err := r.processCategory(constants.IntentionLabel, sheets.Intention, table,
		layout.IntentionMatchPath(), layout.IntentionCountPath(), pair)
	if err != nil {
		return nil, err
	}

	rates := pipeline.SuccessRates(connect, intention)
	if dropped := pipeline.DroppedIntentionModels(connect, intention); len(dropped) > 0 {
		// Intention-only models never reach the report; the join is driven
		// by the connect table's model set.
		r.logger.Debug().Strs("models", dropped).Msg("intention-only models dropped from report")
	}

	if err := report.WriteRates(layout.ResultsPath(), rates); err != nil {
		return nil, errors.WrapPipeline("report", pair.Name(), err)
	}
	r.logger.Info().Int("models", len(rates)).Str("results", layout.ResultsPath()).Msg("wrote success-rate report")

	return rates, nil
}

// processCategory runs the matcher and aggregator for one category and
// persists the match and count files. Both categories share this path.
func (r *Runner) processCategory(label string, lines []string, table *lookup.Table,
	matchPath, countPath string, pair Pair) (pipeline.FrequencyTable, error) {

	records := pipeline.Match(lines, table)
	matched := pipeline.Matched(records)
	r.logger.Info().
		Str("category", label).
		Int("records", len(records)).
		Int("matched", matched).
		Int("unmatched", len(records)-matched).
		Msg("matched phone numbers")

	if err := report.WriteMatches(matchPath, records); err != nil {
		return nil, errors.WrapPipeline("match", pair.Name(), err)
	}

	counts := pipeline.Aggregate(records)
	if err := report.WriteCounts(countPath, counts); err != nil {
		return nil, errors.WrapPipeline("count", pair.Name(), err)
	}

	if r.logger.GetLevel() <= zerolog.DebugLevel {
		for _, mc := range counts.Top(10) {
			r.logger.Debug().Str("category", label).Str("model", mc.Model).Int("count", mc.Count).Msg("top model")
		}
	}

	return counts, nil
}
