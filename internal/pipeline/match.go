// Package pipeline implements the join-and-aggregate core: hashing raw
// phone numbers, matching them against the lookup table, counting matches
// per device model, and computing per-model success rates.
package pipeline

import (
	"strings"

	"orderrate/internal/lookup"
)

// MatchedRecord is one raw identifier joined against the lookup table.
// Model is empty when no table entry matches the identifier's key.
type MatchedRecord struct {
	Identifier string
	Key        string
	Model      string
}

// Match joins raw identifier lines against the lookup table, preserving
// input order. Lines are trimmed and empty lines skipped. Duplicate
// identifiers produce duplicate records; counts represent raw contact
// volume, not unique-phone volume.
func Match(lines []string, table *lookup.Table) []MatchedRecord {
	records := make([]MatchedRecord, 0, len(lines))
	for _, line := range lines {
		identifier := strings.TrimSpace(line)
		if identifier == "" {
			continue
		}
		key := lookup.Key(identifier)
		records = append(records, MatchedRecord{
			Identifier: identifier,
			Key:        key,
			Model:      table.Get(key),
		})
	}
	return records
}

// Matched returns how many records carry a non-empty model.
func Matched(records []MatchedRecord) int {
	n := 0
	for _, r := range records {
		if r.Model != "" {
			n++
		}
	}
	return n
}
