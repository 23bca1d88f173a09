package pipeline

import "sort"

// ModelCount is one frequency-table entry: a device model and how many
// matched records carried it.
type ModelCount struct {
	Model string
	Count int
}

// FrequencyTable is a per-model frequency table sorted ascending by model
// name. It never contains an entry for the empty model.
type FrequencyTable []ModelCount

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() int {
	total := 0
	for _, mc := range ft {
		total += mc.Count
	}
	return total
}

// Aggregate counts matched records per model, excluding unmatched records
// (empty model). An empty input yields an empty table, not an error.
func Aggregate(records []MatchedRecord) FrequencyTable {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Model == "" {
			continue
		}
		counts[r.Model]++
	}

	table := make(FrequencyTable, 0, len(counts))
	for model, count := range counts {
		table = append(table, ModelCount{Model: model, Count: count})
	}
	sort.Slice(table, func(i, j int) bool {
		return table[i].Model < table[j].Model
	})
	return table
}

// Top returns the n highest-count entries, largest first. Ties keep the
// ascending model-name order of the table.
func (ft FrequencyTable) Top(n int) FrequencyTable {
	top := make(FrequencyTable, len(ft))
	copy(top, ft)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if n < len(top) {
		top = top[:n]
	}
	return top
}
