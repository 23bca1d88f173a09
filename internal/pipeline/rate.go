package pipeline

import "sort"

// RateRow is one line of the final report: per-model intention and connect
// counts and their ratio. SuccessRate holds the full-precision ratio;
// percentage formatting is a presentation concern.
type RateRow struct {
	Model          string
	IntentionCount int
	ConnectCount   int
	SuccessRate    float64
}

// SuccessRates joins the intention frequency table against the connect
// table and computes per-model success rates. The connect table's model
// set is the report universe: models present only in the intention table
// are dropped. That one-sided join is deliberate and must be preserved;
// see DroppedIntentionModels for surfacing the lost signal.
func SuccessRates(connect, intention FrequencyTable) []RateRow {
	intentionByModel := make(map[string]int, len(intention))
	for _, mc := range intention {
		intentionByModel[mc.Model] = mc.Count
	}

	rows := make([]RateRow, 0, len(connect))
	for _, mc := range connect {
		intentionCount := intentionByModel[mc.Model]

		// ConnectCount is always >= 1 by the frequency-table invariant;
		// the guard keeps a malformed table from dividing by zero.
		rate := 0.0
		if mc.Count > 0 {
			rate = float64(intentionCount) / float64(mc.Count)
		}

		rows = append(rows, RateRow{
			Model:          mc.Model,
			IntentionCount: intentionCount,
			ConnectCount:   mc.Count,
			SuccessRate:    rate,
		})
	}

	// The rows are already ascending because connect is sorted, but the
	// ordering is a contract of the report, not an accident of iteration.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Model < rows[j].Model
	})
	return rows
}

// DroppedIntentionModels returns the models present in the intention table
// but absent from the connect table, the signal the one-sided join drops
// from the report.
func DroppedIntentionModels(connect, intention FrequencyTable) []string {
	inConnect := make(map[string]bool, len(connect))
	for _, mc := range connect {
		inConnect[mc.Model] = true
	}

	var dropped []string
	for _, mc := range intention {
		if !inConnect[mc.Model] {
			dropped = append(dropped, mc.Model)
		}
	}
	return dropped
}
