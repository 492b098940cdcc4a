package model

// DimensionSlice is one pie slice: a distinct dimension value, how many of
// the filtered records carry it, and its display color. Slices keep the
// encounter order of the grouping pass.
type DimensionSlice struct {
	Value string `json:"value"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// CategoryStat is one bar chart entry: pass/fail counts for a distinct
// category value. PassRate is a percentage in [0,100] and 0 for an empty
// group.
type CategoryStat struct {
	Category  string  `json:"category"`
	PassCount int     `json:"passCount"`
	FailCount int     `json:"failCount"`
	Total     int     `json:"total"`
	PassRate  float64 `json:"passRate"`
}

// TrendPoint is one trend bucket, keyed by its formatted period label.
// Buckets inside the window with no matching records still appear with
// zero counts.
type TrendPoint struct {
	Period    string  `json:"period"`
	PassCount int     `json:"passCount"`
	FailCount int     `json:"failCount"`
	Total     int     `json:"total"`
	PassRate  float64 `json:"passRate"`
}

// PassRate computes the pass percentage with the shared zero-total rule
func PassRate(passCount, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(passCount) / float64(total)
}

// DimensionOptions lists the selectable values of one dimension,
// "All"-prefixed, for the filter and trend-scope selectors
type DimensionOptions struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}
