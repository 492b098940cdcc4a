package types

import "github.com/m-mizutani/goerr/v2"

// Granularity is the bucket size of the trend series
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// IsValid checks if the granularity is one of the known values
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return true
	}
	return false
}

// String returns the string representation
func (g Granularity) String() string {
	return string(g)
}

// ParseGranularity parses a string into a Granularity
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.IsValid() {
		return "", goerr.New("unknown granularity", goerr.V("granularity", s))
	}
	return g, nil
}
