package models

import "time"

// Timeframe is a named aggregation window. Each timeframe maps to a fixed
// bucket count and bucket width, so a series for a given timeframe always has
// the same length regardless of how much data exists.
type Timeframe string

const (
	Timeframe7D   Timeframe = "7d"
	Timeframe30D  Timeframe = "30d"
	Timeframe90D  Timeframe = "90d"
	Timeframe180D Timeframe = "180d"
	Timeframe1Y   Timeframe = "1y"
	Timeframe2Y   Timeframe = "2y"
)

// AllTimeframes lists every supported timeframe.
var AllTimeframes = []Timeframe{
	Timeframe7D, Timeframe30D, Timeframe90D, Timeframe180D, Timeframe1Y, Timeframe2Y,
}

type bucketStep int

const (
	stepDay bucketStep = iota
	stepWeek
	stepMonth
)

type bucketSpec struct {
	count int
	step  bucketStep
}

var bucketSpecs = map[Timeframe]bucketSpec{
	Timeframe7D:   {count: 7, step: stepDay},
	Timeframe30D:  {count: 30, step: stepDay},
	Timeframe90D:  {count: 13, step: stepWeek},
	Timeframe180D: {count: 6, step: stepMonth},
	Timeframe1Y:   {count: 12, step: stepMonth},
	Timeframe2Y:   {count: 24, step: stepMonth},
}

// Valid reports whether tf is a known timeframe.
func (tf Timeframe) Valid() bool {
	_, ok := bucketSpecs[tf]
	return ok
}

// BucketCount returns the fixed number of buckets in a series for tf.
func (tf Timeframe) BucketCount() int {
	return bucketSpecs[tf].count
}

// Boundaries returns the bucket end times for tf, ascending, with the final
// boundary equal to now. The final bucket is the "current" point.
func (tf Timeframe) Boundaries(now time.Time) []time.Time {
	spec := bucketSpecs[tf]
	boundaries := make([]time.Time, spec.count)
	for i := 0; i < spec.count; i++ {
		back := spec.count - 1 - i
		switch spec.step {
		case stepDay:
			boundaries[i] = now.AddDate(0, 0, -back)
		case stepWeek:
			boundaries[i] = now.AddDate(0, 0, -7*back)
		case stepMonth:
			boundaries[i] = now.AddDate(0, -back, 0)
		}
	}
	return boundaries
}

// Label formats a bucket boundary for display. Day- and week-wide buckets are
// labeled by day, month-wide buckets by month.
func (tf Timeframe) Label(t time.Time) string {
	if bucketSpecs[tf].step == stepMonth {
		return t.Format("Jan 2006")
	}
	return t.Format("Jan 2")
}
