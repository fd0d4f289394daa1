package timeseries

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Aggregation selects how values within a bucket are combined.
type Aggregation int

const (
	// AggSum adds the observed values. A bucket with none sums to 0.
	AggSum Aggregation = iota
	// AggLast takes the last observed value, Missing if there is none.
	AggLast
)

// Bucket is a contiguous run of positions sharing one calendar period.
type Bucket struct {
	Start time.Time // first instant of the period
	From  int       // first position, inclusive
	To    int       // last position, exclusive
}

// MonthBuckets groups ascending timestamps by calendar month.
// Only months that contain at least one timestamp produce a bucket.
func MonthBuckets(timestamps []time.Time) []Bucket {
	var buckets []Bucket
	for i, ts := range timestamps {
		start := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
		if n := len(buckets); n > 0 && buckets[n-1].Start.Equal(start) {
			buckets[n-1].To = i + 1
			continue
		}
		buckets = append(buckets, Bucket{Start: start, From: i, To: i + 1})
	}
	return buckets
}

// Resample aggregates the series over buckets. The result has one position
// per bucket, timestamped with the bucket start.
func (s *Series) Resample(buckets []Bucket, agg Aggregation) *Series {
	starts := make([]time.Time, len(buckets))
	for i, b := range buckets {
		starts[i] = b.Start
	}
	out := newEmpty(s.Name, starts)

	for i, b := range buckets {
		part := s.Slice(b.From, b.To)
		switch agg {
		case AggSum:
			out.set(i, floats.Sum(part.Observed()))
		case AggLast:
			for j := part.Len() - 1; j >= 0; j-- {
				if part.IsObserved(j) {
					out.set(i, part.Values[j])
					break
				}
			}
		}
	}
	return out
}
