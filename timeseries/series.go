// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Flag describes the state of a single position in a Series.
type Flag uint8

const (
	// Observed marks a real value.
	Observed Flag = iota
	// Missing marks a value that is absent: empty in the source, derived from
	// absent inputs, or not yet computable (e.g. a rolling window that is not full).
	Missing
	// Undefined marks a value that was computed but has no numeric meaning,
	// such as a ratio with a zero denominator.
	Undefined
)

// String returns a short name for the flag.
func (f Flag) String() string {
	switch f {
	case Observed:
		return "observed"
	case Missing:
		return "missing"
	case Undefined:
		return "undefined"
	}
	return "unknown"
}

var (
	// ErrLengthMismatch is returned when aligned slices differ in length.
	ErrLengthMismatch = errors.New("timeseries: length mismatch")
)

// Series represents a time series with timestamps and values.
//
// Values and Flags are always the same length. Positions whose flag is not
// Observed hold NaN in Values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Flags      []Flag
	Name       string
}

// New creates a new series from values. NaN values are flagged Missing.
func New(name string, timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLengthMismatch
	}
	flags := make([]Flag, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			flags[i] = Missing
		}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Flags:      flags,
		Name:       name,
	}, nil
}

// newEmpty allocates a series of n Missing positions aligned to timestamps.
func newEmpty(name string, timestamps []time.Time) *Series {
	n := len(timestamps)
	values := make([]float64, n)
	flags := make([]Flag, n)
	for i := range values {
		values[i] = math.NaN()
		flags[i] = Missing
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Flags:      flags,
		Name:       name,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// At returns the value and flag at position i.
func (s *Series) At(i int) (float64, Flag) {
	return s.Values[i], s.Flags[i]
}

// IsObserved reports whether position i holds a real value.
func (s *Series) IsObserved(i int) bool {
	return s.Flags[i] == Observed
}

func (s *Series) set(i int, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		s.Values[i] = math.NaN()
		s.Flags[i] = Undefined
		return
	}
	s.Values[i] = v
	s.Flags[i] = Observed
}

// Observed returns the observed values in order, skipping every other position.
func (s *Series) Observed() []float64 {
	out := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		if s.Flags[i] == Observed {
			out = append(out, v)
		}
	}
	return out
}

// Sum returns the sum of observed values. It is 0 for a series with none.
func (s *Series) Sum() float64 {
	return floats.Sum(s.Observed())
}

// Max returns the maximum observed value in the series.
func (s *Series) Max() float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	return floats.Max(obs)
}

// ArgMax returns the position of the largest observed value. Ties resolve to
// the earliest position. It returns -1 when nothing is observed.
func (s *Series) ArgMax() int {
	best := -1
	for i, v := range s.Values {
		if s.Flags[i] != Observed {
			continue
		}
		if best == -1 || v > s.Values[best] {
			best = i
		}
	}
	return best
}

// Last returns the value and flag at the final position, whatever its state.
// It returns (NaN, Missing) for an empty series.
func (s *Series) Last() (float64, Flag) {
	if len(s.Values) == 0 {
		return math.NaN(), Missing
	}
	return s.At(len(s.Values) - 1)
}

// FillMissing returns a copy with every Missing position replaced by v.
// Undefined positions are left alone.
func (s *Series) FillMissing(v float64) *Series {
	out := s.Copy()
	for i, f := range out.Flags {
		if f == Missing {
			out.Values[i] = v
			out.Flags[i] = Observed
		}
	}
	return out
}

// Rolling calculates a trailing mean over exactly window positions.
//
// The result has the same length as s. The first window-1 positions are
// Missing, as is any position whose window contains a non-observed value.
func (s *Series) Rolling(window int) *Series {
	out := newEmpty(s.Name+"_rolling", s.Timestamps)
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(s.Values); i++ {
		lo := i - window + 1
		complete := true
		for j := lo; j <= i; j++ {
			if s.Flags[j] != Observed {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		out.set(i, floats.Sum(s.Values[lo:i+1])/float64(window))
	}
	return out
}

// Ratio divides s by den position by position and multiplies by scale.
//
// A position is Missing when either input is not observed, and Undefined
// when the denominator is zero.
func (s *Series) Ratio(den *Series, scale float64, name string) (*Series, error) {
	if s.Len() != den.Len() {
		return nil, ErrLengthMismatch
	}
	out := newEmpty(name, s.Timestamps)
	for i := range s.Values {
		if s.Flags[i] != Observed || den.Flags[i] != Observed {
			continue
		}
		if den.Values[i] == 0 {
			out.Flags[i] = Undefined
			continue
		}
		out.set(i, s.Values[i]/den.Values[i]*scale)
	}
	return out, nil
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name, Timestamps: []time.Time{}, Values: []float64{}, Flags: []Flag{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	flags := make([]Flag, end-start)
	copy(flags, s.Flags[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Flags:      flags,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	flags := make([]Flag, len(s.Flags))
	copy(flags, s.Flags)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Flags:      flags,
		Name:       s.Name,
	}
}
