package nucleosome

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// plateau returns n values of background with [start, end) set to level.
func plateau(n, start, end int, level, background float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = background
		if i >= start && i < end {
			vals[i] = level
		}
	}
	return vals
}

func TestSegmenterSinglePlateau(t *testing.T) {
	s := NewSegmenter(&DefaultOpts)
	got := s.Segment(plateau(400, 50, 140, 1, -10), 0)
	// The region opens at 50 and closes on the sixth negative value, at 145.
	expect.EQ(t, got, []Candidate{{Start: 50, End: 145}})
	expect.EQ(t, s.State(), Idle)

	got = s.Segment(plateau(400, 50, 140, 1, -10), 1000)
	expect.EQ(t, got, []Candidate{{Start: 1050, End: 1145}})
}

func TestSegmenterLengthBand(t *testing.T) {
	opts := DefaultOpts
	tests := []struct {
		plateauLen int
		accepted   bool
	}{
		// Region length is plateauLen + ThreshMax - 1.
		{opts.NuclMin - opts.ThreshMax + 1, true},
		{opts.NuclMin - opts.ThreshMax, false},
		{opts.NuclMax - opts.ThreshMax + 1, true},
		{opts.NuclMax - opts.ThreshMax + 2, false},
	}
	for _, tt := range tests {
		got := NewSegmenter(&opts).Segment(plateau(600, 100, 100+tt.plateauLen, 2, -1), 0)
		if tt.accepted {
			expect.EQ(t, len(got), 1)
			l := got[0].Len()
			expect.True(t, l == opts.NuclMin || l == opts.NuclMax, "length %d", l)
		} else {
			expect.EQ(t, len(got), 0, "plateau %d", tt.plateauLen)
		}
	}
}

func TestSegmenterCumulativeThreshold(t *testing.T) {
	opts := DefaultOpts
	opts.NuclMin = 1
	s := NewSegmenter(&opts)
	// Isolated negatives add up while the region is open.
	vals := []float64{1, -1, 1, -1, 1, -1, 1, -1, 1, -1, 1, -1, 1}
	got := s.Segment(vals, 0)
	expect.EQ(t, got, []Candidate{{Start: 0, End: 11}})
	// The trailing 1 reopened a region, which never closes.
	expect.EQ(t, s.State(), Active)
}

func TestSegmenterZeros(t *testing.T) {
	opts := DefaultOpts
	opts.NuclMin = 1
	s := NewSegmenter(&opts)
	expect.EQ(t, len(s.Segment(make([]float64, 100), 0)), 0)
	expect.EQ(t, s.State(), Idle)

	// Zeros inside an open region don't count toward closing it.
	vals := append([]float64{1}, make([]float64, 20)...)
	vals = append(vals, -1, -1, -1, -1, -1, -1)
	expect.EQ(t, s.Segment(vals, 0), []Candidate{{Start: 0, End: 26}})
}

func TestSegmenterUnclosedRegionDiscarded(t *testing.T) {
	vals := plateau(200, 100, 200, 1, -1)
	s := NewSegmenter(&DefaultOpts)
	expect.EQ(t, len(s.Segment(vals, 0)), 0)
	expect.EQ(t, s.State(), Active)
	// Segment always starts from Idle.
	expect.EQ(t, len(s.Segment(plateau(10, 0, 0, 0, -1), 0)), 0)
	expect.EQ(t, s.State(), Idle)
}

func TestSegmenterStep(t *testing.T) {
	opts := DefaultOpts
	opts.NuclMin, opts.NuclMax, opts.ThreshMax = 2, 3, 1
	s := NewSegmenter(&opts)
	_, ok := s.Step(10, 5)
	expect.False(t, ok)
	expect.EQ(t, s.State(), Active)
	_, ok = s.Step(11, 5)
	expect.False(t, ok)
	c, ok := s.Step(12, -5)
	expect.True(t, ok)
	expect.EQ(t, c, Candidate{Start: 10, End: 12})
	expect.EQ(t, s.State(), Idle)
	expect.EQ(t, Active.String(), "ACTIVE")
}
