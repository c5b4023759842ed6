// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package nucleosome

import (
	"github.com/grailbio/cfdna/interval"
)

// SegmentState is the state of a Segmenter.
type SegmentState int

const (
	// Idle means no candidate is open.
	Idle SegmentState = iota
	// Active means a candidate opened at a positive value and hasn't yet seen
	// ThreshMax below-zero values.
	Active
)

func (s SegmentState) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Active:
		return "ACTIVE"
	}
	return "UNKNOWN"
}

// Candidate is a [Start, End) stretch of positive smoothed signal.
type Candidate struct {
	Start PosType
	End   PosType
}

// Len returns End - Start.
func (c Candidate) Len() int {
	return int(c.End - c.Start)
}

// Segmenter is the hysteresis state machine which opens a candidate at the
// first positive value and closes it once ThreshMax below-zero values have
// been seen while open.  The below-zero count is cumulative for the open
// candidate; positive values in between do not reset it.  Values that are
// exactly zero neither open a candidate nor count toward closing one.
type Segmenter struct {
	nuclMin, nuclMax int
	threshMax        int

	state  SegmentState
	thresh int
	start  PosType
}

// NewSegmenter returns an Idle Segmenter configured from opts.
func NewSegmenter(opts *Opts) *Segmenter {
	return &Segmenter{
		nuclMin:   opts.NuclMin,
		nuclMax:   opts.NuclMax,
		threshMax: opts.ThreshMax,
	}
}

// Reset returns the machine to Idle, discarding any open region.
func (s *Segmenter) Reset() {
	s.state = Idle
	s.thresh = 0
	s.start = 0
}

// State returns the current state.
func (s *Segmenter) State() SegmentState { return s.state }

// Step feeds the value at pos to the machine.  Positions must be fed in
// ascending order.  It returns a candidate, and true, when a region closes
// with a length in [NuclMin, NuclMax].
func (s *Segmenter) Step(pos PosType, v float64) (Candidate, bool) {
	switch s.state {
	case Idle:
		if v > 0 {
			s.state = Active
			s.start = pos
		}
		return Candidate{}, false
	case Active:
		if v < 0 {
			s.thresh++
		}
		if s.thresh < s.threshMax {
			return Candidate{}, false
		}
		s.state = Idle
		s.thresh = 0
		c := Candidate{Start: s.start, End: pos}
		if l := c.Len(); l < s.nuclMin || l > s.nuclMax {
			return Candidate{}, false
		}
		return c, true
	}
	panic(s.state)
}

// Segment scans smoothed, whose first entry belongs to position start, and
// returns the accepted candidates in ascending order.  The machine is reset
// first, and a region still open at the end of the sequence is discarded.
func (s *Segmenter) Segment(smoothed []float64, start PosType) []Candidate {
	s.Reset()
	var result []Candidate
	for i, v := range smoothed {
		if c, ok := s.Step(start+PosType(i), v); ok {
			result = append(result, c)
		}
	}
	return result
}

// indexCandidates loads candidates into a fresh overlap index, which the
// refinement stage walks in genomic order.
func indexCandidates(candidates []Candidate) (*interval.Index, error) {
	idx := interval.NewIndex()
	for _, c := range candidates {
		if err := idx.Insert(interval.Interval{Start: c.Start, End: c.End}); err != nil {
			return nil, err
		}
	}
	idx.Freeze()
	return idx, nil
}
