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
	"github.com/grailbio/base/log"
	"github.com/grailbio/cfdna/interval"
)

// Caller runs the pipeline for one chromosome region at a time.  A Caller
// holds no per-region state, so one Caller may be reused sequentially, and
// distinct Callers may run concurrently.
type Caller struct {
	opts Opts
}

// NewCaller validates opts and returns a Caller using them.
func NewCaller(opts Opts) (*Caller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Caller{opts: opts}, nil
}

// Opts returns the caller's configuration.
func (c *Caller) Opts() Opts { return c.opts }

func (c *Caller) checkRegionLen(n int) error {
	if n <= 0 {
		return &EmptyInputError{What: "positions"}
	}
	if minLen, reason := c.opts.minRegionLen(); n < minLen {
		return &RegionTooSmallError{Len: n, Min: minLen, Reason: reason}
	}
	return nil
}

// Smooth normalizes and smooths a raw score sequence.
func (c *Caller) Smooth(raw []int32) ([]float64, error) {
	if err := c.checkRegionLen(len(raw)); err != nil {
		return nil, err
	}
	normalized := Normalize(raw, c.opts.BlockSize, c.opts.MedianDamping)
	return SavGol{Window: c.opts.FilterWindow, Order: c.opts.FilterOrder}.Filter(normalized)
}

// CallSmoothed segments and refines an already-smoothed sequence whose first
// entry belongs to position start of chrom.
func (c *Caller) CallSmoothed(chrom string, smoothed []float64, start PosType) ([]Call, error) {
	candidates := NewSegmenter(&c.opts).Segment(smoothed, start)
	log.Printf("nucleosome: %d candidate region(s) on chr%s", len(candidates), chrom)
	if len(candidates) == 0 {
		return nil, nil
	}
	idx, err := indexCandidates(candidates)
	if err != nil {
		return nil, err
	}
	var calls []Call
	end := start + PosType(len(smoothed))
	idx.Do(start, end, func(iv interval.Interval) bool {
		peak := Refine(Candidate{Start: iv.Start, End: iv.End}, smoothed, start)
		if !Confirm(peak, smoothed, start, c.opts.ConfidenceOffset) {
			log.Debug.Printf("nucleosome: dropping candidate [%d, %d), peak %v at %d not flanked by negative signal",
				iv.Start, iv.End, peak.PeakValue, peak.PeakPos)
			return false
		}
		calls = append(calls, Call{Chrom: chrom, Start: peak.SubStart, End: peak.SubEnd})
		return false
	})
	log.Printf("nucleosome: %d of %d candidate(s) confirmed on chr%s", len(calls), len(candidates), chrom)
	return calls, nil
}

// CallTrack runs normalization, smoothing, segmentation and refinement over
// a raw score track.
func (c *Caller) CallTrack(t *Track) ([]Call, error) {
	smoothed, err := c.Smooth(t.Scores)
	if err != nil {
		return nil, err
	}
	return c.CallSmoothed(t.Chrom, smoothed, t.Start)
}

// CallFragments scores the closed region [regionStart, regionEnd] of chrom
// from frags, and then calls it like CallTrack.  All input validation happens
// before scoring begins.
func (c *Caller) CallFragments(chrom string, frags []interval.Interval, regionStart, regionEnd PosType) (*Track, []Call, error) {
	if len(frags) == 0 {
		return nil, nil, &EmptyInputError{What: "fragments"}
	}
	if err := c.checkRegionLen(int(regionEnd) - int(regionStart) + 1); err != nil {
		return nil, nil, err
	}
	scores, err := ScoreFragments(frags, regionStart, regionEnd, c.opts.WindowSize)
	if err != nil {
		return nil, nil, err
	}
	t := &Track{Chrom: ChromID(chrom), Start: regionStart, Scores: scores}
	calls, err := c.CallTrack(t)
	if err != nil {
		return nil, nil, err
	}
	return t, calls, nil
}
