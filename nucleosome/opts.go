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
	"fmt"
)

// Opts configures every stage of the caller.
type Opts struct {
	// WindowSize is the width of the sliding protection window.
	WindowSize int
	// BlockSize is the number of positions per median-centering block.
	BlockSize int
	// MedianDamping is the fraction of each block median that is subtracted.
	// This is an empirical knob; 1.0 centers every block exactly.
	MedianDamping float64
	// FilterWindow and FilterOrder parameterize the Savitzky-Golay filter.
	FilterWindow int
	FilterOrder  int
	// NuclMin and NuclMax bound the accepted candidate length, inclusive.
	NuclMin int
	NuclMax int
	// ThreshMax is the number of below-zero samples that closes a candidate.
	ThreshMax int
	// ConfidenceOffset is the distance from the peak at which the smoothed
	// signal must be negative on both sides.
	ConfidenceOffset int
}

// DefaultOpts is the default set of options.
var DefaultOpts = Opts{
	WindowSize:       120,
	BlockSize:        1000,
	MedianDamping:    0.90,
	FilterWindow:     21,
	FilterOrder:      2,
	NuclMin:          50,
	NuclMax:          150,
	ThreshMax:        6,
	ConfidenceOffset: 90,
}

// Validate checks parameter consistency.
func (o *Opts) Validate() error {
	if o.WindowSize < 2 {
		return fmt.Errorf("nucleosome: window size must be at least 2, got %d", o.WindowSize)
	}
	if o.BlockSize < 1 {
		return fmt.Errorf("nucleosome: block size must be positive, got %d", o.BlockSize)
	}
	if o.MedianDamping < 0 || o.MedianDamping > 1 {
		return fmt.Errorf("nucleosome: median damping must be in [0, 1], got %v", o.MedianDamping)
	}
	if err := (SavGol{Window: o.FilterWindow, Order: o.FilterOrder}).validate(); err != nil {
		return err
	}
	if o.NuclMin < 1 || o.NuclMax < o.NuclMin {
		return fmt.Errorf("nucleosome: invalid candidate length band [%d, %d]", o.NuclMin, o.NuclMax)
	}
	if o.ThreshMax < 1 {
		return fmt.Errorf("nucleosome: thresh max must be positive, got %d", o.ThreshMax)
	}
	if o.ConfidenceOffset < 1 {
		return fmt.Errorf("nucleosome: confidence offset must be positive, got %d", o.ConfidenceOffset)
	}
	return nil
}

// minRegionLen returns the smallest region the pipeline accepts, along with
// the constraint that sets it.
func (o *Opts) minRegionLen() (int, string) {
	if o.FilterWindow >= o.NuclMin {
		return o.FilterWindow, "the smoothing window"
	}
	return o.NuclMin, "the minimum nucleosome length"
}
