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

// Package nucleosome calls candidate nucleosome positions from cell-free DNA
// fragments.
//
// The pipeline has five stages, each consuming the complete output of the
// previous one:
//
//   1. fragments are loaded into an interval.Index;
//   2. Score walks the region, producing the windowed protection score (WPS)
//      of every position: +1 for each fragment spanning the whole window
//      around it, -1 for each fragment with an endpoint inside the window;
//   3. Normalize subtracts a damped per-block median, and SavGol smooths the
//      result;
//   4. a Segmenter scans the smoothed signal for positive stretches of
//      nucleosome-like length;
//   5. Refine localizes the maximum-sum sub-interval of each candidate, and
//      candidates whose peak is flanked by negative signal on both sides are
//      reported.
//
// All of this is single-threaded and deterministic per chromosome.  Separate
// Callers share no mutable state, so chromosomes may be processed in parallel
// by the caller.
package nucleosome
