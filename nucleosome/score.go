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

type PosType = interval.PosType

// Score computes the windowed protection score of every position in the
// closed range [regionStart, regionEnd].  The window around position p is
// [p - h, p + h) with h = windowSize / 2; a stored interval contributes +1 if
// it spans the whole window and -1 if it merely overlaps it.  Windows
// extending past the region are scored with whatever the index returns.
//
// The result has regionEnd - regionStart + 1 entries, result[i] belonging to
// position regionStart + i.
func Score(idx *interval.Index, regionStart, regionEnd PosType, windowSize int) []int32 {
	if regionEnd < regionStart {
		return nil
	}
	half := PosType(windowSize / 2)
	scores := make([]int32, int(regionEnd-regionStart)+1)
	for i := range scores {
		pos := regionStart + PosType(i)
		wStart, wEnd := pos-half, pos+half
		var score int32
		idx.Do(wStart, wEnd, func(iv interval.Interval) bool {
			if iv.Contains(wStart, wEnd) {
				score++
			} else {
				score--
			}
			return false
		})
		scores[i] = score
	}
	return scores
}

// ScoreFragments indexes frags and scores [regionStart, regionEnd] with
// Score.
func ScoreFragments(frags []interval.Interval, regionStart, regionEnd PosType, windowSize int) ([]int32, error) {
	if len(frags) == 0 {
		return nil, &EmptyInputError{What: "fragments"}
	}
	idx := interval.NewIndex()
	for i, f := range frags {
		if err := idx.Insert(f); err != nil {
			return nil, &InputFormatError{Line: i + 1, Err: err}
		}
	}
	idx.Freeze()
	log.Printf("nucleosome.ScoreFragments: indexed %d fragment(s), scoring [%d, %d]", idx.Len(), regionStart, regionEnd)
	return Score(idx, regionStart, regionEnd, windowSize), nil
}
