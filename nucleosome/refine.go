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

// RefinedPeak describes the maximum-sum sub-interval of a Candidate.  All
// positions are absolute.
type RefinedPeak struct {
	// SubStart and SubEnd bound the maximum-sum sub-interval [SubStart, SubEnd).
	SubStart PosType
	Mid      PosType
	SubEnd   PosType
	// PeakValue is the largest smoothed value in the candidate, first found at
	// PeakPos.
	PeakValue float64
	PeakPos   PosType
}

// Refine localizes the region of highest protection inside c.  smoothed[i]
// belongs to position start + i, and c must lie within it.
//
// The sub-interval comes from a single Kadane pass: the running sum is reset
// to zero, and the tentative start moved past the current position, whenever
// it drops below zero; the best range only changes on a strictly larger sum,
// so earlier ranges win ties.
func Refine(c Candidate, smoothed []float64, start PosType) RefinedPeak {
	offset := int(c.Start - start)
	span := smoothed[offset : offset+c.Len()]
	if len(span) == 0 {
		return RefinedPeak{SubStart: c.Start, Mid: c.Start, SubEnd: c.Start, PeakPos: c.Start}
	}

	bestStart, bestEnd := 0, 1
	bestSum := span[0]
	curStart := 0
	var curSum float64
	peakIdx := 0
	for i, v := range span {
		curSum += v
		if curSum > bestSum {
			bestSum = curSum
			bestStart = curStart
			bestEnd = i + 1
		}
		if curSum < 0 {
			curSum = 0
			curStart = i + 1
		}
		if v > span[peakIdx] {
			peakIdx = i
		}
	}
	return RefinedPeak{
		SubStart:  c.Start + PosType(bestStart),
		Mid:       c.Start + PosType((bestStart+bestEnd)/2),
		SubEnd:    c.Start + PosType(bestEnd),
		PeakValue: span[peakIdx],
		PeakPos:   c.Start + PosType(peakIdx),
	}
}

// Confirm returns true iff the smoothed signal is negative at distance
// offset on both sides of the peak.  A peak too close to either end of the
// sequence for that to be checked is not confirmed.
func Confirm(p RefinedPeak, smoothed []float64, start PosType, offset int) bool {
	peak := int(p.PeakPos - start)
	left, right := peak-offset, peak+offset
	if left < 0 || right >= len(smoothed) {
		return false
	}
	return smoothed[left] < 0 && smoothed[right] < 0
}
