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
	"sort"
)

// median returns the median of vals, averaging the two middle values when
// len(vals) is even.  scratch is reused for sorting.
func median(vals []int32, scratch []int32) float64 {
	scratch = append(scratch[:0], vals...)
	sort.Slice(scratch, func(i, j int) bool { return scratch[i] < scratch[j] })
	n := len(scratch)
	if n%2 == 1 {
		return float64(scratch[n/2])
	}
	return (float64(scratch[n/2-1]) + float64(scratch[n/2])) / 2
}

// Normalize splits raw into consecutive blocks of blockSize positions (the
// last block may be shorter) and subtracts damping * median(block) from every
// value of each block.
func Normalize(raw []int32, blockSize int, damping float64) []float64 {
	result := make([]float64, len(raw))
	scratch := make([]int32, 0, blockSize)
	for blockStart := 0; blockStart < len(raw); blockStart += blockSize {
		blockEnd := blockStart + blockSize
		if blockEnd > len(raw) {
			blockEnd = len(raw)
		}
		block := raw[blockStart:blockEnd]
		shift := damping * median(block, scratch)
		for i, v := range block {
			result[blockStart+i] = float64(v) - shift
		}
	}
	return result
}
