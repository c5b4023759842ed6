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

/*
bio-nucleosome calls nucleosome positions from a windowed protection score
track (see bio-wps), writing one "chr<id> start end" BED line per confirmed
nucleosome.

The track is median-centered in blocks, smoothed with a Savitzky-Golay filter,
and segmented into positive regions of plausible nucleosome length; each region
is narrowed to its maximum-sum subarray and kept only if the smoothed signal is
negative on both sides of its peak.

With --fragments, the protection score is computed from a BAM or fragment BED
file first, so that the whole pipeline runs in a single pass.

Sample usage:
bio-nucleosome --out calls.bed sample.wps.wig.gz

bio-nucleosome \
    --fragments sample.bam \
    --region 12:34443000-34448000 \
    --track-out sample.wps.wig.gz \
    --out calls.bed
*/
package main
