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
bio-wps computes the windowed protection score (WPS) of a cell-free DNA
sample along one chromosome region and writes it as a fixedStep wiggle track.

At each position p, every fragment overlapping the window [p-60, p+60)
contributes +1 if it spans the whole window and -1 otherwise.  Fragments are
read from a paired-end BAM (read 1 of proper pairs, duplicates and QC failures
excluded) or from a "chrom start end" BED file.

Sample usage:
bio-wps \
    --region 12:34443000-34448000 \
    --out sample.wps.wig.gz \
    sample.bam
*/
package main
