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
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/cfdna/encoding/fragment"
	"github.com/grailbio/cfdna/nucleosome"
)

var (
	region       = flag.String("region", "", "Region to score. Format as <contig ID>:<1-based first pos>-<last pos>, <contig ID>:<1-based pos>, or just <contig ID>. Defaults to the extent of the fragments on the first chromosome")
	window       = flag.Int("window", nucleosome.DefaultOpts.WindowSize, "Protection window size")
	maxFragLen   = flag.Int("max-fraglen", fragment.DefaultOpts.MaxFragmentLength, "Fragments at least this long are skipped")
	bamIndexPath = flag.String("index", "", "Input BAM index path. Defaults to bampath + .bai")
	outPath      = flag.String("out", "default_output_score.wig", "Output track path; '-' for stdout, .gz for bgzipped output")
)

func bioWPSUsage() {
	fmt.Printf("Usage: %s [OPTIONS] fragments.{bam,bed,bed.gz}\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioWPSUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one fragment file expected; please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	if *window < 2 {
		log.Fatalf("-window must be at least 2, got %d", *window)
	}
	ctx := vcontext.Background()
	opts := fragment.Opts{
		MaxFragmentLength: *maxFragLen,
		Region:            *region,
		Padding:           *window / 2,
	}
	src, err := fragment.NewSource(flag.Arg(0), opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if bs, ok := src.(*fragment.BAMSource); ok {
		bs.Index = *bamIndexPath
	}
	chrom, frags, err := src.Fragments(ctx)
	if err != nil {
		log.Panicf("%v", err)
	}
	start, end, err := fragment.ScoreRange(*region, frags)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
	scores, err := nucleosome.ScoreFragments(frags, start, end, *window)
	if err != nil {
		log.Fatalf("%v", err)
	}
	track := &nucleosome.Track{Chrom: nucleosome.ChromID(chrom), Start: start, Scores: scores}
	if err = nucleosome.WriteTrackToPath(ctx, *outPath, os.Stdout, track); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
