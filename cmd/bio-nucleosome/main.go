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
	"context"
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
	window           = flag.Int("window", nucleosome.DefaultOpts.WindowSize, "Protection window size (only used with -fragments)")
	blockSize        = flag.Int("block-size", nucleosome.DefaultOpts.BlockSize, "Number of positions per median-centering block")
	damping          = flag.Float64("damping", nucleosome.DefaultOpts.MedianDamping, "Fraction of each block median to subtract")
	filterWindow     = flag.Int("filter-window", nucleosome.DefaultOpts.FilterWindow, "Savitzky-Golay window length; must be odd")
	filterOrder      = flag.Int("filter-order", nucleosome.DefaultOpts.FilterOrder, "Savitzky-Golay polynomial order")
	nuclMin          = flag.Int("nucl-min", nucleosome.DefaultOpts.NuclMin, "Minimum candidate length")
	nuclMax          = flag.Int("nucl-max", nucleosome.DefaultOpts.NuclMax, "Maximum candidate length")
	threshMax        = flag.Int("thresh-max", nucleosome.DefaultOpts.ThreshMax, "Number of negative samples that closes a candidate")
	confidenceOffset = flag.Int("confidence-offset", nucleosome.DefaultOpts.ConfidenceOffset, "Distance from the peak at which the signal must be negative")
	outPath          = flag.String("out", "", "Output call path; stdout if empty, .gz for bgzipped output")

	fragmentsPath = flag.String("fragments", "", "Fragment BAM or BED path; when set, the protection score is computed instead of read")
	region        = flag.String("region", "", "Region to score with -fragments, formatted as for bio-wps")
	maxFragLen    = flag.Int("max-fraglen", fragment.DefaultOpts.MaxFragmentLength, "Fragments at least this long are skipped (only used with -fragments)")
	bamIndexPath  = flag.String("index", "", "Input BAM index path. Defaults to bampath + .bai")
	trackOutPath  = flag.String("track-out", "", "If set with -fragments, the protection score track is also written here")
)

func bioNucleosomeUsage() {
	fmt.Printf("Usage: %s [OPTIONS] track.wig[.gz]\n", os.Args[0])
	fmt.Printf("       %s [OPTIONS] -fragments fragments.{bam,bed,bed.gz}\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func callFromFragments(ctx context.Context, caller *nucleosome.Caller) []nucleosome.Call {
	opts := fragment.Opts{
		MaxFragmentLength: *maxFragLen,
		Region:            *region,
		Padding:           caller.Opts().WindowSize / 2,
	}
	src, err := fragment.NewSource(*fragmentsPath, opts)
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
		log.Fatalf("%s: %v", *fragmentsPath, err)
	}
	track, calls, err := caller.CallFragments(chrom, frags, start, end)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *trackOutPath != "" {
		if err = nucleosome.WriteTrackToPath(ctx, *trackOutPath, os.Stdout, track); err != nil {
			log.Panicf("%v", err)
		}
	}
	return calls
}

func main() {
	flag.Usage = bioNucleosomeUsage
	shutdown := grail.Init()
	defer shutdown()

	ctx := vcontext.Background()
	caller, err := nucleosome.NewCaller(nucleosome.Opts{
		WindowSize:       *window,
		BlockSize:        *blockSize,
		MedianDamping:    *damping,
		FilterWindow:     *filterWindow,
		FilterOrder:      *filterOrder,
		NuclMin:          *nuclMin,
		NuclMax:          *nuclMax,
		ThreshMax:        *threshMax,
		ConfidenceOffset: *confidenceOffset,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	var calls []nucleosome.Call
	if *fragmentsPath != "" {
		if flag.NArg() != 0 {
			log.Fatalf("No positional arguments expected with -fragments: '%s'", strings.Join(flag.Args(), " "))
		}
		calls = callFromFragments(ctx, caller)
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("Exactly one track file expected; please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
		}
		track, err := nucleosome.ReadTrackFromPath(ctx, flag.Arg(0))
		if err != nil {
			log.Fatalf("%v", err)
		}
		if calls, err = caller.CallTrack(track); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err = nucleosome.WriteCallsToPath(ctx, *outPath, os.Stdout, calls); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
