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
	"io"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/cfdna/bins"
)

var (
	window  = flag.Int("window", bins.DefaultOpts.WindowSize, "Counting window size")
	status  = flag.String("status", "", "Sample status, e.g. 'healthy'; required")
	cancer  = flag.String("cancer", "", "Cancer type, or 'none' for healthy samples; required")
	outPath = flag.String("out", "", "Output path; stdout if empty")
)

func usage() {
	fmt.Printf("Usage: %s -status S -cancer C [OPTIONS] calls.bed ...\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	ctx := vcontext.Background()
	table, err := bins.Features(ctx, flag.Args(), bins.Opts{
		WindowSize: *window,
		Status:     *status,
		Cancer:     *cancer,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	var w io.Writer = os.Stdout
	if *outPath != "" {
		out, err := file.Create(ctx, *outPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer func() {
			if err := out.Close(ctx); err != nil {
				log.Panicf("%s: %v", *outPath, err)
			}
		}()
		w = out.Writer(ctx)
	}
	if err = bins.WriteFeatures(w, table); err != nil {
		log.Panicf("%v", err)
	}
}
