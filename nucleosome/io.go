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
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// ReadTrackFromPath is a wrapper for ReadTrack that takes a path instead of an
// io.Reader.  Gzipped (including bgzipped) input is detected by extension.
func ReadTrackFromPath(ctx context.Context, path string) (t *Track, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, "couldn't open track", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return nil, &InputFormatError{Path: path, Err: err}
		}
		defer gz.Close()
		reader = gz
	}
	if t, err = ReadTrack(reader); err != nil {
		if ife, ok := err.(*InputFormatError); ok {
			ife.Path = path
		}
		return nil, err
	}
	return t, nil
}

// createOutput opens path for writing; "-" means w.  Paths ending in .gz are
// bgzipped.  The returned closer must be called exactly once.
func createOutput(ctx context.Context, path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return stdout, func() error { return nil }, nil
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "couldn't create", path)
	}
	if !strings.HasSuffix(path, ".gz") {
		return out.Writer(ctx), func() error { return out.Close(ctx) }, nil
	}
	bw := bgzf.NewWriter(out.Writer(ctx), 1)
	return bw, func() error {
		err := bw.Close()
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
		return err
	}, nil
}

// WriteTrackToPath writes t to path (stdout if path is "-"), bgzipping when
// path ends in .gz.
func WriteTrackToPath(ctx context.Context, path string, stdout io.Writer, t *Track) (err error) {
	w, closer, err := createOutput(ctx, path, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if e := closer(); e != nil && err == nil {
			err = errors.E(e, "error writing track", path)
		}
	}()
	return WriteTrack(w, t)
}

// WriteCallsToPath writes calls to path (stdout if path is "-" or empty).
func WriteCallsToPath(ctx context.Context, path string, stdout io.Writer, calls []Call) (err error) {
	w, closer, err := createOutput(ctx, path, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if e := closer(); e != nil && err == nil {
			err = errors.E(e, "error writing calls", path)
		}
	}()
	return WriteCalls(w, calls)
}
