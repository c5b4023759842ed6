// Package bins summarizes nucleosome call files as per-window call counts,
// one feature vector per sample, for downstream healthy/cancer
// classification.
package bins

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/cfdna/interval"
	"github.com/pkg/errors"
)

// PosType is the integer type used to represent genomic positions.
type PosType = interval.PosType

// Opts describes a feature extraction run.
type Opts struct {
	// WindowSize is the width of each counting window.
	WindowSize int
	// Status is the sample status label, e.g. "healthy".
	Status string
	// Cancer is the cancer type label, "none" for healthy samples.
	Cancer string
}

// DefaultOpts is the default set of options.  Status and Cancer have no
// default and must be set.
var DefaultOpts = Opts{
	WindowSize: 1000000,
}

func (opts *Opts) validate() error {
	if opts.WindowSize <= 0 {
		return errors.Errorf("bins: window size must be positive, got %d", opts.WindowSize)
	}
	if opts.Status == "" {
		return errors.New("bins: sample status must be specified")
	}
	if opts.Cancer == "" {
		return errors.New("bins: cancer type must be specified")
	}
	return nil
}

// Table holds the per-window call counts of a set of call files.
type Table struct {
	Opts
	// Paths[i] is the file Counts[i] was computed from.
	Paths  []string
	Counts [][]int
}

// CountEnds returns the number of ends in each window [k*windowSize,
// (k+1)*windowSize), for every k with (k+1)*windowSize < limit.  Ends in the
// first window include any negative values, and ends at or past the last
// counted boundary are dropped.  ends must be sorted.
func CountEnds(ends []PosType, windowSize int, limit PosType) []int {
	var counts []int
	for boundary := windowSize; PosType(boundary) < limit; boundary += windowSize {
		n := sort.Search(len(ends), func(i int) bool { return ends[i] >= PosType(boundary) })
		counts = append(counts, n)
		ends = ends[n:]
	}
	return counts
}

func isCallFile(path string) bool {
	return strings.HasSuffix(path, ".bed") || strings.HasSuffix(path, ".bed.gz")
}

// Features loads every call file in paths (in parallel) and counts call ends
// per window.  All files are binned up to the largest call end seen in any of
// them, so the resulting vectors have equal length.
func Features(ctx context.Context, paths []string, opts Opts) (*Table, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("bins: no call files")
	}
	for _, path := range paths {
		if !isCallFile(path) {
			return nil, errors.Errorf("bins: %s is not a .bed file", path)
		}
	}
	ends := make([][]PosType, len(paths))
	err := traverse.Each(len(paths), func(i int) error {
		entries, err := interval.ReadBEDEntriesFromPath(paths[i])
		if err != nil {
			return errors.Wrapf(err, "bins: %s", paths[i])
		}
		fileEnds := make([]PosType, len(entries))
		for j, e := range entries {
			fileEnds[j] = e.End
		}
		sort.Slice(fileEnds, func(a, b int) bool { return fileEnds[a] < fileEnds[b] })
		ends[i] = fileEnds
		return nil
	})
	if err != nil {
		return nil, err
	}
	var limit PosType
	for _, e := range ends {
		if len(e) > 0 && e[len(e)-1] > limit {
			limit = e[len(e)-1]
		}
	}
	t := &Table{Opts: opts, Paths: paths, Counts: make([][]int, len(paths))}
	for i, e := range ends {
		t.Counts[i] = CountEnds(e, opts.WindowSize, limit)
		log.Debug.Printf("%s: %d call(s), %d window(s)", paths[i], len(e), len(t.Counts[i]))
	}
	log.Printf("binned %d file(s) up to position %d", len(paths), limit)
	return t, nil
}

// WriteFeatures writes t as a "num_files=N window_size=W status=S cancer=C"
// header line followed by one count per line, file by file.
func WriteFeatures(w io.Writer, t *Table) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("num_files=" + strconv.Itoa(len(t.Counts)))
	tw.WriteString("window_size=" + strconv.Itoa(t.WindowSize))
	tw.WriteString("status=" + t.Status)
	tw.WriteString("cancer=" + t.Cancer)
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, counts := range t.Counts {
		for _, c := range counts {
			tw.WriteInt64(int64(c))
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}
