package fragment

import (
	"context"
	"sort"
	"strings"

	"github.com/grailbio/cfdna/interval"
	"github.com/pkg/errors"
)

// PosType is the integer type used to represent genomic positions.
type PosType = interval.PosType

// Fragment is a half-open [Start, End) fragment extent.
type Fragment = interval.Interval

// Opts controls fragment extraction.
type Opts struct {
	// MaxFragmentLength: records whose |TLEN| (or BED lines whose length) is
	// not smaller than this are dropped.
	MaxFragmentLength int
	// Region restricts extraction, in "chrom", "chrom:pos" or
	// "chrom:start-end" form.  When empty, the chromosome of the first usable
	// fragment is used.
	Region string
	// Padding widens the region on both sides.  Positions near the region
	// edges are scored against fragments up to half a window outside it.
	Padding int
}

// DefaultOpts is the default set of options.
var DefaultOpts = Opts{
	MaxFragmentLength: 10000,
}

// Source yields the usable fragments of one chromosome, sorted by start
// position (then end).
type Source interface {
	Fragments(ctx context.Context) (chrom string, frags []Fragment, err error)
}

// Bounds returns the smallest start and the largest end in frags.  It returns
// (0, 0) when frags is empty.
func Bounds(frags []Fragment) (start, end PosType) {
	if len(frags) == 0 {
		return 0, 0
	}
	start, end = frags[0].Start, frags[0].End
	for _, f := range frags[1:] {
		if f.Start < start {
			start = f.Start
		}
		if f.End > end {
			end = f.End
		}
	}
	return start, end
}

// ScoreRange returns the inclusive range of positions to score.  A bounded
// region string "chrom:s-e" yields [s, e]; otherwise the extent of frags is
// used.
func ScoreRange(regionStr string, frags []Fragment) (start, end PosType, err error) {
	if regionStr != "" {
		var e interval.Entry
		if e, err = interval.ParseRegionString(regionStr); err != nil {
			return 0, 0, errors.Wrapf(err, "bad region %q", regionStr)
		}
		if e.Bounded() {
			return e.Start0 + 1, e.End, nil
		}
	}
	if len(frags) == 0 {
		return 0, 0, errors.New("no fragments to derive a region from")
	}
	start, end = Bounds(frags)
	return start, end, nil
}

// NewSource returns a BAMSource for paths ending in .bam, and a BEDSource for
// .bed and .bed.gz paths.
func NewSource(path string, opts Opts) (Source, error) {
	if opts.MaxFragmentLength <= 0 {
		return nil, errors.Errorf("fragment.NewSource: MaxFragmentLength must be positive, got %d", opts.MaxFragmentLength)
	}
	if opts.Region != "" {
		if _, err := interval.ParseRegionString(opts.Region); err != nil {
			return nil, errors.Wrapf(err, "fragment.NewSource: bad region %q", opts.Region)
		}
	}
	switch {
	case strings.HasSuffix(path, ".bam"):
		return &BAMSource{Path: path, Opts: opts}, nil
	case strings.HasSuffix(path, ".bed"), strings.HasSuffix(path, ".bed.gz"):
		return &BEDSource{Path: path, Opts: opts}, nil
	}
	return nil, errors.Errorf("fragment.NewSource: unrecognized fragment file extension in %s", path)
}

// region is the parsed form of Opts.Region, widened by Opts.Padding.
type region struct {
	chrom      string
	start, end PosType
}

// parseRegion returns nil when opts.Region is empty.
func (opts *Opts) parseRegion() (*region, error) {
	if opts.Region == "" {
		return nil, nil
	}
	e, err := interval.ParseRegionString(opts.Region)
	if err != nil {
		return nil, errors.Wrapf(err, "bad region %q", opts.Region)
	}
	r := &region{chrom: e.ChrName, end: interval.PosTypeMax}
	if !e.Bounded() {
		return r, nil
	}
	// Fragment coordinates are 1-based, so "chrom:s-e" covers [s, e+1).
	r.start, r.end = e.Start0+1, e.End+1
	r.start -= PosType(opts.Padding)
	if r.start < 0 {
		r.start = 0
	}
	r.end += PosType(opts.Padding)
	return r, nil
}

// admit returns true iff f lies on chrom and overlaps r.  A nil region admits
// everything.
func (r *region) admit(chrom string, f Fragment) bool {
	if r == nil {
		return true
	}
	return sameChrom(r.chrom, chrom) && f.Overlaps(r.start, r.end)
}

// sameChrom compares chromosome names, ignoring a leading "chr".
func sameChrom(a, b string) bool {
	return strings.TrimPrefix(a, "chr") == strings.TrimPrefix(b, "chr")
}

func sortFragments(frags []Fragment) {
	sort.Slice(frags, func(i, j int) bool {
		if frags[i].Start != frags[j].Start {
			return frags[i].Start < frags[j].Start
		}
		return frags[i].End < frags[j].End
	})
}
