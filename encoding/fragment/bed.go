package fragment

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/cfdna/interval"
)

// BEDSource reads fragments from "chrom start end" lines, with 0-based
// half-open coordinates.  Gzipped input is detected by extension.
type BEDSource struct {
	Path string
	Opts Opts
}

// Fragments implements Source.
func (s *BEDSource) Fragments(ctx context.Context) (chrom string, frags []Fragment, err error) {
	reg, err := s.Opts.parseRegion()
	if err != nil {
		return "", nil, err
	}
	entries, err := interval.ReadBEDEntriesFromPath(s.Path)
	if err != nil {
		return "", nil, err
	}
	if reg != nil {
		chrom = reg.chrom
	}
	for _, e := range entries {
		if int(e.End-e.Start0) >= s.Opts.MaxFragmentLength {
			continue
		}
		f := Fragment{Start: e.Start0 + 1, End: e.End + 1}
		if reg != nil {
			if !reg.admit(e.ChrName, f) {
				continue
			}
		} else if chrom == "" {
			chrom = e.ChrName
		} else if e.ChrName != chrom {
			continue
		}
		frags = append(frags, f)
	}
	log.Printf("%s: %d line(s) read, %d usable fragment(s) on %s", s.Path, len(entries), len(frags), chrom)
	sortFragments(frags)
	return chrom, frags, nil
}
