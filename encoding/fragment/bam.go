package fragment

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
)

// BAMSource reads fragments from a coordinate-sorted BAM file.  When the
// region is set and an index is available, only the relevant chunks are
// read.
type BAMSource struct {
	// Path of the *.bam file.
	Path string
	// Index is the path of the *.bam.bai file.  If "", Path + ".bai" is tried,
	// and the whole file is scanned when it doesn't exist.
	Index string
	Opts  Opts
}

func (s *BAMSource) indexPath() string {
	if s.Index == "" {
		return s.Path + ".bai"
	}
	return s.Index
}

// fragmentFromRecord returns the fragment described by r, and false if r
// doesn't pass the usability filters.
func fragmentFromRecord(r *sam.Record, maxFragLen int) (Fragment, bool) {
	const required = sam.ProperPair | sam.Read1
	const rejected = sam.Duplicate | sam.QCFail | sam.Unmapped
	if r.Ref == nil || r.Flags&required != required || r.Flags&rejected != 0 || !hasQual(r) {
		return Fragment{}, false
	}
	tlen := r.TempLen
	if tlen < 0 {
		tlen = -tlen
	}
	if tlen >= maxFragLen {
		return Fragment{}, false
	}
	start := r.Pos
	if r.MatePos < start {
		start = r.MatePos
	}
	start++
	return Fragment{Start: PosType(start), End: PosType(start + tlen)}, true
}

// hasQual returns false if r's base qualities are absent, which BAM encodes as
// a run of 0xff.
func hasQual(r *sam.Record) bool {
	return len(r.Qual) > 0 && r.Qual[0] != 0xff
}

// Fragments implements Source.
func (s *BAMSource) Fragments(ctx context.Context) (chrom string, frags []Fragment, err error) {
	reg, err := s.Opts.parseRegion()
	if err != nil {
		return "", nil, err
	}
	var in file.File
	if in, err = file.Open(ctx, s.Path); err != nil {
		return "", nil, errors.E(err, "couldn't open BAM", s.Path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	var reader *bam.Reader
	if reader, err = bam.NewReader(in.Reader(ctx), 1); err != nil {
		return "", nil, errors.E(err, "couldn't read BAM header", s.Path)
	}
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()

	next := reader.Read
	if reg != nil {
		var it *bam.Iterator
		if it, err = s.regionIterator(ctx, reader, reg); err != nil {
			return "", nil, err
		}
		if it != nil {
			defer it.Close() // nolint: errcheck
			next = func() (*sam.Record, error) {
				if !it.Next() {
					if e := it.Error(); e != nil {
						return nil, e
					}
					return nil, io.EOF
				}
				return it.Record(), nil
			}
		}
	}

	var (
		nRecord, nUsable int
		ref              *sam.Reference
	)
	for {
		var rec *sam.Record
		if rec, err = next(); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return "", nil, errors.E(err, "error reading BAM", s.Path)
		}
		nRecord++
		f, ok := fragmentFromRecord(rec, s.Opts.MaxFragmentLength)
		if !ok {
			continue
		}
		if reg != nil {
			if !reg.admit(rec.Ref.Name(), f) {
				continue
			}
		} else if ref != nil && rec.Ref != ref {
			continue
		}
		ref = rec.Ref
		nUsable++
		frags = append(frags, f)
	}
	switch {
	case ref != nil:
		chrom = ref.Name()
	case reg != nil:
		chrom = reg.chrom
	}
	log.Printf("%s: %d record(s) read, %d usable fragment(s) on %s", s.Path, nRecord, nUsable, chrom)
	sortFragments(frags)
	return chrom, frags, nil
}

// regionIterator returns an iterator over the chunks overlapping reg, or nil
// if no index is available.
func (s *BAMSource) regionIterator(ctx context.Context, reader *bam.Reader, reg *region) (it *bam.Iterator, err error) {
	var indexIn file.File
	if indexIn, err = file.Open(ctx, s.indexPath()); err != nil {
		if s.Index != "" {
			return nil, errors.E(err, "couldn't open BAM index", s.Index)
		}
		log.Debug.Printf("%s: no index, scanning whole file", s.Path)
		return nil, nil
	}
	defer file.CloseAndReport(ctx, indexIn, &err)
	index, err := bam.ReadIndex(indexIn.Reader(ctx))
	if err != nil {
		return nil, errors.E(err, "couldn't read BAM index", s.indexPath())
	}
	var ref *sam.Reference
	for _, r := range reader.Header().Refs() {
		if sameChrom(r.Name(), reg.chrom) {
			ref = r
			break
		}
	}
	if ref == nil {
		return nil, errors.E(errors.NotExist, "reference not in BAM header", reg.chrom)
	}
	// A record lies at most MaxFragmentLength away from the fragment it
	// describes.
	beg := int(reg.start) - 1 - s.Opts.MaxFragmentLength
	if beg < 0 {
		beg = 0
	}
	end := int(reg.end) + s.Opts.MaxFragmentLength
	if end > ref.Len() {
		end = ref.Len()
	}
	if end <= beg {
		end = beg + 1
	}
	chunks, err := index.Chunks(ref, beg, end)
	if err != nil {
		return nil, errors.E(err, "couldn't look up index chunks", s.indexPath())
	}
	return bam.NewIterator(reader, chunks)
}
