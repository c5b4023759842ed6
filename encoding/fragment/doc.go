// Package fragment extracts cell-free DNA fragment extents from paired-end
// alignments (BAM) or pre-computed fragment BED files, for a single
// chromosome at a time.
//
// A BAM record contributes a fragment iff it is read 1 of a proper pair, is
// neither a duplicate nor QC-failed, carries base qualities, and has
// |TLEN| < Opts.MaxFragmentLength.  The fragment then spans
// [min(POS, MPOS) + 1, min(POS, MPOS) + 1 + |TLEN|).  BED fragment lines are
// shifted by one so that both sources share the same coordinate convention.
package fragment
