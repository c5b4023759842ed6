/*Package interval provides the genomic interval types shared by the rest of
  this module.

  Index is an overlap-queryable store of possibly-overlapping, possibly
  duplicated intervals (one per sequenced fragment, typically), backed by an
  augmented left-leaning red-black tree.  Unlike an interval union, every
  inserted interval is tracked separately.

  It also contains the region-string parser and a minimal BED scanner.
  Positions are PosType, which is int32 since that's what BAM files are
  limited to.
*/
package interval
