package nucleosome_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/cfdna/nucleosome"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestTrackRoundTrip(t *testing.T) {
	track := &nucleosome.Track{Chrom: "12", Start: 250000, Scores: []int32{0, -3, 7, 12, -1}}
	var buf bytes.Buffer
	assert.NoError(t, nucleosome.WriteTrack(&buf, track))
	expect.EQ(t, buf.String(), "fixedStep chrom=chr12 start=250000 step=1\n0\n-3\n7\n12\n-1\n")

	got, err := nucleosome.ReadTrack(&buf)
	assert.NoError(t, err)
	expect.EQ(t, *got, *track)
	expect.EQ(t, got.End(), nucleosome.PosType(250004))
}

func TestReadTrackWithoutTrailingNewline(t *testing.T) {
	got, err := nucleosome.ReadTrack(strings.NewReader("fixedStep chrom=chr1 start=10 step=1\n1\n2\n3"))
	assert.NoError(t, err)
	expect.EQ(t, got.Chrom, "1")
	expect.EQ(t, got.Start, nucleosome.PosType(10))
	expect.EQ(t, got.Scores, []int32{1, 2, 3})

	got, err = nucleosome.ReadTrack(strings.NewReader("fixedStep chrom=chrX start=1 step=1\n5\n\n\n"))
	assert.NoError(t, err)
	expect.EQ(t, got.Chrom, "X")
	expect.EQ(t, got.Scores, []int32{5})
}

func TestReadTrackErrors(t *testing.T) {
	tests := []struct {
		in   string
		line int
	}{
		{"variableStep chrom=chr1\n1\n", 1},
		{"fixedStep chrom=chr1 start=1 step=10\n1\n", 1},
		{"fixedStep start=1 step=1\n1\n", 1},
		{"fixedStep chrom=chr1 start=x step=1\n1\n", 1},
		{"fixedStep chrom=chr1 start=1 step=1\n1\n2.5\n", 3},
		{"fixedStep chrom=chr1 start=1 step=1\n1\nabc\n3\n", 3},
		{"fixedStep chrom=chr1 start=1 step=1\n1\n\n3\n", 3},
	}
	for _, tt := range tests {
		_, err := nucleosome.ReadTrack(strings.NewReader(tt.in))
		ife, ok := err.(*nucleosome.InputFormatError)
		if !ok {
			t.Errorf("%q: got %v, want InputFormatError", tt.in, err)
			continue
		}
		expect.EQ(t, ife.Line, tt.line, "input %q", tt.in)
	}

	for _, in := range []string{"", "fixedStep chrom=chr1 start=1 step=1\n"} {
		_, err := nucleosome.ReadTrack(strings.NewReader(in))
		_, ok := err.(*nucleosome.EmptyInputError)
		expect.True(t, ok, "input %q: %v", in, err)
	}
}

func TestTrackPaths(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	track := &nucleosome.Track{Chrom: "2", Start: 1, Scores: []int32{4, 3, 2, 1}}
	for _, name := range []string{"t.wig", "t.wig.gz"} {
		path := filepath.Join(tmpdir, name)
		assert.NoError(t, nucleosome.WriteTrackToPath(ctx, path, nil, track))
		got, err := nucleosome.ReadTrackFromPath(ctx, path)
		assert.NoError(t, err)
		expect.EQ(t, *got, *track)
	}

	_, err := nucleosome.ReadTrackFromPath(ctx, filepath.Join(tmpdir, "missing.wig"))
	expect.NotNil(t, err)
}

func TestWriteCalls(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, nucleosome.WriteCalls(&buf, []nucleosome.Call{
		{Chrom: "1", Start: 100, End: 180},
		{Chrom: "1", Start: 300, End: 371},
	}))
	expect.EQ(t, buf.String(), "chr1\t100\t180\nchr1\t300\t371\n")

	buf.Reset()
	assert.NoError(t, nucleosome.WriteCalls(&buf, nil))
	expect.EQ(t, buf.Len(), 0)
}
