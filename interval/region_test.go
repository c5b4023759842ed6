package interval

import (
	"math"
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region  string
		chrName string
		start0  PosType
		end     PosType
		bounded bool
	}{
		{"chr1:1-1000", "chr1", 0, 1000, true},
		{"chr1:1000", "chr1", 999, 1000, true},
		{"chr1", "chr1", 0, math.MaxInt32 - 1, false},
		{"12:250000-300000", "12", 249999, 300000, true},
	}
	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, result.ChrName, tt.chrName)
		expect.EQ(t, result.Start0, tt.start0)
		expect.EQ(t, result.End, tt.end)
		expect.EQ(t, result.Bounded(), tt.bounded)
	}
}

func TestParseRegionStringErrors(t *testing.T) {
	for _, region := range []string{"", ":1-5", "chr1:0-5", "chr1:10-5", "chr1:x-5", "chr1:0"} {
		_, err := ParseRegionString(region)
		expect.NotNil(t, err, "region %q", region)
	}
}

func TestReadBEDEntries(t *testing.T) {
	in := strings.Join([]string{
		"track name=frags",
		"# comment",
		"chr1\t100\t220",
		"",
		"chr1 25  75 extra",
		"chr1\t25\t75",
	}, "\n")
	entries, err := ReadBEDEntries(strings.NewReader(in))
	expect.NoError(t, err)
	expect.EQ(t, entries, []Entry{
		{"chr1", 100, 220},
		{"chr1", 25, 75},
		{"chr1", 25, 75},
	})
}

func TestReadBEDEntriesErrors(t *testing.T) {
	for _, in := range []string{
		"chr1\t100\n",
		"chr1\tabc\t200\n",
		"chr1\t300\t200\n",
		"chr1\t-5\t200\n",
	} {
		_, err := ReadBEDEntries(strings.NewReader(in))
		expect.NotNil(t, err, "input %q", in)
	}
}
