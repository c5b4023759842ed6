package nucleosome_test

import (
	"bytes"
	"testing"

	"github.com/grailbio/cfdna/interval"
	"github.com/grailbio/cfdna/nucleosome"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phasedFragments returns 20 fragments of length 200 around each of n dyads
// spaced 300 apart starting at first, with start jitter in [-2, 2].
func phasedFragments(first interval.PosType, n int) (frags []interval.Interval, dyads []interval.PosType) {
	for k := 0; k < n; k++ {
		d := first + interval.PosType(300*k)
		dyads = append(dyads, d)
		for j := 0; j < 20; j++ {
			start := d - 100 + interval.PosType(j%5-2)
			frags = append(frags, interval.Interval{Start: start, End: start + 200})
		}
	}
	return
}

func TestCallFragments(t *testing.T) {
	frags, dyads := phasedFragments(1000, 10)
	caller, err := nucleosome.NewCaller(nucleosome.DefaultOpts)
	require.NoError(t, err)

	track, calls, err := caller.CallFragments("chr7", frags, 500, 4300)
	require.NoError(t, err)
	expect.EQ(t, track.Chrom, "7")
	expect.EQ(t, track.Start, interval.PosType(500))
	expect.EQ(t, len(track.Scores), 3801)
	// Dead center of a phased nucleosome, every fragment spans the window.
	expect.EQ(t, track.Scores[2500-500], int32(20))

	require.Len(t, calls, len(dyads))
	for i, c := range calls {
		expect.EQ(t, c.Chrom, "7")
		mid := (c.Start + c.End) / 2
		assert.InDelta(t, float64(dyads[i]), float64(mid), 15, "call %v", c)
		assert.True(t, int(c.End-c.Start) <= nucleosome.DefaultOpts.NuclMax)
		if i > 0 {
			assert.True(t, c.Start >= calls[i-1].End)
		}
	}

	// Re-running gives byte-identical output.
	var first, second bytes.Buffer
	require.NoError(t, nucleosome.WriteCalls(&first, calls))
	_, calls2, err := caller.CallFragments("chr7", frags, 500, 4300)
	require.NoError(t, err)
	require.NoError(t, nucleosome.WriteCalls(&second, calls2))
	expect.EQ(t, first.String(), second.String())

	// Calling from the persisted track is equivalent.
	calls3, err := caller.CallTrack(track)
	require.NoError(t, err)
	expect.EQ(t, calls3, calls)
}

func TestCallSmoothed(t *testing.T) {
	caller, err := nucleosome.NewCaller(nucleosome.DefaultOpts)
	require.NoError(t, err)
	smoothed := make([]float64, 600)
	for i := range smoothed {
		smoothed[i] = -10
		if i >= 200 && i < 290 {
			// Triangle peaking at 244/245.
			up, down := i-200, 289-i
			if up < down {
				smoothed[i] = float64(1 + up)
			} else {
				smoothed[i] = float64(1 + down)
			}
		}
	}
	calls, err := caller.CallSmoothed("3", smoothed, 10000)
	require.NoError(t, err)
	expect.EQ(t, calls, []nucleosome.Call{{Chrom: "3", Start: 10200, End: 10290}})

	// Shift the hump so that its peak is within 90 of the start.
	calls, err = caller.CallSmoothed("3", smoothed[160:], 10160)
	require.NoError(t, err)
	expect.EQ(t, len(calls), 0)
}

func TestCallerErrors(t *testing.T) {
	opts := nucleosome.DefaultOpts
	opts.FilterWindow = 20
	_, err := nucleosome.NewCaller(opts)
	expect.NotNil(t, err)

	caller, err := nucleosome.NewCaller(nucleosome.DefaultOpts)
	require.NoError(t, err)

	_, _, err = caller.CallFragments("1", nil, 0, 1000)
	_, ok := err.(*nucleosome.EmptyInputError)
	expect.True(t, ok, "%v", err)

	frags := []interval.Interval{{Start: 0, End: 100}}
	_, _, err = caller.CallFragments("1", frags, 0, 30)
	tooSmall, ok := err.(*nucleosome.RegionTooSmallError)
	require.True(t, ok, "%v", err)
	expect.EQ(t, tooSmall.Len, 31)
	expect.EQ(t, tooSmall.Min, nucleosome.DefaultOpts.NuclMin)

	_, _, err = caller.CallFragments("1", frags, 100, 50)
	_, ok = err.(*nucleosome.EmptyInputError)
	expect.True(t, ok, "%v", err)

	_, err = caller.CallTrack(&nucleosome.Track{Chrom: "1", Scores: make([]int32, 20)})
	_, ok = err.(*nucleosome.RegionTooSmallError)
	expect.True(t, ok, "%v", err)
}
