package interval

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestIndexQuery(t *testing.T) {
	idx := NewIndex()
	for _, iv := range []Interval{
		{100, 220},
		{0, 50},
		{25, 75},
		{25, 75}, // duplicate fragment
		{300, 300},
	} {
		expect.NoError(t, idx.Insert(iv))
	}
	expect.EQ(t, idx.Len(), 5)

	tests := []struct {
		start, end PosType
		want       []Interval
	}{
		{20, 30, []Interval{{0, 50}, {25, 75}, {25, 75}}},
		{50, 100, []Interval{{25, 75}, {25, 75}}},
		// Half-open on both sides: touching isn't overlapping.
		{75, 100, nil},
		{220, 230, nil},
		{219, 220, []Interval{{100, 220}}},
		{0, 1000, []Interval{{0, 50}, {25, 75}, {25, 75}, {100, 220}, {300, 300}}},
		{40, 40, nil},
		// An empty interval overlaps any range strictly containing its point.
		{299, 301, []Interval{{300, 300}}},
		{300, 310, nil},
		{290, 300, nil},
	}
	for _, tt := range tests {
		got := idx.Query(tt.start, tt.end)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Query(%d, %d): got %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIndexRejectsInverted(t *testing.T) {
	idx := NewIndex()
	expect.NotNil(t, idx.Insert(Interval{10, 5}))
	expect.EQ(t, idx.Len(), 0)
}

func TestIndexInsertAfterFreezePanics(t *testing.T) {
	idx := NewIndex()
	expect.NoError(t, idx.Insert(Interval{1, 2}))
	idx.Query(0, 10)
	defer func() {
		expect.NotNil(t, recover())
	}()
	_ = idx.Insert(Interval{3, 4})
}

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex()
	expect.EQ(t, len(idx.Query(0, 100)), 0)
}

func bruteForce(ivs []Interval, start, end PosType) []Interval {
	var result []Interval
	for _, iv := range ivs {
		if iv.Overlaps(start, end) {
			result = append(result, iv)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	return result
}

func TestIndexMatchesLinearScan(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	var ivs []Interval
	idx := NewIndex()
	for i := 0; i < 2000; i++ {
		start := PosType(r.Intn(100000))
		iv := Interval{start, start + PosType(100+r.Intn(200))}
		ivs = append(ivs, iv)
		expect.NoError(t, idx.Insert(iv))
	}
	for i := 0; i < 500; i++ {
		start := PosType(r.Intn(100000))
		end := start + PosType(1+r.Intn(300))
		want := bruteForce(ivs, start, end)
		got := idx.Query(start, end)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Query(%d, %d): got %v, want %v", start, end, got, want)
		}
		// Repeated queries return identical results.
		expect.EQ(t, idx.Query(start, end), got)
	}
}

func TestIndexDo(t *testing.T) {
	idx := NewIndex()
	for i := PosType(0); i < 10; i++ {
		expect.NoError(t, idx.Insert(Interval{i * 10, i*10 + 15}))
	}
	var seen []PosType
	idx.Do(0, 100, func(iv Interval) bool {
		seen = append(seen, iv.Start)
		return len(seen) == 3
	})
	expect.EQ(t, seen, []PosType{0, 10, 20})
}
