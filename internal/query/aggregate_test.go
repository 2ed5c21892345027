package query

import (
	"math"
	"reflect"
	"testing"

	"vgsales-dashboard/internal/models"
)

func TestSumBy(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	got := SumBy(view, ByPlatform)
	want := map[string]float64{"PS4": 4.0, "Wii": 2.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SumBy(ByPlatform) = %v, want %v", got, want)
	}

	// Groups without records are simply absent, never zero-filled.
	if _, ok := got["GB"]; ok {
		t.Error("absent platform should not appear in the sum table")
	}
}

func TestCountBy(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	got := CountBy(view, ByGenre)
	want := map[string]int{"Action": 2, "Sports": 1, "Racing": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountBy(ByGenre) = %v, want %v", got, want)
	}
}

func TestTopN(t *testing.T) {
	table := map[string]float64{"Action": 5.0, "Sports": 1.0, "Racing": 0.5, "Puzzle": 5.0}

	tests := []struct {
		name string
		n    int
		want []models.GroupTotal
	}{
		{
			name: "truncates to n",
			n:    2,
			want: []models.GroupTotal{{Key: "Action", Total: 5.0}, {Key: "Puzzle", Total: 5.0}},
		},
		{
			name: "n larger than table returns all",
			n:    10,
			want: []models.GroupTotal{
				{Key: "Action", Total: 5.0},
				{Key: "Puzzle", Total: 5.0},
				{Key: "Sports", Total: 1.0},
				{Key: "Racing", Total: 0.5},
			},
		},
		{
			name: "n zero returns nothing",
			n:    0,
			want: []models.GroupTotal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(table, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopN(table, %d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestTopN_TieBreak(t *testing.T) {
	// Equal totals rank by ascending key, so truncation is deterministic.
	table := map[string]float64{"Zebra": 1.0, "Apple": 1.0, "Mango": 1.0}

	got := TopN(table, 2)
	want := []models.GroupTotal{{Key: "Apple", Total: 1.0}, {Key: "Mango", Total: 1.0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopN tie-break = %v, want %v", got, want)
	}
}

func TestRank_Deterministic(t *testing.T) {
	table := map[string]float64{"A": 2.0, "B": 2.0, "C": 1.0, "D": 3.0}

	first := Rank(table)
	for range 10 {
		if again := Rank(table); !reflect.DeepEqual(first, again) {
			t.Fatalf("Rank() is not deterministic: %v vs %v", first, again)
		}
	}
}

func TestShares(t *testing.T) {
	table := map[string]float64{"NA": 3.0, "EU": 1.0}

	shares := Shares(table)
	if math.Abs(shares["NA"]-0.75) > 1e-9 || math.Abs(shares["EU"]-0.25) > 1e-9 {
		t.Errorf("Shares() = %v", shares)
	}

	var sum float64
	for _, v := range shares {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("shares should sum to 1, got %v", sum)
	}
}

func TestShares_ZeroTotal(t *testing.T) {
	shares := Shares(map[string]float64{"A": 0, "B": 0})
	if shares["A"] != 0 || shares["B"] != 0 {
		t.Errorf("zero-total table should yield all-zero shares, got %v", shares)
	}
}

func TestCrossTab(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	ct := CrossTab(view, ByPublisher, ByPlatform, 2, 2)

	// Publishers ranked by total: Sony 3.0, Nintendo 2.5 (EA 1.0 cut).
	if !reflect.DeepEqual(ct.Rows, []string{"Sony", "Nintendo"}) {
		t.Errorf("rows = %v", ct.Rows)
	}
	// Platforms ranked by total: PS4 4.0, Wii 2.5.
	if !reflect.DeepEqual(ct.Cols, []string{"PS4", "Wii"}) {
		t.Errorf("cols = %v", ct.Cols)
	}

	want := [][]float64{
		{3.0, 0}, // Sony: PS4 only, Wii cell zero-filled
		{0, 2.5}, // Nintendo: Wii only
	}
	if !reflect.DeepEqual(ct.Values, want) {
		t.Errorf("values = %v, want %v", ct.Values, want)
	}
}

func TestCrossTab_EmptyView(t *testing.T) {
	ct := CrossTab(nil, ByPublisher, ByPlatform, 10, 10)
	if len(ct.Rows) != 0 || len(ct.Cols) != 0 || len(ct.Values) != 0 {
		t.Errorf("empty view should yield an empty matrix, got %+v", ct)
	}
}

func TestFilterThenAggregate(t *testing.T) {
	store := testStore()
	sel := DefaultSelection(store)
	sel.Genres = []string{"Action"}
	sel.Platforms = []string{"PS4", "Wii"}
	sel.YearMin = 2010
	sel.YearMax = 2020

	view := Apply(store, sel)
	if len(view) != 2 {
		t.Fatalf("expected 2 records, got %d", len(view))
	}

	sums := SumBy(view, ByPlatform)
	want := map[string]float64{"PS4": 3.0, "Wii": 2.0}
	if !reflect.DeepEqual(sums, want) {
		t.Errorf("SumBy = %v, want %v", sums, want)
	}

	top := TopN(sums, 1)
	if len(top) != 1 || top[0].Key != "PS4" || top[0].Total != 3.0 {
		t.Errorf("TopN(1) = %v, want [{PS4 3}]", top)
	}
}

func BenchmarkSumBy(b *testing.B) {
	view := make(View, 0, 20000)
	genres := []string{"Action", "Sports", "Racing", "Puzzle", "RPG"}
	for i := range 20000 {
		view = append(view, models.Game{
			Genre:      genres[i%len(genres)],
			TotalSales: float64(i%100) / 10,
		})
	}

	for b.Loop() {
		SumBy(view, ByGenre)
	}
}

func BenchmarkTopN(b *testing.B) {
	table := make(map[string]float64, 600)
	for i := range 600 {
		table["publisher-"+string(rune('a'+i%26))+string(rune('a'+i/26))] = float64(i)
	}

	for b.Loop() {
		TopN(table, 15)
	}
}
