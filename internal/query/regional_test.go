package query

import (
	"math"
	"reflect"
	"testing"

	"vgsales-dashboard/internal/models"
)

func TestRegionTotals(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	got := RegionTotals(view)
	want := models.RegionTotals{NA: 2.5, EU: 1.5, JP: 2.0, Other: 0.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RegionTotals() = %+v, want %+v", got, want)
	}
}

func TestRegionShares(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	shares := RegionShares(view)
	sum := shares.NA + shares.EU + shares.JP + shares.Other
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("region shares should sum to 1, got %v (%+v)", sum, shares)
	}
	if math.Abs(shares.NA-2.5/6.5) > 1e-9 {
		t.Errorf("NA share = %v, want %v", shares.NA, 2.5/6.5)
	}
}

func TestRegionShares_EmptyView(t *testing.T) {
	if shares := RegionShares(nil); shares != (models.RegionTotals{}) {
		t.Errorf("empty view should yield zero shares, got %+v", shares)
	}
}

func TestRegionalByYear(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	got := RegionalByYear(view)
	want := []models.YearRegion{
		{Year: 2010, JP: 2.0},
		{Year: 2015, NA: 2.5, EU: 1.5},
		{Year: 2020, Other: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RegionalByYear() = %+v, want %+v", got, want)
	}
}

func TestSumByYearSorted(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	got := SumByYearSorted(view)
	want := []models.YearTotal{
		{Year: 2010, Total: 2.0},
		{Year: 2015, Total: 4.0},
		{Year: 2020, Total: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SumByYearSorted() = %v, want %v", got, want)
	}
}

func TestPlatformPerformance(t *testing.T) {
	store := testStore()
	view := Apply(store, DefaultSelection(store))

	got := PlatformPerformance(view)
	want := []models.PlatformPerformance{
		{Platform: "PS4", Games: 2, Total: 4.0},
		{Platform: "Wii", Games: 2, Total: 2.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlatformPerformance() = %+v, want %+v", got, want)
	}
}

func TestPlatformPerformance_EmptyView(t *testing.T) {
	if got := PlatformPerformance(nil); len(got) != 0 {
		t.Errorf("empty view should yield no entries, got %v", got)
	}
}
