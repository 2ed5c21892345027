package query

import (
	"slices"
	"strings"

	"vgsales-dashboard/internal/models"
)

// RegionTotals sums the four regional sales columns over a view.
func RegionTotals(view View) models.RegionTotals {
	var t models.RegionTotals
	for _, g := range view {
		t.NA += g.NASales
		t.EU += g.EUSales
		t.JP += g.JPSales
		t.Other += g.OtherSales
	}
	return t
}

// RegionShares returns each region's fraction of the summed total sales.
// An empty view, or one with zero sales, yields all-zero shares.
func RegionShares(view View) models.RegionTotals {
	t := RegionTotals(view)
	total := t.NA + t.EU + t.JP + t.Other
	if total <= 0 {
		return models.RegionTotals{}
	}
	return models.RegionTotals{
		NA:    t.NA / total,
		EU:    t.EU / total,
		JP:    t.JP / total,
		Other: t.Other / total,
	}
}

// RegionalByYear groups the view by release year and sums each region's
// sales, sorted ascending by year for the evolution chart.
func RegionalByYear(view View) []models.YearRegion {
	byYear := make(map[int]*models.YearRegion)
	for _, g := range view {
		yr := byYear[g.Year]
		if yr == nil {
			yr = &models.YearRegion{Year: g.Year}
			byYear[g.Year] = yr
		}
		yr.NA += g.NASales
		yr.EU += g.EUSales
		yr.JP += g.JPSales
		yr.Other += g.OtherSales
	}

	result := make([]models.YearRegion, 0, len(byYear))
	for _, yr := range byYear {
		result = append(result, *yr)
	}
	slices.SortFunc(result, func(a, b models.YearRegion) int {
		return a.Year - b.Year
	})
	return result
}

// SumByYearSorted sums total sales per release year, sorted ascending by
// year.
func SumByYearSorted(view View) []models.YearTotal {
	byYear := make(map[int]float64)
	for _, g := range view {
		byYear[g.Year] += g.TotalSales
	}

	result := make([]models.YearTotal, 0, len(byYear))
	for year, total := range byYear {
		result = append(result, models.YearTotal{Year: year, Total: total})
	}
	slices.SortFunc(result, func(a, b models.YearTotal) int {
		return a.Year - b.Year
	})
	return result
}

// PlatformPerformance relates each platform's game count to its summed
// sales, ordered by sales descending with ties broken by platform name.
func PlatformPerformance(view View) []models.PlatformPerformance {
	byPlatform := make(map[string]*models.PlatformPerformance)
	for _, g := range view {
		pp := byPlatform[g.Platform]
		if pp == nil {
			pp = &models.PlatformPerformance{Platform: g.Platform}
			byPlatform[g.Platform] = pp
		}
		pp.Games++
		pp.Total += g.TotalSales
	}

	result := make([]models.PlatformPerformance, 0, len(byPlatform))
	for _, pp := range byPlatform {
		result = append(result, *pp)
	}
	slices.SortFunc(result, func(a, b models.PlatformPerformance) int {
		if a.Total > b.Total {
			return -1
		}
		if a.Total < b.Total {
			return 1
		}
		return strings.Compare(a.Platform, b.Platform)
	})
	return result
}
