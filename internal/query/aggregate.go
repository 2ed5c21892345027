package query

import (
	"slices"
	"strconv"
	"strings"

	"vgsales-dashboard/internal/models"
)

// KeyFunc extracts the grouping key from a record.
type KeyFunc func(models.Game) string

func ByGenre(g models.Game) string     { return g.Genre }
func ByPlatform(g models.Game) string  { return g.Platform }
func ByPublisher(g models.Game) string { return g.Publisher }
func ByYear(g models.Game) string      { return strconv.Itoa(g.Year) }

// SumBy groups the view by key and sums total sales per group. Groups with
// no matching records are absent; the caller gets no zero-filled entries.
func SumBy(view View, key KeyFunc) map[string]float64 {
	table := make(map[string]float64)
	for _, g := range view {
		table[key(g)] += g.TotalSales
	}
	return table
}

// CountBy groups the view by key and counts records per group.
func CountBy(view View, key KeyFunc) map[string]int {
	table := make(map[string]int)
	for _, g := range view {
		table[key(g)]++
	}
	return table
}

// TopN ranks a sum table by value descending and truncates to the first n
// entries. Ties are broken by ascending key so repeated runs over the same
// input produce identical output. n outside [0, len] means all entries.
func TopN(table map[string]float64, n int) []models.GroupTotal {
	ranked := Rank(table)
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Rank returns the full sum table ordered by value descending, ties by
// ascending key.
func Rank(table map[string]float64) []models.GroupTotal {
	ranked := make([]models.GroupTotal, 0, len(table))
	for k, v := range table {
		ranked = append(ranked, models.GroupTotal{Key: k, Total: v})
	}
	slices.SortFunc(ranked, func(a, b models.GroupTotal) int {
		if a.Total > b.Total {
			return -1
		}
		if a.Total < b.Total {
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
	return ranked
}

// Shares converts a sum table into each group's fraction of the grand
// total. A zero or empty table yields all-zero shares.
func Shares(table map[string]float64) map[string]float64 {
	var total float64
	for _, v := range table {
		total += v
	}

	shares := make(map[string]float64, len(table))
	for k, v := range table {
		if total > 0 {
			shares[k] = v / total
		} else {
			shares[k] = 0
		}
	}
	return shares
}

// CrossTab builds a dense matrix of summed sales for the top keys of two
// dimensions. Each dimension is ranked independently over the unrestricted
// view; (row, col) combinations absent from the data are zero-filled because
// the consumer renders a dense heatmap.
func CrossTab(view View, rowKey, colKey KeyFunc, topRows, topCols int) models.CrossTab {
	rows := keysOf(TopN(SumBy(view, rowKey), topRows))
	cols := keysOf(TopN(SumBy(view, colKey), topCols))

	cells := make(map[string]float64)
	for _, g := range view {
		cells[rowKey(g)+"\x1f"+colKey(g)] += g.TotalSales
	}

	values := make([][]float64, len(rows))
	for i, r := range rows {
		values[i] = make([]float64, len(cols))
		for j, c := range cols {
			values[i][j] = cells[r+"\x1f"+c]
		}
	}
	return models.CrossTab{Rows: rows, Cols: cols, Values: values}
}

func keysOf(ranked []models.GroupTotal) []string {
	keys := make([]string, len(ranked))
	for i, r := range ranked {
		keys[i] = r.Key
	}
	return keys
}
