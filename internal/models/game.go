package models

// Game is one sales record from the vgsales dataset. Sales figures are in
// millions of units. TotalSales is derived at load time and always equals the
// sum of the four regional figures.
type Game struct {
	Name       string  `json:"name"`
	Platform   string  `json:"platform"`
	Year       int     `json:"year"`
	Genre      string  `json:"genre"`
	Publisher  string  `json:"publisher"`
	NASales    float64 `json:"na_sales"`
	EUSales    float64 `json:"eu_sales"`
	JPSales    float64 `json:"jp_sales"`
	OtherSales float64 `json:"other_sales"`
	TotalSales float64 `json:"total_sales"`
}

// GroupTotal is one row of a ranked aggregation table: a category value and
// its summed total sales.
type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// GroupCount is one row of a count aggregation table.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// RegionTotals holds summed sales per region over a filtered view.
type RegionTotals struct {
	NA    float64 `json:"na"`
	EU    float64 `json:"eu"`
	JP    float64 `json:"jp"`
	Other float64 `json:"other"`
}

// YearRegion is the per-year regional breakdown used by the evolution chart.
type YearRegion struct {
	Year  int     `json:"year"`
	NA    float64 `json:"na"`
	EU    float64 `json:"eu"`
	JP    float64 `json:"jp"`
	Other float64 `json:"other"`
}

// YearTotal is one point of the yearly sales evolution line.
type YearTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// PlatformPerformance relates the number of games released on a platform to
// its summed sales (the market-page scatter chart).
type PlatformPerformance struct {
	Platform string  `json:"platform"`
	Games    int     `json:"games"`
	Total    float64 `json:"total"`
}

// CrossTab is a dense two-dimensional aggregation matrix. Values[i][j] is the
// summed total sales for (Rows[i], Cols[j]); combinations absent from the
// data are zero-filled.
type CrossTab struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

// KpiSet holds the scalar rollups shown at the top of every page. All fields
// are zero when the filtered view is empty.
type KpiSet struct {
	Games      int     `json:"games"`
	TotalSales float64 `json:"total_sales"`
	Genres     int     `json:"genres"`
	Platforms  int     `json:"platforms"`
	Publishers int     `json:"publishers"`
}

// FilterOptions seeds the UI's filter widgets: the distinct values of each
// filterable dimension and the observed year bounds.
type FilterOptions struct {
	Genres     []string `json:"genres"`
	Platforms  []string `json:"platforms"`
	Publishers []string `json:"publishers"`
	YearMin    int      `json:"year_min"`
	YearMax    int      `json:"year_max"`
}
