package query

import (
	"errors"

	"vgsales-dashboard/internal/models"
)

// ErrEmptyView is returned by KPIs that are undefined over zero records,
// such as the largest group. An analyst narrowing filters to nothing is a
// normal interaction, so callers translate this into an empty payload
// rather than a failure.
var ErrEmptyView = errors.New("filtered view is empty")

// Summarize computes the scalar rollups over a view. An empty view returns
// a zero-valued KpiSet; this is the documented empty-selection behavior.
func Summarize(view View) models.KpiSet {
	genres := make(map[string]struct{})
	platforms := make(map[string]struct{})
	publishers := make(map[string]struct{})

	kpi := models.KpiSet{Games: len(view)}
	for _, g := range view {
		kpi.TotalSales += g.TotalSales
		genres[g.Genre] = struct{}{}
		platforms[g.Platform] = struct{}{}
		publishers[g.Publisher] = struct{}{}
	}
	kpi.Genres = len(genres)
	kpi.Platforms = len(platforms)
	kpi.Publishers = len(publishers)
	return kpi
}

// TopGroup returns the single largest group under the given dimension,
// measured by summed total sales. Ties resolve to the smallest key, matching
// TopN. Returns ErrEmptyView when the view has no records.
func TopGroup(view View, key KeyFunc) (models.GroupTotal, error) {
	if len(view) == 0 {
		return models.GroupTotal{}, ErrEmptyView
	}
	top := TopN(SumBy(view, key), 1)
	return top[0], nil
}
