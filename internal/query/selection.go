package query

import "vgsales-dashboard/internal/dataset"

// Selection is the complete set of filter constraints for one request.
// Genres and Platforms are always active: an empty slice means "select
// nothing" and yields an empty view. The publisher dimension is only offered
// on some pages, so it carries its own active flag; when inactive the
// Publishers slice is ignored.
type Selection struct {
	Genres           []string `json:"genres"`
	Platforms        []string `json:"platforms"`
	Publishers       []string `json:"publishers"`
	PublishersActive bool     `json:"publishers_active"`
	YearMin          int      `json:"year_min"`
	YearMax          int      `json:"year_max"`
}

// DefaultSelection selects everything the store contains: all genres and
// platforms, the full observed year range, publisher dimension inactive.
func DefaultSelection(store *dataset.Store) Selection {
	minYear, maxYear := store.YearBounds()
	return Selection{
		Genres:    store.Genres(),
		Platforms: store.Platforms(),
		YearMin:   minYear,
		YearMax:   maxYear,
	}
}

// WithPublishers returns a copy of the selection with the publisher
// dimension active and restricted to the given values.
func (s Selection) WithPublishers(publishers []string) Selection {
	s.Publishers = publishers
	s.PublishersActive = true
	return s
}
