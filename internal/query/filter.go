package query

import (
	"vgsales-dashboard/internal/dataset"
	"vgsales-dashboard/internal/models"
)

// View is the subsequence of store records satisfying a selection. It is
// freshly allocated by Apply and never shared between requests.
type View []models.Game

// Apply evaluates the selection against the store in a single pass. All
// dimensions are AND-combined; membership tests are exact-match on the
// category value (normalization already happened at load). Result order
// matches store order.
func Apply(store *dataset.Store, sel Selection) View {
	genres := toSet(sel.Genres)
	platforms := toSet(sel.Platforms)
	var publishers map[string]struct{}
	if sel.PublishersActive {
		publishers = toSet(sel.Publishers)
	}

	view := make(View, 0, store.Len())
	for _, g := range store.Games() {
		if _, ok := genres[g.Genre]; !ok {
			continue
		}
		if _, ok := platforms[g.Platform]; !ok {
			continue
		}
		if publishers != nil {
			if _, ok := publishers[g.Publisher]; !ok {
				continue
			}
		}
		if g.Year < sel.YearMin || g.Year > sel.YearMax {
			continue
		}
		view = append(view, g)
	}
	return view
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
