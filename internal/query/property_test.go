package query

import (
	"math"
	"reflect"
	"testing"

	"vgsales-dashboard/internal/dataset"
	"vgsales-dashboard/internal/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propGenres     = []string{"Action", "Sports", "Racing", "Puzzle", "RPG"}
	propPlatforms  = []string{"PS4", "Wii", "X360", "PC"}
	propPublishers = []string{"Sony", "Nintendo", "EA", "Ubisoft", "Sega", "Unknown"}
)

// gamesFromSeeds derives a deterministic record set from a seed slice, so
// every property runs over arbitrary but reproducible stores.
func gamesFromSeeds(seeds []int) []models.Game {
	games := make([]models.Game, len(seeds))
	for i, s := range seeds {
		if s < 0 {
			s = -s
		}
		na := float64(s%17) / 4
		eu := float64(s%13) / 4
		jp := float64(s%7) / 4
		other := float64(s%5) / 4
		games[i] = models.Game{
			Name:       "game-" + string(rune('a'+i%26)) + string(rune('a'+s%26)),
			Platform:   propPlatforms[s%len(propPlatforms)],
			Year:       1980 + s%46,
			Genre:      propGenres[s%len(propGenres)],
			Publisher:  propPublishers[s%len(propPublishers)],
			NASales:    na,
			EUSales:    eu,
			JPSales:    jp,
			OtherSales: other,
			TotalSales: na + eu + jp + other,
		}
	}
	return games
}

func genreSubset(mask int) []string {
	var subset []string
	for i, g := range propGenres {
		if mask&(1<<i) != 0 {
			subset = append(subset, g)
		}
	}
	return subset
}

func TestProperty_Filtering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("widening a selection never shrinks the view", prop.ForAll(
		func(seeds []int, mask int) bool {
			store := dataset.NewStore(gamesFromSeeds(seeds))

			narrow := DefaultSelection(store)
			narrow.Genres = genreSubset(mask)
			wide := narrow
			wide.Genres = append(genreSubset(mask), propGenres...)

			return len(Apply(store, wide)) >= len(Apply(store, narrow))
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
		gen.IntRange(0, 31),
	))

	properties.Property("combined filter equals per-dimension sequential filtering", prop.ForAll(
		func(seeds []int, mask, yearOffset int) bool {
			store := dataset.NewStore(gamesFromSeeds(seeds))

			sel := DefaultSelection(store)
			sel.Genres = genreSubset(mask)
			sel.Platforms = propPlatforms[:2]
			sel.YearMax = sel.YearMin + yearOffset

			combined := Apply(store, sel)

			genres := map[string]bool{}
			for _, g := range sel.Genres {
				genres[g] = true
			}
			var sequential View
			for _, g := range store.Games() {
				if !genres[g.Genre] {
					continue
				}
				if g.Platform != propPlatforms[0] && g.Platform != propPlatforms[1] {
					continue
				}
				if g.Year < sel.YearMin || g.Year > sel.YearMax {
					continue
				}
				sequential = append(sequential, g)
			}

			if len(combined) != len(sequential) {
				return false
			}
			for i := range combined {
				if !reflect.DeepEqual(combined[i], sequential[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
		gen.IntRange(0, 31),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}

func TestProperty_Aggregation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("group sums conserve the view total", prop.ForAll(
		func(seeds []int) bool {
			view := View(gamesFromSeeds(seeds))

			var grouped float64
			for _, v := range SumBy(view, ByGenre) {
				grouped += v
			}
			return math.Abs(grouped-Summarize(view).TotalSales) < 1e-6
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
	))

	properties.Property("counts conserve the view size", prop.ForAll(
		func(seeds []int) bool {
			view := View(gamesFromSeeds(seeds))

			var counted int
			for _, c := range CountBy(view, ByPublisher) {
				counted += c
			}
			return counted == len(view)
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
	))

	properties.Property("TopN is sorted descending, capped, and deterministic", prop.ForAll(
		func(seeds []int, n int) bool {
			view := View(gamesFromSeeds(seeds))
			table := SumBy(view, ByPlatform)

			ranked := TopN(table, n)
			if len(ranked) != min(n, len(table)) {
				return false
			}
			for i := 1; i < len(ranked); i++ {
				if ranked[i].Total > ranked[i-1].Total {
					return false
				}
			}
			return reflect.DeepEqual(ranked, TopN(table, n))
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
