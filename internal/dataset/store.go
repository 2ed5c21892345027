package dataset

import (
	"sort"

	"vgsales-dashboard/internal/models"
)

// Store is the immutable in-memory table of game-sales records. It is built
// once by Load and never mutated afterwards, which makes it safe to share
// across concurrent readers without locking. Accessors return internal
// slices; callers must treat them as read-only.
type Store struct {
	games      []models.Game
	genres     []string
	platforms  []string
	publishers []string
	minYear    int
	maxYear    int
}

// NewStore builds a Store from already-normalized records: it derives the
// distinct category sets and observed year bounds but applies none of the
// load-time cleaning. Intended for tests and for cache restore.
func NewStore(games []models.Game) *Store {
	s := &Store{games: games}
	s.deriveMetadata()
	return s
}

func (s *Store) deriveMetadata() {
	genres := make(map[string]struct{})
	platforms := make(map[string]struct{})
	publishers := make(map[string]struct{})

	for i, g := range s.games {
		genres[g.Genre] = struct{}{}
		platforms[g.Platform] = struct{}{}
		publishers[g.Publisher] = struct{}{}

		if i == 0 || g.Year < s.minYear {
			s.minYear = g.Year
		}
		if i == 0 || g.Year > s.maxYear {
			s.maxYear = g.Year
		}
	}

	s.genres = sortedKeys(genres)
	s.platforms = sortedKeys(platforms)
	s.publishers = sortedKeys(publishers)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Games returns the full record sequence in load order.
func (s *Store) Games() []models.Game {
	return s.games
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.games)
}

// Genres returns the distinct genres present, sorted.
func (s *Store) Genres() []string {
	return s.genres
}

// Platforms returns the distinct platforms present, sorted.
func (s *Store) Platforms() []string {
	return s.platforms
}

// Publishers returns the distinct publishers present, sorted.
func (s *Store) Publishers() []string {
	return s.publishers
}

// YearBounds returns the observed (min, max) release year.
func (s *Store) YearBounds() (int, int) {
	return s.minYear, s.maxYear
}

// Options packages the distinct values and year bounds that seed the UI's
// filter widgets and the default selection.
func (s *Store) Options() models.FilterOptions {
	return models.FilterOptions{
		Genres:     s.genres,
		Platforms:  s.platforms,
		Publishers: s.publishers,
		YearMin:    s.minYear,
		YearMax:    s.maxYear,
	}
}
