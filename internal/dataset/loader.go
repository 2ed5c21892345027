package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"vgsales-dashboard/internal/errors"
	"vgsales-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

// Valid release-year bounds; rows outside them are dropped, not errored.
const (
	MinYear = 1980
	MaxYear = 2025
)

const (
	maxParseWorkers = 10
	parseBatchSize  = 5000
)

var requiredColumns = []string{
	"Name", "Platform", "Year", "Genre", "Publisher",
	"NA_Sales", "EU_Sales", "JP_Sales", "Other_Sales",
}

// unknownCategory replaces a missing genre or publisher so the value can be
// filtered on like any other category.
const unknownCategory = "Unknown"

// Loader loads the dataset with an on-disk cache of the parsed store. The
// cache is an optimization only; a miss or a corrupt entry always falls back
// to parsing the CSV.
type Loader struct {
	cacheDir string
	logger   *slog.Logger
}

func NewLoader(cacheDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cacheDir: cacheDir, logger: logger}
}

var (
	sharedMu     sync.Mutex
	sharedStores = make(map[string]*Store)
)

// Shared returns the process-wide store for path, loading it on first use.
// The store is immutable, so handing the same instance to every caller is
// safe.
func (l *Loader) Shared(ctx context.Context, path string) (*Store, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if s, ok := sharedStores[path]; ok {
		return s, nil
	}

	s, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	sharedStores[path] = s
	return s, nil
}

// Load parses the dataset at path, consulting the on-disk cache first.
func (l *Loader) Load(ctx context.Context, path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.DataLoadWrap(err, "stat dataset")
	}

	if s, err := l.loadCache(path, info.ModTime()); err == nil {
		l.logger.Info("dataset loaded from cache", "path", path, "records", s.Len())
		return s, nil
	}

	start := time.Now()
	s, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	l.logger.Info("dataset parsed",
		"path", path,
		"records", s.Len(),
		"duration", time.Since(start))

	if err := l.saveCache(path, info.ModTime(), s); err != nil {
		l.logger.Warn("failed to save dataset cache", "error", err)
	}
	return s, nil
}

// Load parses and normalizes the dataset at path without any caching.
// Normalization is idempotent: loading the raw file or a pre-cleaned file
// written by WriteCSV yields an identical store.
func Load(ctx context.Context, path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.DataLoadWrap(err, "open dataset")
	}
	defer f.Close()

	games, err := parse(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, errors.DataLoad("no valid records in dataset")
	}
	return NewStore(games), nil
}

type parsedRow struct {
	game models.Game
	drop bool
}

func parse(ctx context.Context, r io.Reader) ([]models.Game, error) {
	cr := csv.NewReader(bufio.NewReaderSize(r, 1<<20))
	cr.FieldsPerRecord = -1 // width is validated per row against the header

	header, err := cr.Read()
	if err != nil {
		return nil, errors.DataLoadWrap(err, "read dataset header")
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.DataLoadWrap(err, "read dataset row")
		}
		rows = append(rows, row)
	}

	parsed := make([]parsedRow, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParseWorkers)
	for start := 0; start < len(rows); start += parseBatchSize {
		end := min(start+parseBatchSize, len(rows))
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			for i := start; i < end; i++ {
				pr, err := parseRow(rows[i], cols)
				if err != nil {
					// Header is line 1, so data row i is line i+2.
					return errors.DataLoadWrap(err, fmt.Sprintf("line %d", i+2))
				}
				parsed[i] = pr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sequential pass keeps dedup deterministic and preserves file order.
	seen := make(map[string]struct{}, len(parsed))
	games := make([]models.Game, 0, len(parsed))
	for _, pr := range parsed {
		if pr.drop {
			continue
		}
		key := dedupeKey(pr.game)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		games = append(games, pr.game)
	}
	return games, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		name := strings.TrimSpace(h)
		for _, want := range requiredColumns {
			if strings.EqualFold(name, want) {
				cols[want] = i
			}
		}
		// Anything else (Rank, a precomputed Total_Sales) is ignored.
	}
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, errors.DataLoad(fmt.Sprintf("missing required column %q", want))
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (parsedRow, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(row) {
			return "", fmt.Errorf("missing value for column %q", name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	yearField, err := field("Year")
	if err != nil {
		return parsedRow{}, err
	}
	year, drop, err := parseYear(yearField)
	if err != nil {
		return parsedRow{}, err
	}
	if drop {
		return parsedRow{drop: true}, nil
	}

	game := models.Game{Year: year}

	if game.Name, err = field("Name"); err != nil {
		return parsedRow{}, err
	}
	if game.Platform, err = field("Platform"); err != nil {
		return parsedRow{}, err
	}
	if game.Genre, err = field("Genre"); err != nil {
		return parsedRow{}, err
	}
	if game.Publisher, err = field("Publisher"); err != nil {
		return parsedRow{}, err
	}
	game.Genre = fillUnknown(game.Genre)
	game.Publisher = fillUnknown(game.Publisher)

	for _, col := range []struct {
		name string
		dst  *float64
	}{
		{"NA_Sales", &game.NASales},
		{"EU_Sales", &game.EUSales},
		{"JP_Sales", &game.JPSales},
		{"Other_Sales", &game.OtherSales},
	} {
		raw, err := field(col.name)
		if err != nil {
			return parsedRow{}, err
		}
		v, err := parseSales(col.name, raw)
		if err != nil {
			return parsedRow{}, err
		}
		*col.dst = v
	}

	game.TotalSales = game.NASales + game.EUSales + game.JPSales + game.OtherSales
	return parsedRow{game: game}, nil
}

// parseYear returns drop=true for the tolerated cases: a missing year or one
// outside the valid bounds. Anything else non-integer fails the load.
func parseYear(s string) (year int, drop bool, err error) {
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0, true, nil
	}
	// Years round-tripped through a float column arrive as "2006.0".
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) {
		return 0, false, fmt.Errorf("unparseable year %q", s)
	}
	y := int(v)
	if y < MinYear || y > MaxYear {
		return 0, true, nil
	}
	return y, false, nil
}

func parseSales(column, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric %s value %q", column, s)
	}
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid %s value %q", column, s)
	}
	return v, nil
}

func fillUnknown(s string) string {
	if s == "" || strings.EqualFold(s, "N/A") {
		return unknownCategory
	}
	return s
}

func dedupeKey(g models.Game) string {
	return strings.Join([]string{
		g.Name,
		g.Platform,
		strconv.Itoa(g.Year),
		g.Genre,
		g.Publisher,
		formatSales(g.NASales),
		formatSales(g.EUSales),
		formatSales(g.JPSales),
		formatSales(g.OtherSales),
	}, "\x1f")
}

func formatSales(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes the store in the cleaned-file format: the required columns
// plus the derived Total_Sales. A store loaded back from this output is
// identical to the one that produced it.
func (s *Store) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(requiredColumns)+1)
	header = append(header, requiredColumns...)
	header = append(header, "Total_Sales")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range s.games {
		row := []string{
			g.Name,
			g.Platform,
			strconv.Itoa(g.Year),
			g.Genre,
			g.Publisher,
			formatSales(g.NASales),
			formatSales(g.EUSales),
			formatSales(g.JPSales),
			formatSales(g.OtherSales),
			formatSales(g.TotalSales),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
