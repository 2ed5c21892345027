package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vgsales-dashboard/internal/dataset"
	"vgsales-dashboard/internal/errors"
	"vgsales-dashboard/internal/models"
	"vgsales-dashboard/internal/observability"
	"vgsales-dashboard/internal/query"
)

const (
	defaultTopGenres     = 5
	defaultTopPlatforms  = 10
	defaultTopPublishers = 15
	matrixDimensionSize  = 10

	optionsCacheControl = "public, max-age=300"
)

type APIHandlers struct {
	store  *dataset.Store
	logger *slog.Logger
}

func NewAPIHandlers(store *dataset.Store, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		store:  store,
		logger: logger,
	}
}

// parseSelection builds the filter selection from query parameters. An
// absent parameter leaves the dimension at its default (everything); a
// present parameter restricts to exactly the listed values, so "genre=" with
// no usable values is an empty selection and yields an empty view.
func parseSelection(store *dataset.Store, q url.Values) (query.Selection, *errors.AppError) {
	sel := query.DefaultSelection(store)

	if vals, ok := q["genre"]; ok {
		sel.Genres = nonEmpty(vals)
	}
	if vals, ok := q["platform"]; ok {
		sel.Platforms = nonEmpty(vals)
	}
	if vals, ok := q["publisher"]; ok {
		sel = sel.WithPublishers(nonEmpty(vals))
	}

	if v := q.Get("year_min"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return sel, errors.BadRequestWrap(err, "invalid year_min")
		}
		sel.YearMin = year
	}
	if v := q.Get("year_max"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return sel, errors.BadRequestWrap(err, "invalid year_max")
		}
		sel.YearMax = year
	}

	return sel, nil
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseLimit(q url.Values, fallback int) (int, *errors.AppError) {
	v := q.Get("n")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.BadRequest("n must be a non-negative integer")
	}
	return n, nil
}

// view applies the request's selection, writing a BadRequest response and
// returning ok=false when the selection itself is malformed.
func (h *APIHandlers) view(w http.ResponseWriter, r *http.Request) (query.View, bool) {
	sel, appErr := parseSelection(h.store, r.URL.Query())
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return nil, false
	}
	return query.Apply(h.store, sel), true
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": optionsCacheControl,
	}
	errors.WriteSuccessWithHeaders(w, h.store.Options(), headers)
}

func (h *APIHandlers) HandleKpis(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.Summarize(view))
}

// MarketKpis carries the market-page rollups. TopPublisher and TopPlatform
// are nil when the filtered view is empty.
type MarketKpis struct {
	TopPublisher *models.GroupTotal `json:"top_publisher"`
	TopPlatform  *models.GroupTotal `json:"top_platform"`
	Publishers   int                `json:"publishers"`
}

func (h *APIHandlers) HandleMarketKpis(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, marketKpis(view))
}

func marketKpis(view query.View) MarketKpis {
	kpis := MarketKpis{Publishers: query.Summarize(view).Publishers}
	if pub, err := query.TopGroup(view, query.ByPublisher); err == nil {
		kpis.TopPublisher = &pub
	}
	if plat, err := query.TopGroup(view, query.ByPlatform); err == nil {
		kpis.TopPlatform = &plat
	}
	return kpis
}

func (h *APIHandlers) HandleGenreSales(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.Rank(query.SumBy(view, query.ByGenre)))
}

func (h *APIHandlers) HandleTopGenres(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	n, appErr := parseLimit(r.URL.Query(), defaultTopGenres)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccess(w, query.TopN(query.SumBy(view, query.ByGenre), n))
}

func (h *APIHandlers) HandleYearlySales(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.SumByYearSorted(view))
}

func (h *APIHandlers) HandleTopPlatforms(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	n, appErr := parseLimit(r.URL.Query(), defaultTopPlatforms)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccess(w, query.TopN(query.SumBy(view, query.ByPlatform), n))
}

func (h *APIHandlers) HandleRegionalTotals(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.RegionTotals(view))
}

func (h *APIHandlers) HandleRegionShares(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.RegionShares(view))
}

func (h *APIHandlers) HandleRegionalYearly(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.RegionalByYear(view))
}

func (h *APIHandlers) HandleTopPublishers(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	n, appErr := parseLimit(r.URL.Query(), defaultTopPublishers)
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccess(w, query.TopN(query.SumBy(view, query.ByPublisher), n))
}

func (h *APIHandlers) HandlePlatformPerformance(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	errors.WriteSuccess(w, query.PlatformPerformance(view))
}

func (h *APIHandlers) HandlePublisherPlatformMatrix(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	matrix := query.CrossTab(view, query.ByPublisher, query.ByPlatform,
		matrixDimensionSize, matrixDimensionSize)
	errors.WriteSuccess(w, matrix)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}
	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	minYear, maxYear := h.store.YearBounds()
	stats := map[string]any{
		"records":    h.store.Len(),
		"genres":     len(h.store.Genres()),
		"platforms":  len(h.store.Platforms()),
		"publishers": len(h.store.Publishers()),
		"year_min":   minYear,
		"year_max":   maxYear,
	}
	errors.WriteSuccess(w, stats)
}
