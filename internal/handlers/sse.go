package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"vgsales-dashboard/internal/dataset"
	"vgsales-dashboard/internal/errors"
	"vgsales-dashboard/internal/models"
	"vgsales-dashboard/internal/observability"
	"vgsales-dashboard/internal/query"
	"github.com/starfederation/datastar-go/datastar"
)

const maxTableRows = 15

var publisherTableTemplate = template.Must(template.New("publisherTable").Parse(`
<div id="publishers-content">
<table class="modern-table">
<thead><tr><th>#</th><th>Publisher</th><th>Sales (M)</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Rank}}</td>
<td>{{.Publisher}}</td>
<td><strong>{{printf "%.2f" .Total}}</strong></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type publisherRow struct {
	Rank      int
	Publisher string
	Total     float64
}

type SSEHandlers struct {
	store  *dataset.Store
	logger *slog.Logger
}

func NewSSEHandlers(store *dataset.Store, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		store:  store,
		logger: logger,
	}
}

func (h *SSEHandlers) renderPublisherTable(ranked []models.GroupTotal) (string, error) {
	if len(ranked) > maxTableRows {
		ranked = ranked[:maxTableRows]
	}

	rows := make([]publisherRow, len(ranked))
	for i, r := range ranked {
		rows[i] = publisherRow{Rank: i + 1, Publisher: r.Key, Total: r.Total}
	}

	var buf strings.Builder
	err := publisherTableTemplate.Execute(&buf, rows)
	return buf.String(), err
}

// selection parses the filter selection shared by every SSE endpoint. A
// malformed selection gets a JSON error response instead of a stream.
func (h *SSEHandlers) selection(w http.ResponseWriter, r *http.Request) (query.View, bool) {
	sel, appErr := parseSelection(h.store, r.URL.Query())
	if appErr != nil {
		errors.WriteError(w, h.logger, appErr, observability.GetRequestID(r.Context()))
		return nil, false
	}
	return query.Apply(h.store, sel), true
}

func (h *SSEHandlers) patchSignals(w http.ResponseWriter, sse *datastar.ServerSentEventGenerator, signals map[string]any) {
	jsonData, err := json.Marshal(signals)
	if err != nil {
		h.logger.Error("marshal sse signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleOverview pushes the initial-analysis page data: KPIs, top genres,
// the yearly evolution line, the genre distribution and top platforms.
func (h *SSEHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	view, ok := h.selection(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	h.patchSignals(w, sse, map[string]any{
		"kpis":         query.Summarize(view),
		"topGenres":    query.TopN(query.SumBy(view, query.ByGenre), defaultTopGenres),
		"yearlySales":  query.SumByYearSorted(view),
		"genreSales":   query.Rank(query.SumBy(view, query.ByGenre)),
		"topPlatforms": query.TopN(query.SumBy(view, query.ByPlatform), defaultTopPlatforms),
	})
}

// HandleRegional pushes the regional-analysis page data.
func (h *SSEHandlers) HandleRegional(w http.ResponseWriter, r *http.Request) {
	view, ok := h.selection(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	h.patchSignals(w, sse, map[string]any{
		"regionTotals":   query.RegionTotals(view),
		"regionShares":   query.RegionShares(view),
		"regionalYearly": query.RegionalByYear(view),
	})
}

// HandleMarket pushes the publisher/platform page data plus a rendered
// top-publishers table fragment.
func (h *SSEHandlers) HandleMarket(w http.ResponseWriter, r *http.Request) {
	view, ok := h.selection(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	topPublishers := query.TopN(query.SumBy(view, query.ByPublisher), defaultTopPublishers)
	html, err := h.renderPublisherTable(topPublishers)
	if err != nil {
		h.logger.Error("render publisher table", "error", err)
		return
	}
	sse.PatchElements(html)

	h.patchSignals(w, sse, map[string]any{
		"marketKpis":          marketKpis(view),
		"topPublishers":       topPublishers,
		"platformPerformance": query.PlatformPerformance(view),
		"publisherMatrix":     query.CrossTab(view, query.ByPublisher, query.ByPlatform, matrixDimensionSize, matrixDimensionSize),
	})
}

// HandleRefreshAll pushes every page's signals in one stream.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	view, ok := h.selection(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	topPublishers := query.TopN(query.SumBy(view, query.ByPublisher), defaultTopPublishers)
	html, err := h.renderPublisherTable(topPublishers)
	if err != nil {
		h.logger.Error("render publisher table", "error", err)
		return
	}
	sse.PatchElements(html)

	h.patchSignals(w, sse, map[string]any{
		"kpis":                query.Summarize(view),
		"topGenres":           query.TopN(query.SumBy(view, query.ByGenre), defaultTopGenres),
		"yearlySales":         query.SumByYearSorted(view),
		"topPlatforms":        query.TopN(query.SumBy(view, query.ByPlatform), defaultTopPlatforms),
		"regionTotals":        query.RegionTotals(view),
		"regionShares":        query.RegionShares(view),
		"regionalYearly":      query.RegionalByYear(view),
		"marketKpis":          marketKpis(view),
		"topPublishers":       topPublishers,
		"platformPerformance": query.PlatformPerformance(view),
	})
}
