package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vgsales-dashboard/internal/models"
)

func newTestSSEHandlers() *SSEHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSSEHandlers(newTestStore(), logger)
}

func TestRenderPublisherTable(t *testing.T) {
	h := newTestSSEHandlers()

	html, err := h.renderPublisherTable([]models.GroupTotal{
		{Key: "Nintendo", Total: 2.5},
		{Key: "Sony & Friends", Total: 1.0},
	})
	if err != nil {
		t.Fatalf("renderPublisherTable() failed: %v", err)
	}

	if !strings.Contains(html, `id="publishers-content"`) {
		t.Error("rendered table should target the publishers-content element")
	}
	if !strings.Contains(html, "Nintendo") || !strings.Contains(html, "2.50") {
		t.Errorf("rendered table missing publisher row: %s", html)
	}
	// html/template escapes the ampersand.
	if !strings.Contains(html, "Sony &amp; Friends") {
		t.Errorf("publisher name should be HTML-escaped: %s", html)
	}
}

func TestRenderPublisherTable_CapsRows(t *testing.T) {
	h := newTestSSEHandlers()

	ranked := make([]models.GroupTotal, maxTableRows+5)
	for i := range ranked {
		ranked[i] = models.GroupTotal{Key: "pub-" + string(rune('a'+i)), Total: float64(i)}
	}

	html, err := h.renderPublisherTable(ranked)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(html, "<tr>") - 1; got != maxTableRows {
		t.Errorf("expected %d data rows, got %d", maxTableRows, got)
	}
}

func TestHandleOverview(t *testing.T) {
	h := newTestSSEHandlers()

	rec := httptest.NewRecorder()
	h.HandleOverview(rec, httptest.NewRequest(http.MethodGet, "/sse/overview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want an event stream", ct)
	}

	body := rec.Body.String()
	for _, signal := range []string{"kpis", "topGenres", "yearlySales", "genreSales", "topPlatforms"} {
		if !strings.Contains(body, signal) {
			t.Errorf("overview stream missing %q signal", signal)
		}
	}
}

func TestHandleRegional(t *testing.T) {
	h := newTestSSEHandlers()

	rec := httptest.NewRecorder()
	h.HandleRegional(rec, httptest.NewRequest(http.MethodGet, "/sse/regional", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, signal := range []string{"regionTotals", "regionShares", "regionalYearly"} {
		if !strings.Contains(body, signal) {
			t.Errorf("regional stream missing %q signal", signal)
		}
	}
}

func TestHandleMarket(t *testing.T) {
	h := newTestSSEHandlers()

	rec := httptest.NewRecorder()
	h.HandleMarket(rec, httptest.NewRequest(http.MethodGet, "/sse/market", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "publishers-content") {
		t.Error("market stream should patch the publishers table fragment")
	}
	for _, signal := range []string{"marketKpis", "topPublishers", "platformPerformance", "publisherMatrix"} {
		if !strings.Contains(body, signal) {
			t.Errorf("market stream missing %q signal", signal)
		}
	}
}

func TestHandleRefreshAll_Filtered(t *testing.T) {
	h := newTestSSEHandlers()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all?publisher=Nintendo", nil)
	h.HandleRefreshAll(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Nintendo") {
		t.Error("filtered stream should include the selected publisher")
	}
	if strings.Contains(body, "Sony") {
		t.Error("filtered stream should not include excluded publishers")
	}
}

func TestHandleSSE_InvalidSelection(t *testing.T) {
	h := newTestSSEHandlers()

	rec := httptest.NewRecorder()
	h.HandleOverview(rec, httptest.NewRequest(http.MethodGet, "/sse/overview?year_max=later", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("error response Content-Type = %q, want application/json", ct)
	}
}
