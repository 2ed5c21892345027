package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard is the single-page shell. All data arrives through the /sse/*
// endpoints as datastar signals; charts are drawn client-side.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardHTML)
		return err
	})
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Video Game Sales Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@latest/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f6fa; }
header { background: #2f3640; color: #fff; padding: 1rem 2rem; }
nav a { color: #dcdde1; margin-right: 1rem; text-decoration: none; }
main { padding: 1.5rem 2rem; }
.modern-table { border-collapse: collapse; width: 100%; background: #fff; }
.modern-table th, .modern-table td { padding: .5rem .75rem; border-bottom: 1px solid #eee; text-align: left; }
.kpi-row { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
.kpi { background: #fff; border-radius: 8px; padding: 1rem; flex: 1; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
</style>
</head>
<body>
<header>
<h1>Video Game Sales</h1>
<nav>
<a href="#overview" data-on-click="@get('/sse/overview')">Overview</a>
<a href="#regional" data-on-click="@get('/sse/regional')">Regional</a>
<a href="#market" data-on-click="@get('/sse/market')">Publishers &amp; Platforms</a>
<a href="#refresh" data-on-click="@get('/sse/refresh-all')">Refresh</a>
</nav>
</header>
<main data-on-load="@get('/sse/refresh-all')">
<div class="kpi-row">
<div class="kpi"><strong>Games</strong><div data-text="$kpis.games"></div></div>
<div class="kpi"><strong>Total sales (M)</strong><div data-text="$kpis.total_sales"></div></div>
<div class="kpi"><strong>Genres</strong><div data-text="$kpis.genres"></div></div>
<div class="kpi"><strong>Platforms</strong><div data-text="$kpis.platforms"></div></div>
</div>
<div id="publishers-content"></div>
</main>
</body>
</html>`
