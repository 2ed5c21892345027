// Command cleandata reads the raw vgsales CSV, applies the same
// normalization the server applies at load time (dedup, year bounds,
// Unknown fill, derived total), and writes a cleaned CSV. Running the server
// against either file yields an identical store.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vgsales-dashboard/internal/dataset"
)

const cleanTimeout = 60 * time.Second

func main() {
	in := flag.String("in", "data/vgsales.csv", "raw dataset to read")
	out := flag.String("out", "data/vgsales_clean.csv", "cleaned dataset to write")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), cleanTimeout)
	defer cancel()

	start := time.Now()
	store, err := dataset.Load(ctx, *in)
	if err != nil {
		logger.Error("failed to load raw dataset", "path", *in, "error", err)
		os.Exit(1)
	}
	logger.Info("raw dataset loaded",
		"path", *in,
		"records", store.Len(),
		"duration", time.Since(start))

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create output directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("failed to create output file", "path", *out, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := store.WriteCSV(f); err != nil {
		logger.Error("failed to write cleaned dataset", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("cleaned dataset written", "path", *out, "records", store.Len())
}
