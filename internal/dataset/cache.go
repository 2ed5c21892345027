package dataset

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vgsales-dashboard/internal/models"
	"github.com/pierrec/lz4/v4"
)

// Bump when the snapshot layout or load-time normalization changes.
const cacheVersion = "v1"

// storeSnapshot is the gob-encoded form of a parsed store. SourceModTime
// ties the snapshot to the exact CSV it was parsed from.
type storeSnapshot struct {
	Games         []models.Game
	SourceModTime time.Time
}

func (l *Loader) cachePath(csvPath string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(csvPath)
	return filepath.Join(l.cacheDir, fmt.Sprintf("%s_%s.gob.lz4", name, cacheVersion))
}

func (l *Loader) saveCache(csvPath string, modTime time.Time, s *Store) error {
	if l.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(l.cacheDir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(l.cachePath(csvPath))
	if err != nil {
		return err
	}
	defer f.Close()

	zw := lz4.NewWriter(f)
	snap := storeSnapshot{Games: s.games, SourceModTime: modTime}
	if err := gob.NewEncoder(zw).Encode(snap); err != nil {
		return err
	}
	return zw.Close()
}

func (l *Loader) loadCache(csvPath string, modTime time.Time) (*Store, error) {
	if l.cacheDir == "" {
		return nil, os.ErrNotExist
	}

	f, err := os.Open(l.cachePath(csvPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap storeSnapshot
	if err := gob.NewDecoder(lz4.NewReader(f)).Decode(&snap); err != nil {
		return nil, err
	}
	if !snap.SourceModTime.Equal(modTime) {
		return nil, fmt.Errorf("cache is stale")
	}
	return NewStore(snap.Games), nil
}
