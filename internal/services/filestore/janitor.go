package filestore

import (
	"context"
	"os"
	"time"

	"github.com/denisAlshanov/mediagate/internal/utils"
)

// Sweep removes regular files whose modification time is older than maxAge.
// It returns the number of files removed.
func (s *Store) Sweep(ctx context.Context, now time.Time, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()

		// Waits out any producer currently writing this name.
		unlock := s.Lock(name)
		info, err := os.Stat(s.Path(name))
		if err == nil && now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
				utils.LogError(ctx, "Failed to evict file", err, utils.Fields{"file": name})
			} else {
				removed++
			}
		}
		unlock()
	}

	return removed, nil
}

// RunJanitor sweeps the store every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := s.Sweep(ctx, now, maxAge)
			if err != nil {
				utils.LogError(ctx, "Retention sweep failed", err)
				continue
			}
			if removed > 0 {
				utils.LogInfo(ctx, "Retention sweep evicted files", utils.Fields{"removed": removed})
			}
		}
	}
}
