package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ListEntry is one finished backup found under a destination root.
type ListEntry struct {
	Name      string
	Path      string
	Timestamp time.Time
	Zip       bool
	Size      int64
}

// List finds backups under destRoot by the fixed naming convention,
// newest first. Entries whose name doesn't parse are ignored: the
// destination is shared with whatever else the user keeps there.
func List(destRoot string) ([]ListEntry, error) {
	entries, err := os.ReadDir(destRoot)
	if err != nil {
		return nil, fmt.Errorf("read destination %s: %w", destRoot, err)
	}
	var backups []ListEntry
	for _, e := range entries {
		ts, ok := parseTargetName(e.Name())
		if !ok {
			continue
		}
		full := filepath.Join(destRoot, e.Name())
		backups = append(backups, ListEntry{
			Name:      e.Name(),
			Path:      full,
			Timestamp: ts,
			Zip:       strings.HasSuffix(e.Name(), ".zip"),
			Size:      sizeOf(full),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Prune deletes all but the newest keep backups under destRoot and
// returns the paths it removed.
func Prune(destRoot string, keep int) ([]string, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be >= 1, got %d", keep)
	}
	backups, err := List(destRoot)
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}
	var removed []string
	for _, b := range backups[keep:] {
		if err := os.RemoveAll(b.Path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", b.Path, err)
		}
		removed = append(removed, b.Path)
	}
	return removed, nil
}

// sizeOf totals a backup's bytes: the file size for an archive, the sum
// of file sizes for a mirror tree. Best-effort; unreadable parts count
// as zero.
func sizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}
	var total int64
	for abs := range filesUnder(path, nil) {
		if fi, err := os.Stat(abs); err == nil {
			total += fi.Size()
		}
	}
	return total
}
