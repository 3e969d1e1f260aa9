package backup

import (
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// filesUnder lazily yields (absolute path, root-relative path) for every
// regular file beneath root, in os.ReadDir order. Subtrees that cannot be
// listed are silently absent; open errors surface later when the file is
// actually transferred. Each range re-walks from scratch.
func filesUnder(root string, excludes []string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		walkDir(root, "", excludes, yield)
	}
}

func walkDir(dir, rel string, excludes []string, yield func(string, string) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return true
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		entryRel := e.Name()
		if rel != "" {
			entryRel = filepath.Join(rel, e.Name())
		}
		if excluded(entryRel, excludes) {
			continue
		}
		if e.IsDir() {
			if !walkDir(full, entryRel, excludes, yield) {
				return false
			}
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		if !yield(full, entryRel) {
			return false
		}
	}
	return true
}

func excluded(rel string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	slashRel := filepath.ToSlash(rel)
	for _, pattern := range excludes {
		if ok, err := doublestar.Match(pattern, slashRel); err == nil && ok {
			return true
		}
	}
	return false
}

// countFiles sizes the progress denominator with a full redundant walk.
// The result is advisory: the tree can change before the transfer pass.
func countFiles(roots []string, excludes []string) int {
	total := 0
	for _, root := range roots {
		for range filesUnder(root, excludes) {
			total++
		}
	}
	return total
}
