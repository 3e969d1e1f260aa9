package backup

import (
	"os"
	"time"
)

// mtimeSlop absorbs timestamp truncation across filesystems with different
// clock resolutions.
const mtimeSlop = time.Second

// isUnchanged reports whether dst already reflects src, by size and
// modification time only. Equal size plus an mtime delta within slop is
// assumed identical; content is never read. Any stat failure on either
// side means "changed" — detection is advisory and must never abort a
// transfer.
func isUnchanged(src, dst string, slop time.Duration) bool {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	if srcInfo.Size() != dstInfo.Size() {
		return false
	}
	delta := srcInfo.ModTime().Sub(dstInfo.ModTime())
	if delta < 0 {
		delta = -delta
	}
	return delta <= slop
}
