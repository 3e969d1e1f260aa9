package s3

import (
	"path"
	"time"
)

const ArchivesPrefix = "archives"

// ArchiveKey places an uploaded archive under a date-partitioned prefix so
// bucket listings stay navigable as runs accumulate.
func ArchiveKey(filename string, at time.Time) string {
	at = at.UTC()
	return path.Join(ArchivesPrefix, at.Format("2006"), at.Format("01"), at.Format("02"), filename)
}
