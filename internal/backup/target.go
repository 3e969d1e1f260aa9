package backup

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// NamePrefix is the fixed first component of every backup target name.
// Changing it breaks `list` and `prune` on existing destinations.
const NamePrefix = "EliteDangerousBackup"

const targetTimeLayout = "20060102_150405"

var sanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitizeMachineName(s string) string {
	return sanitizeRe.ReplaceAllString(strings.TrimSpace(s), "_")
}

// targetName derives the run's output name from machine identity and the
// wall-clock time the run started. One name per run; collisions are
// accepted as vanishingly unlikely.
func targetName(machine string, start time.Time, zipMode bool) string {
	name := fmt.Sprintf("%s_%s_%s", NamePrefix, sanitizeMachineName(machine), start.Format(targetTimeLayout))
	if zipMode {
		name += ".zip"
	}
	return name
}

func backupTarget(destRoot, machine string, start time.Time, zipMode bool) string {
	return filepath.Join(destRoot, targetName(machine, start, zipMode))
}

// parseTargetName extracts the timestamp from a target name produced by
// targetName. The machine segment may itself contain underscores, so the
// timestamp is taken from the trailing two underscore-separated fields.
func parseTargetName(name string) (time.Time, bool) {
	base := strings.TrimSuffix(name, ".zip")
	if !strings.HasPrefix(base, NamePrefix+"_") {
		return time.Time{}, false
	}
	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return time.Time{}, false
	}
	ts := parts[len(parts)-2] + "_" + parts[len(parts)-1]
	t, err := time.ParseInLocation(targetTimeLayout, ts, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
