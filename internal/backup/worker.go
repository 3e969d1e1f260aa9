package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// MirrorLogName is the per-run log artifact: a member at the archive root
// in zip mode, a sibling file at the mirror root otherwise.
const MirrorLogName = "backup_log.txt"

// progressEvery bounds event-channel traffic: a ProgressEvent goes out for
// every progressEvery-th file and unconditionally for the last one.
const progressEvery = 5

// Request is the immutable input of one run.
type Request struct {
	Sources     []string
	DestRoot    string
	ZipMode     bool
	Incremental bool
	Excludes    []string
}

// FileError records one failed per-file operation. Dest is the destination
// path in mirror mode and the archive entry name in zip mode.
type FileError struct {
	Source string
	Dest   string
	Reason string
}

type fileOutcome int

const (
	outcomeCopied fileOutcome = iota
	outcomeSkipped
	outcomeErrored
)

// Worker executes one backup run on its own goroutine and reports through
// the event channel passed at construction. A Worker is single-use: build
// one per run, call Run exactly once.
type Worker struct {
	req     Request
	machine string
	events  chan<- Event
	log     zerolog.Logger
	now     func() time.Time
	stop    atomic.Bool
	errs    []FileError
}

// NewWorker builds a worker for one run. Incremental is forced off in zip
// mode: change-skipping is meaningless for a from-scratch archive. The
// worker owns the events channel from here on and closes it when the run
// reaches a terminal state.
func NewWorker(req Request, machine string, events chan<- Event, logger zerolog.Logger) *Worker {
	if req.ZipMode {
		req.Incremental = false
	}
	return &Worker{
		req:     req,
		machine: machine,
		events:  events,
		log:     logger,
		now:     time.Now,
	}
}

// Cancel requests a stop. The flag is monotone and polled once per file,
// immediately before each file's transfer decision; an in-flight copy
// always finishes or fails before cancellation is observed.
func (w *Worker) Cancel() {
	w.stop.Store(true)
}

// Errors returns the per-file failures accumulated by the run, in the
// order they happened. Only meaningful after the terminal event.
func (w *Worker) Errors() []FileError {
	return w.errs
}

// Incremental reports the effective incremental setting after zip-mode
// normalization.
func (w *Worker) Incremental() bool {
	return w.req.Incremental
}

func (w *Worker) logf(format string, args ...any) {
	w.events <- LogEvent{Text: fmt.Sprintf(format, args...)}
}

func (w *Worker) progress(done, total int) {
	w.events <- ProgressEvent{Done: done, Total: max(total, 1)}
}

func (w *Worker) stopRequested(ctx context.Context) bool {
	return w.stop.Load() || ctx.Err() != nil
}

// Run executes the whole run and emits exactly one terminal event: Done,
// Cancelled, or Failed. It never panics the host process; anything thrown
// outside the per-file boundary lands in FailedEvent.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.events)

	start := w.now()
	existing, missing := partitionSources(w.req.Sources)
	for _, m := range missing {
		w.logf("[WARN] Source not found or unset (skipping): %s", m)
	}

	total := countFiles(existing, w.req.Excludes)
	w.progress(0, total)

	target := backupTarget(w.req.DestRoot, w.machine, start, w.req.ZipMode)
	w.log.Debug().Str("target", target).Int("files", total).Bool("zip", w.req.ZipMode).Msg("run starting")

	var cancelled bool
	var err error
	if w.req.ZipMode {
		cancelled, err = w.runZip(ctx, existing, target, total)
	} else {
		if mkErr := os.MkdirAll(target, 0755); mkErr != nil {
			err = fmt.Errorf("create backup dir %s: %w", target, mkErr)
		} else {
			cancelled, err = w.runMirror(ctx, existing, target, total)
		}
	}

	switch {
	case err != nil:
		w.log.Error().Err(err).Msg("run failed")
		w.logf("Fatal error: %v", err)
		w.events <- FailedEvent{Reason: err.Error()}
	case cancelled:
		w.logf("Backup cancelled by user.")
		w.events <- CancelledEvent{}
	default:
		if len(w.errs) == 0 {
			w.logf("Backup completed successfully. No errors reported.")
		} else {
			w.logf("Completed with %d error(s). See log for details.", len(w.errs))
		}
		w.events <- DoneEvent{Target: target}
	}
}

// partitionSources splits the configured roots into directories that exist
// and everything else. Unset slots (empty strings) count as missing. All
// roots missing is not an error: the run proceeds and produces an empty
// output.
func partitionSources(sources []string) (existing, missing []string) {
	for _, s := range sources {
		if s == "" {
			missing = append(missing, s)
			continue
		}
		if info, err := os.Stat(s); err == nil && info.IsDir() {
			existing = append(existing, s)
		} else {
			missing = append(missing, s)
		}
	}
	return existing, missing
}

// sourceTag namespaces one root's files in the output: parent dir base name
// joined to the root's own base name. Roots sharing a leaf name under
// different parents get distinct tags.
func sourceTag(root string) string {
	leaf := filepath.Base(root)
	parent := filepath.Base(filepath.Dir(root))
	if parent == "" || parent == "." || parent == string(filepath.Separator) {
		return leaf
	}
	return parent + "__" + leaf
}

func (w *Worker) recordError(src, dest string, opErr error, line string) {
	w.errs = append(w.errs, FileError{Source: src, Dest: dest, Reason: opErr.Error()})
	w.log.Error().Str("source", src).Str("dest", dest).Err(opErr).Msg("file failed")
	w.logf("%s", line)
}

func (w *Worker) runMirror(ctx context.Context, sources []string, backupDir string, total int) (bool, error) {
	w.logf("Mirror mode: %s", backupDir)

	lf, err := os.Create(filepath.Join(backupDir, MirrorLogName))
	if err != nil {
		return false, fmt.Errorf("create backup log: %w", err)
	}
	defer lf.Close()

	header := fmt.Sprintf("Elite Dangerous Backup Log (Mirror) - %s\nDestination: %s\nIncremental: %s\n\n",
		w.now().Format(time.RFC3339), backupDir, onOff(w.req.Incremental))
	if _, err := lf.WriteString(header); err != nil {
		return false, fmt.Errorf("write log header: %w", err)
	}

	done := 0
	for _, root := range sources {
		tag := sourceTag(root)
		destBase := filepath.Join(backupDir, tag)
		w.logf("Copying: %s -> %s", root, destBase)
		if err := os.MkdirAll(destBase, 0755); err != nil {
			return false, fmt.Errorf("create dir %s: %w", destBase, err)
		}

		for src, rel := range filesUnder(root, w.req.Excludes) {
			if w.stopRequested(ctx) {
				return true, nil
			}
			destFile := filepath.Join(destBase, rel)
			outcome, opErr := w.mirrorFile(src, destFile)
			switch outcome {
			case outcomeSkipped:
				fmt.Fprintf(lf, "SKIP: %s\n", src)
			case outcomeCopied:
				fmt.Fprintf(lf, "COPY: %s -> %s\n", src, destFile)
			case outcomeErrored:
				line := fmt.Sprintf("[ERROR] %s -> %s: %v", src, destFile, opErr)
				fmt.Fprintln(lf, line)
				w.recordError(src, destFile, opErr, line)
			}
			done++
			if done%progressEvery == 0 || done == total {
				w.progress(done, total)
			}
		}
	}
	return false, nil
}

// mirrorFile transfers one file and returns an explicit outcome instead of
// throwing: errors here stay inside the per-file boundary.
func (w *Worker) mirrorFile(src, dst string) (fileOutcome, error) {
	if w.req.Incremental && isUnchanged(src, dst, mtimeSlop) {
		return outcomeSkipped, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return outcomeErrored, err
	}
	if err := copyFile(src, dst); err != nil {
		return outcomeErrored, err
	}
	return outcomeCopied, nil
}

// copyFile copies contents and carries the source mtime over, so a later
// incremental run can compare timestamps meaningfully.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := out.ReadFrom(in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
