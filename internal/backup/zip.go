package backup

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

func (w *Worker) runZip(ctx context.Context, sources []string, archivePath string, total int) (cancelled bool, err error) {
	w.logf("ZIP mode: %s", archivePath)

	f, err := os.Create(archivePath)
	if err != nil {
		return false, fmt.Errorf("create archive %s: %w", archivePath, err)
	}
	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	var logLines []string
	count := 0
loop:
	for _, root := range sources {
		tag := sourceTag(root)
		w.logf("Zipping: %s -> /%s/", root, tag)
		for src, rel := range filesUnder(root, w.req.Excludes) {
			if w.stopRequested(ctx) {
				cancelled = true
				break loop
			}
			arcname := path.Join(tag, filepath.ToSlash(rel))
			if zipErr := writeZipEntry(zw, src, arcname); zipErr != nil {
				line := fmt.Sprintf("[ERROR] ZIP %s -> %s: %v", src, arcname, zipErr)
				logLines = append(logLines, line)
				w.recordError(src, arcname, zipErr, line)
			} else {
				logLines = append(logLines, fmt.Sprintf("ZIP: %s -> %s", src, arcname))
			}
			count++
			if count%progressEvery == 0 || count == total {
				w.progress(count, total)
			}
		}
	}

	// The log member is written even for a cancelled run, so the partial
	// archive still says which files made it in.
	if err := writeZipLog(zw, logLines); err != nil {
		zw.Close()
		f.Close()
		return cancelled, err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return cancelled, fmt.Errorf("finalize archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return cancelled, fmt.Errorf("close archive: %w", err)
	}
	return cancelled, nil
}

// writeZipEntry adds one file under its archive name, preserving the
// source modification time in the entry header.
func writeZipEntry(zw *zip.Writer, src, arcname string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = arcname
	hdr.Method = zip.Deflate
	entry, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, in)
	return err
}

func writeZipLog(zw *zip.Writer, lines []string) error {
	lw, err := zw.Create(MirrorLogName)
	if err != nil {
		return fmt.Errorf("create archive log entry: %w", err)
	}
	if _, err := io.WriteString(lw, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write archive log entry: %w", err)
	}
	return nil
}
