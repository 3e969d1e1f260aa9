package doctor

import (
	"context"
	"fmt"
	"os"
	"time"

	"edbackup/internal/config"
	"edbackup/internal/hostenv"
	"edbackup/internal/s3"
)

type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

func Run(ctx context.Context, cfg *config.Config, env hostenv.Env) []CheckResult {
	var results []CheckResult

	results = append(results, CheckResult{
		Name:   "config",
		OK:     cfg != nil,
		Detail: "configuration loaded",
	})

	if cfg != nil {
		results = append(results, checkSources(cfg)...)
		results = append(results, checkDestination(cfg))
		if cfg.S3 != nil {
			ok, detail := checkS3(ctx, cfg)
			results = append(results, CheckResult{Name: "s3", OK: ok, Detail: detail})
		}
	}

	ok, detail := checkDisk()
	results = append(results, CheckResult{Name: "disk", OK: ok, Detail: detail})

	results = append(results, CheckResult{
		Name:   "machine",
		OK:     env.MachineName != hostenv.FallbackMachineName,
		Detail: fmt.Sprintf("machine name %q", env.MachineName),
	})

	return results
}

// checkSources reports each configured slot. A missing source is not a
// failure — runs skip it with a warning — but the user should know.
func checkSources(cfg *config.Config) []CheckResult {
	var results []CheckResult
	for i, src := range cfg.Sources {
		name := fmt.Sprintf("source %d", i+1)
		if src == "" {
			results = append(results, CheckResult{Name: name, OK: true, Detail: "unset (will be skipped)"})
			continue
		}
		info, err := os.Stat(src)
		switch {
		case err != nil:
			results = append(results, CheckResult{Name: name, OK: false, Detail: fmt.Sprintf("not found: %s", src)})
		case !info.IsDir():
			results = append(results, CheckResult{Name: name, OK: false, Detail: fmt.Sprintf("not a directory: %s", src)})
		default:
			results = append(results, CheckResult{Name: name, OK: true, Detail: src})
		}
	}
	return results
}

func checkDestination(cfg *config.Config) CheckResult {
	if cfg.Destination == "" {
		return CheckResult{Name: "destination", OK: true, Detail: "not configured (pass --dest or pick a drive)"}
	}
	f, err := os.CreateTemp(cfg.Destination, "edbackup-doctor-*")
	if err != nil {
		return CheckResult{Name: "destination", OK: false, Detail: fmt.Sprintf("not writable: %v", err)}
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return CheckResult{Name: "destination", OK: true, Detail: fmt.Sprintf("writable (%s)", cfg.Destination)}
}

func checkS3(ctx context.Context, cfg *config.Config) (bool, string) {
	client, err := s3.New(ctx, s3.Options{
		Endpoint:           cfg.S3.Endpoint,
		Region:             cfg.S3.Region,
		AccessKey:          cfg.S3.AccessKey,
		SecretKey:          cfg.S3.SecretKey,
		Bucket:             cfg.S3.Bucket,
		Prefix:             cfg.S3.Prefix,
		InsecureSkipVerify: cfg.S3.TLS != nil && cfg.S3.TLS.InsecureSkipVerify,
	})
	if err != nil {
		return false, fmt.Sprintf("s3 client init failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err = client.ListObjects(ctx, "", 1)
	if err != nil {
		return false, fmt.Sprintf("s3 list failed: %v", err)
	}
	return true, fmt.Sprintf("s3 OK (bucket=%s, prefix=%s)", cfg.S3.Bucket, cfg.S3.Prefix)
}

func checkDisk() (bool, string) {
	dir := os.TempDir()
	f, err := os.CreateTemp(dir, "edbackup-doctor-*")
	if err != nil {
		return false, fmt.Sprintf("create temp file failed in %s: %v", dir, err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString("test"); err != nil {
		_ = f.Close()
		return false, fmt.Sprintf("write temp file failed: %v", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Sprintf("close temp file failed: %v", err)
	}
	return true, fmt.Sprintf("temp dir writable (%s)", dir)
}
