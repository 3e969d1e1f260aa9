package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"edbackup/internal/config"
	"edbackup/internal/hostenv"
	"edbackup/internal/s3"
)

var uploadPartSizeMB int

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().IntVar(&uploadPartSizeMB, "part-size", s3.MinPartSizeMB, "Multipart upload part size in MB")
}

var uploadCmd = &cobra.Command{
	Use:   "upload <archive>",
	Short: "Upload a finished ZIP archive to S3-compatible storage",
	Long:  "Push an archive produced by `edbackup run --zip` to the configured S3 bucket as an offsite copy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	env := hostenv.Detect()

	v, err := config.Load(env)
	if err != nil {
		return err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if cfg.S3 == nil {
		return fmt.Errorf("s3 configuration is required for upload")
	}

	archivePath := args[0]
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory; only ZIP archives can be uploaded", archivePath)
	}

	ctx := cmd.Context()
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
		return err
	}

	key := s3.ArchiveKey(filepath.Base(archivePath), time.Now())
	logger.Debug().Str("key", key).Int64("bytes", info.Size()).Msg("uploading archive")

	start := time.Now()
	partSize := int64(uploadPartSizeMB) * 1024 * 1024
	if err := client.UploadMultipart(ctx, key, f, partSize); err != nil {
		return fmt.Errorf("upload archive: %w", err)
	}
	cmd.Printf("Uploaded %s -> s3://%s/%s in %s\n", archivePath, client.Bucket(), client.Key(key), time.Since(start).Round(time.Second))
	return nil
}
