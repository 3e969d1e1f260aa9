package config

import (
	"errors"
	"fmt"
)

var (
	ErrTooManySources = errors.New("too many sources: at most 3 are supported")
	ErrS3Incomplete   = errors.New("s3 config requires endpoint, bucket, access_key and secret_key")
)

func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if len(cfg.Sources) > MaxSources {
		return fmt.Errorf("%w: got %d", ErrTooManySources, len(cfg.Sources))
	}
	if cfg.Retention != nil && cfg.Retention.Keep < 0 {
		return fmt.Errorf("retention.keep must be >= 0, got %d", cfg.Retention.Keep)
	}
	if cfg.S3 != nil {
		if cfg.S3.Endpoint == "" || cfg.S3.Bucket == "" || cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
			return ErrS3Incomplete
		}
	}
	return nil
}
