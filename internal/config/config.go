package config

import "github.com/spf13/viper"

// MaxSources is the number of source slots. Unused slots stay as empty
// strings so positions are stable in the config file.
const MaxSources = 3

type Config struct {
	Sources     []string         `mapstructure:"sources" yaml:"sources"`
	ZipMode     bool             `mapstructure:"zip_mode" yaml:"zip_mode"`
	Incremental bool             `mapstructure:"incremental" yaml:"incremental"`
	Destination string           `mapstructure:"destination" yaml:"destination,omitempty"`
	Exclude     []string         `mapstructure:"exclude" yaml:"exclude,omitempty"`
	Retention   *RetentionConfig `mapstructure:"retention" yaml:"retention,omitempty"`
	S3          *S3Config        `mapstructure:"s3" yaml:"s3,omitempty"`
}

// RetentionConfig bounds how many finished backups a destination keeps.
type RetentionConfig struct {
	Keep int `mapstructure:"keep" yaml:"keep"`
}

// S3Config configures the optional offsite copy of finished archives.
type S3Config struct {
	Endpoint  string     `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string     `mapstructure:"region" yaml:"region,omitempty"`
	AccessKey string     `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string     `mapstructure:"secret_key" yaml:"secret_key"`
	Bucket    string     `mapstructure:"bucket" yaml:"bucket"`
	Prefix    string     `mapstructure:"prefix" yaml:"prefix,omitempty"`
	TLS       *TLSConfig `mapstructure:"tls" yaml:"tls,omitempty"`
}

type TLSConfig struct {
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
