package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"edbackup/internal/hostenv"
)

func Load(env hostenv.Env) (*viper.Viper, error) {
	path := ResolveConfigPath(env)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("incremental", true)
	v.SetDefault("zip_mode", false)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run `edbackup init`)", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return v, nil
}

// ApplyDefaults fills in anything a hand-edited config file left out.
// A sources list that isn't exactly MaxSources entries long is replaced
// wholesale with the detected game folders, as the original tool did.
func ApplyDefaults(cfg *Config, env hostenv.Env) {
	if len(cfg.Sources) != MaxSources {
		cfg.Sources = env.DefaultSources()
	}
}

// Default returns the config written by `edbackup init`.
func Default(env hostenv.Env) *Config {
	return &Config{
		Sources:     env.DefaultSources(),
		ZipMode:     false,
		Incremental: true,
	}
}
