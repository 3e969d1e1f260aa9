package config

import (
	"os"
	"path/filepath"

	"edbackup/internal/hostenv"
)

const DefaultConfigName = "config.yaml"

const EnvConfigPath = "EDBACKUP_CONFIG"

func DefaultConfigPath(env hostenv.Env) string {
	return filepath.Join(env.ConfigDir(), DefaultConfigName)
}

func ResolveConfigPath(env hostenv.Env) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath(env)
}
