package hostenv

import (
	"os"
	"path/filepath"
)

// FallbackMachineName is used when no host identity can be determined.
const FallbackMachineName = "UNKNOWNPC"

const appDirName = "EliteBackup"

// Env is a snapshot of the host environment. It is passed explicitly to
// anything that needs machine identity or well-known user directories, so
// tests can substitute their own values instead of reading the process
// environment.
type Env struct {
	MachineName  string
	Home         string
	UserProfile  string
	LocalAppData string
}

// Detect reads the current process environment. Missing values fall back
// along the same chain the original tool used: COMPUTERNAME -> hostname ->
// fixed placeholder, and LOCALAPPDATA -> <profile>/AppData/Local.
func Detect() Env {
	home, _ := os.UserHomeDir()
	e := Env{
		MachineName:  os.Getenv("COMPUTERNAME"),
		Home:         home,
		UserProfile:  os.Getenv("USERPROFILE"),
		LocalAppData: os.Getenv("LOCALAPPDATA"),
	}
	if e.MachineName == "" {
		if host, err := os.Hostname(); err == nil {
			e.MachineName = host
		}
	}
	if e.MachineName == "" {
		e.MachineName = FallbackMachineName
	}
	if e.UserProfile == "" {
		e.UserProfile = e.Home
	}
	if e.LocalAppData == "" {
		e.LocalAppData = filepath.Join(e.UserProfile, "AppData", "Local")
	}
	return e
}

// ConfigDir is where the config file and help text live.
func (e Env) ConfigDir() string {
	return filepath.Join(e.LocalAppData, appDirName)
}

// DefaultSources returns the three save/config folders the game writes to.
func (e Env) DefaultSources() []string {
	savedGames := filepath.Join(e.UserProfile, "Saved Games")
	return []string{
		filepath.Join(savedGames, "Frontier Developments", "Elite Dangerous"),
		filepath.Join(e.LocalAppData, "Frontier Developments"),
		filepath.Join(e.LocalAppData, "Frontier_Developments"),
	}
}
