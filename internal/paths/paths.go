// Package paths resolves configuration directory, data directory and backend
// selection for the keeper CLI. Every resolver follows the same precedence:
// explicit flag, then config.yaml value (where one exists), then environment,
// then a default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".keeper"
	DefaultDataDirName   = ".keeper-data"
)

// DefaultBackend is used when no flag, config value or env var selects one.
const DefaultBackend = "file"

// Environment variable names for overrides.
const (
	EnvConfigDir = "KEEPER_CONFIG_DIR"
	EnvDataDir   = "KEEPER_DATA_DIR"
	EnvBackend   = "KEEPER_BACKEND"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// PlatformConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/keeper (fallback ~/.config/keeper)
// Others:  os.UserConfigDir()/keeper
func PlatformConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "keeper"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "keeper"), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keeper"), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > KEEPER_CONFIG_DIR > $(CWD)/.keeper when it exists > PlatformConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return PlatformConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > config.yaml data_dir > KEEPER_DATA_DIR > $(CWD)/.keeper-data.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveBackend returns the backend name:
// flag > config.yaml backend > KEEPER_BACKEND > DefaultBackend.
// The name is not validated here; types.Config.Validate does that.
func ResolveBackend(flag, configValue string) string {
	if flag != "" {
		return flag
	}
	if configValue != "" {
		return configValue
	}
	if env := os.Getenv(EnvBackend); env != "" {
		return env
	}
	return DefaultBackend
}
