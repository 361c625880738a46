package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/keeper/internal/paths"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// A missing config directory or config.yaml is not an error; `keeper init`
// creates them.
func (a *app) loadConfig() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %s", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return sysError("read config: %s", err)
		}
		a.logger.Debug("no config file", "config_dir", configDir)
	} else {
		a.logger.Debug("loaded config", "file", v.ConfigFileUsed())
	}

	a.config = v
	return nil
}

// configDir returns the resolved configuration directory.
func (a *app) configDir() (string, error) {
	return paths.ResolveConfigDir(a.flags.configDir)
}

// backendConfig resolves the backend name and data directory from flags,
// config.yaml and the environment.
func (a *app) backendConfig() (types.Config, error) {
	var cfgBackend, cfgDataDir string
	if a.config != nil {
		cfgBackend = a.config.GetString(cfgKeyBackend)
		cfgDataDir = a.config.GetString(cfgKeyDataDir)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfgDataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	return types.Config{
		Backend: paths.ResolveBackend(a.flags.backend, cfgBackend),
		DataDir: dataDir,
	}, nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. If it already exists, the function returns false and nil.
func writeConfigIfMissing(configDir string, cfg types.Config) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		Backend: cfg.Backend,
		DataDir: cfg.DataDir,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# keeper configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
