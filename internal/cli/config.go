package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/fieldmod/internal/paths"
	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix namespaces environment overrides, e.g. FIELDMOD_DB.
	envPrefix = "FIELDMOD"

	// Config keys, shared with flag names.
	flagDB      = "db"
	flagDriver  = "driver"
	flagVerbose = "verbose"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DB     string `yaml:"db"`
	Driver string `yaml:"driver"`
}

// loadConfig resolves the invocation settings with precedence
// flag > FIELDMOD_* env > config.yaml > default. A missing config directory
// or config.yaml is not an error.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (types.Config, string, error) {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(flagDB, types.DefaultDBPath)
	v.SetDefault(flagDriver, types.DriverModernc)
	v.SetDefault(flagVerbose, false)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	for _, name := range []string{flagDB, flagDriver, flagVerbose} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return types.Config{}, "", fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, "", fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		DBPath:  v.GetString(flagDB),
		Driver:  v.GetString(flagDriver),
		Verbose: v.GetBool(flagVerbose),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, configDir, nil
}

// writeConfigIfMissing creates config.yaml with the given values if the file
// does not exist. It reports whether the file was written.
func writeConfigIfMissing(configDir string, cfg types.Config) (string, bool, error) {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return path, false, nil
	}
	if !os.IsNotExist(err) {
		return path, false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return path, false, fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(&configFile{DB: cfg.DBPath, Driver: cfg.Driver})
	if err != nil {
		return path, false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, false, err
	}
	return path, true, nil
}
