package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/coevolution/pkg/utils"
)

const CONFIG_FILE = ".coevo"

const (
	ENV_LOG_LEVEL = "COEVO_LOG_LEVEL"
	ENV_OUTPUT    = "COEVO_OUTPUT"
)

type Config struct {
	LogLevel        *string `json:"logLevel,omitempty"`
	Output          *string `json:"output,omitempty"`
	MaxCascadeDepth *int    `json:"maxCascadeDepth,omitempty"`
	Seed            *int64  `json:"seed,omitempty"`
}

// GetConfig merges the config files found in the home directory,
// the user config directory and the current directory, followed by
// an explicitly given file and the environment.
func GetConfig(fs vfs.FileSystem, explicit string) (*Config, error) {
	var cfg Config

	var paths []string
	if dir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(dir, CONFIG_FILE))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, CONFIG_FILE))
	}
	paths = append(paths, CONFIG_FILE)

	for _, p := range paths {
		add, err := ReadConfig(fs, p)
		if err != nil {
			if errors.Is(err, vfs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		MergeConfig(&cfg, add)
	}
	if explicit != "" {
		add, err := ReadConfig(fs, explicit)
		if err != nil {
			return nil, err
		}
		MergeConfig(&cfg, add)
	}

	if v := os.Getenv(ENV_LOG_LEVEL); v != "" {
		cfg.LogLevel = utils.Pointer(v)
	}
	if v := os.Getenv(ENV_OUTPUT); v != "" {
		cfg.Output = utils.Pointer(v)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel == "" {
		cfg.LogLevel = utils.Pointer("warn")
	}
	if cfg.Output == nil || *cfg.Output == "" {
		cfg.Output = utils.Pointer(OUTPUT_TEXT)
	}
	return &cfg, nil
}

// ReadConfig reads a single config file. Environment variables
// used in the file are substituted before parsing.
func ReadConfig(fs vfs.FileSystem, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	s, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var cfg Config
	err = yaml.Unmarshal([]byte(s), &cfg)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return &cfg, nil
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.LogLevel != nil {
		cfg.LogLevel = add.LogLevel
	}
	if add.Output != nil {
		cfg.Output = add.Output
	}
	if add.MaxCascadeDepth != nil {
		cfg.MaxCascadeDepth = add.MaxCascadeDepth
	}
	if add.Seed != nil {
		cfg.Seed = add.Seed
	}
}

type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return "invalid config file " + e.Path + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
