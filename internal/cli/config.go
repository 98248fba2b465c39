package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/addrsplit/addrsplit/internal/i18n"
	"github.com/addrsplit/addrsplit/internal/util"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const envPrefix = "ADDRSPLIT_"

// Config is the process configuration shared by every command.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Debug    bool   `yaml:"debug"`
	Language string `yaml:"language"`
	LogFile  string `yaml:"logFile"`
	LogLevel int    `yaml:"logLevel"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Host: "0.0.0.0",
		Port: 3067,
	}
}

// getEnvFile returns the path of the optional .env file next to the config.
func getEnvFile() (string, error) {
	configDir, err := util.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ".env"), nil
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, i18n.T("config_error_read_file"), path)
	}
	return nil
}

// applyEnv overrides cfg with ADDRSPLIT_* variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(envPrefix + "HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(envPrefix + "PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv(envPrefix + "DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}
	if v := os.Getenv(envPrefix + "LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			cfg.LogLevel = level
		}
	}
}

// loadConfigFile overlays the YAML file at path onto cfg. Keys absent from
// the file keep their current values. An empty path means the default
// location, which may not exist.
func loadConfigFile(path string, cfg *Config) error {
	if path == "" {
		var err error
		if path, err = util.GetDefaultConfigPath(); err != nil {
			return err
		}
		if path == "" {
			return nil
		}
	} else {
		var err error
		if path, err = util.ResolveConfigPath(path); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, i18n.T("config_error_read_file"), path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, i18n.T("config_error_parse_file"), path)
	}
	return nil
}

// validate rejects values the server cannot start with.
func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf(i18n.T("config_error_invalid_port"), c.Port)
	}
	return nil
}
