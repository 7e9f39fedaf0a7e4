package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Loader struct {
		Backend    string `yaml:"backend"`
		ObabelPath string `yaml:"obabel_path"`
		ScratchDir string `yaml:"scratch_dir"`
	} `yaml:"loader"`

	Server struct {
		Addr          string  `yaml:"addr"`
		RateLimit     float64 `yaml:"rate_limit"`
		Burst         int     `yaml:"burst"`
		MaxUploadSize int64   `yaml:"max_upload_size"`
	} `yaml:"server"`

	UI struct {
		Precision  *int `yaml:"precision"` // nil when unset, so 0 stays 0
		ShowTables bool `yaml:"show_tables"`
		NoColor    bool `yaml:"no_color"`
	} `yaml:"ui"`
}

// DefaultPrecision is the number of decimals printed for an RMSD.
const DefaultPrecision = 4

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"molrmsd.yaml",
			"molrmsd.yml",
			filepath.Join(os.Getenv("HOME"), ".config/molrmsd/config.yaml"),
			"/etc/molrmsd/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Loader.Backend == "" {
		config.Loader.Backend = "native"
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.RateLimit == 0 {
		config.Server.RateLimit = 10
	}
	if config.Server.Burst == 0 {
		config.Server.Burst = 20
	}
	if config.Server.MaxUploadSize == 0 {
		config.Server.MaxUploadSize = 32 << 20
	}

	if config.UI.Precision == nil {
		precision := DefaultPrecision
		config.UI.Precision = &precision
	}
}

// Decimals returns the configured RMSD precision.
func (c *Config) Decimals() int {
	if c.UI.Precision == nil {
		return DefaultPrecision
	}
	return *c.UI.Precision
}

func mergeWithEnv(config *Config) {
	if backend := os.Getenv("MOLRMSD_BACKEND"); backend != "" {
		config.Loader.Backend = backend
	}
	if obabel := os.Getenv("OBABEL_PATH"); obabel != "" {
		config.Loader.ObabelPath = obabel
	}
	if dir := os.Getenv("MOLRMSD_SCRATCH_DIR"); dir != "" {
		config.Loader.ScratchDir = dir
	}
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Addr = ":" + port
	}
}
