package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`

	// ParallelCapture captures monitors concurrently for desktop composites.
	ParallelCapture   bool `mapstructure:"parallel_capture"`
	MaxCaptureWorkers int  `mapstructure:"max_capture_workers"`

	// Output selects metadata rendering: json, yaml or table.
	Output      string `mapstructure:"output"`
	ImageFormat string `mapstructure:"image_format"`
	JPEGQuality int    `mapstructure:"jpeg_quality"`
}

func Default() *Config {
	return &Config{
		LogLevel:          "warn",
		LogFormat:         "text",
		LogMaxSizeMB:      10,
		LogMaxBackups:     3,
		ParallelCapture:   false,
		MaxCaptureWorkers: 4,
		Output:            "json",
		ImageFormat:       "png",
		JPEGQuality:       85,
	}
}

// Load reads cfgFile (or screencap.yaml from the config dir or the working
// directory) over the defaults. A missing default file is not an error.
// SCREENCAP_* environment variables override file values.
func Load(cfgFile string) (*Config, error) {
	cfg := Default()
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("screencap")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SCREENCAP")
	v.AutomaticEnv()

	// AutomaticEnv only consults keys viper already knows about.
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_max_size_mb", cfg.LogMaxSizeMB)
	v.SetDefault("log_max_backups", cfg.LogMaxBackups)
	v.SetDefault("parallel_capture", cfg.ParallelCapture)
	v.SetDefault("max_capture_workers", cfg.MaxCaptureWorkers)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("image_format", cfg.ImageFormat)
	v.SetDefault("jpeg_quality", cfg.JPEGQuality)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Dir is where Load looks for screencap.yaml when no file is given.
func Dir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "Breeze")
	case "darwin":
		return "/Library/Application Support/Breeze"
	default:
		return "/etc/breeze"
	}
}
