package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/viper"
	"lumenflow/pkg/models"
)

// DefaultPath is where the CLI looks for the pipeline config when -c is not given.
const DefaultPath = "pipeline_config.json"

// EnvPrefix prefixes environment overrides, e.g. LUMENFLOW_QUALITY_TIER=fast.
const EnvPrefix = "LUMENFLOW"

// ErrMalformedConfig is returned when a config file exists but cannot be decoded.
var ErrMalformedConfig = errors.New("malformed config")

// Config holds all the settings shared by both pipeline stages.
type Config struct {
	BackgroundColor string  `mapstructure:"background_color" json:"background_color"`
	Tolerance       float64 `mapstructure:"tolerance" json:"tolerance"`
	KeyedFolder     string  `mapstructure:"keyed_folder" json:"keyed_folder"`
	OutputFolder    string  `mapstructure:"output_folder" json:"output_folder"`
	VideoCodec      string  `mapstructure:"video_codec" json:"video_codec"`
	PixelFormat     string  `mapstructure:"pixel_format" json:"pixel_format"`
	QualityTier     string  `mapstructure:"quality_tier" json:"quality_tier"`
	ThreadCount     int     `mapstructure:"thread_count" json:"thread_count"`
	ContainerExt    string  `mapstructure:"container_ext" json:"container_ext"`
	EnginePath      string  `mapstructure:"engine_path" json:"engine_path"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" json:"timeout_seconds"`
	LogLevel        string  `mapstructure:"log_level" json:"log_level"`
	LogFormat       string  `mapstructure:"log_format" json:"log_format"`
	NotifyURL       string  `mapstructure:"notify_url" json:"notify_url,omitempty"`

	// Source is the file the values came from; empty when only defaults applied.
	Source string `mapstructure:"-" json:"-"`
	// Warnings collects recoverable problems found while loading.
	Warnings []string `mapstructure:"-" json:"-"`
}

// legacyKeys maps the key names used by the first generation of pipeline
// config files onto the current names.
var legacyKeys = map[string]string{
	"background_hex":   "background_color",
	"chroma_tolerance": "tolerance",
	"pix_fmt":          "pixel_format",
	"quality":          "quality_tier",
	"ffmpeg_threads":   "thread_count",
}

// numCPU is swapped in tests.
var numCPU = func() (int, error) { return cpu.Counts(true) }

// LoadConfig reads the JSON config at path and merges it over the defaults.
// A missing or unreadable file is not an error: the defaults are returned with
// a warning. A file that exists but does not decode is ErrMalformedConfig.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// 1. Set Defaults
	def := Default()
	for key, value := range defaultsMap(def) {
		v.SetDefault(key, value)
	}

	// 2. Read from File
	var warnings []string
	source := ""
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
			}
			warnings = append(warnings, fmt.Sprintf("%s not readable (%v), using defaults", path, pathErr.Err))
		} else {
			source = path
		}
	}

	for legacy, key := range legacyKeys {
		if !v.InConfig(key) && v.InConfig(legacy) {
			v.RegisterAlias(legacy, key)
		}
	}

	// 3. Environment overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	cfg.Source = source
	cfg.Warnings = warnings

	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = autoThreads()
	}
	return &cfg, nil
}

func autoThreads() int {
	n, err := numCPU()
	if err != nil || n <= 0 {
		return defaultThreadCount
	}
	return n
}

func defaultsMap(cfg Config) map[string]any {
	return map[string]any{
		"background_color": cfg.BackgroundColor,
		"tolerance":        cfg.Tolerance,
		"keyed_folder":     cfg.KeyedFolder,
		"output_folder":    cfg.OutputFolder,
		"video_codec":      cfg.VideoCodec,
		"pixel_format":     cfg.PixelFormat,
		"quality_tier":     cfg.QualityTier,
		"thread_count":     cfg.ThreadCount,
		"container_ext":    cfg.ContainerExt,
		"engine_path":      cfg.EnginePath,
		"timeout_seconds":  cfg.TimeoutSeconds,
		"log_level":        cfg.LogLevel,
		"log_format":       cfg.LogFormat,
		"notify_url":       cfg.NotifyURL,
	}
}

// Settings returns the values the command builders consume.
func (c *Config) Settings() models.EncodeSettings {
	return models.EncodeSettings{
		BackgroundColor: c.BackgroundColor,
		Tolerance:       c.Tolerance,
		VideoCodec:      c.VideoCodec,
		PixelFormat:     c.PixelFormat,
		QualityTier:     c.QualityTier,
		ThreadCount:     c.ThreadCount,
	}
}

// Timeout is the bound on a single engine run; zero means wait indefinitely.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
