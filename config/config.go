package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/b0tShaman/leaf-eda/data"
)

// EnvPrefix is prepended to every key read from the environment, e.g. LEAFEDA_SAMPLE_SIZE.
const EnvPrefix = "LEAFEDA"

// Config holds every option of a pipeline run.
type Config struct {
	DatasetRoot     string   `mapstructure:"dataset_root"`
	OutputRoot      string   `mapstructure:"output_root"`
	TargetWidth     int      `mapstructure:"target_width"`
	TargetHeight    int      `mapstructure:"target_height"`
	SampleSize      int      `mapstructure:"sample_size"`  // max images per category for colour signatures
	InspectSize     int      `mapstructure:"inspect_size"` // sample files per category to inspect
	ImageExtensions []string `mapstructure:"image_extensions"`
	RandomSeed      *int64   `mapstructure:"random_seed"` // nil = unseeded
	Workers         int      `mapstructure:"workers"`     // 0 = runtime.NumCPU()
	JPEGQuality     int      `mapstructure:"jpeg_quality"`
	LogLevel        string   `mapstructure:"log_level"`
	LogFormat       string   `mapstructure:"log_format"` // text or json
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset_root", "data")
	v.SetDefault("output_root", data.DefaultOutputRoot)
	v.SetDefault("target_width", data.DefaultTargetWidth)
	v.SetDefault("target_height", data.DefaultTargetHeight)
	v.SetDefault("sample_size", data.DefaultSampleSize)
	v.SetDefault("inspect_size", data.DefaultInspectSize)
	v.SetDefault("image_extensions", data.DefaultExtensions)
	v.SetDefault("workers", 0)
	v.SetDefault("jpeg_quality", data.DefaultJPEGQuality)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// New returns a viper instance with defaults and environment lookup wired up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional YAML file at path into v and decodes the merged result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// random_seed has no default, so Unmarshal never asks the environment for it
	if s := v.GetString("random_seed"); s != "" && cfg.RandomSeed == nil {
		seed := v.GetInt64("random_seed")
		cfg.RandomSeed = &seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects options no run could succeed with.
func (c *Config) Validate() error {
	var errs []error
	if c.DatasetRoot == "" {
		errs = append(errs, errors.New("dataset_root must be set"))
	}
	if c.OutputRoot == "" {
		errs = append(errs, errors.New("output_root must be set"))
	} else if c.DatasetRoot != "" && sameDir(c.DatasetRoot, c.OutputRoot) {
		errs = append(errs, fmt.Errorf("output_root %s resolves to dataset_root; resized files would replace the originals", c.OutputRoot))
	}
	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		errs = append(errs, fmt.Errorf("target size must be positive, got %dx%d", c.TargetWidth, c.TargetHeight))
	}
	if c.SampleSize <= 0 {
		errs = append(errs, fmt.Errorf("sample_size must be positive, got %d", c.SampleSize))
	}
	if c.InspectSize <= 0 {
		errs = append(errs, fmt.Errorf("inspect_size must be positive, got %d", c.InspectSize))
	}
	if len(data.NewExtFilter(c.ImageExtensions)) == 0 {
		errs = append(errs, errors.New("image_extensions must list at least one suffix"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be within 1..100, got %d", c.JPEGQuality))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// EffectiveWorkers resolves the 0 default.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Filter builds the extension filter from ImageExtensions.
func (c *Config) Filter() data.ExtFilter {
	return data.NewExtFilter(c.ImageExtensions)
}
