package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataFile  string `mapstructure:"data_file" yaml:"data_file"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Outlier band
	LowerQuantile float64 `mapstructure:"lower_quantile" yaml:"lower_quantile"`
	UpperQuantile float64 `mapstructure:"upper_quantile" yaml:"upper_quantile"`

	// Input parsing
	DateColumn  string `mapstructure:"date_column" yaml:"date_column"`
	ValueColumn string `mapstructure:"value_column" yaml:"value_column"`
	DateLayout  string `mapstructure:"date_layout" yaml:"date_layout"`
	SheetName   string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex  int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Chart sizes in pixels
	LineWidth  int `mapstructure:"line_width" yaml:"line_width"`
	LineHeight int `mapstructure:"line_height" yaml:"line_height"`
	BarWidth   int `mapstructure:"bar_width" yaml:"bar_width"`
	BarHeight  int `mapstructure:"bar_height" yaml:"bar_height"`
	BoxWidth   int `mapstructure:"box_width" yaml:"box_width"`
	BoxHeight  int `mapstructure:"box_height" yaml:"box_height"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	LogFile   string `mapstructure:"log_file" yaml:"log_file"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pageviews/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PAGEVIEWS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_file", "fcc-forum-pageviews.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("lower_quantile", 0.025)
	v.SetDefault("upper_quantile", 0.975)
	v.SetDefault("date_column", "date")
	v.SetDefault("value_column", "value")
	v.SetDefault("date_layout", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	// Chart defaults mirror 15x5, 12x6 and 20x8 inch figures at 100 dpi
	v.SetDefault("line_width", 1500)
	v.SetDefault("line_height", 500)
	v.SetDefault("bar_width", 1200)
	v.SetDefault("bar_height", 600)
	v.SetDefault("box_width", 2000)
	v.SetDefault("box_height", 800)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".pageviews"), nil
}
