package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Column roles
	GroupColumn string `mapstructure:"group_column" yaml:"group_column"`
	ValueColumn string `mapstructure:"value_column" yaml:"value_column"`
	NameColumn  string `mapstructure:"name_column" yaml:"name_column"`
	AgeColumn   string `mapstructure:"age_column" yaml:"age_column"`
	CityColumn  string `mapstructure:"city_column" yaml:"city_column"`
	LatColumn   string `mapstructure:"lat_column" yaml:"lat_column"`
	LonColumn   string `mapstructure:"lon_column" yaml:"lon_column"`

	// Age intervals; empty labels mean "lo-hi"
	AgeEdges  []float64 `mapstructure:"age_edges" yaml:"age_edges"`
	AgeLabels []string  `mapstructure:"age_labels" yaml:"age_labels"`

	DefaultStat string `mapstructure:"default_stat" yaml:"default_stat"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Where reports and charts land when -o is a bare file name
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"group_column", "value_column", "name_column", "age_column", "city_column",
	"lat_column", "lon_column", "age_edges", "age_labels", "default_stat",
	"log_level", "log_format", "output_dir",
}

const dirName = ".rosterlens"

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.rosterlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
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
// Precedence: env > config file > defaults. A .env file in the working
// directory is read first and never overrides variables already set.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("ROSTERLENS")
	v.AutomaticEnv()

	v.SetDefault("group_column", "Department")
	v.SetDefault("value_column", "Salary")
	v.SetDefault("name_column", "Name")
	v.SetDefault("age_column", "Age")
	v.SetDefault("city_column", "City")
	v.SetDefault("lat_column", "lat")
	v.SetDefault("lon_column", "lon")
	v.SetDefault("age_edges", []float64{20, 30, 40, 50, 60})
	v.SetDefault("age_labels", []string{})
	v.SetDefault("default_stat", "mean")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("output_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		path, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
