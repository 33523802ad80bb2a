// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for oscamp.
type Config struct {
	ExercisesFile string        `mapstructure:"exercises_file"`
	WatchDir      string        `mapstructure:"watch_dir"`
	TestCommand   []string      `mapstructure:"test_command"`
	QuietCommand  []string      `mapstructure:"quiet_command"`
	CrossTarget   string        `mapstructure:"cross_target"`
	CrossPackages []string      `mapstructure:"cross_packages"`
	Debounce      time.Duration `mapstructure:"debounce"`
	PollTimeout   time.Duration `mapstructure:"poll_timeout"`
	AdvanceDelay  time.Duration `mapstructure:"advance_delay"`
	OutputLines   int           `mapstructure:"output_lines"`
	BarWidth      int           `mapstructure:"bar_width"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		ExercisesFile: "",
		WatchDir:      "exercises",
		TestCommand:   []string{"cargo", "test", "-p", "{{package}}", "--", "--color=always"},
		QuietCommand:  []string{"cargo", "test", "-p", "{{package}}", "--quiet"},
		CrossTarget:   "riscv64gc-unknown-linux-gnu",
		CrossPackages: []string{"stack_coroutine", "green_threads"},
		Debounce:      300 * time.Millisecond,
		PollTimeout:   200 * time.Millisecond,
		AdvanceDelay:  800 * time.Millisecond,
		OutputLines:   30,
		BarWidth:      20,
		LogLevel:      "info",
		LogFile:       "",
	}
}

var keys = []string{
	"exercises_file",
	"watch_dir",
	"test_command",
	"quiet_command",
	"cross_target",
	"cross_packages",
	"debounce",
	"poll_timeout",
	"advance_delay",
	"output_lines",
	"bar_width",
	"log_level",
	"log_file",
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("oscamp")

	d := Defaults()
	v.SetDefault("exercises_file", d.ExercisesFile)
	v.SetDefault("watch_dir", d.WatchDir)
	v.SetDefault("test_command", d.TestCommand)
	v.SetDefault("quiet_command", d.QuietCommand)
	v.SetDefault("cross_target", d.CrossTarget)
	v.SetDefault("cross_packages", d.CrossPackages)
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("poll_timeout", d.PollTimeout)
	v.SetDefault("advance_delay", d.AdvanceDelay)
	v.SetDefault("output_lines", d.OutputLines)
	v.SetDefault("bar_width", d.BarWidth)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)

	v.SetEnvPrefix("OSCAMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key, "OSCAMP_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if globalPath := GlobalPath(); FileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if projectPath := ProjectPath(); FileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the dashboard cannot run with.
func (c *Config) Validate() error {
	if len(c.TestCommand) == 0 {
		return fmt.Errorf("test_command must not be empty")
	}
	if len(c.QuietCommand) == 0 {
		return fmt.Errorf("quiet_command must not be empty")
	}
	if c.WatchDir == "" {
		return fmt.Errorf("watch_dir must not be empty")
	}
	if c.Debounce < 0 || c.PollTimeout <= 0 || c.AdvanceDelay < 0 {
		return fmt.Errorf("debounce, poll_timeout and advance_delay must be positive durations")
	}
	if c.OutputLines <= 0 {
		return fmt.Errorf("output_lines must be > 0, got %d", c.OutputLines)
	}
	if c.BarWidth <= 0 {
		return fmt.Errorf("bar_width must be > 0, got %d", c.BarWidth)
	}
	return nil
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/oscamp/oscamp.yml or $XDG_CONFIG_HOME/oscamp/oscamp.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "oscamp", "oscamp.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "oscamp", "oscamp.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "oscamp.yml"
}

// fileConfig is the on-disk shape: durations are written as "300ms" rather
// than yaml.v3's integer nanoseconds.
type fileConfig struct {
	ExercisesFile string   `yaml:"exercises_file,omitempty"`
	WatchDir      string   `yaml:"watch_dir"`
	TestCommand   []string `yaml:"test_command,flow"`
	QuietCommand  []string `yaml:"quiet_command,flow"`
	CrossTarget   string   `yaml:"cross_target"`
	CrossPackages []string `yaml:"cross_packages,flow"`
	Debounce      string   `yaml:"debounce"`
	PollTimeout   string   `yaml:"poll_timeout"`
	AdvanceDelay  string   `yaml:"advance_delay"`
	OutputLines   int      `yaml:"output_lines"`
	BarWidth      int      `yaml:"bar_width"`
	LogLevel      string   `yaml:"log_level"`
	LogFile       string   `yaml:"log_file"`
}

// Marshal encodes cfg as YAML in the layout Load reads back.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		ExercisesFile: cfg.ExercisesFile,
		WatchDir:      cfg.WatchDir,
		TestCommand:   cfg.TestCommand,
		QuietCommand:  cfg.QuietCommand,
		CrossTarget:   cfg.CrossTarget,
		CrossPackages: cfg.CrossPackages,
		Debounce:      cfg.Debounce.String(),
		PollTimeout:   cfg.PollTimeout.String(),
		AdvanceDelay:  cfg.AdvanceDelay.String(),
		OutputLines:   cfg.OutputLines,
		BarWidth:      cfg.BarWidth,
		LogLevel:      cfg.LogLevel,
		LogFile:       cfg.LogFile,
	}
	data, err := yaml.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FileExists reports whether a config file is present at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
