package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/saravenpi/jamroom/internal/audio"
	"github.com/saravenpi/jamroom/internal/models"
	"github.com/saravenpi/jamroom/internal/session"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. JAMROOM_SELECTION_MODE.
const EnvPrefix = "jamroom"

var ErrConfigExists = errors.New("config file already exists")

var validate = validator.New()

type Config struct {
	SelectionMode string      `yaml:"selection_mode" split_words:"true" validate:"omitempty,oneof=single multi"`
	Roster        []string    `yaml:"roster" split_words:"true" validate:"dive,required,max=64"`
	TrackName     string      `yaml:"track_name" split_words:"true" validate:"max=100"`
	Audio         AudioConfig `yaml:"audio" split_words:"true"`
	Log           LogConfig   `yaml:"log" split_words:"true"`
}

type AudioConfig struct {
	Backend string   `yaml:"backend" split_words:"true" validate:"oneof=bell command log off"`
	Command []string `yaml:"command,omitempty" split_words:"true"`
	BPM     float64  `yaml:"bpm" split_words:"true" validate:"gt=0,lte=400"`
}

type LogConfig struct {
	Level string `yaml:"level" split_words:"true" validate:"oneof=debug info warn error off"`
	File  string `yaml:"file" split_words:"true"`
}

// Dir returns the jamroom home directory (~/.jamroom).
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".jamroom")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yml")
}

func Default() Config {
	roster := make([]string, len(session.DefaultRoster))
	for i, u := range session.DefaultRoster {
		roster[i] = string(u)
	}
	return Config{
		SelectionMode: models.SelectionMulti.String(),
		Roster:        roster,
		TrackName:     session.DefaultTrackName,
		Audio: AudioConfig{
			Backend: audio.BackendBell,
			BPM:     audio.DefaultBPM,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(Dir(), "jamroom.log"),
		},
	}
}

// Load layers the defaults, the YAML file at path (DefaultPath when empty),
// a .env file in the working directory and JAMROOM_* environment variables,
// then validates the result. A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.SelectionMode = strings.ToLower(strings.TrimSpace(c.SelectionMode))
	c.Audio.Backend = strings.ToLower(strings.TrimSpace(c.Audio.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	for i, name := range c.Roster {
		c.Roster[i] = strings.TrimSpace(name)
	}
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SessionOptions converts the config into the options a session starts from.
func (c Config) SessionOptions() (session.Options, error) {
	mode, err := models.ParseSelectionMode(c.SelectionMode)
	if err != nil {
		return session.Options{}, err
	}
	roster := make([]models.User, len(c.Roster))
	for i, name := range c.Roster {
		roster[i] = models.User(name)
	}
	return session.Options{Mode: mode, Roster: roster, TrackName: c.TrackName}, nil
}

func (c Config) AudioOptions() audio.Options {
	return audio.Options{Backend: c.Audio.Backend, Command: c.Audio.Command, BPM: c.Audio.BPM}
}

const defaultHeader = `# jamroom configuration
#
# selection_mode: multi lets several users share one chat panel, single keeps
# at most one selected. Every value can be overridden with JAMROOM_* variables,
# e.g. JAMROOM_SELECTION_MODE=single or JAMROOM_AUDIO_BACKEND=log.
`

// SaveDefault writes the default config to path (DefaultPath when empty). It
// refuses to overwrite an existing file.
func SaveDefault(path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := Default()
	cfg.Audio.Command = audio.DefaultCommand
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return path, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0644); err != nil {
		return path, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
