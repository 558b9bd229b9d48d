package config

import (
	"math"
	"os"
	"strconv"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/constants"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/trackmap"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// ChordWindow is the chord analysis window width in seconds.
	ChordWindow float64 `yaml:"chord_window"`
	// QuantizeGrid is the alignment grid in seconds.
	QuantizeGrid float64 `yaml:"quantize_grid"`

	RhythmTopK          int             `yaml:"rhythm_top_k"`
	MergeRepeatedChords bool            `yaml:"merge_repeated_chords"`
	LogLevel            string          `yaml:"log_level"`
	MappingRules        []trackmap.Rule `yaml:"mapping_rules"`
}

func Default() Config {
	return Config{
		ChordWindow:         constants.DefaultChordWindow,
		QuantizeGrid:        constants.DefaultQuantizeGrid,
		RhythmTopK:          constants.DefaultRhythmTopK,
		MergeRepeatedChords: true,
		LogLevel:            "info",
		MappingRules:        append([]trackmap.Rule{}, trackmap.DefaultRules...),
	}
}

// Load starts from the defaults, applies the YAML file at path when path is
// not empty, then the environment. Fields missing from the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "Could not read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "Could not parse config %s", path)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) ApplyEnv() error {
	if v := os.Getenv(constants.EnvChordWindow); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q", constants.EnvChordWindow, v)
		}
		c.ChordWindow = f
	}
	if v := os.Getenv(constants.EnvQuantizeGrid); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q", constants.EnvQuantizeGrid, v)
		}
		c.QuantizeGrid = f
	}
	if v := os.Getenv(constants.EnvRhythmTopK); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s=%q", constants.EnvRhythmTopK, v)
		}
		c.RhythmTopK = n
	}
	if v := os.Getenv(constants.EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// finiteAtLeast is false for NaN and infinities.
func finiteAtLeast(v, lo float64) bool {
	return v >= lo && !math.IsInf(v, 0)
}

func (c Config) Validate() error {
	switch {
	case !finiteAtLeast(c.ChordWindow, constants.MinChordWindow):
		return errors.Wrapf(ErrInvalidConfig, "chord window must be a finite number of seconds >= %v, got %v", constants.MinChordWindow, c.ChordWindow)
	case !finiteAtLeast(c.QuantizeGrid, constants.MinQuantizeGrid):
		return errors.Wrapf(ErrInvalidConfig, "quantize grid must be a finite number of seconds >= %v, got %v", constants.MinQuantizeGrid, c.QuantizeGrid)
	case c.RhythmTopK < 1:
		return errors.Wrapf(ErrInvalidConfig, "rhythm top k must be at least 1, got %d", c.RhythmTopK)
	}
	if _, err := trackmap.New(c.MappingRules); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}
