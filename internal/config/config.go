// Package config loads and validates the tdsr INI configuration file,
// and merges the [symbols] overrides onto the built-in symbol table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/tdsr-go/tdsr/internal/symbols"
)

// Config is the fully loaded, validated configuration.
type Config struct {
	Rate                  int
	Volume                int
	VoiceIdx              int
	CursorDelayMS         int
	ProcessSymbols        bool
	KeyEcho               bool
	CursorTracking        bool
	LinePause             bool
	RepeatedSymbols       bool
	RepeatedSymbolsValues string
	Prompt                string
	PromptRe              *regexp.Regexp

	Symbols map[rune]string

	// Plugins maps a single alphabetic trigger key to a plugin name.
	Plugins map[byte]string
	// Commands maps a plugin name to the regex that last_command must
	// match before the plugin is allowed to run.
	Commands map[string]*regexp.Regexp
}

// Default returns the configuration's built-in defaults, with no config
// file applied.
func Default() *Config {
	return &Config{
		Rate:                  50,
		Volume:                80,
		VoiceIdx:              0,
		CursorDelayMS:         300,
		ProcessSymbols:        true,
		KeyEcho:               true,
		CursorTracking:        true,
		LinePause:             true,
		RepeatedSymbols:       true,
		RepeatedSymbolsValues: "=-*._#~+!/",
		Symbols:               symbols.Default(),
		Plugins:               map[byte]string{},
		Commands:               map[string]*regexp.Regexp{},
	}
}

// Path returns $HOME/.tdsr.cfg.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tdsr.cfg")
	}
	return filepath.Join(home, ".tdsr.cfg")
}

// Load reads the config file at Path(). A missing file is not an error:
// it returns Default().
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and validates the config file at path. A missing file
// returns Default() with no error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	file, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config: %w", err)
	}

	if sec, err := file.GetSection("speech"); err == nil {
		applySpeech(cfg, sec)
	}
	if sec, err := file.GetSection("symbols"); err == nil {
		applySymbols(cfg, sec)
	}
	if sec, err := file.GetSection("plugins"); err == nil {
		applyPlugins(cfg, sec)
	}
	if sec, err := file.GetSection("commands"); err == nil {
		if err := applyCommands(cfg, sec); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applySpeech(cfg *Config, sec *ini.Section) {
	if k, err := sec.GetKey("rate"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.Rate = v
		}
	}
	if k, err := sec.GetKey("volume"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.Volume = v
		}
	}
	if k, err := sec.GetKey("voice_idx"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.VoiceIdx = v
		}
	}
	if k, err := sec.GetKey("cursor_delay"); err == nil {
		if v, err := k.Int(); err == nil {
			cfg.CursorDelayMS = v
		}
	}
	if k, err := sec.GetKey("process_symbols"); err == nil {
		if v, err := k.Bool(); err == nil {
			cfg.ProcessSymbols = v
		}
	}
	if k, err := sec.GetKey("key_echo"); err == nil {
		if v, err := k.Bool(); err == nil {
			cfg.KeyEcho = v
		}
	}
	if k, err := sec.GetKey("cursor_tracking"); err == nil {
		if v, err := k.Bool(); err == nil {
			cfg.CursorTracking = v
		}
	}
	if k, err := sec.GetKey("line_pause"); err == nil {
		if v, err := k.Bool(); err == nil {
			cfg.LinePause = v
		}
	}
	if k, err := sec.GetKey("repeated_symbols"); err == nil {
		if v, err := k.Bool(); err == nil {
			cfg.RepeatedSymbols = v
		}
	}
	if k, err := sec.GetKey("repeated_symbols_values"); err == nil {
		cfg.RepeatedSymbolsValues = k.String()
	}
	if k, err := sec.GetKey("prompt"); err == nil {
		cfg.Prompt = k.String()
	}
}

// applySymbols merges [symbols] overrides (decimal codepoint = word) onto
// the default table already seeded in cfg.Symbols.
func applySymbols(cfg *Config, sec *ini.Section) {
	for _, key := range sec.Keys() {
		code, err := strconv.Atoi(key.Name())
		if err != nil {
			continue
		}
		cfg.Symbols[rune(code)] = key.String()
	}
}

func applyPlugins(cfg *Config, sec *ini.Section) {
	for _, key := range sec.Keys() {
		val := key.String()
		if len(val) != 1 {
			continue
		}
		cfg.Plugins[val[0]] = key.Name()
	}
}

func applyCommands(cfg *Config, sec *ini.Section) error {
	for _, key := range sec.Keys() {
		re, err := regexp.Compile(key.String())
		if err != nil {
			return fmt.Errorf("commands: plugin %s: invalid regex: %w", key.Name(), err)
		}
		cfg.Commands[key.Name()] = re
	}
	return nil
}

func (c *Config) validate() error {
	if err := rangeCheck("rate", c.Rate, 0, 100); err != nil {
		return err
	}
	if err := rangeCheck("volume", c.Volume, 0, 100); err != nil {
		return err
	}
	if c.VoiceIdx < 0 {
		return fmt.Errorf("voice_idx: must be >= 0, got %d", c.VoiceIdx)
	}
	if c.CursorDelayMS < 0 {
		return fmt.Errorf("cursor_delay: must be >= 0, got %d", c.CursorDelayMS)
	}
	if c.Prompt != "" {
		re, err := regexp.Compile(c.Prompt)
		if err != nil {
			return fmt.Errorf("prompt: invalid regex: %w", err)
		}
		c.PromptRe = re
	}
	return nil
}

func rangeCheck(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s: must be in %d..=%d, got %d", name, lo, hi, v)
	}
	return nil
}
