// Package config loads machine settings from a TOML file.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/rvi/cpu"
)

// Config is the contents of an rvi.toml file.
type Config struct {
	Buckets uint `toml:"buckets"`

	// Language selects the message locale, ie "de". Package error
	// sentinels are formatted once at startup in the detected locale, so
	// only messages built afterwards follow this setting.
	Language string `toml:"language"`

	Verbose  bool           `toml:"verbose"`
	Register map[string]any `toml:"registers"` // Keyed by register name, ie "x1" or "x01".
	Memory   MemoryConfig   `toml:"memory"`

	// Dir is the directory relative paths resolve against.
	Dir string `toml:"-"`
}

// MemoryConfig describes the initial memory contents.
type MemoryConfig struct {
	Image string `toml:"image"` // Path of a memory image, see memory.Store.Unmarshal.
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Buckets:  cpu.MEMORY_BUCKETS,
		Register: map[string]any{},
	}
}

// Load parses a TOML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	if cfg.Buckets == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrBuckets)
	}
	if cfg.Register == nil {
		cfg.Register = map[string]any{}
	}

	// Catch bad register entries at load time.
	if _, err := cfg.Registers(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// registerValue converts a decoded TOML value to a register value.
func registerValue(value any) (reg int32, err error) {
	switch v := value.(type) {
	case int64:
		if v < math.MinInt32 || v > math.MaxUint32 {
			err = ErrRegisterValue
			return
		}
		reg = int32(v)
	case string:
		text := strings.TrimSpace(v)
		if len(text) == 0 {
			err = ErrRegisterValue
			return
		}
		reg = cpu.ParseImmediate(text)
	default:
		err = ErrRegisterValue
	}
	return
}

// Registers returns the initial register file.
// Two names for the same register, ie "x1" and "x01", are an error.
func (cfg *Config) Registers() (regs [cpu.REGISTER_COUNT]int32, err error) {
	var seen [cpu.REGISTER_COUNT]bool
	for name, value := range cfg.Register {
		var index int
		index, err = cpu.ParseRegister(name)
		if err != nil {
			err = &ErrRegister{Name: name, Err: ErrRegisterKey}
			return
		}
		if seen[index] {
			err = &ErrRegister{Name: registerName(index), Err: ErrRegisterDuplicate}
			return
		}
		seen[index] = true

		var reg int32
		reg, err = registerValue(value)
		if err != nil {
			err = &ErrRegister{Name: name, Err: err}
			return
		}
		regs[index] = reg
	}
	return
}

// registerName is the canonical name of register x<index>.
func registerName(index int) string {
	return fmt.Sprintf("x%d", index)
}

// SetRegister applies a NAME=VALUE override, as given on the command line.
// The override replaces every other spelling of the same register.
func (cfg *Config) SetRegister(assign string) (err error) {
	name, value, ok := strings.Cut(assign, "=")
	name = strings.TrimSpace(name)
	if !ok {
		err = &ErrRegister{Name: name, Err: ErrRegisterValue}
		return
	}

	index, err := cpu.ParseRegister(name)
	if err != nil {
		err = &ErrRegister{Name: name, Err: ErrRegisterKey}
		return
	}

	if _, err = registerValue(value); err != nil {
		err = &ErrRegister{Name: name, Err: err}
		return
	}

	if cfg.Register == nil {
		cfg.Register = map[string]any{}
	}
	for alias := range cfg.Register {
		other, perr := cpu.ParseRegister(alias)
		if perr == nil && other == index {
			delete(cfg.Register, alias)
		}
	}
	cfg.Register[registerName(index)] = value

	return
}

// ImagePath returns the memory image path resolved against Dir, or "" if
// no image is configured.
func (cfg *Config) ImagePath() string {
	path := cfg.Memory.Image
	if len(path) == 0 || filepath.IsAbs(path) || len(cfg.Dir) == 0 {
		return path
	}
	return filepath.Join(cfg.Dir, path)
}
