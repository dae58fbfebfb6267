package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "rvi.toml")
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal(uint(256), cfg.Buckets)
	assert.False(cfg.Verbose)
	assert.Equal("", cfg.ImagePath())

	regs, err := cfg.Registers()
	assert.NoError(err)
	assert.Equal([32]int32{}, regs)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
buckets = 16
language = "en-US"
verbose = true

[registers]
x1 = 5
x2 = "0x10"
x3 = "-0x10"
x4 = -7
x5 = 0xffffffff

[memory]
image = "mem.txt"
`)

	cfg, err := Load(path)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(uint(16), cfg.Buckets)
	assert.Equal("en-US", cfg.Language)
	assert.True(cfg.Verbose)
	assert.Equal(filepath.Join(filepath.Dir(path), "mem.txt"), cfg.ImagePath())

	regs, err := cfg.Registers()
	assert.NoError(err)
	assert.Equal(int32(5), regs[1])
	assert.Equal(int32(16), regs[2])
	assert.Equal(int32(-16), regs[3])
	assert.Equal(int32(-7), regs[4])
	assert.Equal(int32(-1), regs[5])
	assert.Equal(int32(0), regs[6])
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "buckets = ["))
	assert.Error(err)

	_, err = Load(writeConfig(t, "buckets = 0"))
	assert.ErrorIs(err, ErrBuckets)

	table := [](struct {
		text string
		name string
		err  error
	}){
		{"[registers]\nx32 = 1", "x32", ErrRegisterKey},
		{"[registers]\nsp = 1", "sp", ErrRegisterKey},
		{"[registers]\nx1 = 1.5", "x1", ErrRegisterValue},
		{"[registers]\nx1 = true", "x1", ErrRegisterValue},
		{"[registers]\nx1 = \"\"", "x1", ErrRegisterValue},
		{"[registers]\nx1 = 0x100000000", "x1", ErrRegisterValue},
	}

	for _, entry := range table {
		_, err := Load(writeConfig(t, entry.text))
		assert.ErrorIs(err, entry.err, entry.text)
		var reg *ErrRegister
		if assert.True(errors.As(err, &reg), entry.text) {
			assert.Equal(entry.name, reg.Name, entry.text)
		}
	}
}

func TestSetRegister(t *testing.T) {
	assert := assert.New(t)

	cfg := &Config{}
	assert.NoError(cfg.SetRegister("x1=5"))
	assert.NoError(cfg.SetRegister(" x2 =0x20"))
	assert.NoError(cfg.SetRegister("x1=-1"))

	regs, err := cfg.Registers()
	assert.NoError(err)
	assert.Equal(int32(-1), regs[1])
	assert.Equal(int32(0x20), regs[2])

	assert.ErrorIs(cfg.SetRegister("x1"), ErrRegisterValue)
	assert.ErrorIs(cfg.SetRegister("x1="), ErrRegisterValue)
	assert.ErrorIs(cfg.SetRegister("y1=3"), ErrRegisterKey)
}

func TestSetRegister_Alias(t *testing.T) {
	assert := assert.New(t)

	// Map iteration order varies, so repeat to catch an alias that survives.
	for range 100 {
		cfg := Default()
		cfg.Register["x1"] = int64(5)
		cfg.Register["x002"] = int64(6)
		assert.NoError(cfg.SetRegister("x01=7"))
		assert.NoError(cfg.SetRegister("x2=8"))

		assert.Equal(map[string]any{"x1": "7", "x2": "8"}, cfg.Register)

		regs, err := cfg.Registers()
		assert.NoError(err)
		assert.Equal(int32(7), regs[1])
		assert.Equal(int32(8), regs[2])
	}
}

func TestLoad_DuplicateRegister(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(writeConfig(t, "[registers]\nx1 = 5\nx01 = 7\n"))
	assert.ErrorIs(err, ErrRegisterDuplicate)
	var reg *ErrRegister
	if assert.True(errors.As(err, &reg)) {
		assert.Equal("x1", reg.Name)
	}

	// An override after loading wins over every spelling.
	cfg, err := Load(writeConfig(t, "[registers]\nx01 = 5\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	assert.NoError(cfg.SetRegister("x1=9"))
	regs, err := cfg.Registers()
	assert.NoError(err)
	assert.Equal(int32(9), regs[1])
}

func TestImagePath(t *testing.T) {
	assert := assert.New(t)

	cfg := &Config{Dir: "/etc/rvi"}
	assert.Equal("", cfg.ImagePath())

	cfg.Memory.Image = "mem.txt"
	assert.Equal("/etc/rvi/mem.txt", cfg.ImagePath())

	cfg.Memory.Image = "/tmp/mem.txt"
	assert.Equal("/tmp/mem.txt", cfg.ImagePath())

	cfg = &Config{Memory: MemoryConfig{Image: "mem.txt"}}
	assert.Equal("mem.txt", cfg.ImagePath())
}
