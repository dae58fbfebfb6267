package emulator

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// State is a snapshot of the machine, ordered for output.
type State struct {
	Registers yaml.MapSlice `yaml:"registers"` // x0..x31 in index order.
	Memory    yaml.MapSlice `yaml:"memory"`    // Written bytes, ascending signed address.
	Ticks     int           `yaml:"ticks"`
}

// State returns a snapshot of the registers and written memory.
func (emu *Emulator) State() (state State) {
	state.Registers = make(yaml.MapSlice, 0, len(emu.Cpu.Register))
	for n, value := range emu.Cpu.Register {
		state.Registers = append(state.Registers, yaml.MapItem{
			Key:   fmt.Sprintf("x%d", n),
			Value: value,
		})
	}

	state.Memory = make(yaml.MapSlice, 0, emu.Cpu.Memory.Size())
	for address, value := range emu.Cpu.Memory.All() {
		state.Memory = append(state.Memory, yaml.MapItem{
			Key:   fmt.Sprintf("0x%08x", uint32(address)),
			Value: value,
		})
	}

	state.Ticks = emu.Cpu.Ticks

	return
}

// YAML encodes the snapshot as a YAML document.
func (state State) YAML() (data []byte, err error) {
	data, err = yaml.Marshal(state)
	return
}

// String renders the snapshot as plain text.
func (state State) String() string {
	var text strings.Builder

	for n, item := range state.Registers {
		fmt.Fprintf(&text, "% 4s: %08X", item.Key, uint32(item.Value.(int32)))
		if n%4 == 3 || n == len(state.Registers)-1 {
			text.WriteString("\n")
		} else {
			text.WriteString("  ")
		}
	}

	for _, item := range state.Memory {
		fmt.Fprintf(&text, "%v: 0x%02x\n", item.Key, item.Value)
	}

	fmt.Fprintf(&text, "ticks: %d\n", state.Ticks)

	return text.String()
}
