package memory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Marshal(t *testing.T) {
	assert := assert.New(t)

	store, err := NewStore(16)
	assert.NoError(err)

	store.Put(4, 0xff)
	store.Put(-1, 0x01)
	store.Put(0, 0x7f)

	out := &bytes.Buffer{}
	err = store.Marshal(out)
	assert.NoError(err)

	expected := strings.Join([]string{
		"0xffffffff: 0x01",
		"0x00000000: 0x7f",
		"0x00000004: 0xff",
		"",
	}, "\n")
	assert.Equal(expected, out.String())

	loaded, err := NewStore(3)
	assert.NoError(err)
	err = loaded.Unmarshal(bytes.NewReader(out.Bytes()))
	assert.NoError(err)

	assert.Equal(store.Size(), loaded.Size())
	for address, value := range store.All() {
		assert.Equal(value, loaded.Get(address), "address %d", address)
	}
}

func TestStore_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	image := strings.Join([]string{
		"# boot data",
		"",
		"16: 0x10",
		"-2: 255   # negative address",
		"0x20:0b101",
	}, "\n")

	store, err := NewStore(DEFAULT_BUCKETS)
	assert.NoError(err)
	err = store.Unmarshal(strings.NewReader(image))
	assert.NoError(err)

	assert.Equal(3, store.Size())
	assert.Equal(uint8(0x10), store.Get(16))
	assert.Equal(uint8(0xff), store.Get(-2))
	assert.Equal(uint8(5), store.Get(0x20))
}

func TestStore_Unmarshal_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		image  string
		lineno int
		err    error
	}){
		{"no colon", "1\n16 0x10", 1, ErrImageAddress},
		{"bad address", "\nzz: 1", 2, ErrImageAddress},
		{"address too large", "0x100000000: 1", 1, ErrImageAddress},
		{"byte too large", "1: 256", 1, ErrImageValue},
		{"negative byte", "1: -1", 1, ErrImageValue},
		{"missing byte", "1:", 1, ErrImageValue},
	}

	for _, entry := range table {
		store, err := NewStore(DEFAULT_BUCKETS)
		assert.NoError(err)

		err = store.Unmarshal(strings.NewReader(entry.image))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrImageSyntax
		if assert.ErrorAs(err, &syntax, entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}
