package memory

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Marshal writes every stored byte as an 'ADDRESS: BYTE' line, in ascending
// address order.
func (store *Store) Marshal(file io.Writer) (err error) {
	w := bufio.NewWriter(file)
	for address, value := range store.All() {
		_, err = fmt.Fprintf(w, "0x%08x: 0x%02x\n", uint32(address), value)
		if err != nil {
			return
		}
	}

	err = w.Flush()

	return
}

// parseImageValue parses a Go integer literal constrained to [lo, hi].
// Addresses may be written either signed or as their 32-bit unsigned pattern.
func parseImageValue(word string, lo, hi int64) (value int64, ok bool) {
	value, err := strconv.ParseInt(word, 0, 64)
	if err != nil || value < lo || value > hi {
		return
	}
	ok = true
	return
}

// Unmarshal loads 'ADDRESS: BYTE' lines into the store. Existing entries are
// kept unless overwritten. Blank lines and '#' comments are ignored.
func (store *Store) Unmarshal(file io.Reader) (err error) {
	scanner := bufio.NewScanner(file)

	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &ErrImageSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		lineno++
		line = scanner.Text()

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		addr_text, byte_text, found := strings.Cut(text, ":")
		if !found {
			err = ErrImageAddress
			return
		}

		address, ok := parseImageValue(strings.TrimSpace(addr_text), math.MinInt32, math.MaxUint32)
		if !ok {
			err = ErrImageAddress
			return
		}

		value, ok := parseImageValue(strings.TrimSpace(byte_text), 0, math.MaxUint8)
		if !ok {
			err = ErrImageValue
			return
		}

		store.Put(int32(uint32(address)), uint8(value))
	}

	line = ""
	err = scanner.Err()

	return
}
