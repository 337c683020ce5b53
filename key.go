package keyroute

import (
	"encoding/binary"
	"io"
)

// StringKey routes by the raw bytes of a string.
type StringKey string

func (s StringKey) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, string(s))
	return int64(n), err
}

// BytesKey routes by a byte slice as is.
type BytesKey []byte

func (b BytesKey) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b)
	return int64(n), err
}

// IntKey routes by the fixed-width little-endian encoding of an integer.
// The width does not depend on the platform word size, so 32- and 64-bit
// processes produce the same digest.
type IntKey int64

func (k IntKey) WriteTo(w io.Writer) (int64, error) {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], uint64(k))
	n, err := w.Write(p[:])
	return int64(n), err
}
