package isa

import (
	"encoding/binary"
)

// PutWord writes w into the first four bytes of dst, most significant byte first.
func PutWord(dst []byte, w uint32) {
	binary.BigEndian.PutUint32(dst, w)
}

// Word reads a big-endian word from the first four bytes of src.
func Word(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}

// WordsToBytes converts a slice of 32-bit words to a big-endian byte slice.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*WordBytes)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*WordBytes:], w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 32-bit words.
// A trailing partial word is padded with zero bytes.
func BytesToWords(b []byte) []uint32 {
	if rem := len(b) % WordBytes; rem != 0 {
		b = append(append([]byte(nil), b...), make([]byte, WordBytes-rem)...)
	}
	out := make([]uint32, len(b)/WordBytes)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*WordBytes:])
	}
	return out
}
