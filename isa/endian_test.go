package isa_test

import (
	"bytes"
	"testing"

	"github.com/Urethramancer/tigercat/isa"
)

func TestPutWord(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want []byte
	}{
		{"Alternating", 0x55AA55AA, []byte{0x55, 0xAA, 0x55, 0xAA}},
		{"Descending", 0xFEDCBA98, []byte{0xFE, 0xDC, 0xBA, 0x98}},
		{"Zero", 0, []byte{0, 0, 0, 0}},
	}
	for _, tc := range tests {
		got := make([]byte, isa.WordBytes)
		isa.PutWord(got, tc.word)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("[%s] expected % X, got % X", tc.name, tc.want, got)
		}
		if back := isa.Word(got); back != tc.word {
			t.Errorf("[%s] round trip gave %#08x", tc.name, back)
		}
	}
}

func TestWordRoundTrip(t *testing.T) {
	buf := make([]byte, isa.WordBytes)
	// Walk the 32-bit space with a stride that touches every byte lane.
	for n := uint64(0); n <= 0xFFFFFFFF; n += 0x00010203 {
		isa.PutWord(buf, uint32(n))
		if got := isa.Word(buf); got != uint32(n) {
			t.Fatalf("round trip of %#08x gave %#08x", n, got)
		}
	}
	isa.PutWord(buf, 0xFFFFFFFF)
	if got := isa.Word(buf); got != 0xFFFFFFFF {
		t.Fatalf("round trip of max word gave %#08x", got)
	}
}

func TestWordsToBytes(t *testing.T) {
	words := []uint32{0xC6920000, 0x64DFEDCB}
	want := []byte{0xC6, 0x92, 0x00, 0x00, 0x64, 0xDF, 0xED, 0xCB}

	got := isa.WordsToBytes(words)
	if !bytes.Equal(got, want) {
		t.Fatalf("expected % X, got % X", want, got)
	}

	back := isa.BytesToWords(got)
	if len(back) != len(words) || back[0] != words[0] || back[1] != words[1] {
		t.Fatalf("expected %08X, got %08X", words, back)
	}
}

func TestBytesToWordsPadsPartialWord(t *testing.T) {
	in := []byte{0x12, 0x34, 0x56, 0x78, 0x9A}
	got := isa.BytesToWords(in)
	if len(got) != 2 || got[1] != 0x9A000000 {
		t.Fatalf("expected trailing word 9A000000, got %08X", got)
	}
	if len(in) != 5 {
		t.Fatalf("input was modified")
	}
}
