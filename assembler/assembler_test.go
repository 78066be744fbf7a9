package assembler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Urethramancer/tigercat/assembler"
	"github.com/Urethramancer/tigercat/isa"
)

func source(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestProgramEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"ForwardReference", source(
			"jmp END",
			"addw %r1l %r1l $0x1",
			"END:",
			"debug",
		), "65 E0 00 04  C0 00 00 01  38 00 00 00"},
		{"BackwardReference", source(
			"TOP:",
			"addw %r1l %r1l $0x1",
			"jmpz TOP",
		), "C0 00 00 01  65 A0 00 00"},
		{"CallAndReturn", source(
			"call FUNC",
			"debug",
			"FUNC:",
			"ret",
		), "84 00 00 04  65 E0 00 06  38 00 00 00  8F C0 00 00"},
		{"Constants", source(
			"MASK=0x5F5F",
			"LIMIT= 0x10",
			"andw %a2l %rand MASK",
			"pushd LIMIT",
		), "E0 6E 5F 5F  84 00 00 10"},
		{"MovdConstant", source(
			"VALUE=0xFEDCBA98",
			"movd %ret1 VALUE",
		), "C0 1E BA 98  C1 1E FE DC"},
		{"MovdForwardLabel", source(
			"movd %arg1 HERE",
			"HERE:",
			"debug",
		), "C0 5E 00 04  C1 5E 00 00  38 00 00 00"},
		// The call sits after a four-unit movd whose size was fixed before
		// its label was known, so it returns to 0x8.
		{"CallAfterMovdLabel", source(
			"movd %arg1 DONE",
			"call DONE",
			"DONE:",
			"debug",
		), "C0 5E 00 08  C1 5E 00 00  84 00 00 08  65 E0 00 08  38 00 00 00"},
		{"Comments", source(
			"# header",
			"",
			"   addw %r1l %r1l $0x500   # inline",
			"  # indented comment",
		), "C0 00 05 00"},
		{"DataBlocks", source(
			"pushd BUF",
			"BUF:",
			".data 0x3",
			"TABLE:",
			".data 0x2",
			"pushd TABLE",
		), "84 00 00 04  84 00 00 07  00 00 00 00 00 00  00 00 00 00"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestLabelTable(t *testing.T) {
	src := source(
		"START:",
		"call FUNC",
		"BUF:",
		".data 0x8",
		"SIZE=0x8",
		"FUNC:",
		"ret",
	)
	prog, err := assembler.New(nil).Assemble(src)
	if err != nil {
		t.Fatal(err)
	}

	if prog.End != 6 {
		t.Fatalf("expected code to end at 0x6, got %#x", prog.End)
	}

	want := map[string]uint32{"START": 0x0, "FUNC": 0x4, "SIZE": 0x8, "BUF": 0x6}
	for name, v := range want {
		got, ok := prog.Labels.Lookup(name)
		if !ok || got != v {
			t.Errorf("%s: expected %#x, got %#x (found %v)", name, v, got, ok)
		}
	}

	buf, _ := prog.Labels.Get("BUF")
	if buf.Kind != assembler.LabelData || buf.Size != 8 {
		t.Errorf("BUF: expected a data label of size 8, got %s of size %d", buf.Kind, buf.Size)
	}

	if prog.Labels.Len() != len(want) {
		t.Errorf("expected %d labels, got %d", len(want), prog.Labels.Len())
	}

	var names []string
	for _, l := range prog.Labels.Labels() {
		names = append(names, l.Name)
	}
	if got := strings.Join(names, " "); got != "BUF FUNC SIZE START" {
		t.Errorf("expected labels sorted by name, got %s", got)
	}

	// 3 instructions, then 8 units of data.
	if len(prog.Code) != 3*4+8*2 {
		t.Errorf("expected %d bytes, got %d", 3*4+8*2, len(prog.Code))
	}
}

func TestImage(t *testing.T) {
	prog, err := assembler.New(nil).Assemble("debug")
	if err != nil {
		t.Fatal(err)
	}

	if got := prog.Image(false); !bytes.Equal(got, prog.Code) {
		t.Errorf("expected the bare code, got % X", got)
	}

	got := prog.Image(true)
	want := []byte{0x38, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("expected % X, got % X", want, got)
	}
	if len(prog.Code) != 4 {
		t.Errorf("halt word leaked into the program code")
	}
}

func TestWarnings(t *testing.T) {
	prog, err := assembler.New(nil).Assemble(source("debug", "invd %ret1 $0xFFFFF"))
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Warnings) != 1 || prog.Warnings[0].Line != 2 {
		t.Fatalf("expected one warning on line 2, got %v", prog.Warnings)
	}
}

// expectErrors assembles src and checks the failing lines and the error type of each.
func expectErrors(t *testing.T, name, src string, lines []int, check func(error) bool) assembler.ErrorList {
	t.Helper()

	prog, err := assembler.New(nil).Assemble(src)
	if prog != nil {
		t.Fatalf("[%s] expected no program on failure", name)
	}

	var list assembler.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("[%s] expected an ErrorList, got %v", name, err)
	}
	if len(list) != len(lines) {
		t.Fatalf("[%s] expected %d errors, got %d:\n%v", name, len(lines), len(list), list)
	}
	for i, e := range list {
		if e.Line != lines[i] {
			t.Errorf("[%s] error %d: expected line %d, got %d", name, i, lines[i], e.Line)
		}
		if check != nil && !check(e) {
			t.Errorf("[%s] error %d has the wrong type: %v", name, i, e)
		}
	}
	return list
}

func TestDuplicateLabel(t *testing.T) {
	list := expectErrors(t, "DuplicateLabel", source(
		"LOOP:",
		"debug",
		"LOOP:",
	), []int{3}, func(err error) bool {
		var target *assembler.DuplicateLabelError
		return errors.As(err, &target) && target.Name == "LOOP" && target.Previous == 1
	})
	if list[0].Pass != assembler.PassLabels {
		t.Errorf("expected the label pass to report duplicates, got %s", list[0].Pass)
	}
}

func TestUndefinedLabel(t *testing.T) {
	list := expectErrors(t, "UndefinedLabel", source(
		"debug",
		"jmp NOWHERE",
	), []int{2}, func(err error) bool {
		var target *assembler.UndefinedLabelError
		return errors.As(err, &target) && target.Name == "NOWHERE"
	})
	if list[0].Pass != assembler.PassEmit {
		t.Errorf("expected the emit pass to report undefined labels, got %s", list[0].Pass)
	}
}

func TestMultipleErrors(t *testing.T) {
	src := source(
		"addw %r1l %r1l $0x1",
		"bogus %r1l",
		"addw %r1l",
		"# fine",
		"FOO: addw %r1l %r1l %r1l",
		"debug",
	)
	list := expectErrors(t, "ThreeErrors", src, []int{2, 3, 5}, nil)

	var opErr *assembler.InvalidOpcodeError
	if !errors.As(list[0], &opErr) {
		t.Errorf("line 2: expected InvalidOpcodeError, got %v", list[0])
	}
	var countErr *assembler.ArgumentCountError
	if !errors.As(list[1], &countErr) || countErr.Expected != 3 || countErr.Actual != 1 {
		t.Errorf("line 3: expected ArgumentCountError(3, 1), got %v", list[1])
	}
	var synErr *assembler.SyntaxError
	if !errors.As(list[2], &synErr) {
		t.Errorf("line 5: expected SyntaxError, got %v", list[2])
	}
	if list[2].Text != "FOO: addw %r1l %r1l %r1l" {
		t.Errorf("line 5: expected the source text, got %q", list[2].Text)
	}
}

func TestEmitPassErrors(t *testing.T) {
	src := source(
		"addw %r1l %nope %r1l",
		"addd %ret1 %arg1 $0x80000",
		"addw %r1l $0x1 %r1l",
		"addw %r1l %r1l $5",
	)
	list := expectErrors(t, "EmitErrors", src, []int{1, 2, 3, 4}, nil)

	var regErr *assembler.InvalidRegisterError
	if !errors.As(list[0], &regErr) || regErr.Name != "nope" {
		t.Errorf("line 1: expected InvalidRegisterError, got %v", list[0])
	}
	var immErr *assembler.UnencodeableImmediateError
	if !errors.As(list[1], &immErr) || immErr.Value != 0x80000 {
		t.Errorf("line 2: expected UnencodeableImmediateError, got %v", list[1])
	}
	for _, e := range list[2:] {
		var synErr *assembler.SyntaxError
		if !errors.As(e, &synErr) {
			t.Errorf("line %d: expected SyntaxError, got %v", e.Line, e)
		}
	}
}

func TestMnemonicErrors(t *testing.T) {
	tests := []struct {
		name, src string
		check     func(error) bool
	}{
		{"BadWidth", "addx %r1l %r1l %r1l", func(err error) bool {
			var target *assembler.InvalidDataWidthError
			return errors.As(err, &target)
		}},
		{"TooLong", "adddw %r1l %r1l %r1l", func(err error) bool {
			var target *assembler.InvalidOpcodeError
			return errors.As(err, &target)
		}},
		{"BadCondition", "jmpxy $0x1", func(err error) bool {
			var target *assembler.InvalidOpcodeError
			return errors.As(err, &target) && target.Text == "jmpxy"
		}},
		{"DataWithoutLabel", ".data 0x4", func(err error) bool {
			var target *assembler.SyntaxError
			return errors.As(err, &target)
		}},
		{"MalformedConstant", "BIG=0xZZ", func(err error) bool {
			var target *assembler.SyntaxError
			return errors.As(err, &target)
		}},
		{"WideConstant", "BIG=0x100000000", func(err error) bool {
			var target *assembler.UnencodeableImmediateError
			return errors.As(err, &target) && target.Value == 0x100000000
		}},
	}
	for _, tc := range tests {
		expectErrors(t, tc.name, tc.src, []int{1}, tc.check)
	}
}

func TestCustomLookup(t *testing.T) {
	lookup, err := isa.NewLookup(
		map[string]uint32{"r1l": 0x0, "x": 0x1},
		map[string]uint32{"ret1": 0x0},
		map[string]uint32{"t": 0xF},
	)
	if err != nil {
		t.Fatal(err)
	}
	asm := assembler.New(lookup)

	prog, err := asm.Assemble("addw %x %x %x")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(prog.Code, []byte{0xC2, 0x22, 0x20, 0x00}) {
		t.Fatalf("unexpected encoding % X", prog.Code)
	}

	// Names missing from the injected table are rejected even if the hardware has them.
	_, err = asm.Assemble("addw %r1h %r1l %r1l")
	var regErr *assembler.InvalidRegisterError
	if !errors.As(err, &regErr) || regErr.Name != "r1h" {
		t.Fatalf("expected InvalidRegisterError for r1h, got %v", err)
	}
	_, err = asm.Assemble("jmpge $0x0")
	var opErr *assembler.InvalidOpcodeError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected InvalidOpcodeError for an unknown condition, got %v", err)
	}
}
