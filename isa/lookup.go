package isa

import (
	"fmt"
	"sort"
)

// Lookup maps register names and jump conditions to their bit codes.
// A Lookup is immutable once built and safe to share.
type Lookup struct {
	registers  [2]map[string]uint32
	conditions map[string]uint32
}

// NewLookup builds a lookup from register tables for each width and a condition table.
// Every code must fit its field.
func NewLookup(single, double, conditions map[string]uint32) (*Lookup, error) {
	l := &Lookup{
		registers: [2]map[string]uint32{
			make(map[string]uint32, len(single)),
			make(map[string]uint32, len(double)),
		},
		conditions: make(map[string]uint32, len(conditions)),
	}

	for w, table := range map[Width]map[string]uint32{Single: single, Double: double} {
		for name, code := range table {
			if code >= 1<<w.RegisterBits() {
				return nil, fmt.Errorf("%s-word register %q: code %#x does not fit %d bits", w, name, code, w.RegisterBits())
			}
			l.registers[w][name] = code
		}
	}

	for cond, code := range conditions {
		if code >= 1<<ConditionBits {
			return nil, fmt.Errorf("condition %q: code %#x does not fit %d bits", cond, code, ConditionBits)
		}
		l.conditions[cond] = code
	}
	return l, nil
}

// Register returns the code of a register in the register file for w.
func (l *Lookup) Register(w Width, name string) (uint32, bool) {
	if w != Single && w != Double {
		return 0, false
	}
	code, ok := l.registers[w][name]
	return code, ok
}

// Condition returns the code of a jump condition suffix.
// The empty suffix is the unconditional jump.
func (l *Lookup) Condition(suffix string) (uint32, bool) {
	if suffix == "" {
		suffix = UnconditionalTrue
	}
	code, ok := l.conditions[suffix]
	return code, ok
}

// Registers lists the register names of one register file, sorted.
func (l *Lookup) Registers(w Width) []string {
	if w != Single && w != Double {
		return nil
	}
	names := make([]string, 0, len(l.registers[w]))
	for name := range l.registers[w] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	singleRegisters = map[string]uint32{
		"r1l": 0x0, "r2l": 0x1, "a1l": 0x2, "a2l": 0x3,
		"a3l": 0x4, "a4l": 0x5, "s1l": 0x6, "rand": 0x7,
		"r1h": 0x8, "r2h": 0x9, "a1h": 0xA, "a2h": 0xB,
		"a3h": 0xC, "a4h": 0xD, "s1h": 0xE, ZeroRegister: 0xF,
	}

	doubleRegisters = map[string]uint32{
		"ret1": 0x0, "ret2": 0x1, "arg1": 0x2, "arg2": 0x3,
		"arg3": 0x4, "arg4": 0x5, "SP": 0x6, InstructionPointer: 0x7,
	}

	// Code 0xE is unassigned.
	conditionCodes = map[string]uint32{
		UnconditionalFalse: 0x0,
		"a":                0x1, // above
		"ae":               0x2, // above or equal
		"b":                0x3, // below
		"be":               0x4, // below or equal
		"g":                0x5, // greater
		"ge":               0x6, // greater or equal
		"l":                0x7, // less
		"le":               0x8, // less or equal
		"e":                0x9, // equal
		"o":                0xA, // overflow
		"c":                0xB, // carry
		"s":                0xC, // sign
		"z":                0xD, // zero
		UnconditionalTrue:  0xF,
	}
)

// DefaultLookup returns the register and condition tables of the current hardware revision.
func DefaultLookup() *Lookup {
	l, err := NewLookup(singleRegisters, doubleRegisters, conditionCodes)
	if err != nil {
		panic(err)
	}
	return l
}
