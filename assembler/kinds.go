package assembler

import (
	"regexp"

	"github.com/Urethramancer/tigercat/isa"
)

// Kind is an instruction variant, real or pseudo.
type Kind int

const (
	KindAdd Kind = iota
	KindAddC
	KindSub
	KindSubC
	KindCmp
	KindSSR
	KindSUR
	KindSL
	KindAnd
	KindOr
	KindXor
	KindInv
	KindLoad
	KindStore
	KindPush
	KindPop
	KindJmp
	KindConvs
	KindDebug
	KindMov
	KindCall
	KindRet
	KindNoop
)

// kindInfo is the fixed data of one variant.
type kindInfo struct {
	name    string
	pattern *regexp.Regexp
	opcode  isa.Opcode
	arity   int
	// suffixed variants take their width from the last letter of the mnemonic.
	suffixed bool
	width    isa.Width
	pseudo   bool
}

func mnemonic(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^" + pattern + "$")
}

// kindTable is searched in order; the first whole-mnemonic match wins.
var kindTable = [...]kindInfo{
	KindAdd:   {name: "add", pattern: mnemonic("add."), opcode: isa.OPADD, arity: 3, suffixed: true},
	KindAddC:  {name: "addc", pattern: mnemonic("addc."), opcode: isa.OPADDC, arity: 3, suffixed: true},
	KindSub:   {name: "sub", pattern: mnemonic("sub."), opcode: isa.OPSUB, arity: 3, suffixed: true},
	KindSubC:  {name: "subc", pattern: mnemonic("subc."), opcode: isa.OPSUBC, arity: 3, suffixed: true},
	KindCmp:   {name: "cmp", pattern: mnemonic("cmp."), opcode: isa.OPCMP, arity: 2, suffixed: true},
	KindSSR:   {name: "ssr", pattern: mnemonic("ssr."), opcode: isa.OPSSR, arity: 3, suffixed: true},
	KindSUR:   {name: "sur", pattern: mnemonic("sur."), opcode: isa.OPSUR, arity: 3, suffixed: true},
	KindSL:    {name: "sl", pattern: mnemonic("sl."), opcode: isa.OPSL, arity: 3, suffixed: true},
	KindAnd:   {name: "and", pattern: mnemonic("and."), opcode: isa.OPAND, arity: 3, suffixed: true},
	KindOr:    {name: "or", pattern: mnemonic("or."), opcode: isa.OPOR, arity: 3, suffixed: true},
	KindXor:   {name: "xor", pattern: mnemonic("xor."), opcode: isa.OPXOR, arity: 3, suffixed: true},
	KindInv:   {name: "inv", pattern: mnemonic("inv."), opcode: isa.OPINV, arity: 2, suffixed: true},
	KindLoad:  {name: "load", pattern: mnemonic("load."), opcode: isa.OPLOAD, arity: 2, suffixed: true},
	KindStore: {name: "sto", pattern: mnemonic("sto."), opcode: isa.OPSTORE, arity: 2, suffixed: true},
	KindPush:  {name: "push", pattern: mnemonic("push."), opcode: isa.OPPUSH, arity: 1, suffixed: true},
	KindPop:   {name: "pop", pattern: mnemonic("pop."), opcode: isa.OPPOP, arity: 1, suffixed: true},
	KindJmp:   {name: "jmp", pattern: mnemonic("jmp.{0,2}"), opcode: isa.OPJMP, arity: 1, width: isa.Double},
	KindConvs: {name: "convs", pattern: mnemonic("convs"), opcode: isa.OPCONVS, arity: 2, width: isa.Single},
	KindDebug: {name: "debug", pattern: mnemonic("debug"), opcode: isa.OPDEBUG, arity: 0, width: isa.Single},
	KindMov:   {name: "mov", pattern: mnemonic("mov."), arity: 2, suffixed: true, pseudo: true},
	KindCall:  {name: "call", pattern: mnemonic("call"), arity: 1, width: isa.Double, pseudo: true},
	KindRet:   {name: "ret", pattern: mnemonic("ret"), arity: 0, width: isa.Double, pseudo: true},
	KindNoop:  {name: "noop", pattern: mnemonic("noop"), arity: 0, width: isa.Double, pseudo: true},
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTable) {
		return "invalid"
	}
	return kindTable[k].name
}

// Pseudo reports whether the variant expands into other instructions.
func (k Kind) Pseudo() bool {
	return kindTable[k].pseudo
}

// Arity is the number of operands the variant takes in source.
func (k Kind) Arity() int {
	return kindTable[k].arity
}

// matchKind finds the variant for a mnemonic.
func matchKind(mn string) (Kind, bool) {
	for k := range kindTable {
		if kindTable[k].pattern.MatchString(mn) {
			return Kind(k), true
		}
	}
	return 0, false
}

// widthOf derives the operand width of mn.
func (info *kindInfo) widthOf(mn string) (isa.Width, error) {
	if !info.suffixed {
		return info.width, nil
	}
	switch mn[len(mn)-1:] {
	case isa.Single.Suffix():
		return isa.Single, nil
	case isa.Double.Suffix():
		return isa.Double, nil
	}
	return 0, &InvalidDataWidthError{Text: mn}
}
