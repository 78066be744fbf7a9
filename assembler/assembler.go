package assembler

import (
	"fmt"

	"github.com/Urethramancer/tigercat/isa"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	lookup *isa.Lookup
}

// New creates a new Assembler using the given register and condition tables.
// A nil lookup selects the built-in tables.
func New(lookup *isa.Lookup) *Assembler {
	if lookup == nil {
		lookup = isa.DefaultLookup()
	}
	return &Assembler{lookup: lookup}
}

// Warning is a non-fatal diagnostic tied to a source line.
type Warning struct {
	Line    int
	Text    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Program is the result of a successful run.
type Program struct {
	// Code is the instruction stream followed by the zero-filled data blocks.
	Code   []byte
	Labels *LabelTable
	// End is the address just past the last instruction, where data begins.
	End      uint32
	Warnings []Warning
}

// Image returns the bytes to write out, optionally followed by a halt word.
func (p *Program) Image(halt bool) []byte {
	if !halt {
		return p.Code
	}
	out := make([]byte, len(p.Code), len(p.Code)+isa.WordBytes)
	copy(out, p.Code)
	return append(out, isa.WordsToBytes([]uint32{isa.HaltWord})...)
}

// Assemble takes TigerCat assembly source and returns the program.
// On failure the error is an ErrorList holding every diagnostic of the pass
// that failed, and no program is returned.
func (asm *Assembler) Assemble(src string) (*Program, error) {
	nodes := Parse(src)

	table, end, errs := asm.BuildLabels(nodes)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	code, warnings, errs := asm.Emit(nodes, table)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return &Program{Code: code, Labels: table, End: end, Warnings: warnings}, nil
}

// BuildLabels is the first pass. It sizes every instruction, records label
// definitions and places the data blocks after the code. It returns the
// address at the end of the instruction stream.
func (asm *Assembler) BuildLabels(nodes []*Node) (*LabelTable, uint32, ErrorList) {
	table := NewLabelTable()
	var errs ErrorList

	offset := isa.CodeStart
	for i := range nodes {
		var err error
		offset, err = asm.scanNode(table, nodes, i, offset)
		if err != nil {
			errs.add(PassLabels, nodes[i].Line, nodes[i].Text, err)
		}
	}

	table.finalize(offset)
	return table, offset, errs
}

// scanNode handles one line of the first pass and returns the next offset.
func (asm *Assembler) scanNode(table *LabelTable, nodes []*Node, i int, offset uint32) (uint32, error) {
	n := nodes[i]
	n.Address = offset

	switch n.Type {
	case NodeInvalid:
		return offset, n.Err

	case NodeLabel:
		l := &Label{Name: n.Label, Kind: LabelValue, Value: offset, Line: n.Line, Resolved: true}
		if i+1 < len(nodes) && nodes[i+1].Type == NodeData {
			l.Kind = LabelData
			l.Value = 0
			l.Size = nodes[i+1].Value
			l.Resolved = false
		}
		return offset, table.define(l)

	case NodeConstant:
		return offset, table.define(&Label{Name: n.Label, Kind: LabelValue, Value: n.Value, Line: n.Line, Resolved: true})

	case NodeData:
		return offset, checkDirective(nodes, i)

	case NodeInstruction:
		in, err := asm.Create(n.Parts, false, offset)
		if err != nil {
			return offset, err
		}
		n.Size = in.Size()
		return offset + n.Size, nil
	}
	return offset, nil
}

// Emit is the second pass. It substitutes label values, encodes every
// instruction at the address BuildLabels gave it and appends the reserved
// data blocks.
func (asm *Assembler) Emit(nodes []*Node, table *LabelTable) ([]byte, []Warning, ErrorList) {
	var (
		code     []byte
		warnings []Warning
		errs     ErrorList
	)

	for _, n := range nodes {
		if n.Type != NodeInstruction {
			continue
		}

		in, err := asm.emitNode(n, table)
		if err != nil {
			errs.add(PassEmit, n.Line, n.Text, err)
			continue
		}

		b, err := in.Encode()
		if err != nil {
			errs.add(PassEmit, n.Line, n.Text, err)
			continue
		}
		code = append(code, b...)

		for _, msg := range in.Warnings() {
			warnings = append(warnings, Warning{Line: n.Line, Text: n.Text, Message: msg})
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}

	return append(code, generateDataBlocks(table)...), warnings, nil
}

// emitNode resolves a label in the final operand and builds the instruction.
func (asm *Assembler) emitNode(n *Node, table *LabelTable) (*Instruction, error) {
	parts := n.Parts
	if last := len(parts) - 1; last > 0 && !isRegister(parts[last]) && !isImmediate(parts[last]) {
		v, ok := table.Lookup(parts[last])
		if !ok {
			return nil, &UndefinedLabelError{Name: parts[last]}
		}
		parts = append(append([]string(nil), parts[:last]...), formatImmediate(v))
	}
	return asm.Create(parts, true, n.Address)
}
