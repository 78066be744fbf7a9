package assembler

// NodeType defines the type of a source line.
type NodeType int

const (
	// NodeBlank is an empty or comment-only line.
	NodeBlank NodeType = iota
	// NodeInstruction type.
	NodeInstruction
	// NodeLabel is an address label, "NAME:".
	NodeLabel
	// NodeConstant is a constant label, "NAME=0x10".
	NodeConstant
	// NodeData reserves storage for the label on the line above, ".data 0x10".
	NodeData
	// NodeInvalid is a line that could not be classified; Err says why.
	NodeInvalid
)

func (t NodeType) String() string {
	switch t {
	case NodeBlank:
		return "blank"
	case NodeInstruction:
		return "instruction"
	case NodeLabel:
		return "label"
	case NodeConstant:
		return "constant"
	case NodeData:
		return "data"
	case NodeInvalid:
		return "invalid"
	}
	return "unknown"
}

// Node represents one classified line of assembly source.
type Node struct {
	Type NodeType
	// Line is the 1-based source line number.
	Line int
	// Text is the raw line, comments included.
	Text  string
	Label string
	// Value holds a constant's value or a data block's size in address units.
	Value uint32
	// Parts are the whitespace-separated tokens of an instruction.
	Parts []string
	Err   error

	// Address and Size are filled in by the label pass.
	Address uint32
	Size    uint32
}
