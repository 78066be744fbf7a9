package assembler

import (
	"fmt"
	"regexp"

	"github.com/Urethramancer/tigercat/isa"
)

// dataDirective reserves a zero-filled block for the label on the line above:
//
//	BUFFER:
//	.data 0x20
const dataDirective = ".data"

var reData = regexp.MustCompile(`^\.data\s+0x([0-9A-Fa-f]+)$`)

// classifyDirective turns a ".data" line into a node.
func classifyDirective(n *Node, line string) *Node {
	m := reData.FindStringSubmatch(line)
	if m == nil {
		return invalid(n, &SyntaxError{Detail: fmt.Sprintf("malformed %s directive '%s': want %s 0x<size>", dataDirective, line, dataDirective)})
	}
	v, err := parseHex32(m[1])
	if err != nil {
		return invalid(n, err)
	}
	n.Type = NodeData
	n.Value = v
	return n
}

// checkDirective validates a directive's position during the label pass.
func checkDirective(nodes []*Node, i int) error {
	if i == 0 || nodes[i-1].Type != NodeLabel {
		return &SyntaxError{Detail: fmt.Sprintf("%s must directly follow an address label", dataDirective)}
	}
	return nil
}

// generateDataBlocks emits the reserved blocks in address order.
func generateDataBlocks(table *LabelTable) []byte {
	var out []byte
	for _, l := range table.Data() {
		out = append(out, make([]byte, l.Size*isa.UnitBytes)...)
	}
	return out
}
