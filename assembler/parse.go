package assembler

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/tigercat/isa"
)

const (
	commentMarker   = "#"
	registerSigil   = "%"
	immediateSigil  = "$"
	immediatePrefix = "$0x"
)

var (
	reAddressLabel = regexp.MustCompile(`^([A-Z0-9_]+):$`)
	reConstant     = regexp.MustCompile(`^([A-Z0-9_]+)=\s*0x([0-9A-Fa-f]+)$`)
	reLabelPrefix  = regexp.MustCompile(`^[A-Z0-9_]+\s*[:=]`)
	reImmediate    = regexp.MustCompile(`^\$0[xX]([0-9A-Fa-f]+)$`)
)

// Parse splits source text into one classified node per line.
func Parse(src string) []*Node {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	// A trailing newline does not start another line.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	nodes := make([]*Node, len(lines))
	for i, line := range lines {
		nodes[i] = classify(i+1, line)
	}
	return nodes
}

// classify decides what a single source line is.
func classify(number int, text string) *Node {
	n := &Node{Line: number, Text: text}

	line := text
	if i := strings.Index(line, commentMarker); i != -1 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		n.Type = NodeBlank

	case reAddressLabel.MatchString(line):
		n.Type = NodeLabel
		n.Label = reAddressLabel.FindStringSubmatch(line)[1]

	case reConstant.MatchString(line):
		m := reConstant.FindStringSubmatch(line)
		v, err := parseHex32(m[2])
		if err != nil {
			return invalid(n, err)
		}
		n.Type = NodeConstant
		n.Label = m[1]
		n.Value = v

	case reLabelPrefix.MatchString(line):
		return invalid(n, &SyntaxError{Detail: fmt.Sprintf("malformed label definition '%s'", line)})

	case strings.HasPrefix(line, dataDirective):
		return classifyDirective(n, line)

	default:
		n.Type = NodeInstruction
		n.Parts = strings.Fields(line)
	}
	return n
}

func invalid(n *Node, err error) *Node {
	n.Type = NodeInvalid
	n.Err = err
	return n
}

// parseHex32 converts hex digits to a value that must fit in a machine word.
func parseHex32(digits string) (uint32, error) {
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &UnencodeableImmediateError{Detail: "wider than 64 bits", Value: math.MaxUint64}
		}
		return 0, &SyntaxError{Detail: fmt.Sprintf("invalid hex literal '%s'", digits)}
	}
	if v > math.MaxUint32 {
		return 0, &UnencodeableImmediateError{Detail: fmt.Sprintf("wider than %d bits", isa.WordBits), Value: v}
	}
	return uint32(v), nil
}

// parseImmediate converts "$0x<hex>" to its value.
func parseImmediate(token string) (uint32, error) {
	m := reImmediate.FindStringSubmatch(token)
	if m == nil {
		return 0, &SyntaxError{Detail: fmt.Sprintf("malformed immediate '%s': want %s<hex>", token, immediatePrefix)}
	}
	return parseHex32(m[1])
}

// formatImmediate is the inverse of parseImmediate.
func formatImmediate(v uint32) string {
	return fmt.Sprintf("%s%X", immediatePrefix, v)
}

func isRegister(token string) bool {
	return strings.HasPrefix(token, registerSigil)
}

func isImmediate(token string) bool {
	return strings.HasPrefix(token, immediateSigil)
}

// checkSyntax verifies operand shapes: registers anywhere, an immediate only last.
func checkSyntax(operands []string) error {
	for i, op := range operands {
		if isRegister(op) {
			continue
		}
		if isImmediate(op) {
			if i == len(operands)-1 {
				continue
			}
			return &SyntaxError{Detail: fmt.Sprintf("immediate '%s' must be the last operand", op)}
		}
		return &SyntaxError{Detail: fmt.Sprintf("operand '%s' is neither a %sregister nor a %simmediate", op, registerSigil, immediateSigil)}
	}
	return nil
}

// parseRegister resolves "%name" in the register file for w.
func (asm *Assembler) parseRegister(token string, w isa.Width) (Argument, error) {
	name := strings.TrimPrefix(token, registerSigil)
	return asm.register(name, w)
}

func (asm *Assembler) register(name string, w isa.Width) (Argument, error) {
	code, ok := asm.lookup.Register(w, name)
	if !ok {
		return Argument{}, &InvalidRegisterError{Name: name, Width: w}
	}
	return Argument{Kind: ArgRegister, Code: code, Bits: w.RegisterBits()}, nil
}

// parseOperand builds the argument for one syntax-checked token.
func (asm *Assembler) parseOperand(token string, w isa.Width) (Argument, error) {
	if isRegister(token) {
		return asm.parseRegister(token, w)
	}
	v, err := parseImmediate(token)
	if err != nil {
		return Argument{}, err
	}
	return Argument{Kind: ArgImmediate, Code: v}, nil
}
