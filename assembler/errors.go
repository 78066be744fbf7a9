package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/tigercat/isa"
)

// ErrStructureOnly is returned when encoding an instruction built without resolved operands.
var ErrStructureOnly = errors.New("instruction was built for sizing only and cannot be encoded")

// ArgumentCountError is raised when a mnemonic is given the wrong number of operands.
type ArgumentCountError struct {
	Mnemonic string
	Expected int
	Actual   int
}

func (err *ArgumentCountError) Error() string {
	return fmt.Sprintf("%s takes %d operand(s), got %d", err.Mnemonic, err.Expected, err.Actual)
}

// InvalidOpcodeError is raised for an unknown mnemonic or jump condition.
type InvalidOpcodeError struct {
	Text string
}

func (err *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode '%s'", err.Text)
}

// InvalidDataWidthError is raised when a mnemonic lacks a valid width suffix.
type InvalidDataWidthError struct {
	Text string
}

func (err *InvalidDataWidthError) Error() string {
	return fmt.Sprintf("invalid data width in '%s': want a 'w' or 'd' suffix", err.Text)
}

// InvalidRegisterError is raised for a register name missing from the width's register file.
type InvalidRegisterError struct {
	Name  string
	Width isa.Width
}

func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf("invalid %s-word register '%s'", err.Width, err.Name)
}

// SyntaxError is raised for malformed lines, operands and directives.
type SyntaxError struct {
	Detail string
}

func (err *SyntaxError) Error() string {
	return "syntax error: " + err.Detail
}

// DuplicateLabelError is raised when a label or constant is defined twice.
type DuplicateLabelError struct {
	Name string
	// Previous is the 1-based line of the first definition.
	Previous int
}

func (err *DuplicateLabelError) Error() string {
	return fmt.Sprintf("label '%s' already defined on line %d", err.Name, err.Previous)
}

// UndefinedLabelError is raised in the second pass for an operand naming no known label.
type UndefinedLabelError struct {
	Name string
}

func (err *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label '%s'", err.Name)
}

// UnencodeableImmediateError is raised when an immediate does not fit its field.
type UnencodeableImmediateError struct {
	Detail string
	Value  uint64
}

func (err *UnencodeableImmediateError) Error() string {
	return fmt.Sprintf("unencodeable immediate %#x: %s", err.Value, err.Detail)
}

// Pass identifies which scan produced an error.
type Pass int

const (
	// PassLabels is the label discovery scan.
	PassLabels Pass = iota + 1
	// PassEmit is the code emission scan.
	PassEmit
)

func (p Pass) String() string {
	switch p {
	case PassLabels:
		return "pass 1"
	case PassEmit:
		return "pass 2"
	}
	return "pass ?"
}

// LineError attaches source context to an error raised while scanning a line.
type LineError struct {
	Pass Pass
	// Line is 1-based.
	Line int
	Text string
	Err  error
}

func (err *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", err.Line, err.Err)
}

func (err *LineError) Unwrap() error {
	return err.Err
}

// ErrorList is every diagnostic collected during a run, in source order.
type ErrorList []*LineError

func (list ErrorList) Error() string {
	switch len(list) {
	case 0:
		return "no errors"
	case 1:
		return list[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(list))
	for _, err := range list {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}

// add records err against a source line.
func (list *ErrorList) add(pass Pass, line int, text string, err error) {
	*list = append(*list, &LineError{Pass: pass, Line: line, Text: text, Err: err})
}

// Err returns the list as an error, or nil when it is empty.
func (list ErrorList) Err() error {
	if len(list) == 0 {
		return nil
	}
	return list
}
