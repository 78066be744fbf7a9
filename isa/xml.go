package isa

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// The hardware team publishes the register map as XML:
//
//	<lookup>
//	  <register-numbers>
//	    <register data_width="single" name="r1l">0x0</register>
//	  </register-numbers>
//	  <condition-codes>
//	    <code condition="a">0x1</code>
//	  </condition-codes>
//	</lookup>
type xmlLookup struct {
	XMLName    xml.Name       `xml:"lookup"`
	Registers  []xmlRegister  `xml:"register-numbers>register"`
	Conditions []xmlCondition `xml:"condition-codes>code"`
}

type xmlRegister struct {
	Width string `xml:"data_width,attr"`
	Name  string `xml:"name,attr"`
	Code  string `xml:",chardata"`
}

type xmlCondition struct {
	Condition string `xml:"condition,attr"`
	Code      string `xml:",chardata"`
}

// LoadLookupXML parses a register/condition description.
func LoadLookupXML(r io.Reader) (*Lookup, error) {
	var doc xmlLookup
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing lookup: %w", err)
	}

	single := make(map[string]uint32)
	double := make(map[string]uint32)
	for _, reg := range doc.Registers {
		var table map[string]uint32
		switch reg.Width {
		case "single":
			table = single
		case "double":
			table = double
		default:
			return nil, fmt.Errorf("register %q: unknown data width %q", reg.Name, reg.Width)
		}
		if reg.Name == "" {
			return nil, fmt.Errorf("%s-word register without a name", reg.Width)
		}
		if _, dup := table[reg.Name]; dup {
			return nil, fmt.Errorf("%s-word register %q defined more than once", reg.Width, reg.Name)
		}
		code, err := parseCode(reg.Code)
		if err != nil {
			return nil, fmt.Errorf("register %q: %w", reg.Name, err)
		}
		table[reg.Name] = code
	}

	conditions := make(map[string]uint32)
	for _, c := range doc.Conditions {
		if _, dup := conditions[c.Condition]; dup {
			return nil, fmt.Errorf("condition %q defined more than once", c.Condition)
		}
		code, err := parseCode(c.Code)
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", c.Condition, err)
		}
		conditions[c.Condition] = code
	}

	return NewLookup(single, double, conditions)
}

// LoadLookupFile reads a lookup description from disk.
func LoadLookupFile(path string) (*Lookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := LoadLookupXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// parseCode accepts 0x-prefixed hex, 0-prefixed octal and plain decimal.
func parseCode(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code %q", strings.TrimSpace(s))
	}
	return uint32(v), nil
}
