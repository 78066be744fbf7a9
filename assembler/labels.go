package assembler

import (
	"sort"
)

// LabelKind says how a label's value is used.
type LabelKind int

const (
	// LabelValue is an address or constant, substituted where referenced.
	LabelValue LabelKind = iota
	// LabelData is a reserved block placed after the code.
	LabelData
)

func (k LabelKind) String() string {
	if k == LabelData {
		return "data"
	}
	return "value"
}

// Label is a named value from the source.
type Label struct {
	Name  string
	Kind  LabelKind
	Value uint32
	// Size is the block size in address units, for data labels.
	Size uint32
	// Line is where the label was defined.
	Line     int
	Resolved bool
}

// LabelTable holds every label defined in a source unit.
type LabelTable struct {
	labels map[string]*Label
	order  []*Label
}

// NewLabelTable returns an empty table.
func NewLabelTable() *LabelTable {
	return &LabelTable{labels: make(map[string]*Label)}
}

// define adds a label, refusing a name that is already taken.
func (t *LabelTable) define(l *Label) error {
	if prev, ok := t.labels[l.Name]; ok {
		return &DuplicateLabelError{Name: l.Name, Previous: prev.Line}
	}
	t.labels[l.Name] = l
	t.order = append(t.order, l)
	return nil
}

// Lookup returns the resolved value of a label.
func (t *LabelTable) Lookup(name string) (uint32, bool) {
	l, ok := t.labels[name]
	if !ok || !l.Resolved {
		return 0, false
	}
	return l.Value, true
}

// Get returns the label record for name.
func (t *LabelTable) Get(name string) (*Label, bool) {
	l, ok := t.labels[name]
	return l, ok
}

// Len returns the number of labels.
func (t *LabelTable) Len() int {
	return len(t.order)
}

// Labels returns every label sorted by name.
func (t *LabelTable) Labels() []*Label {
	out := append([]*Label(nil), t.order...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Data returns the data labels in the order their blocks are laid out.
func (t *LabelTable) Data() []*Label {
	var out []*Label
	for _, l := range t.order {
		if l.Kind == LabelData {
			out = append(out, l)
		}
	}
	return out
}

// finalize places data blocks one after another from end, in definition
// order, and returns the address following the last block.
func (t *LabelTable) finalize(end uint32) uint32 {
	for _, l := range t.Data() {
		l.Value = end
		l.Resolved = true
		end += l.Size
	}
	return end
}
