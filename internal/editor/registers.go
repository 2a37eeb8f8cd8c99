package editor

import (
	"slices"
	"unicode"
)

// Well-known register names.
const (
	RegisterDefault rune = '"'
	RegisterSearch  rune = '/'
	RegisterPipe    rune = '|'
	RegisterNull    rune = '_'
)

// Registers stores named lists of strings.
type Registers interface {
	// Get returns the values of register name, or nil if it is empty.
	Get(name rune) []string
	// Set replaces the values of register name.
	Set(name rune, values []string)
}

// RegisterMap is an in-memory Registers. Register names are case
// insensitive. The null register discards writes and reads as empty.
type RegisterMap struct {
	values map[rune][]string
}

var _ Registers = (*RegisterMap)(nil)

// NewRegisterMap creates an empty register store.
func NewRegisterMap() *RegisterMap {
	return &RegisterMap{values: make(map[rune][]string)}
}

// Get returns a copy of the values of register name.
func (r *RegisterMap) Get(name rune) []string {
	if name == RegisterNull {
		return nil
	}
	return slices.Clone(r.values[unicode.ToLower(name)])
}

// Set stores a copy of values in register name.
func (r *RegisterMap) Set(name rune, values []string) {
	if name == RegisterNull {
		return
	}
	if len(values) == 0 {
		delete(r.values, unicode.ToLower(name))
		return
	}
	r.values[unicode.ToLower(name)] = slices.Clone(values)
}

// Names returns the names of the non-empty registers, sorted.
func (r *RegisterMap) Names() []rune {
	names := make([]rune, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
