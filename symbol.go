package uiexpr

import "math"

type symbolKind int8

const (
	symbolConstant symbolKind = iota
	symbolVariable
	symbolAccessor
)

func (k symbolKind) String() string {
	switch k {
	case symbolConstant:
		return "constant"
	case symbolVariable:
		return "variable"
	case symbolAccessor:
		return "accessor"
	}
	return "symbol"
}

// symbol is one named entry of the table. Exactly one representation is
// active, selected by kind: val for constants and variables, get/set
// for accessors. The engine never owns the value behind an accessor;
// it holds only the two callbacks.
type symbol struct {
	kind symbolKind
	val  float64
	get  func() float64
	set  func(float64)
}

// symtab is the per-engine symbol store. Keeping every kind in one map
// makes the occupancy invariant structural: a name can never be two
// kinds at once, so resolution order cannot matter.
type symtab struct {
	names map[string]*symbol
}

func newSymtab() *symtab {
	t := &symtab{names: make(map[string]*symbol)}
	t.setConstant("pi", math.Pi)
	t.setConstant("tau", 2*math.Pi)
	t.setConstant("phi", math.Phi)
	t.setConstant("e", math.E)
	t.setConstant("true", 1)
	t.setConstant("false", 0)
	return t
}

// setConstant installs a constant, replacing any previous entry. Only
// engine construction calls this; afterward the constant set is fixed.
func (t *symtab) setConstant(name string, val float64) {
	t.names[name] = &symbol{kind: symbolConstant, val: val}
}

// declare creates a variable. The name must not exist in any namespace.
func (t *symtab) declare(name string, val float64) error {
	if s, ok := t.names[name]; ok {
		return &DuplicateSymbolError{Name: name, Existing: s.kind}
	}
	t.names[name] = &symbol{kind: symbolVariable, val: val}
	return nil
}

// assign writes through a variable slot or an accessor's setter.
func (t *symtab) assign(name string, val float64) error {
	s, ok := t.names[name]
	if !ok {
		return &UnknownSymbolError{Name: name}
	}
	switch s.kind {
	case symbolConstant:
		return &ConstantAssignmentError{Name: name}
	case symbolAccessor:
		s.set(val)
	default:
		s.val = val
	}
	return nil
}

// resolve returns the current value of a name of any kind.
func (t *symtab) resolve(name string) (float64, error) {
	s, ok := t.names[name]
	if !ok {
		return 0, &UnknownSymbolError{Name: name}
	}
	if s.kind == symbolAccessor {
		return s.get(), nil
	}
	return s.val, nil
}

// lookupConstant reports the value of name only if it is a constant.
// Arithmetic-only parsing uses this so that variables and accessors are
// never consulted in that mode.
func (t *symtab) lookupConstant(name string) (float64, bool) {
	s, ok := t.names[name]
	if !ok || s.kind != symbolConstant {
		return 0, false
	}
	return s.val, true
}

// bind installs an accessor. The name must not exist in any namespace.
func (t *symtab) bind(name string, get func() float64, set func(float64)) error {
	if s, ok := t.names[name]; ok {
		return &DuplicateSymbolError{Name: name, Existing: s.kind}
	}
	t.names[name] = &symbol{kind: symbolAccessor, get: get, set: set}
	return nil
}

// unbind removes an accessor. Unbinding a name that is absent or held
// by a constant or variable is a no-op.
func (t *symtab) unbind(name string) {
	if s, ok := t.names[name]; ok && s.kind == symbolAccessor {
		delete(t.names, name)
	}
}

// unbindAll removes every accessor, leaving constants and variables.
func (t *symtab) unbindAll() {
	for name, s := range t.names {
		if s.kind == symbolAccessor {
			delete(t.names, name)
		}
	}
}
