package uci

import (
	"fmt"
	"sync"
)

// EnumMember is one named, valued member of an open enumeration.
type EnumMember struct {
	Name  string
	Value uint64
}

/*
Enum is a runtime-open, integer-valued enumeration, generalizing the
source's DynIntEnum (original_source/new_python_script/uci/utils.py) the way
spec.md §9 describes: a registry pairing a numeric value with its display
name, rather than a compile-time closed enum.

When no member matches, Lookup returns a member named Unknown that carries
the looked-up value itself; the miss is logged
exactly once per distinct unknown value, mirroring the teacher's "logged
once, execution continues" pattern used for unrecognized ASDU fields.
*/
type Enum struct {
	mu       sync.RWMutex
	name     string
	byValue  map[uint64]EnumMember
	byName   map[string]EnumMember
	unknown  uint64
	warnedOn map[uint64]bool
}

// NewEnum creates an empty open enum with the given display name.
// unknownValue is stored on the Enum but Lookup does not use it: a miss
// returns the looked-up value under the name Unknown.
func NewEnum(name string, unknownValue uint64) *Enum {
	return &Enum{
		name:     name,
		byValue:  make(map[uint64]EnumMember),
		byName:   make(map[string]EnumMember),
		unknown:  unknownValue,
		warnedOn: make(map[uint64]bool),
	}
}

// Add registers a new member. Both the name and the value must be unique
// within the enum, per spec.md §3.4.
func (e *Enum) Add(name string, value uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.byName[name]; ok {
		return fmt.Errorf("enum %s: duplicate name %q", e.name, name)
	}
	if m, ok := e.byValue[value]; ok {
		return fmt.Errorf("enum %s: duplicate value %d (already %q)", e.name, value, m.Name)
	}
	m := EnumMember{Name: name, Value: value}
	e.byName[name] = m
	e.byValue[value] = m
	return nil
}

// MustAdd is Add, panicking on error; used for core enum tables populated at
// package init from literal tables where a collision is a programmer error.
func (e *Enum) MustAdd(name string, value uint64) {
	if err := e.Add(name, value); err != nil {
		panic(err)
	}
}

// Lookup resolves a wire value to its member, returning an Unknown member
// (Name "Unknown", Value == value) when nothing matches. The first miss for
// a given value is logged at Warn; subsequent misses for the same value are
// silent to avoid log floods on a noisy link.
func (e *Enum) Lookup(value uint64) EnumMember {
	e.mu.RLock()
	m, ok := e.byValue[value]
	e.mu.RUnlock()
	if ok {
		return m
	}
	e.mu.Lock()
	if !e.warnedOn[value] {
		e.warnedOn[value] = true
		e.mu.Unlock()
		log().WithField("enum", e.name).WithField("value", value).Warn("unrecognized enum value, using Unknown")
	} else {
		e.mu.Unlock()
	}
	return EnumMember{Name: "Unknown", Value: value}
}

// ByName resolves a member by name.
func (e *Enum) ByName(name string) (EnumMember, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.byName[name]
	return m, ok
}

// IsUnknown reports whether a member is the Unknown sentinel.
func (m EnumMember) IsUnknown() bool { return m.Name == "Unknown" }

// Extend merges another enum's members into this one (an addin extending a
// core enum, spec.md §3.4/§9). It never mutates members already present; a
// name or value collision with an existing, different member is rejected
// and the original enum is left completely unchanged (spec.md §8.1 property
// 6: "all names and values of the original enum are unchanged").
func (e *Enum) Extend(other *Enum) error {
	other.mu.RLock()
	additions := make([]EnumMember, 0, len(other.byValue))
	for _, m := range other.byValue {
		additions = append(additions, m)
	}
	other.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, m := range additions {
		if existing, ok := e.byName[m.Name]; ok {
			if existing.Value == m.Value {
				continue
			}
			return fmt.Errorf("enum %s: extension name collision %q", e.name, m.Name)
		}
		if existing, ok := e.byValue[m.Value]; ok {
			if existing.Name == m.Name {
				continue
			}
			return fmt.Errorf("enum %s: extension value collision %d", e.name, m.Value)
		}
	}
	for _, m := range additions {
		e.byName[m.Name] = m
		e.byValue[m.Value] = m
	}
	return nil
}

// Members returns a snapshot of all registered members.
func (e *Enum) Members() []EnumMember {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]EnumMember, 0, len(e.byValue))
	for _, m := range e.byValue {
		out = append(out, m)
	}
	return out
}
