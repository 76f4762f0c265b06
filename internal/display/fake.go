package display

import "fmt"

// FakeTarget records every value written to it.
type FakeTarget struct {
	// Writes contains all values written, in order.
	Writes []string

	// WriteError, if set, will be returned by Write.
	WriteError error
}

// Write records the value.
func (f *FakeTarget) Write(value string) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, value)
	return nil
}

// Last returns the most recent write, or "" if none.
func (f *FakeTarget) Last() string {
	if len(f.Writes) == 0 {
		return ""
	}
	return f.Writes[len(f.Writes)-1]
}

// FakeSurface resolves targets from a fixed map.
type FakeSurface struct {
	// Targets maps names to targets. Names not present fail to resolve.
	Targets map[string]*FakeTarget
}

// NewFakeSurface creates a surface with a single target under the given name.
func NewFakeSurface(name string) (*FakeSurface, *FakeTarget) {
	target := &FakeTarget{}
	return &FakeSurface{Targets: map[string]*FakeTarget{name: target}}, target
}

// Resolve returns the named target or an error if absent.
func (f *FakeSurface) Resolve(name string) (Target, error) {
	target, ok := f.Targets[name]
	if !ok {
		return nil, fmt.Errorf("target %q not found", name)
	}
	return target, nil
}
