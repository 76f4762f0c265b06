package button

import "errors"

// FakeReader is a test double that returns scripted button states.
type FakeReader struct {
	// States contains scripted pressed values to return.
	// Each call to Pressed() consumes the next state.
	// If states are exhausted, the last state repeats.
	States []bool

	// index tracks current position in States
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Pressed()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given states.
func NewFakeReader(states ...bool) *FakeReader {
	return &FakeReader{States: states}
}

// Pressed returns the next scripted state.
func (f *FakeReader) Pressed() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.States) == 0 {
		return false, errors.New("no states configured")
	}

	state := f.States[f.index]
	if f.index < len(f.States)-1 {
		f.index++
	}

	return state, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of states.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}
