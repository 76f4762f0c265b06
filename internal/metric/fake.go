package metric

// Reading is a single scripted sample for the fake source.
type Reading struct {
	Value       int
	Unavailable bool
}

// FakeSource is a test double that returns scripted readings.
type FakeSource struct {
	// Readings contains scripted samples. Each call to Sample consumes
	// the next reading; when exhausted, the last one repeats.
	Readings []Reading

	// index tracks current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeSource creates a FakeSource with the given readings.
func NewFakeSource(readings ...Reading) *FakeSource {
	return &FakeSource{Readings: readings}
}

// Sample returns the next scripted reading. With no readings configured,
// the source is permanently unavailable.
func (f *FakeSource) Sample() (int, error) {
	if len(f.Readings) == 0 {
		return 0, ErrUnavailable
	}

	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}

	if r.Unavailable {
		return 0, ErrUnavailable
	}
	return r.Value, nil
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the source to the beginning of its readings.
func (f *FakeSource) Reset() {
	f.index = 0
	f.Closed = false
}
