package stop

// FakeNavigator records navigations for test assertions.
type FakeNavigator struct {
	// Destinations contains every destination navigated to, in order.
	Destinations []string

	// NavigateError, if set, will be returned by Navigate.
	NavigateError error
}

// Navigate records the destination.
func (f *FakeNavigator) Navigate(destination string) error {
	if f.NavigateError != nil {
		return f.NavigateError
	}
	f.Destinations = append(f.Destinations, destination)
	return nil
}
