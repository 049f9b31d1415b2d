package renumber

// RenumbererFactory is a function that creates a Renumberer
// This allows for dependency injection in tests
type RenumbererFactory func(opts Options) (Renumberer, error)

// Default factory that creates a real engine
var DefaultRenumbererFactory RenumbererFactory = func(opts Options) (Renumberer, error) {
	e, err := New(opts)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CurrentRenumbererFactory is the currently active factory
// This can be swapped in tests
var CurrentRenumbererFactory = DefaultRenumbererFactory

// SetRenumbererFactory sets a custom factory for dependency injection
func SetRenumbererFactory(factory RenumbererFactory) {
	CurrentRenumbererFactory = factory
}

// ResetRenumbererFactory resets to the default factory
func ResetRenumbererFactory() {
	CurrentRenumbererFactory = DefaultRenumbererFactory
}
