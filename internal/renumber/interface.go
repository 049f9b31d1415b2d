package renumber

// Renumberer defines the interface for renumbering operations
// This allows the CLI to be tested without touching real directories
type Renumberer interface {
	// Renumber renumbers every sequence in srcDir
	Renumber(srcDir string) (*Result, error)
}

// Ensure Engine implements the Renumberer interface
var _ Renumberer = (*Engine)(nil)
