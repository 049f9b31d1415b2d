package types

// RenameResult holds the outcome of renumbering a single file
type RenameResult struct {
	Sequence        string `json:"sequence"`         // Sequence key, e.g. "weta#.jpg"
	SourcePath      string `json:"source_path"`      // Original file
	DestinationPath string `json:"destination_path"` // Final location of the renumbered file
	Number          int    `json:"number"`           // Newly assigned number
	Unchanged       bool   `json:"unchanged"`        // Name did not change
	Applied         bool   `json:"applied"`          // False for dry runs
}
