// Package tables registers the MEDS input table definitions with the core
// registry. Import it for side effects wherever input files are read.
package tables

// Table keys of the three inputs.
const (
	KeyCodes = "codes"
	KeyData  = "data"
	KeySplit = "split"
)
