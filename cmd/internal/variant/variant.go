// Package variant lists the medium and data link layer variant names
// accepted by the CLI commands, for usage messages.
//
// The actual name -> constructor registries live in the root package
// (pardll.NewMedium, pardll.NewDataLinkLayer); this package only mirrors
// the names so both CLI commands print identical, accurate usage text
// without hardcoding the list twice.
package variant

// MediumNames are the medium variant names accepted on the command line.
var MediumNames = []string{"Perfect", "LowNoise"}

// DataLinkLayerNames are the data link layer variant names accepted on
// the command line.
var DataLinkLayerNames = []string{"PAR"}
