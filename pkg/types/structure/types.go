// Package structure defines the boundary value types shared between the
// domain layer, the HTTP interface, and the CLI. Only plain data lives here;
// parsing logic belongs to internal/domain/structure.
package structure

import "time"

// Summary holds the aggregate counts computed from one PDB text blob.
// It is immutable once produced and recomputed from scratch on every parse.
type Summary struct {
	// Atoms is the number of qualifying ATOM/HETATM lines.
	Atoms int `json:"atoms"`

	// Residues is the number of distinct (residue sequence, chain) pairs.
	Residues int `json:"residues"`

	// Chains is the number of distinct chain identifiers.
	Chains int `json:"chains"`
}

// IsEmpty reports whether the summary counted no qualifying lines. A zero
// summary is a valid result, distinguishable from "no file loaded yet" only
// by the caller's own state.
func (s Summary) IsEmpty() bool {
	return s.Atoms == 0
}

// Info is the upload/example response metadata block: the summary plus the
// originating filename.
type Info struct {
	Filename string `json:"filename"`
	Atoms    int    `json:"atoms"`
	Residues int    `json:"residues"`
	Chains   int    `json:"chains"`
}

// Payload is the full response for an accepted upload or a loaded example:
// the metadata block plus the raw PDB text for the client-side renderer.
type Payload struct {
	Info    Info   `json:"info"`
	Content string `json:"content"`
}

// ExampleEntry describes one bundled example structure.
type ExampleEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// UploadRecord is one row of upload history.
type UploadRecord struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Digest    string    `json:"digest"`
	ObjectKey string    `json:"object_key"`
	Atoms     int       `json:"atoms"`
	Residues  int       `json:"residues"`
	Chains    int       `json:"chains"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewStyle selects the client-side representation a payload is intended
// for. The server does not render; the enum exists so stored metadata and
// the CLI can label outputs consistently with the viewer.
type ViewStyle string

const (
	ViewBallStick ViewStyle = "ball_stick"
	ViewRibbon    ViewStyle = "ribbon"
)

// ColorMode selects the client-side color mapping.
type ColorMode string

const (
	ColorByAtom    ColorMode = "atom"
	ColorByResidue ColorMode = "residue"
	ColorByBFactor ColorMode = "bfactor"
)
