// Package structure implements parsing and summarization of PDB-format
// molecular structure text. PDB files use fixed-column fields; all column
// references in this package follow the PDB convention of 1-indexed,
// inclusive ranges, translated to Go slices at the last moment.
//
// Parsing is deliberately permissive: uploaded files are of unknown rigor,
// so truncated or malformed records degrade to empty/zero fields instead of
// failing the whole parse.
package structure

import (
	"strconv"
	"strings"
)

// Fixed column positions (1-indexed, inclusive) of the ATOM/HETATM record
// fields this package reads.
const (
	colSerialStart  = 7
	colSerialEnd    = 11
	colNameStart    = 13
	colNameEnd      = 16
	colResNameStart = 18
	colResNameEnd   = 20
	colChain        = 22
	colResSeqStart  = 23
	colResSeqEnd    = 27 // includes the insertion code column
	colXStart       = 31
	colXEnd         = 38
	colYStart       = 39
	colYEnd         = 46
	colZStart       = 47
	colZEnd         = 54
	colOccStart     = 55
	colOccEnd       = 60
	colBFactorStart = 61
	colBFactorEnd   = 66
	colElementStart = 77
	colElementEnd   = 78
)

// Record carries the residue/chain identity fields of one qualifying line.
// ResidueSeq is the trimmed text of columns 23-27 used verbatim — insertion
// codes and leading zeros participate in identity as literal characters.
// ChainID is the untrimmed character at column 22; a space is a valid,
// distinct chain identifier.
type Record struct {
	ResidueSeq string
	ChainID    byte
}

// Atom is the full structured form of one ATOM/HETATM line, with the fields
// the viewer surfaces (hover info, B-factor coloring, statistics panel).
// Numeric fields parse permissively: malformed numbers stay zero.
type Atom struct {
	Serial      int
	Name        string
	ResidueName string
	ChainID     byte
	ResidueSeq  string
	X, Y, Z     float64
	Occupancy   float64
	BFactor     float64
	Element     string

	// Het marks a HETATM record (heteroatom, e.g. ligand or water).
	Het bool

	// HasCoords reports whether the line was long enough to contain the
	// coordinate columns. Atoms without coordinates are excluded from
	// bounding-box computation.
	HasCoords bool
}

// qualifies reports whether line is a structural record. Only lines whose
// record-name field begins with ATOM or HETATM count; anything else
// (HEADER, TER, END, comments) is skipped. The record-name field spans six
// columns, so a line shorter than six characters can never qualify.
func qualifies(line string) bool {
	if len(line) < 6 {
		return false
	}
	return strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM")
}

// field returns the text at 1-indexed inclusive columns [lo, hi], clamped
// to the line's length. A span entirely past the end yields "".
func field(line string, lo, hi int) string {
	if lo > len(line) {
		return ""
	}
	if hi > len(line) {
		hi = len(line)
	}
	return line[lo-1 : hi]
}

// ParseRecordLine extracts the residue/chain identity columns from one line.
// It returns false when the line is not a qualifying structural record or is
// too short to contain the chain column. A short residue span is clamped, so
// ResidueSeq may legitimately be empty on a truncated record.
func ParseRecordLine(line string) (Record, bool) {
	if !qualifies(line) {
		return Record{}, false
	}
	if len(line) < colChain {
		return Record{}, false
	}
	return Record{
		ResidueSeq: strings.TrimSpace(field(line, colResSeqStart, colResSeqEnd)),
		ChainID:    line[colChain-1],
	}, true
}

// ParseAtomLine extracts the full atom record from one line. It returns
// false only for non-qualifying lines; a qualifying line always yields an
// Atom, however truncated.
func ParseAtomLine(line string) (Atom, bool) {
	if !qualifies(line) {
		return Atom{}, false
	}

	a := Atom{
		Name:        strings.TrimSpace(field(line, colNameStart, colNameEnd)),
		ResidueName: strings.TrimSpace(field(line, colResNameStart, colResNameEnd)),
		ResidueSeq:  strings.TrimSpace(field(line, colResSeqStart, colResSeqEnd)),
		Element:     strings.TrimSpace(field(line, colElementStart, colElementEnd)),
		Het:         strings.HasPrefix(line, "HETATM"),
		HasCoords:   len(line) >= colZEnd,
	}
	if len(line) >= colChain {
		a.ChainID = line[colChain-1]
	}

	if n, err := strconv.Atoi(strings.TrimSpace(field(line, colSerialStart, colSerialEnd))); err == nil {
		a.Serial = n
	}
	a.X = parseCoord(field(line, colXStart, colXEnd))
	a.Y = parseCoord(field(line, colYStart, colYEnd))
	a.Z = parseCoord(field(line, colZStart, colZEnd))
	a.Occupancy = parseCoord(field(line, colOccStart, colOccEnd))
	a.BFactor = parseCoord(field(line, colBFactorStart, colBFactorEnd))

	return a, true
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// splitLines splits text on "\n" and strips a trailing "\r" from each line
// so both line-ending conventions parse identically. A trailing newline
// produces no extra record.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
