package structure

import (
	"sort"

	stypes "github.com/molscope/molscope/pkg/types/structure"
)

// Bounds is an axis-aligned bounding box in the VTK layout:
// [xmin, xmax, ymin, ymax, zmin, zmax].
type Bounds [6]float64

// Structure is the parsed form of one PDB text blob: the atom table plus the
// derived metadata the viewer displays alongside the 3D scene.
type Structure struct {
	Atoms   []Atom
	Summary stypes.Summary

	// Bounds and Dimensions (Å) cover atoms that carried coordinate
	// columns; both are zero when no such atom exists.
	Bounds     Bounds
	Dimensions [3]float64

	// ResidueNames is the sorted set of distinct residue names (column
	// 18-20), e.g. ALA, HOH.
	ResidueNames []string

	// ElementCounts maps element symbol to atom count. Atoms whose element
	// column is absent are keyed by "".
	ElementCounts map[string]int

	// BFactorMin and BFactorMax span the per-atom temperature factors.
	// Valid only when Summary.Atoms > 0.
	BFactorMin float64
	BFactorMax float64
}

// ParseStructure parses the full text of a PDB file into a Structure. Like
// Summarize it is pure and never fails; an input with no qualifying lines
// yields a Structure with an empty atom table and a zero summary.
func ParseStructure(text string) *Structure {
	s := &Structure{
		Summary:       Summarize(text),
		ElementCounts: make(map[string]int),
	}

	resNames := make(map[string]struct{})
	first := true
	firstB := true

	for _, line := range splitLines(text) {
		atom, ok := ParseAtomLine(line)
		if !ok {
			continue
		}
		s.Atoms = append(s.Atoms, atom)

		if atom.ResidueName != "" {
			resNames[atom.ResidueName] = struct{}{}
		}
		s.ElementCounts[atom.Element]++

		if firstB {
			s.BFactorMin, s.BFactorMax = atom.BFactor, atom.BFactor
			firstB = false
		} else {
			if atom.BFactor < s.BFactorMin {
				s.BFactorMin = atom.BFactor
			}
			if atom.BFactor > s.BFactorMax {
				s.BFactorMax = atom.BFactor
			}
		}

		if !atom.HasCoords {
			continue
		}
		if first {
			s.Bounds = Bounds{atom.X, atom.X, atom.Y, atom.Y, atom.Z, atom.Z}
			first = false
			continue
		}
		s.Bounds[0] = min(s.Bounds[0], atom.X)
		s.Bounds[1] = max(s.Bounds[1], atom.X)
		s.Bounds[2] = min(s.Bounds[2], atom.Y)
		s.Bounds[3] = max(s.Bounds[3], atom.Y)
		s.Bounds[4] = min(s.Bounds[4], atom.Z)
		s.Bounds[5] = max(s.Bounds[5], atom.Z)
	}

	s.Dimensions = [3]float64{
		s.Bounds[1] - s.Bounds[0],
		s.Bounds[3] - s.Bounds[2],
		s.Bounds[5] - s.Bounds[4],
	}

	s.ResidueNames = make([]string, 0, len(resNames))
	for name := range resNames {
		s.ResidueNames = append(s.ResidueNames, name)
	}
	sort.Strings(s.ResidueNames)

	return s
}

// Elements returns the sorted distinct element symbols present in the
// structure, excluding atoms with no element column.
func (s *Structure) Elements() []string {
	out := make([]string, 0, len(s.ElementCounts))
	for e := range s.ElementCounts {
		if e != "" {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}
