package structure

import (
	stypes "github.com/molscope/molscope/pkg/types/structure"
)

// residueKey identifies a residue by the composite of its sequence field and
// chain. A struct key avoids the accidental-collision hazard of string
// concatenation.
type residueKey struct {
	seq   string
	chain byte
}

// Summarize computes aggregate counts over the full text of a PDB file:
// the number of qualifying ATOM/HETATM lines, distinct residues, and
// distinct chains.
//
// Summarize is a pure function: no I/O, no shared state, safe to invoke
// concurrently with independent inputs. It never fails — malformed or
// truncated records are skipped rather than reported. The atom count
// increments for every qualifying line regardless of whether the identity
// columns could be read; residue/chain bookkeeping alone is skipped for
// truncated lines.
func Summarize(text string) stypes.Summary {
	var atoms int
	residues := make(map[residueKey]struct{})
	chains := make(map[byte]struct{})

	for _, line := range splitLines(text) {
		if !qualifies(line) {
			continue
		}
		atoms++

		rec, ok := ParseRecordLine(line)
		if !ok {
			continue
		}
		residues[residueKey{seq: rec.ResidueSeq, chain: rec.ChainID}] = struct{}{}
		chains[rec.ChainID] = struct{}{}
	}

	return stypes.Summary{
		Atoms:    atoms,
		Residues: len(residues),
		Chains:   len(chains),
	}
}
