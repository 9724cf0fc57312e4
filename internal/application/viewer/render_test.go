package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/molscope/molscope/internal/domain/structure"
)

func TestStatisticsText(t *testing.T) {
	s := domain.ParseStructure(twoAtomPDB)

	text := StatisticsText(s)
	assert.Contains(t, text, "Atoms: 2")
	assert.Contains(t, text, "Residues: 1")
	assert.Contains(t, text, "Chains: 1")
	assert.Contains(t, text, "Size: 1.46 × 0.00 × 0.00 Å")
	assert.Contains(t, text, "Atom types: 2 (C, N)")
}

func TestStatisticsTextNoMolecule(t *testing.T) {
	assert.Equal(t, "No molecule loaded", StatisticsText(nil))
	assert.Equal(t, "No molecule loaded", StatisticsText(domain.ParseStructure("")))
	assert.Equal(t, "No molecule loaded", StatisticsText(domain.ParseStructure("REMARK only\n")))
}

func TestStatisticsTextOmitsSizeWithoutCoordinates(t *testing.T) {
	// Truncated line: qualifies as an atom but carries no coordinates.
	s := domain.ParseStructure("ATOM      1  N\n")

	text := StatisticsText(s)
	assert.Contains(t, text, "Atoms: 1")
	assert.NotContains(t, text, "Size:")
}
