package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordLine(t *testing.T) {
	rec, ok := ParseRecordLine(lineAlaN)
	require.True(t, ok)
	assert.Equal(t, "1", rec.ResidueSeq)
	assert.Equal(t, byte('A'), rec.ChainID)
}

func TestParseRecordLineNonQualifying(t *testing.T) {
	for _, line := range []string{
		"",
		"END",
		"HEADER    PLANT PROTEIN",
		"TER     605      LEU A  46",
		"ATOM", // shorter than the six-column record name field
	} {
		_, ok := ParseRecordLine(line)
		assert.False(t, ok, "line %q should not qualify", line)
	}
}

func TestParseRecordLineTruncated(t *testing.T) {
	// Qualifies but ends before the chain column.
	_, ok := ParseRecordLine("ATOM      3  C")
	assert.False(t, ok)

	// Ends exactly at the chain column: chain readable, residue span empty.
	rec, ok := ParseRecordLine("ATOM      4  CA  ALA B")
	require.True(t, ok)
	assert.Equal(t, byte('B'), rec.ChainID)
	assert.Equal(t, "", rec.ResidueSeq)
}

func TestParseAtomLine(t *testing.T) {
	atom, ok := ParseAtomLine(lineAlaN)
	require.True(t, ok)

	assert.Equal(t, 1, atom.Serial)
	assert.Equal(t, "N", atom.Name)
	assert.Equal(t, "ALA", atom.ResidueName)
	assert.Equal(t, byte('A'), atom.ChainID)
	assert.Equal(t, "1", atom.ResidueSeq)
	assert.InDelta(t, 11.104, atom.X, 1e-9)
	assert.InDelta(t, 13.207, atom.Y, 1e-9)
	assert.InDelta(t, 2.500, atom.Z, 1e-9)
	assert.InDelta(t, 1.00, atom.Occupancy, 1e-9)
	assert.InDelta(t, 20.00, atom.BFactor, 1e-9)
	assert.Equal(t, "N", atom.Element)
	assert.False(t, atom.Het)
	assert.True(t, atom.HasCoords)
}

func TestParseAtomLineHetatm(t *testing.T) {
	atom, ok := ParseAtomLine("HETATM  501  O   HOH A 101      10.000  10.000  10.000  1.00 30.00           O")
	require.True(t, ok)
	assert.True(t, atom.Het)
	assert.Equal(t, "HOH", atom.ResidueName)
	assert.Equal(t, "101", atom.ResidueSeq)
}

func TestParseAtomLineTruncated(t *testing.T) {
	atom, ok := ParseAtomLine("ATOM      3  C")
	require.True(t, ok)
	assert.Equal(t, 3, atom.Serial)
	assert.Equal(t, "C", atom.Name)
	assert.False(t, atom.HasCoords)
	assert.Zero(t, atom.X)
	assert.Equal(t, byte(0), atom.ChainID)
}

func TestParseAtomLineMalformedNumbers(t *testing.T) {
	atom, ok := ParseAtomLine("ATOM     ab  N   ALA A   1      xx.xxx  13.207   2.500  1.00 yy.yy           N")
	require.True(t, ok)
	assert.Zero(t, atom.Serial)
	assert.Zero(t, atom.X)
	assert.InDelta(t, 13.207, atom.Y, 1e-9)
	assert.Zero(t, atom.BFactor)
}

func TestField(t *testing.T) {
	assert.Equal(t, "abc", field("abcdef", 1, 3))
	assert.Equal(t, "def", field("abcdef", 4, 6))
	assert.Equal(t, "def", field("abcdef", 4, 10)) // clamped
	assert.Equal(t, "", field("abc", 5, 7))        // past end
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb\n"))
}
