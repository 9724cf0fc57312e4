package viewer

import (
	"fmt"
	"strings"

	domain "github.com/molscope/molscope/internal/domain/structure"
)

// StatisticsText renders the statistics panel for one parsed structure as
// plain text, one metric per line. This is the text-only variant of the
// viewer's stats block, used by the CLI.
func StatisticsText(s *domain.Structure) string {
	if s == nil || s.Summary.Atoms == 0 {
		return "No molecule loaded"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Atoms: %d\n", s.Summary.Atoms)
	fmt.Fprintf(&b, "Residues: %d\n", s.Summary.Residues)
	fmt.Fprintf(&b, "Chains: %d\n", s.Summary.Chains)

	if s.Dimensions != [3]float64{} {
		fmt.Fprintf(&b, "Size: %.2f × %.2f × %.2f Å\n",
			s.Dimensions[0], s.Dimensions[1], s.Dimensions[2])
	}
	if elements := s.Elements(); len(elements) > 0 {
		fmt.Fprintf(&b, "Atom types: %d (%s)\n", len(elements), strings.Join(elements, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}
