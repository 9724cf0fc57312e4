package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/molscope/molscope/internal/application/viewer"
	domain "github.com/molscope/molscope/internal/domain/structure"
)

// infoOutput is the JSON shape of `molscope info`.
type infoOutput struct {
	Filename     string         `json:"filename"`
	Atoms        int            `json:"atoms"`
	Residues     int            `json:"residues"`
	Chains       int            `json:"chains"`
	Dimensions   [3]float64     `json:"dimensions"`
	ResidueNames []string       `json:"residue_names"`
	Elements     map[string]int `json:"elements"`
	BFactorMin   float64        `json:"bfactor_min"`
	BFactorMax   float64        `json:"bfactor_max"`
}

// newInfoCommand builds `molscope info <file.pdb>`: the full statistics
// panel for one structure.
func newInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.pdb>",
		Short: "Show the full statistics panel for a PDB file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			text, err := domain.DecodeText(data)
			if err != nil {
				return err
			}

			s := domain.ParseStructure(text)
			out := infoOutput{
				Filename:     filepath.Base(path),
				Atoms:        s.Summary.Atoms,
				Residues:     s.Summary.Residues,
				Chains:       s.Summary.Chains,
				Dimensions:   s.Dimensions,
				ResidueNames: s.ResidueNames,
				Elements:     s.ElementCounts,
				BFactorMin:   s.BFactorMin,
				BFactorMax:   s.BFactorMax,
			}
			return printResult(opts, out, func() string {
				return viewer.StatisticsText(s)
			})
		},
	}
}
