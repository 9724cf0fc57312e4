package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domain "github.com/molscope/molscope/internal/domain/structure"
)

// newSummarizeCommand builds `molscope summarize <file.pdb>`: the counts
// only, no geometry.
func newSummarizeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <file.pdb>",
		Short: "Count atoms, residues, and chains in a PDB file",
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

			summary := domain.Summarize(text)
			return printResult(opts, summary, func() string {
				return fmt.Sprintf("Atoms: %d\nResidues: %d\nChains: %d",
					summary.Atoms, summary.Residues, summary.Chains)
			})
		},
	}
}
