package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/molscope/molscope/internal/application/viewer"
	"github.com/molscope/molscope/internal/infrastructure/examples"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
	stypes "github.com/molscope/molscope/pkg/types/structure"
)

// newExamplesCommand builds `molscope examples [name]`: without arguments
// it lists the bundled examples, with a name it summarizes that example.
func newExamplesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "examples [name]",
		Short: "List bundled example structures, or summarize one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			// The CLI never auto-fetches or watches; it reads whatever
			// the directory holds right now.
			libCfg := cfg.Examples
			libCfg.AutoFetch = false
			libCfg.Watch = false

			lib, err := examples.NewLibrary(cmd.Context(), libCfg, logging.NewNopLogger())
			if err != nil {
				return err
			}
			defer lib.Close()

			if len(args) == 0 {
				entries := lib.List()
				return printResult(opts, entries, func() string {
					if len(entries) == 0 {
						return "no examples found in " + libCfg.Dir
					}
					lines := make([]string, 0, len(entries))
					for _, e := range entries {
						lines = append(lines, fmt.Sprintf("%s\t%d bytes", e.Name, e.Size))
					}
					return strings.Join(lines, "\n")
				})
			}

			svc := viewer.NewService(viewer.Deps{
				Logger:   logging.NewNopLogger(),
				Metrics:  prometheus.NewMetrics(),
				Examples: lib,
			})
			payload, err := svc.LoadExample(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(opts, payload.Info, func() string {
				return formatInfo(payload.Info)
			})
		},
	}
}

func formatInfo(info stypes.Info) string {
	return fmt.Sprintf("%s\nAtoms: %d\nResidues: %d\nChains: %d",
		info.Filename, info.Atoms, info.Residues, info.Chains)
}
