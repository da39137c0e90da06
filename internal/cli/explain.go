package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/mcp"
)

var explainToolsCmd = &cobra.Command{
	Use:   "explain-tools",
	Short: "Describe the section tools offered to assistants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if jsonOutput {
			return printJSON(cmd, mcp.Tools)
		}
		w := cmd.OutOrStdout()
		for _, t := range mcp.Tools {
			fmt.Fprintf(w, "%s\n  %s\n", t.Name, t.Description)
		}
		fmt.Fprintf(w, "\nSections hold at most %d lines and share %d lines with the previous one.\n",
			cfg.MaxLines, cfg.Overlap)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainToolsCmd)
}
