package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/chunker"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate FILE|-",
	Short: "Print a document with every line numbered",
	Long: `Print the document with a zero-padded line number in front of every
line, in the same form sections use. Pass - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	annotated := chunker.Annotate(doc.Text)

	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"name":      doc.Name,
			"lines":     len(doc.Lines()),
			"annotated": annotated,
		})
	}
	if annotated != "" {
		fmt.Fprintln(cmd.OutOrStdout(), annotated)
	}
	return nil
}
