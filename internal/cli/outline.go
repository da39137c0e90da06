package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/loader"
)

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the heading outline of a document",
	Long: `Print the headings found while loading the document (Markdown, HTML
and DOCX headings, PDF page starts) with the line each one starts on.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		outline := doc.Outline
		if outline == nil {
			outline = []loader.Heading{}
		}
		return printJSON(cmd, map[string]any{"name": doc.Name, "outline": outline})
	}

	w := cmd.OutOrStdout()
	if len(doc.Outline) == 0 {
		fmt.Fprintln(w, "No headings found.")
		return nil
	}
	for _, h := range doc.Outline {
		indent := strings.Repeat("  ", max(h.Level-1, 0))
		fmt.Fprintf(w, "%s%s (line %d)\n", indent, h.Title, h.Line)
	}
	return nil
}
