package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/chunker"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk FILE|-",
	Short: "Split a document into overlapping sections",
	Long: `Split the document into windows of at most --max-lines lines, each
sharing --overlap lines with the previous one. Without the flags the
configured CHUNK_MAX_LINES and CHUNK_OVERLAP are used.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().Int("max-lines", 0, "lines per section (0 = configured value)")
	chunkCmd.Flags().Int("overlap", -1, "lines shared with the previous section (-1 = configured value)")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	chunkCfg := cfg.ChunkConfig()
	if n, _ := cmd.Flags().GetInt("max-lines"); n != 0 {
		chunkCfg.MaxLines = n
	}
	if n, _ := cmd.Flags().GetInt("overlap"); n != -1 {
		chunkCfg.Overlap = n
	}
	if err := chunkCfg.Validate(); err != nil {
		return err
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	chunks, err := chunker.ChunkText(doc.Text, chunkCfg)
	if err != nil {
		return err
	}
	logger.Debug("chunked", "name", doc.Name, "chunks", len(chunks), "max_lines", chunkCfg.MaxLines, "overlap", chunkCfg.Overlap)

	if jsonOutput {
		if chunks == nil {
			chunks = []chunker.Chunk{}
		}
		return printJSON(cmd, map[string]any{
			"name":      doc.Name,
			"max_lines": chunkCfg.MaxLines,
			"overlap":   chunkCfg.Overlap,
			"chunks":    chunks,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d sections (max %d lines, overlap %d)\n", len(chunks), chunkCfg.MaxLines, chunkCfg.Overlap)
	for _, c := range chunks {
		fmt.Fprintf(cmd.OutOrStdout(), "[%d] lines %d-%d (%d lines): %s\n", c.Index, c.StartLine, c.EndLine, c.LineCount(), c.Preview())
	}
	return nil
}
