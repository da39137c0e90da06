package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/mcp"
	"github.com/dgallion1/citeshield/internal/stats"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Serve one document's sections over MCP",
	Long: `Load the document, split it into sections and expose the section tools
to an AI assistant over the Model Context Protocol.

By default the server talks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Examples:
  # Stdio mode
  citeshield mcp serve brief.pdf

  # HTTP mode
  citeshield mcp serve brief.pdf --port 8091`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	store, _, err := openStore(cmd, args[0])
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Store: store,
		Stats: stats.NewRecorder(cfg.BriefTTL),
		Log:   logger,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
