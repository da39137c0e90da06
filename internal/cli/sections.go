package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/citeshield/internal/sections"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List, read and search document sections",
}

var sectionsListCmd = &cobra.Command{
	Use:   "list FILE|-",
	Short: "List sections one page at a time",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsList,
}

var sectionsGetCmd = &cobra.Command{
	Use:   "get FILE|- INDEX",
	Short: "Print one full section",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionsGet,
}

var sectionsSearchCmd = &cobra.Command{
	Use:   "search FILE|- QUERY...",
	Short: "Rank sections by keyword relevance",
	Long: `Rank sections against the query words. Sections that cover more of
the query terms rank first, then by how often and how densely the terms
appear. Sections matching no term are never shown.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSectionsSearch,
}

func init() {
	sectionsListCmd.Flags().Int("page", 0, "0-based page number")
	sectionsListCmd.Flags().Int("page-size", 0, "sections per page (0 = configured value)")
	sectionsSearchCmd.Flags().IntP("limit", "n", 0, "maximum results (0 = configured value)")

	sectionsCmd.AddCommand(sectionsListCmd)
	sectionsCmd.AddCommand(sectionsGetCmd)
	sectionsCmd.AddCommand(sectionsSearchCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runSectionsList(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	store, _, err := openStore(cmd, args[0])
	if err != nil {
		return err
	}
	rows, err := store.List(page, pageSize)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"name":     store.Name(),
			"page":     page,
			"total":    store.Len(),
			"sections": rows,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), sections.FormatSummaries(rows))
	return nil
}

func runSectionsGet(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("section index must be an integer, got %q", args[1])
	}

	store, _, err := openStore(cmd, args[0])
	if err != nil {
		return err
	}
	c, err := store.Get(index)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd, c)
	}
	fmt.Fprintln(cmd.OutOrStdout(), sections.FormatSection(c))
	return nil
}

func runSectionsSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args[1:], " ")

	store, _, err := openStore(cmd, args[0])
	if err != nil {
		return err
	}
	results, err := store.Search(query, limit)
	if err != nil {
		return err
	}
	logger.Debug("search", "query", query, "terms", cfg.Scorer().Terms(query), "results", len(results))

	if jsonOutput {
		return printJSON(cmd, map[string]any{
			"name":    store.Name(),
			"query":   query,
			"results": results,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), sections.FormatResults(results))
	return nil
}
