package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/citeshield/internal/sections"
)

var overviewCmd = &cobra.Command{
	Use:   "overview FILE...",
	Short: "Print the section overview of one or more documents",
	Long: `Build the section store of every file in parallel and print each
overview in argument order. Up to WORKER_COUNT files are processed at once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

type overviewEntry struct {
	Name     string `json:"name"`
	Sections int    `json:"sections"`
	Lines    int    `json:"lines"`
	Overview string `json:"overview"`
}

func runOverview(cmd *cobra.Command, args []string) error {
	stdin := 0
	for _, path := range args {
		if path == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("stdin (-) can be given at most once")
	}

	stores := make([]*sections.Store, len(args))

	var g errgroup.Group
	g.SetLimit(cfg.WorkerCount)
	for i, path := range args {
		g.Go(func() error {
			store, _, err := openStore(cmd, path)
			if err != nil {
				return err
			}
			stores[i] = store
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	entries := make([]overviewEntry, len(stores))
	for i, s := range stores {
		entries[i] = overviewEntry{
			Name:     s.Name(),
			Sections: s.Len(),
			Lines:    s.TotalLines(),
			Overview: s.Overview(),
		}
	}

	if jsonOutput {
		return printJSON(cmd, entries)
	}
	w := cmd.OutOrStdout()
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n%s\n", e.Name, e.Overview)
	}
	return nil
}
