// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litmap/pkg/types"
)

var networkCmd = &cobra.Command{
	Use:   "network PAPER_ID",
	Short: "Build the one-hop citation graph of a paper",
	Long: `Network fetches a paper from OpenAlex by id (W2741809807 or a full
https://openalex.org/ URI) and up to 15 of the works it references, and
prints the resulting star graph.`,
	Args: cobra.ExactArgs(1),
	RunE: runNetwork,
}

func init() {
	networkCmd.Flags().Bool("json", false, "output the graph as JSON")
	rootCmd.AddCommand(networkCmd)
}

func runNetwork(cmd *cobra.Command, args []string) error {
	a, err := appFromFlags()
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := a.graphs.Build(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}
	formatGraph(g, os.Stdout)
	return nil
}

func formatGraph(g *types.CitationGraph, w io.Writer) {
	root, ok := g.Main()
	if !ok {
		fmt.Fprintln(w, "Empty graph.")
		return
	}
	fmt.Fprintf(w, "%s  [%s]  cited %d times\n", root.Title, root.Label, root.Value-1)
	fmt.Fprintf(w, "  %s\n", root.ID)

	if len(g.Edges) == 0 {
		fmt.Fprintln(w, "\nNo references resolved.")
		return
	}
	fmt.Fprintf(w, "\nReferences (%d):\n", len(g.Edges))
	for i, n := range g.Nodes {
		if n.Group != types.GroupReference {
			continue
		}
		fmt.Fprintf(w, "%3d. %-20s  %s\n", i, n.Label, n.Title)
	}
}
