// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest QUERY",
	Short: "Print OpenAlex title suggestions as JSON",
	Long: `Suggest passes the query to the OpenAlex works autocomplete endpoint
and prints the response unchanged. Any failure prints an empty result list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromFlags()
		if err != nil {
			return err
		}
		defer a.Close()

		raw := a.search.Autocomplete(cmd.Context(), strings.Join(args, " "))
		_, err = fmt.Fprintln(os.Stdout, string(raw))
		return err
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
