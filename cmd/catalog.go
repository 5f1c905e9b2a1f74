package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/astdump/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query a conversion catalog written with --catalog",
	}
	cmd.AddCommand(newCatalogFindCmd(), newCatalogKindsCmd())
	return cmd
}

func newCatalogFindCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "find [catalog.db] [kind]",
		Short: "List conversions whose tree contains a node kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()

			entries, err := cat.WithKind(cmd.Context(), language, args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s\t%s\n", e.Input, e.Output, e.Language)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Only search conversions of this language")
	return cmd
}

func newCatalogKindsCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "kinds [catalog.db]",
		Short: "List the node kinds recorded for a language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()

			names, err := cat.Kinds(cmd.Context(), language)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "lang", "l", "rust", "Language to list kinds for")
	return cmd
}
