package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/spf13/cobra"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the common progressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tNAME\tEXAMPLES")
			for _, p := range theory.CommonProgressions() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Pattern, p.Name, strings.Join(p.Examples, ", "))
			}
			return w.Flush()
		},
	}
}
