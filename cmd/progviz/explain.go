package main

import (
	"fmt"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "explain <pattern>",
		Short:   "Print the theory explanation for a pattern",
		Example: "  progviz explain I-V-vi-IV",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explanation := theory.Explain(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, explanation.Heading)
			for _, paragraph := range explanation.Body {
				fmt.Fprintln(out)
				fmt.Fprintln(out, paragraph)
			}
			return nil
		},
	}
}
