package main

import (
	"github.com/Conceptual-Machines/progression-wheel/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "progviz",
		Short: "progviz draws chord progressions on the circle of fifths",
		Long: `progviz lays a chord progression out on a ring inside the circle of fifths,
labels each chord with its position and writes the diagram as SVG, PNG or JSON.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRenderCmd(), newPatternsCmd(), newExplainCmd())
	return rootCmd
}

// loadConfig reads diagram defaults from the environment, honouring a local .env
func loadConfig() *config.Config {
	_ = godotenv.Load()
	return config.Load()
}
