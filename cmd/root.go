package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "wrabit",
	Short: "Wrabit journal server",
	Long: `wrabit serves the journaling API and computes writing statistics
straight from the journal database.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(keygenCmd)
}
