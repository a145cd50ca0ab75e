// Package cmd contains the CLI command for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-most-starred",
	Short: "Find the most starred GitHub repository created in a date range.",
	Long: `github-most-starred searches GitHub for repositories created between two dates
and reports the one with the most stars. The search starts with very popular
repositories and lowers the star threshold until something is found.`,
	Version:      "0.0.1",
	SilenceUsage: true,
	RunE:         runMostStarred,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.Flags().StringP("start", "s", "", "Starting date (in yyyy-mm-dd)")
	rootCmd.Flags().StringP("end", "e", "", "Ending date (in yyyy-mm-dd)")
	rootCmd.MarkFlagRequired("start")
	rootCmd.MarkFlagRequired("end")
	rootCmd.Flags().String("api", "rest", "Search API to use (rest or graphql)")
	rootCmd.Flags().Int("per-page", 100, "Number of results per page (1-100)")
	rootCmd.Flags().Bool("json", false, "Print the result as JSON")
}
