package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/paperdesk/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "paperdesk",
	Short: "Browser dashboard for a research paper backend",
	Long: `Paperdesk serves a single-page dashboard over a research paper backend.
Pages are rendered on the server from the backend's JSON API and pushed
to the browser as the URL hash changes: an overview, the paper list,
paper details, categories, reports and processing jobs.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
