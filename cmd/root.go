package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/ecnhealth/clinic_console/cmd/http"
	systemcmd "github.com/ecnhealth/clinic_console/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "clinic-console",
	Short: "Clinical console for the ECN depression study platform.",
	Long: `Clinic Console is the staff-facing service for a clinical research
platform studying ECN dysfunction in depression. It reads patients,
assessments and treatments from the study API and serves the derived
dashboard, list and form views.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
