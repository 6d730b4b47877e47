package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecnhealth/clinic_console/config"
	"github.com/ecnhealth/clinic_console/pkg/studyapi"
)

// NewPingCommand checks connectivity to the upstream study API without
// starting the server.
func NewPingCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the study API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := studyapi.New(cfg.StudyAPI)
			if err := client.Health(ctx); err != nil {
				return fmt.Errorf("study API unreachable at %s: %w", cfg.StudyAPI.BaseURL, err)
			}

			fmt.Printf("study API healthy at %s\n", cfg.StudyAPI.BaseURL)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Maximum time to wait for the health response")

	return cmd
}
