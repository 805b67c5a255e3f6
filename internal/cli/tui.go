package cli

import (
	"github.com/MKhiriev/secure-vault/internal/tui"
	"github.com/spf13/cobra"
)

func (c *CLI) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app.Start(ctx)
			defer app.Close()

			return tui.New(app, app.Services, c.logger).Run(ctx)
		},
	}
}
