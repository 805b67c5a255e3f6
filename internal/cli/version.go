package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) versionCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client  %s %s\n", c.build.BuildVersion(), mutedText.Sprintf("%s, %s", c.build.BuildCommit(), c.build.BuildDate()))
			if offline {
				return nil
			}

			app, err := c.openApp()
			if err != nil {
				return err
			}

			v, err := app.Adapter.Version(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "server  %s\n", warningText.Sprint("unreachable"))
				c.logger.Err(err).Msg("server version request failed")
				return nil
			}
			fmt.Fprintf(out, "server  %s\n", v.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "do not contact the server")
	return cmd
}
