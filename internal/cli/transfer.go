package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/spf13/cobra"
)

func (c *CLI) exportCmd() *cobra.Command {
	var (
		output string
		legacy bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vault to a JSON file",
		Long:  `The export keeps every field encrypted. It can only be read back with the same master password. Use "-o -" to write to standard output.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = service.ExportFileName(c.now())
			}

			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				if output == "-" {
					_, err := app.Services.VaultService.Export(ctx, session, cmd.OutOrStdout(), legacy)
					return err
				}

				flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
				if force {
					flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
				}
				f, err := os.OpenFile(output, flag, 0o600)
				if errors.Is(err, os.ErrExist) {
					return fmt.Errorf("%s already exists, pass --force to overwrite", output)
				}
				if err != nil {
					return fmt.Errorf("%w: %w", service.ErrWritingExport, err)
				}

				n, err := app.Services.VaultService.Export(ctx, session, f, legacy)
				if closeErr := f.Close(); err == nil && closeErr != nil {
					err = fmt.Errorf("%w: %w", service.ErrWritingExport, closeErr)
				}
				if err != nil {
					_ = os.Remove(output)
					return err
				}

				printSuccess(cmd.OutOrStdout(), "Exported %d items to %s", n, highlightText.Sprint(output))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default secure-vault-export-YYYY-MM-DD.json)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "write fields the web client can open with the same email and password")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import an export file into the vault",
		Long:  `Items from the web client are re-encrypted under this account's key, provided they were exported with the same email and master password. Other items keep their ciphertext. Use "-" to read standard input.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				var r io.Reader = cmd.InOrStdin()
				if args[0] != "-" {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("%w: %w", service.ErrReadingExport, err)
					}
					defer f.Close()
					r = f
				}

				stop := startSpinner(cmd.ErrOrStderr(), "Importing...")
				n, err := app.Services.VaultService.Import(ctx, session, r)
				stop()
				if err != nil {
					return err
				}

				printSuccess(cmd.OutOrStdout(), "Imported %d items", n)
				return nil
			})
		},
	}
}
