package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/spf13/cobra"
)

func (c *CLI) signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.openApp()
			if err != nil {
				return err
			}

			email, err := c.askEmail()
			if err != nil {
				return err
			}
			password, err := c.prompt.Secret("Master password: ")
			if err != nil {
				return err
			}
			confirm, err := c.prompt.Secret("Repeat master password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			stop := startSpinner(cmd.ErrOrStderr(), "Creating account...")
			err = app.Services.AuthService.Signup(cmd.Context(), email, password)
			stop()
			if err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Account %s created", highlightText.Sprint(email))
			fmt.Fprintln(cmd.OutOrStdout(), warningText.Sprint("⚠"), "The master password cannot be recovered. Without it the vault is unreadable.")
			return nil
		},
	}
}

func (c *CLI) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check that the master password unlocks the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				printSuccess(cmd.OutOrStdout(), "Logged in as %s", highlightText.Sprint(session.Email()))
				return nil
			})
		},
	}
}

func (c *CLI) twoFactorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "2fa",
		Short: "Manage two-factor authentication",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "setup",
		Short: "Issue a TOTP secret for an authenticator app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, app *client.App, _ *crypto.Session) error {
				resp, err := app.Services.AuthService.SetupTwoFactor(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Secret:     ", highlightText.Sprint(resp.Secret))
				fmt.Fprintln(out, "Otpauth URL:", resp.OTPAuthURL)
				fmt.Fprintln(out, "Add it to your authenticator app, then run", codeText.Sprint("secure-vault 2fa verify <code>"))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "verify <code>",
		Short: "Confirm the TOTP secret and enable two-factor authentication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, app *client.App, _ *crypto.Session) error {
				if err := app.Services.AuthService.VerifyTwoFactor(ctx, args[0]); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Two-factor authentication enabled")
				return nil
			})
		},
	})

	return cmd
}
