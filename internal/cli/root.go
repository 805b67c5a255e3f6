// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type options struct {
	server      string
	timeout     time.Duration
	idleTimeout time.Duration
	configPath  string
	email       string
	totp        string
}

// CLI holds what every command shares: flags, build info, the logger and
// the hooks tests replace.
type CLI struct {
	opts  options
	build models.AppBuildInfo

	newApp          func(cfg *config.ClientConfig, logger *logger.Logger) (*client.App, error)
	copyToClipboard func(string) error
	now             func() time.Time

	prompt *prompter
	logger *logger.Logger
}

func New(build models.AppBuildInfo, logger *logger.Logger) *CLI {
	return &CLI{
		build:           build,
		newApp:          client.NewApp,
		copyToClipboard: clipboard.WriteAll,
		now:             time.Now,
		logger:          logger,
	}
}

// Execute runs the command line and returns the process exit code.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	root := c.RootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), errorText.Sprint("✗"), humanizeError(err))
		c.logger.Err(err).Msg("command failed")
		return 1
	}
	return 0
}

// RootCmd builds the command tree.
func (c *CLI) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "secure-vault",
		Short:         "Zero-knowledge password vault client",
		Long:          `Stores passwords on a secure-vault server. Every field is encrypted on this machine with a key derived from your master password; the server only ever sees ciphertext.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.prompt = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.opts.server, "server", "s", "", "server address (env ADAPTER_ADDRESS)")
	flags.DurationVar(&c.opts.timeout, "timeout", 0, "request timeout (env ADAPTER_REQUEST_TIMEOUT)")
	flags.DurationVar(&c.opts.idleTimeout, "idle-timeout", 0, "lock the vault after this much inactivity (env WORKERS_IDLE_TIMEOUT)")
	flags.StringVarP(&c.opts.configPath, "config", "c", "", "JSON config file (env CONFIG)")
	flags.StringVarP(&c.opts.email, "email", "e", "", "account email, prompted when empty")
	flags.StringVar(&c.opts.totp, "totp", "", "two-factor code, prompted when required")

	root.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.twoFactorCmd(),
		c.listCmd(),
		c.showCmd(),
		c.addCmd(),
		c.editCmd(),
		c.removeCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.generateCmd(),
		c.tuiCmd(),
		c.versionCmd(),
	)

	return root
}

func (c *CLI) openApp() (*client.App, error) {
	cfg, err := config.GetClientConfig(config.ClientOverrides{
		ServerAddress:  c.opts.server,
		RequestTimeout: c.opts.timeout,
		IdleTimeout:    c.opts.idleTimeout,
		ConfigPath:     c.opts.configPath,
	})
	if err != nil {
		return nil, fmt.Errorf("error reading client config: %w", err)
	}

	return c.newApp(cfg, c.logger)
}

func (c *CLI) askEmail() (string, error) {
	if c.opts.email != "" {
		return c.opts.email, nil
	}
	return c.prompt.Line("Email: ")
}

// withSession logs in, runs fn and closes the session, whatever fn returns.
func (c *CLI) withSession(cmd *cobra.Command, fn func(ctx context.Context, app *client.App, session *crypto.Session) error) error {
	ctx := cmd.Context()

	app, err := c.openApp()
	if err != nil {
		return err
	}
	app.Start(ctx)
	defer app.Close()

	email, err := c.askEmail()
	if err != nil {
		return err
	}
	password, err := c.prompt.Secret("Master password: ")
	if err != nil {
		return err
	}

	session, err := c.login(cmd, app, email, password, c.opts.totp)
	if errors.Is(err, service.ErrTwoFactorRequired) && c.opts.totp == "" {
		code, promptErr := c.prompt.Line("Two-factor code: ")
		if promptErr != nil {
			return err
		}
		session, err = c.login(cmd, app, email, password, code)
	}
	if err != nil {
		return err
	}

	return fn(ctx, app, session)
}

func (c *CLI) login(cmd *cobra.Command, app *client.App, email, password, totp string) (*crypto.Session, error) {
	stop := startSpinner(cmd.ErrOrStderr(), "Unlocking vault...")
	defer stop()

	return app.Login(cmd.Context(), email, password, totp)
}

func printSuccess(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, successText.Sprint("✓"), fmt.Sprintf(format, a...))
}

func humanizeError(err error) string {
	switch {
	case errors.Is(err, service.ErrServerUnavailable):
		return "server is unavailable, check the address and your network"
	case errors.Is(err, service.ErrWrongPassword):
		return "invalid email or password"
	case errors.Is(err, service.ErrTwoFactorRequired):
		return "two-factor code required, pass it with " + codeText.Sprint("--totp")
	case errors.Is(err, service.ErrInvalidTwoFactorCode):
		return "invalid two-factor code"
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return "an account with this email already exists"
	case errors.Is(err, service.ErrRecordNotFound):
		return "item not found"
	case errors.Is(err, client.ErrLocked), errors.Is(err, crypto.ErrSessionClosed):
		return "the vault was locked, run the command again"
	case errors.Is(err, errNoInput):
		return "no input, run the command in a terminal or pipe the answers"
	}
	return err.Error()
}
