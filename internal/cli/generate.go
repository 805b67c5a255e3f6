package cli

import (
	"fmt"

	"github.com/MKhiriev/secure-vault/internal/passgen"
	"github.com/spf13/cobra"
)

func (c *CLI) generateCmd() *cobra.Command {
	var (
		opts         = passgen.DefaultOptions()
		noDigits     bool
		noSymbols    bool
		copyPassword bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Long:  fmt.Sprintf("Letters are always used. Length must be between %d and %d.", passgen.MinLength, passgen.MaxLength),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Digits = !noDigits
			opts.Symbols = !noSymbols

			pw, err := passgen.Generate(opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pw)
			if copyPassword {
				if err = c.copyToClipboard(pw); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				printSuccess(cmd.ErrOrStderr(), "Copied to clipboard")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Length, "length", "l", passgen.DefaultLength, "password length")
	flags.BoolVar(&noDigits, "no-digits", false, "leave out digits")
	flags.BoolVar(&noSymbols, "no-symbols", false, "leave out symbols")
	flags.BoolVar(&opts.AllowLookalikes, "lookalikes", false, "allow look-alike characters such as l, 1, O and 0")
	flags.BoolVar(&copyPassword, "copy", false, "copy the password to the clipboard")
	return cmd
}
