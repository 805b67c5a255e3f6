package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/crypto"
	"github.com/MKhiriev/secure-vault/internal/passgen"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/spf13/cobra"
)

const undecryptable = "⚠ unable to decrypt"

func (c *CLI) listCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				records, err := app.Services.VaultService.List(ctx, session, query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, mutedText.Sprint("no items"))
					return nil
				}

				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tURL")
				for _, rec := range records {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", rec.ID,
						shown(rec.Title, rec.Failed(models.FieldTitle)),
						shown(rec.Username, rec.Failed(models.FieldUsername)),
						shown(rec.URL, rec.Failed(models.FieldURL)))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&query, "search", "q", "", "filter by title, username, url or tag")
	return cmd
}

func (c *CLI) showCmd() *cobra.Command {
	var (
		copyPassword bool
		reveal       bool
		clearAfter   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one vault item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				rec, err := app.Services.VaultService.Get(ctx, session, id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printRecord(out, rec, reveal)

				if !copyPassword {
					return nil
				}
				if rec.Failed(models.FieldPassword) || rec.Password == "" {
					return fmt.Errorf("item %d has no readable password", id)
				}
				if err = c.copyToClipboard(rec.Password); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				printSuccess(out, "Password copied to clipboard")

				if clearAfter <= 0 {
					return nil
				}
				return c.clearClipboard(ctx, cmd, clearAfter)
			})
		},
	}

	cmd.Flags().BoolVar(&copyPassword, "copy", false, "copy the password to the clipboard")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the password in clear text")
	cmd.Flags().DurationVar(&clearAfter, "clear-after", 0, "with --copy, wait and then clear the clipboard")
	return cmd
}

func (c *CLI) clearClipboard(ctx context.Context, cmd *cobra.Command, after time.Duration) error {
	stop := startSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Clearing clipboard in %s...", after))
	defer stop()

	timer := time.NewTimer(after)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	if err := c.copyToClipboard(""); err != nil {
		return fmt.Errorf("clear clipboard: %w", err)
	}
	return nil
}

// recordFlags are the item fields shared by add and edit.
type recordFlags struct {
	title    string
	username string
	password string
	url      string
	notes    string
	tags     []string
	generate bool
	length   int
}

func (f *recordFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.title, "title", "t", "", "item title")
	flags.StringVarP(&f.username, "username", "u", "", "login name")
	flags.StringVarP(&f.password, "password", "p", "", "password, prompted when empty (visible in shell history)")
	flags.StringVar(&f.url, "url", "", "site address")
	flags.StringVar(&f.notes, "notes", "", "free-form notes")
	flags.StringSliceVar(&f.tags, "tag", nil, "tag, repeat or comma-separate for several")
	flags.BoolVarP(&f.generate, "generate", "g", false, "generate the password")
	flags.IntVar(&f.length, "length", passgen.DefaultLength, "length of a generated password")
}

// apply copies every flag the user set onto plain.
func (f *recordFlags) apply(cmd *cobra.Command, plain *models.PlainRecord) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		plain.Title = strings.TrimSpace(f.title)
	}
	if changed("username") {
		plain.Username = strings.TrimSpace(f.username)
	}
	if changed("password") {
		plain.Password = f.password
	}
	if changed("url") {
		plain.URL = strings.TrimSpace(f.url)
	}
	if changed("notes") {
		plain.Notes = f.notes
	}
	if changed("tag") {
		plain.Tags = plain.Tags[:0:0]
		for _, tag := range f.tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				plain.Tags = append(plain.Tags, tag)
			}
		}
	}

	if f.generate {
		opts := passgen.DefaultOptions()
		opts.Length = f.length
		pw, err := passgen.Generate(opts)
		if err != nil {
			return err
		}
		plain.Password = pw
	}

	return nil
}

func (c *CLI) addCmd() *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a vault item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var plain models.PlainRecord
			if err := flags.apply(cmd, &plain); err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				if err := c.fillMissing(&plain); err != nil {
					return err
				}

				stop := startSpinner(cmd.ErrOrStderr(), "Encrypting and saving...")
				saved, err := app.Services.VaultService.Add(ctx, session, plain)
				stop()
				if err != nil {
					return err
				}

				printSuccess(cmd.OutOrStdout(), "Saved %s with id %d", highlightText.Sprint(saved.Title), saved.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// fillMissing prompts for the required fields the flags left empty.
func (c *CLI) fillMissing(plain *models.PlainRecord) error {
	var err error
	if plain.Title == "" {
		if plain.Title, err = c.prompt.Line("Title: "); err != nil {
			return err
		}
	}
	if plain.Username == "" {
		if plain.Username, err = c.prompt.Line("Username: "); err != nil {
			return err
		}
	}
	if plain.Password == "" {
		if plain.Password, err = c.prompt.Secret("Item password: "); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) editCmd() *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a vault item",
		Long:  `Only the fields given as flags change. Items with fields that failed to decrypt cannot be edited.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				rec, err := app.Services.VaultService.Get(ctx, session, id)
				if err != nil {
					return err
				}
				if rec.HasFailures() {
					return fmt.Errorf("item %d has fields that failed to decrypt: %s", id, strings.Join(rec.FailedFields, ", "))
				}

				plain := rec.PlainRecord
				if err = flags.apply(cmd, &plain); err != nil {
					return err
				}

				saved, err := app.Services.VaultService.Edit(ctx, session, plain)
				if err != nil {
					return err
				}

				printSuccess(cmd.OutOrStdout(), "Updated %s", highlightText.Sprint(saved.Title))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a vault item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return c.withSession(cmd, func(ctx context.Context, app *client.App, session *crypto.Session) error {
				if !yes {
					rec, err := app.Services.VaultService.Get(ctx, session, id)
					if err != nil {
						return err
					}
					answer, err := c.prompt.Line(fmt.Sprintf("Delete %s? [y/N] ", highlightText.Sprint(shown(rec.Title, rec.Failed(models.FieldTitle)))))
					if err != nil {
						return err
					}
					if !strings.EqualFold(strings.TrimSpace(answer), "y") {
						fmt.Fprintln(cmd.OutOrStdout(), mutedText.Sprint("cancelled"))
						return nil
					}
				}

				if err := app.Services.VaultService.Delete(ctx, id); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Deleted item %d", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

func shown(value string, failed bool) string {
	if failed {
		return warningText.Sprint(undecryptable)
	}
	if value == "" {
		return "-"
	}
	return value
}

func printRecord(w io.Writer, rec models.DecryptedRecord, reveal bool) {
	password := strings.Repeat("•", min(len([]rune(rec.Password)), 12))
	if reveal {
		password = rec.Password
	}

	var tags []string
	for _, tag := range rec.Tags {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	failedTags := 0
	for _, f := range rec.FailedFields {
		if strings.HasPrefix(f, models.FieldTags+"[") {
			failedTags++
		}
	}
	tagLine := strings.Join(tags, ", ")
	if failedTags > 0 {
		tagLine = strings.TrimSpace(tagLine + " " + warningText.Sprintf("(%d %s)", failedTags, undecryptable))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", rec.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", shown(rec.Title, rec.Failed(models.FieldTitle)))
	fmt.Fprintf(tw, "Username:\t%s\n", shown(rec.Username, rec.Failed(models.FieldUsername)))
	fmt.Fprintf(tw, "Password:\t%s\n", shown(password, rec.Failed(models.FieldPassword)))
	fmt.Fprintf(tw, "URL:\t%s\n", shown(rec.URL, rec.Failed(models.FieldURL)))
	fmt.Fprintf(tw, "Notes:\t%s\n", shown(rec.Notes, rec.Failed(models.FieldNotes)))
	fmt.Fprintf(tw, "Tags:\t%s\n", shown(tagLine, false))
	if rec.UpdatedAt != nil {
		fmt.Fprintf(tw, "Updated:\t%s\n", rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}
