package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/inventory/internal/auth"
	"github.com/erazemk/inventory/internal/db"
	"github.com/erazemk/inventory/internal/store"
)

// generatedPassphraseLength is the length of passphrases created for the owner.
const generatedPassphraseLength = 16

func newPasswdCmd(app *App) *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Set the API passphrase",
		Long:  "Set the API passphrase. The new passphrase is read from the first line of stdin unless --generate is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			var passphrase string
			if generate {
				passphrase, err = auth.GeneratePassphrase(generatedPassphraseLength)
				if err != nil {
					return fmt.Errorf("generating passphrase: %w", err)
				}
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), "New passphrase: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				passphrase = strings.TrimRight(line, "\r\n")
				if passphrase == "" {
					return errors.New("no passphrase given")
				}
			}

			hash, err := auth.HashPassphrase(passphrase)
			if err != nil {
				return err
			}
			if err := store.SetPassphraseHash(cmd.Context(), s.db, hash); err != nil {
				return err
			}

			if generate {
				fmt.Fprintf(cmd.OutOrStdout(), "Passphrase: %s\n", passphrase)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Passphrase updated.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&generate, "generate", false, "Generate a random passphrase and print it")
	return cmd
}

func newSchemaCmd(app *App) *cobra.Command {
	var to uint

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show or change the database schema version",
		Long: strings.TrimSpace(`
Show the schema version of the database. With --to, migrate up or down to
that version first. Migrating to 0 drops every table and all stored items.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.Open(app.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			if cmd.Flags().Changed("to") {
				if err := db.MigrateTo(database, to); err != nil {
					return err
				}
			}

			version, dirty, err := db.Version(database)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (latest %d)\n", version, db.SchemaVersion)
			if dirty {
				fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render("The last migration failed; the schema is dirty."))
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&to, "to", db.SchemaVersion, "Target schema version")
	return cmd
}
