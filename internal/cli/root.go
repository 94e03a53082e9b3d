package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/inventory/internal/db"
	"github.com/erazemk/inventory/internal/imaging"
	"github.com/erazemk/inventory/internal/inventory"
	"github.com/erazemk/inventory/internal/loader"
	"github.com/erazemk/inventory/internal/mail"
	"github.com/erazemk/inventory/internal/model"
	"github.com/erazemk/inventory/internal/store"
)

// App holds the persistent flags shared by every command.
type App struct {
	DBPath  string
	LogPath string
	Verbose bool

	closeLog func()
}

// NewRootCmd builds the inventory command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Track stock, sales and supplier reorders",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Add an item and list the inventory
  inventory add --description Widget --price 2.50 --quantity 10 --email orders@acme.io
  inventory list

  # Record a sale of one unit, or a delivery of 20
  inventory sell 1
  inventory adjust 1 --received 20

  # Serve the JSON API
  inventory serve --addr :8080
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, cleanup, err := newLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), app.LogPath, app.logLevel(cmd.Name()))
		if err != nil {
			return err
		}
		app.closeLog = cleanup
		slog.SetDefault(logger)
		return nil
	}

	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.closeLog != nil {
			app.closeLog()
		}
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", db.DefaultName, "SQLite database path")
	cmd.PersistentFlags().StringVar(&app.LogPath, "log", "", "Log file path (default: no file, stdout/stderr only)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log debug messages")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newSellCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAdjustCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newReorderCmd(app))
	cmd.AddCommand(newPasswdCmd(app))
	cmd.AddCommand(newSchemaCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// session is an open, migrated database with its background loader.
type session struct {
	db     *sql.DB
	loader *loader.Loader
	items  store.Items
}

func openSession(app *App) (*session, error) {
	database, err := db.Open(app.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, err
	}

	s := &session{db: database, items: store.Items{DB: database}}
	s.loader = loader.New(s.items.List)
	return s, nil
}

func (s *session) Close() {
	s.loader.Close()
	s.db.Close()
}

// deps wires the controllers to this session. Reorder drafts go to cmd's output.
func (s *session) deps(cmd *cobra.Command) inventory.Deps {
	return inventory.Deps{
		Repo:   s.items,
		Loader: s.loader,
		Mailer: &mail.Composer{W: cmd.OutOrStdout()},
		Images: imaging.Loader{},
	}
}

// item looks up the item named by an ID argument.
func (s *session) item(cmd *cobra.Command, arg string) (model.Item, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return model.Item{}, fmt.Errorf("invalid item id: %q", arg)
	}
	item, err := s.items.Get(cmd.Context(), id)
	if err != nil {
		return model.Item{}, err
	}
	if item == nil {
		return model.Item{}, errNotFound(id)
	}
	return *item, nil
}
