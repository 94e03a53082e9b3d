package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/inventory/internal/api"
	"github.com/erazemk/inventory/internal/auth"
	"github.com/erazemk/inventory/internal/imaging"
	"github.com/erazemk/inventory/internal/store"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return err
			}
			defer s.Close()

			slog.Info("database ready", "path", app.DBPath)

			if err := ensurePassphrase(cmd.Context(), s, cmd.OutOrStdout()); err != nil {
				return err
			}

			// Load token secret from database (auto-generated on first run).
			secret, err := store.GetTokenSecret(cmd.Context(), s.db)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr: addr,
				Handler: api.NewRouter(api.Config{
					DB:          s.db,
					Loader:      s.loader,
					Images:      imaging.Loader{},
					TokenSecret: secret,
				}),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			go func() {
				sig, ok := <-quit
				if !ok {
					return
				}
				slog.Info("shutdown signal received", "signal", sig.String())

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(ctx); err != nil {
					slog.Error("server forced to shutdown", "error", err)
				}
			}()

			slog.Info("server started", "addr", addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("serving: %w", err)
			}

			slog.Info("server stopped, closing database")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	return cmd
}

// ensurePassphrase creates and prints an API passphrase when none is set.
func ensurePassphrase(ctx context.Context, s *session, out io.Writer) error {
	hash, err := store.GetPassphraseHash(ctx, s.db)
	if err != nil {
		return err
	}
	if hash != "" {
		return nil
	}

	passphrase, err := auth.GeneratePassphrase(generatedPassphraseLength)
	if err != nil {
		return fmt.Errorf("generating passphrase: %w", err)
	}
	hash, err = auth.HashPassphrase(passphrase)
	if err != nil {
		return err
	}
	if err := store.SetPassphraseHash(ctx, s.db, hash); err != nil {
		return err
	}

	fmt.Fprintln(out, "API passphrase created:")
	fmt.Fprintf(out, "  %s\n", passphrase)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Save this passphrase. It cannot be recovered;")
	fmt.Fprintln(out, "run `inventory passwd` to replace it.")
	fmt.Fprintln(out)
	return nil
}
