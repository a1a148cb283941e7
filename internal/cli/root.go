// Package cli implements the rentbooks command line client. Every command
// wires the full sync engine against the configured API, runs one operation
// through it, and prints the resulting collections. Notifications the engine
// queues are echoed to stderr.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/adapters/restapi"
	portssvc "github.com/rentbooks/rentbooks/internal/core/ports/services"
	"github.com/rentbooks/rentbooks/internal/core/services"
	"github.com/rentbooks/rentbooks/internal/platform/config"
	"github.com/rentbooks/rentbooks/internal/platform/storage"
	"github.com/spf13/cobra"
)

// keyActiveProperty persists the property selection between CLI invocations.
// The engine itself keeps the selection in memory; the CLI restores it on
// every start so short-lived commands behave like one long session.
const keyActiveProperty = "activeProperty"

var rootCmd = &cobra.Command{
	Use:   "rentbooks",
	Short: "Rental property bookkeeping client",
	Long: `rentbooks keeps property-scoped bookkeeping collections in sync with
the configured REST API: accounts, entities, journals, transactions and
rent payments, all scoped to the active property.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// logLevel keeps production output quiet while development surfaces
// warnings from the engine.
func logLevel(isProduction bool) slog.Level {
	if isProduction {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// app is the per-invocation wiring: config, durable store, and the service
// container.
type app struct {
	cfg       *config.Config
	store     *storage.FileStore
	container *services.Container
	logger    *slog.Logger

	stopNotifier func()
}

// newApp builds the engine, restores the persisted session and property
// selection, and starts echoing notifications to stderr.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	store, err := storage.NewFileStore(filepath.Join(cfg.StateDir, "state.json"))
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.IsProduction)}))

	client := restapi.NewClient(cfg.APIBaseURL, logger)
	container := services.NewContainer(client, store, portssvc.RealClock(), logger)

	a := &app{cfg: cfg, store: store, container: container, logger: logger}
	a.echoNotifications()

	// Sync collections with the restored token, then restore the property
	// selection, which cascades to the dependent collections.
	container.Properties.ScopeChanged(ctx)
	if raw, ok := store.Get(keyActiveProperty); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id != 0 {
			container.Properties.SetActiveProperty(ctx, id)
		}
	}
	return a, nil
}

// echoNotifications streams the engine's notification queue to stderr.
func (a *app) echoNotifications() {
	ch, cancel, err := a.container.Notifier.Subscribe()
	if err != nil {
		a.stopNotifier = func() {}
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range ch {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Text)
		}
	}()
	a.stopNotifier = func() {
		cancel()
		a.container.Notifier.Stop()
		<-done
	}
}

// close flushes the notification stream.
func (a *app) close() {
	if a.stopNotifier != nil {
		a.stopNotifier()
	}
}

// rememberActiveProperty persists the selection for the next invocation.
func (a *app) rememberActiveProperty(id int64) error {
	if id == 0 {
		return a.store.Delete(keyActiveProperty)
	}
	return a.store.Set(keyActiveProperty, strconv.FormatInt(id, 10))
}

// requireProperty fails fast when a command needs an active property.
func (a *app) requireProperty() error {
	if a.container.Properties.ActivePropertyID() == 0 {
		return fmt.Errorf("no active property; run 'rentbooks properties use <id>' first")
	}
	return nil
}
