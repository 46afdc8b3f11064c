package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/slideswitch/internal/config"
	"github.com/alkime/slideswitch/internal/logger"
	"github.com/alkime/slideswitch/internal/notify"
	"github.com/alkime/slideswitch/internal/owner"
	"github.com/alkime/slideswitch/internal/server"
	"github.com/alkime/slideswitch/internal/state"
	"github.com/alkime/slideswitch/internal/tui"
	"github.com/alkime/slideswitch/internal/workdir"
	"github.com/alkime/slideswitch/pkg/slideswitch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
)

const (
	subscriberBuffer = 16
	shutdownTimeout  = 5 * time.Second
)

// CLI defines the slideswitch command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	Run RunCmd `cmd:"" default:"withargs" help:"Launch the switch in the terminal"`

	// Subcommands
	Serve ServeCmd `cmd:"" help:"Serve the switch over HTTP"`
	State StateCmd `cmd:"" help:"Manage saved switch state"`
}

// RunCmd is the default command that runs the TUI.
type RunCmd struct {
	Fresh bool `flag:"" help:"Ignore saved state and start from configuration"`
}

// Run executes the TUI command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *RunCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	swCfg, err := cfg.SwitchConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file next to the state.
	logPath := filepath.Join(filepath.Dir(store.Path()), workdir.LogFile)
	if err := workdir.Prep(logPath); err != nil {
		return fmt.Errorf("failed to prepare working directory: %w", err)
	}

	//nolint:gosec // path is built from the working directory
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	log := logger.SetupLogger(cfg, logFile, logger.FormatText)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sw := slideswitch.New(swCfg,
		slideswitch.WithTickPeriod(cfg.TickPeriod),
		slideswitch.WithLogger(log),
	)

	if !c.Fresh {
		restoreSaved(log, store, sw)
	}

	hub, wg, err := startHub(ctx, log, store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(tui.Config{
		Switch:   sw,
		Store:    store,
		Listener: hub.Listener(),
		Logger:   log,
		Cancel:   cancel,
	}), tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, runErr := p.Run()

	sw.Dispose()
	cancel()
	hub.Wait()
	wg.Wait()

	if runErr != nil {
		return fmt.Errorf("failed to start TUI: %w", runErr)
	}

	fmt.Printf("switch is %s. bye!\n", openWord(sw.IsOpen()))

	return nil
}

// ServeCmd runs the HTTP service.
type ServeCmd struct {
	Persist bool `flag:"" help:"Restore and autosave the open state"`
}

// Run executes the serve command.
//
//nolint:funlen // CLI command with multiple setup steps
func (c *ServeCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.SetupLogger(cfg, os.Stdout, logger.FormatJSON)

	log.Info("Starting slideswitch server",
		"env", cfg.Env,
		"port", cfg.Port,
		"shape", cfg.Shape,
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	swCfg, err := cfg.SwitchConfig()
	if err != nil {
		return err
	}

	var store *state.Store
	if c.Persist {
		if store, err = openStore(cfg); err != nil {
			return err
		}

		saved, err := store.Load()
		switch {
		case errors.Is(err, state.ErrNotFound):
		case err != nil:
			log.Warn("Ignoring saved state", "error", err)
		default:
			swCfg.Open = saved.IsOpen
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub, wg, err := startHub(ctx, log, store)
	if err != nil {
		return err
	}

	loop := owner.New(swCfg, log,
		slideswitch.WithTickPeriod(cfg.TickPeriod),
		slideswitch.WithListener(hub.Listener()),
	)

	wg.Go(func() {
		if err := loop.Run(ctx); err != nil {
			log.Error("Owner loop error", "error", err)
		}
	})

	// start at the preferred size until a client lays it out
	if err := loop.Do(ctx, func(sw *slideswitch.Switch) {
		sw.Layout(slideswitch.Measure(sw.Shape(), slideswitch.MeasureSpec{}, slideswitch.MeasureSpec{}))
	}); err != nil {
		return fmt.Errorf("failed to lay out switch: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(cfg, log, loop).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		log.Info("Server listening", "port", cfg.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		stop()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("Shutting down server")
		err = srv.Shutdown(shutdownCtx)
	}

	hub.Wait()
	wg.Wait()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// StateCmd groups saved state subcommands.
type StateCmd struct {
	Show  StateShowCmd  `cmd:"" help:"Print the saved state"`
	Reset StateResetCmd `cmd:"" help:"Delete the saved state"`
}

// StateShowCmd prints the saved state.
type StateShowCmd struct{}

// Run executes the show command.
func (c *StateShowCmd) Run() error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	saved, err := store.Load()
	if errors.Is(err, state.ErrNotFound) {
		fmt.Printf("no saved state at %s\n", store.Path())
		return nil
	}

	if err != nil {
		return err
	}

	fmt.Printf("path:     %s\n", store.Path())
	fmt.Printf("state:    %s\n", openWord(saved.IsOpen))

	if len(saved.InstanceState) > 0 {
		fmt.Printf("settings: %s\n", saved.InstanceState)
	}

	return nil
}

// StateResetCmd deletes the saved state.
type StateResetCmd struct{}

// Run executes the reset command.
func (c *StateResetCmd) Run() error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	if err := store.Reset(); err != nil {
		return err
	}

	fmt.Printf("removed %s\n", store.Path())

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("slideswitch"),
		kong.Description("A sliding on/off switch for the terminal and HTTP."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}

// openStore returns the store named by the configuration, or the default one.
func openStore(cfg *config.Config) (*state.Store, error) {
	if cfg.StateFile != "" {
		return state.NewStore(cfg.StateFile), nil
	}

	store, err := state.DefaultStore()
	if err != nil {
		return nil, fmt.Errorf("failed to locate state file: %w", err)
	}

	return store, nil
}

func loadStore() (*state.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return openStore(cfg)
}

// restoreSaved applies any saved state. Problems are logged, not fatal.
func restoreSaved(log *slog.Logger, store *state.Store, sw *slideswitch.Switch) {
	saved, err := store.Load()
	if errors.Is(err, state.ErrNotFound) {
		return
	}

	if err == nil {
		err = tui.RestoreState(sw, saved)
	}

	if err != nil {
		log.Warn("Ignoring saved state", "path", store.Path(), "error", err)
		return
	}

	log.Debug("Restored switch state", "path", store.Path(), "open", saved.IsOpen)
}

// startHub fans transitions out to the log and, when store is set, to autosave.
func startHub(ctx context.Context, log *slog.Logger, store *state.Store) (*notify.Hub, *sync.WaitGroup, error) {
	hub := notify.NewHub()
	wg := &sync.WaitGroup{}

	logC := make(chan notify.Transition, subscriberBuffer)
	if err := hub.Subscribe(logC); err != nil {
		return nil, nil, err
	}

	wg.Go(func() { notify.LogTransitions(ctx, log, logC) })

	if store != nil {
		saveC := make(chan notify.Transition, subscriberBuffer)
		if err := hub.Subscribe(saveC); err != nil {
			return nil, nil, err
		}

		wg.Go(func() { store.Autosave(ctx, saveC) })
	}

	if err := hub.Start(ctx); err != nil {
		return nil, nil, err
	}

	return hub, wg, nil
}

func openWord(open bool) string {
	if open {
		return "open"
	}

	return "closed"
}
