// Package app implements the application layer for nativedev.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/nativedev/internal/adapters/detector"
	"go.trai.ch/nativedev/internal/adapters/linear"
	"go.trai.ch/nativedev/internal/adapters/statusapi"
	"go.trai.ch/nativedev/internal/adapters/telemetry"
	"go.trai.ch/nativedev/internal/adapters/tui"
	"go.trai.ch/nativedev/internal/adapters/webserve"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/nativedev/internal/engine/devserver"
	"go.trai.ch/nativedev/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	servers      *devserver.Factory
	histories    ports.HistoryOpener
	statusAPIs   *statusapi.Factory
	logger       ports.Logger

	stdout      io.Writer
	environment func() detector.Environment
	presenter   ports.Presenter
	teaOptions  []tea.ProgramOption
	disableTick bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	servers *devserver.Factory,
	histories ports.HistoryOpener,
	statusAPIs *statusapi.Factory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		servers:      servers,
		histories:    histories,
		statusAPIs:   statusAPIs,
		logger:       log,
		stdout:       os.Stdout,
		environment:  detector.CurrentEnvironment,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI status polling.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// WithStdout sets where the linear presenter and the history table are written.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithPresenter replaces the presenter chosen from the output mode.
func (a *App) WithPresenter(p ports.Presenter) *App {
	a.presenter = p
	return a
}

// DevOptions configures the Dev method. Zero values keep the configuration file's settings.
type DevOptions struct {
	Path        string
	Platform    string
	OutputMode  string
	AutoRebuild bool
	StatusAddr  string
}

// Dev runs the dev server until the user quits or ctx is done. Only a broken
// configuration or a failed file watch end it early; build failures are shown
// and the server keeps running.
func (a *App) Dev(ctx context.Context, opts DevOptions) error {
	// 1. Load and adjust the configuration
	cfg, err := a.configLoader.Load(pathOrCwd(opts.Path))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	// 2. Resolve the output mode
	requested, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}
	mode := detector.Resolve(a.environment().Detect(), requested)
	if mode == detector.ModeTUI {
		restore := a.redirectLogs(cfg.Root)
		defer restore()
	}

	// 3. Tracing, with finished rebuilds recorded in the build history
	var processors []sdktrace.SpanProcessor
	if history, err := a.histories.OpenHistory(cfg.Root); err != nil {
		a.logger.Warn("build history disabled: " + err.Error())
	} else {
		defer func() {
			if err := history.Close(); err != nil {
				a.logger.Warn("closing build history: " + err.Error())
			}
		}()
		processors = append(processors, telemetry.NewHistoryBridge(history, a.logger))
	}
	provider := telemetry.NewProvider(processors...)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()

	// 4. Start watching
	server := a.servers.New(cfg).WithTracer(provider.Tracer())
	defer server.Shutdown()

	if err := server.Watch(ctx, cfg.Root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}

	// 5. Run the presenter and the status API concurrently
	presenter := a.presenterFor(mode)
	g, gctx := errgroup.WithContext(ctx)
	gctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		// Quitting the presenter ends the session.
		defer stop()
		return presenter.Run(gctx, server)
	})

	if cfg.StatusAddr != "" {
		api := a.statusAPIs.New(server)
		g.Go(func() error {
			return api.Serve(gctx, cfg.StatusAddr)
		})
		a.logger.Info("status API listening on " + cfg.StatusAddr)
	}

	return g.Wait()
}

func (a *App) presenterFor(mode detector.OutputMode) ports.Presenter {
	if a.presenter != nil {
		return a.presenter
	}
	if mode == detector.ModeTUI {
		p := tui.NewPresenter(nil, a.teaOptions...)
		if a.disableTick {
			p = p.WithDisableTick()
		}
		return p
	}
	return linear.NewPresenter(a.stdout)
}

// applyOverrides applies command line flags on top of the loaded configuration.
// A requested platform becomes the initial target and must be a target platform.
func applyOverrides(cfg *domain.ProjectConfig, opts DevOptions) error {
	if opts.Platform != "" {
		p, err := domain.ParsePlatform(opts.Platform)
		if err != nil {
			return err
		}
		if !cfg.Targets(p) {
			return zerr.With(domain.ErrPlatformNotTargeted, "platform", p.String())
		}
		others := slices.DeleteFunc(slices.Clone(cfg.TargetPlatforms), func(t domain.Platform) bool {
			return t == p
		})
		cfg.TargetPlatforms = append([]domain.Platform{p}, others...)
	}
	if opts.AutoRebuild {
		cfg.Watch.AutoRebuild = true
	}
	if opts.StatusAddr != "" {
		cfg.StatusAddr = opts.StatusAddr
	}
	return nil
}

type outputSetter interface {
	SetOutput(w io.Writer)
}

// redirectLogs sends log output to the project's debug log while the TUI owns
// the terminal. The returned function restores stderr.
func (a *App) redirectLogs(root string) func() {
	setter, ok := a.logger.(outputSetter)
	if !ok {
		return func() {}
	}

	if err := os.MkdirAll(domain.DevPath(root), domain.DirPerm); err != nil {
		a.logger.Warn("debug log disabled: " + err.Error())
		return func() {}
	}
	f, err := os.OpenFile(domain.DebugLogPath(root), os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		a.logger.Warn("debug log disabled: " + err.Error())
		return func() {}
	}

	setter.SetOutput(f)
	return func() {
		setter.SetOutput(nil)
		_ = f.Close()
	}
}

// HistoryOptions configures the History method.
type HistoryOptions struct {
	Path  string
	Limit int
}

// History prints the most recent builds of the project, newest first.
func (a *App) History(ctx context.Context, opts HistoryOptions) error {
	cfg, err := a.configLoader.Load(pathOrCwd(opts.Path))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	history, err := a.histories.OpenHistory(cfg.Root)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()

	records, err := history.Recent(ctx, opts.Limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "No builds recorded yet.")
		return nil
	}
	_, _ = fmt.Fprintln(a.stdout, renderHistory(records))
	return nil
}

func renderHistory(records []domain.BuildRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		result := style.Check + " ok"
		if !r.Succeeded() {
			result = style.Cross + " " + r.Error
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.StartedAt.Local().Format(time.DateTime),
			r.Platform.DisplayName(),
			r.Duration().Round(time.Millisecond).String(),
			result,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Muted).
		Headers("#", "STARTED", "PLATFORM", "DURATION", "RESULT").
		Rows(rows...).
		String()
}

// Serve serves dir on localhost:port until ctx is done. Web builds run it as
// their child process.
func (a *App) Serve(ctx context.Context, dir string, port int) error {
	srv := webserve.NewServer(dir, port)
	a.logger.Info("serving " + dir + " on " + webserve.URL(port))
	return srv.Serve(ctx)
}

func pathOrCwd(path string) string {
	if path == "" {
		return "."
	}
	return path
}
