// Package tuffi packages a compiled frontend into a webview-ready bundle and
// serves it during development. The build step collects bundler outputs,
// applies output naming, stamps HTML with the build timestamp and rewrites
// asset references onto the assets:// scheme.
package tuffi

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/tuffi-studio/tuffi/internal/assets"
	"github.com/tuffi-studio/tuffi/internal/bridge"
	"github.com/tuffi-studio/tuffi/internal/build"
	"github.com/tuffi-studio/tuffi/internal/config"
	"github.com/tuffi-studio/tuffi/internal/devserver"
	"github.com/tuffi-studio/tuffi/internal/runtime"
)

// Plugin hooks into the build pipeline. See build.Phase for ordering.
type Plugin = build.Plugin

// Manifest describes one packaged build.
type Manifest = build.Manifest

// Result is returned by Build.
type Result = build.Result

// Function handles one IPC call from the frontend.
type Function = bridge.HandlerFunc

type App struct {
	cfg       *config.Config
	clock     func() time.Time
	plugins   []build.Plugin
	registry  *bridge.Registry
	logger    *slog.Logger
	out       build.Output
	embedded  fs.FS
	embedRoot string
}

type Option func(*App)

// WithConfig uses an already loaded configuration instead of tuffi.yaml.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithClock overrides the timestamp source used by the build.
func WithClock(clock func() time.Time) Option {
	return func(a *App) { a.clock = clock }
}

// WithPlugins registers build plugins. They run before the built-in HTML
// post-processing.
func WithPlugins(plugins ...Plugin) Option {
	return func(a *App) { a.plugins = append(a.plugins, plugins...) }
}

// WithFunction exposes a named function to the frontend over IPC.
func WithFunction(name string, fn Function) Option {
	return func(a *App) { a.registry.Register(name, fn) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithOutput routes build progress to the given reporter.
func WithOutput(out build.Output) Option {
	return func(a *App) { a.out = out }
}

// WithAssetsFS serves the bundle from an embedded filesystem in packaged
// mode. root is the directory inside fsys that holds the bundle.
func WithAssetsFS(fsys fs.FS, root string) Option {
	return func(a *App) {
		a.embedded = fsys
		a.embedRoot = root
	}
}

func New(opts ...Option) (*App, error) {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:      cfg,
		clock:    time.Now,
		registry: bridge.NewRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(app)
	}

	return app, nil
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// IsDev reports whether the app runs in development mode (TUFFI_DEV=1).
func (a *App) IsDev() bool {
	return runtime.IsDev()
}

// Register exposes a named function to the frontend over IPC.
func (a *App) Register(name string, fn Function) {
	a.registry.Register(name, fn)
}

// Build packages the staging directory into the dist directory.
func (a *App) Build(ctx context.Context) (*Result, error) {
	engine := build.NewEngine(build.Options{
		StagingDir: a.cfg.StagingDir,
		OutDir:     a.cfg.DistDir,
		Naming:     a.cfg.Naming,
		Clock:      a.clock,
		Plugins:    a.plugins,
		Out:        a.out,
	})
	return engine.Run(ctx)
}

// Handler returns the HTTP handler for the bundle. In development it serves
// the dist directory with live reload; in packaged mode it serves the
// embedded filesystem when one was provided.
func (a *App) Handler() (http.Handler, error) {
	if !a.IsDev() && a.embedded != nil {
		return assets.EmbeddedHandler(a.embedded, a.embedRoot), nil
	}

	server, err := a.devServer()
	if err != nil {
		return nil, err
	}
	return server.Handler(), nil
}

// Serve runs the development server until the context is cancelled. Changes
// under the dist directory trigger a live reload.
func (a *App) Serve(ctx context.Context) error {
	server, err := a.devServer()
	if err != nil {
		return err
	}

	watcher, err := devserver.NewWatcher(a.cfg.DistDir, a.cfg.Watch.Extensions, server.Reload, a.logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.cfg.DistDir, err)
	}
	defer watcher.Close()
	go watcher.Run(ctx)

	return server.ListenAndServe(ctx)
}

func (a *App) devServer() (*devserver.Server, error) {
	resolver, err := assets.NewResolver(a.cfg.DistDir)
	if err != nil {
		return nil, err
	}
	return devserver.New(a.cfg, resolver, a.registry, a.logger), nil
}
