package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuffi-studio/tuffi"
	"github.com/tuffi-studio/tuffi/internal/cli"
	"github.com/tuffi-studio/tuffi/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	skipBuild := flag.Bool("skip-build", false, "serve the existing dist directory without rebuilding")
	flag.Parse()

	output := cli.NewOutput()
	output.PrintHeader("Tuffi Dev Server")

	cfg, err := config.Load(*configPath)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app, err := tuffi.New(
		tuffi.WithConfig(cfg),
		tuffi.WithLogger(logger),
		tuffi.WithOutput(output),
	)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*skipBuild {
		if _, err := app.Build(ctx); err != nil {
			output.PrintError("%v", err)
			os.Exit(1)
		}
	}

	output.PrintStep("🌐", "Serving %s on http://%s", cfg.DistDir, cfg.Server.Addr)

	if err := app.Serve(ctx); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	output.PrintDone("Server stopped")
}
