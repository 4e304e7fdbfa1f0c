package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/tuffi-studio/tuffi/internal/build"
	"github.com/tuffi-studio/tuffi/internal/cli"
	"github.com/tuffi-studio/tuffi/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the config file")
	srcDir := flag.String("src", "", "staging directory (overrides config)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	output := cli.NewOutput()
	output.PrintHeader("Tuffi Build")

	cfg, err := config.Load(*configPath)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	if *srcDir != "" {
		cfg.StagingDir = *srcDir
	}
	if *outDir != "" {
		cfg.DistDir = *outDir
	}

	engine := build.NewEngine(build.Options{
		StagingDir: cfg.StagingDir,
		OutDir:     cfg.DistDir,
		Naming:     cfg.Naming,
		Out:        output,
	})

	result, err := engine.Run(context.Background())
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	output.PrintDone("Build completed in " + result.Duration.Round(time.Millisecond).String())
}
