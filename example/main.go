package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tuffi-studio/tuffi"
)

func main() {
	app, err := tuffi.New(
		tuffi.WithFunction("greet", func(args []string) (string, error) {
			name := "there"
			if len(args) > 0 {
				name = strings.Join(args, " ")
			}
			return fmt.Sprintf("Hi %s, it is %s", name, time.Now().Format(time.Kitchen)), nil
		}),
	)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.Build(ctx); err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := app.Serve(ctx); err != nil {
		log.Fatalf("serve failed: %v", err)
	}
}
