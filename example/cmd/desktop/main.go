package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/tuffi-studio/tuffi"
	webview "github.com/webview/webview_go"
)

func main() {
	app, err := tuffi.New()
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	if _, err := app.Build(context.Background()); err != nil {
		log.Fatalf("build failed: %v", err)
	}

	handler, err := app.Handler()
	if err != nil {
		log.Fatalf("failed to create handler: %v", err)
	}

	server := &http.Server{Handler: handler}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()

	localURL := fmt.Sprintf("http://%s", listener.Addr().String())

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("server error: %v", err)
		}
	}()

	debug := os.Getenv("TUFFI_DEV") == "1"

	w := webview.New(debug)
	defer w.Destroy()

	w.SetTitle("Tuffi Counter")
	w.SetSize(800, 600, webview.HintNone)
	w.Navigate(localURL)

	w.Run()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}
