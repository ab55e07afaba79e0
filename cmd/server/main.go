// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultPort          = "3001"
	defaultConfigPath    = "./configs/config.yaml"
	gracefulShutdownTime = 15 * time.Second
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", defaultConfigPath, "path to config file")
	flag.Parse()

	app, cleanup, err := InitializeApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	app.Logger.Info(fmt.Sprintf("using config file: %s", configPath))

	port := app.Config.App.Port
	if port == "" {
		port = defaultPort
	}
	addr := ":" + port

	server := &http.Server{
		Addr:    addr,
		Handler: app.Engine,
	}

	serverErr := make(chan error, 1)
	shutdownSignal := make(chan os.Signal, 1)

	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		app.Logger.Info(fmt.Sprintf("starting server on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Error(fmt.Sprintf("server failed: %v", err))
			serverErr <- err
		}
	}()

	select {
	case sig := <-shutdownSignal:
		app.Logger.Info(fmt.Sprintf("received signal: %s, shutting down", sig))
	case err := <-serverErr:
		app.Logger.Error(fmt.Sprintf("server error: %v, shutting down", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTime)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		app.Logger.Error(fmt.Sprintf("forced shutdown: %v (incomplete requests terminated)", err))
	} else {
		app.Logger.Info("server stopped gracefully")
	}
}
