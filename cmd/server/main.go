// Command server runs the catalog HTTP API.
//
// Configuration is read from the file named by CONFIG_PATH (or ./config.yaml)
// and overridden by environment variables. SIGINT and SIGTERM trigger a
// graceful shutdown.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/megamarket-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server stopped with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
