// Command catalogctl is the operator tool for the catalog database.
//
// Usage:
//
//	catalogctl migrate up|down|status
//	catalogctl reprice
//	catalogctl import --file batch.json
//
// The --config flag (or CONFIG_PATH) selects the YAML file; environment
// variables override it as for the server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openCatalog).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
