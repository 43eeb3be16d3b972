// Command stockpile is the inventory storage engine CLI. It manages the
// item catalog, containers, and their event journals in a SQLite database.
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/emberhollow/stockpile/internal/cli"
	platformcmd "github.com/emberhollow/stockpile/internal/platform/cmd"
	"github.com/emberhollow/stockpile/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(version())
	err := platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceStockpile, func(ctx context.Context) error {
		return root.ExecuteContext(ctx)
	})
	if err != nil {
		stop()
		config.Exitf("%v", err)
	}
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}
