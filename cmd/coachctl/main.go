package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/coachgrid/internal/cli"
	_ "github.com/JonMunkholm/coachgrid/internal/core/tables" // Register all tables
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cli.Version = version
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
