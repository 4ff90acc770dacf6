package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cybre/yeelight-office/internal/cli"
	"github.com/cybre/yeelight-office/internal/config"
	"github.com/pterm/pterm"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("load configuration: %v", err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
