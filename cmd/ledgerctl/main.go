package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/alecthomas/kong"
)

var cli struct {
	Migrate MigrateCmd `cmd:"" help:"Apply or revert database migrations."`
	Chart   ChartCmd   `cmd:"" help:"Manage the chart of accounts."`
	Audit   AuditCmd   `cmd:"" help:"Inspect the audit chain."`
	Report  ReportCmd  `cmd:"" help:"Print financial reports as JSON."`
	Token   TokenCmd   `cmd:"" help:"Issue an API token for an actor."`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := kong.Parse(&cli,
		kong.Name("ledgerctl"),
		kong.Description("Administrative commands for the ledger engine."),
		kong.UsageOnError(),
		kong.Bind(&runtime{cfg: cfg}),
	)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
