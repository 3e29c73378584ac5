package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/ledger_engine/internal/chart"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/alecthomas/kong"
)

// runtime carries what every command needs and opens the database on demand.
type runtime struct {
	cfg *config.Config
}

func (r *runtime) services(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	pool, err := database.NewPgxPool(ctx, r.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	container := services.NewServiceContainer(r.cfg, pgsql.NewRepositoryProvider(pool))
	return container, func() { database.ClosePgxPool(pool) }, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type MigrateCmd struct {
	Up   MigrateUpCmd   `cmd:"" help:"Apply every pending migration."`
	Down MigrateDownCmd `cmd:"" help:"Revert every migration."`
}

type MigrateUpCmd struct{}

func (cmd *MigrateUpCmd) Run(rt *runtime) error {
	return database.RunMigrations(rt.cfg.DatabaseURL, rt.cfg.MigrationsPath, database.Up)
}

type MigrateDownCmd struct {
	Yes bool `help:"Confirm dropping every ledger table." short:"y"`
}

func (cmd *MigrateDownCmd) Run(rt *runtime) error {
	if !cmd.Yes {
		return fmt.Errorf("refusing to revert migrations without --yes")
	}
	return database.RunMigrations(rt.cfg.DatabaseURL, rt.cfg.MigrationsPath, database.Down)
}

type ChartCmd struct {
	Import ChartImportCmd `cmd:"" help:"Create the accounts of a YAML chart, skipping codes that exist."`
}

type ChartImportCmd struct {
	File  string `arg:"" type:"existingfile" help:"Chart of accounts YAML file."`
	Actor string `help:"Actor recorded as creator." default:"ledgerctl"`
}

func (cmd *ChartImportCmd) Run(ctx *kong.Context, rt *runtime) error {
	c, err := chart.LoadFile(cmd.File)
	if err != nil {
		return err
	}

	runCtx := context.Background()
	svc, closeFn, err := rt.services(runCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := chart.Import(runCtx, svc.Account, c, cmd.Actor)
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, result)
}

type AuditCmd struct {
	Verify AuditVerifyCmd `cmd:"" help:"Recompute the hash chain and report the first broken link."`
}

type AuditVerifyCmd struct {
	From int64 `help:"First record id (0 for the start of the log)." default:"0"`
	To   int64 `help:"Last record id (0 for the end of the log)." default:"0"`
}

func (cmd *AuditVerifyCmd) Run(ctx *kong.Context, rt *runtime) error {
	runCtx := context.Background()
	svc, closeFn, err := rt.services(runCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Audit.Verify(runCtx, cmd.From, cmd.To)
	if err != nil {
		return err
	}
	if err := printJSON(ctx.Stdout, result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("audit chain broken: %s", result.Reason)
	}
	return nil
}

type ReportCmd struct {
	TrialBalance TrialBalanceCmd `cmd:"" help:"Gross debits and credits per account for a period."`
	BalanceSheet BalanceSheetCmd `cmd:"" help:"Assets, liabilities and equity as of a date."`
}

type TrialBalanceCmd struct {
	Start string `required:"" help:"Period start (YYYY-MM-DD)."`
	End   string `required:"" help:"Period end (YYYY-MM-DD)."`
}

func (cmd *TrialBalanceCmd) Run(ctx *kong.Context, rt *runtime) error {
	start, err := dto.ParseDate(cmd.Start)
	if err != nil {
		return err
	}
	end, err := dto.ParseDate(cmd.End)
	if err != nil {
		return err
	}

	runCtx := context.Background()
	svc, closeFn, err := rt.services(runCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := svc.Reporting.TrialBalance(runCtx, start.Time, end.Time)
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, report)
}

type BalanceSheetCmd struct {
	AsOf      string `required:"" help:"Report date (YYYY-MM-DD)."`
	CompareTo string `help:"Comparison date (YYYY-MM-DD)."`
}

func (cmd *BalanceSheetCmd) Run(ctx *kong.Context, rt *runtime) error {
	asOf, err := dto.ParseDate(cmd.AsOf)
	if err != nil {
		return err
	}
	var compareTo *time.Time
	if cmd.CompareTo != "" {
		d, err := dto.ParseDate(cmd.CompareTo)
		if err != nil {
			return err
		}
		compareTo = &d.Time
	}

	runCtx := context.Background()
	svc, closeFn, err := rt.services(runCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := svc.Reporting.BalanceSheet(runCtx, asOf.Time, compareTo)
	if err != nil {
		return err
	}
	return printJSON(ctx.Stdout, report)
}

type TokenCmd struct {
	Actor  string        `arg:"" help:"Actor the token authenticates as."`
	Expiry time.Duration `help:"Token lifetime; the configured JWT expiry when zero." default:"0s"`
}

func (cmd *TokenCmd) Run(ctx *kong.Context, rt *runtime) error {
	expiry := cmd.Expiry
	if expiry <= 0 {
		expiry = rt.cfg.JWTExpiryDuration
	}
	token, err := utils.GenerateJWT(cmd.Actor, rt.cfg.JWTSecret, expiry, rt.cfg.JWTIssuer)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Stdout, token)
	return err
}
