// Command provision creates a super admin API key and prints it. Super admins
// approve admin keys through /api/approveAdmin and cannot be created over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	sqliteadapter "github.com/ericfisherdev/tasteofthebes/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/tasteofthebes/internal/application"
	"github.com/ericfisherdev/tasteofthebes/internal/config"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		slog.Error("provision failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	svc := application.NewAPIKeyService(sqliteadapter.NewAPIKeyRepo(db), logger)
	key, err := svc.ProvisionSuperAdmin(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, key.Key)
	return err
}
