package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/export"
	"github.com/shirakawa-dev/denpyo/internal/repository"
)

func newExportCmd(logger *slog.Logger) *cobra.Command {
	var out, fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored documents to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			db, err := repository.Open(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer repository.Close(db, logger)
			if err := repository.Migrate(ctx, db, logger); err != nil {
				return err
			}

			parse := func(s string) (*time.Time, error) {
				if s == "" {
					return nil, nil
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					return nil, fmt.Errorf("invalid date %q: %w", s, err)
				}
				return &t, nil
			}
			from, err := parse(fromStr)
			if err != nil {
				return err
			}
			to, err := parse(toStr)
			if err != nil {
				return err
			}

			docsRepo := repository.NewDocumentRepository(db, cfg.Database.Driver, logger)
			svc := export.NewService(docsRepo, cfg.Export.SheetName, logger)
			buf, err := svc.ExportDocumentsXLSX(ctx, from, to)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf, 0o644); err != nil {
				return err
			}
			logger.Info("export written", "path", out, "bytes", len(buf))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "documents.xlsx", "output file path")
	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}
