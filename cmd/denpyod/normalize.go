package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/normalize"
	"github.com/shirakawa-dev/denpyo/internal/pipeline"
)

// newNormalizeCmd runs the pipeline once over a raw analyze-result file (or
// stdin) and prints the result JSON. No database involved.
func newNormalizeCmd(logger *slog.Logger) *cobra.Command {
	var docType string
	var taxRate float64

	cmd := &cobra.Command{
		Use:   "normalize [file.json]",
		Short: "Normalize one raw OCR result and print the draft document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			if len(args) == 1 && args[0] != "-" {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			cfg := common.LoadConfig()
			vocab, err := normalize.LoadVocabulary(cfg.Normalize.VocabPath)
			if err != nil {
				return err
			}
			rate := cfg.Normalize.DefaultTaxRate
			if taxRate > 0 {
				rate = taxRate
			}
			orch := normalize.NewOrchestrator(vocab, normalize.Config{DefaultTaxRate: rate}, logger)
			pipe := pipeline.NewPipeline(logger, pipeline.Config{SkipPersist: true}, orch, nil)

			opts := normalize.Options{}
			if docType != "" {
				opts.DocType, _ = constants.ParseDocType(docType)
			}
			result, err := pipe.Run(context.Background(), raw, opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&docType, "doc-type", "", "document type hint (invoice, quote, receipt)")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", 0, "document tax rate override (10 or 0.10)")
	return cmd
}
