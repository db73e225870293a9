package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/parlami/internal/report"
)

func newReportCommand() *cobra.Command {
	var withPDF bool
	command := &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown progress report, optionally converted to PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = ws.Close()
			}()

			saved, err := ws.savedTranslations().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("savedTranslations.List > %w", err)
			}

			data := report.Build(ws.session, saved, time.Now())
			result, err := report.Write(data, report.Options{
				Directory:    ws.cfg.Outputs.ReportDirectory,
				TemplatePath: ws.cfg.Templates.ReportTemplate,
				PDF:          withPDF,
			})
			if err != nil {
				return fmt.Errorf("report.Write > %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Wrote %s\n", result.MarkdownPath)
			if result.PDFPath != "" {
				_, _ = fmt.Fprintf(out, "Wrote %s\n", result.PDFPath)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&withPDF, "pdf", false, "also convert the report to PDF")
	return command
}
