package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/config"
	"github.com/mvallesteros/rumbo/internal/export"
	"github.com/mvallesteros/rumbo/internal/report"
	"github.com/mvallesteros/rumbo/internal/service"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the financial dashboard report",
		Long: `Fetch accounts, budgets, goals, recurring transactions, and the
monthly summary, compute the derived metrics, and print the report.
Use --export to also write it as a PDF or a Google Sheets spreadsheet.`,
		RunE: runReport,
	}

	cmd.Flags().String("export", "", "Export format (pdf or sheets)")
	cmd.Flags().String("output", "", "Directory for PDF exports")

	cmd.AddCommand(sheetsAuthCmd())
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, session, err := initClient()
	if err != nil {
		return err
	}
	userID, err := currentUserID(session)
	if err != nil {
		return err
	}

	userName := ""
	if user, ok := session.User(); ok {
		userName = user.Name
	}

	exportFormat, _ := cmd.Flags().GetString("export")
	steps := 2
	if exportFormat != "" {
		steps = 3
	}
	bar := cli.NewStepBar(os.Stderr, steps, "Generando reporte")

	builder := report.NewBuilder(
		client.Accounts(),
		client.Budgets(),
		client.Goals(),
		client.Recurring(),
		client.Reports(),
	)
	dashboard, err := builder.Build(ctx, userID, time.Now())
	if err != nil {
		return err
	}
	cli.Advance(bar)

	doc := report.Document(dashboard, userName)
	cli.Advance(bar)

	switch exportFormat {
	case "":
		// Print only.
	case "pdf":
		path, err := exportPDF(cmd, doc)
		if err != nil {
			return err
		}
		cli.Advance(bar)
		fmt.Fprintln(os.Stderr)
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Reporte exportado a %s", cli.ChartIcon, path)))
	case "sheets":
		url, err := exportSheets(cmd, doc)
		if err != nil {
			return err
		}
		cli.Advance(bar)
		fmt.Fprintln(os.Stderr)
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Reporte exportado a %s", cli.ChartIcon, url)))
	default:
		return fmt.Errorf("unknown export format %q, expected pdf or sheets", exportFormat)
	}

	fmt.Fprintln(os.Stderr)
	printReport(dashboard, doc)
	return nil
}

func printReport(dashboard *report.Dashboard, doc *service.ReportDocument) {
	subtitle := doc.Header.Subtitle
	if doc.Header.UserName != "" {
		subtitle = fmt.Sprintf("%s · %s", doc.Header.UserName, subtitle)
	}
	fmt.Println(cli.RenderBox(fmt.Sprintf("%s %s", cli.ChartIcon, doc.Header.Title), subtitle))
	fmt.Println()

	printStats(dashboard.Metrics, []statTile{
		{key: "saldoTotal", label: "Saldo total", money: true},
		{key: "cuentasActivas", label: "Cuentas activas"},
		{key: "ingresosMensuales", label: "Ingresos mensuales", money: true},
		{key: "gastosMensuales", label: "Gastos mensuales", money: true},
		{key: "recurrentesProximas", label: "Recurrentes próximas"},
		{key: "presupuestoTotal", label: "Presupuesto total", money: true},
		{key: "gastadoTotal", label: "Gastado total", money: true},
		{key: "presupuestosExcedidos", label: "Presupuestos excedidos"},
		{key: "metasActivas", label: "Metas activas"},
		{key: "metasCompletadas", label: "Metas completadas"},
		{key: "progresoPromedio", label: "Progreso promedio"},
	})

	for _, table := range doc.Tables {
		fmt.Println()
		fmt.Println(cli.FormatTitle(table.Name))
		if len(table.Rows) == 0 {
			fmt.Println(cli.SubtleStyle.Render("Sin registros"))
			continue
		}
		w := newTable(table.Header...)
		for _, row := range table.Rows {
			for i, cell := range row {
				if i > 0 {
					fmt.Fprint(w, "\t")
				}
				fmt.Fprint(w, cell)
			}
			fmt.Fprintln(w)
		}
		_ = w.Flush()
	}
}

func exportPDF(cmd *cobra.Command, doc *service.ReportDocument) (string, error) {
	dir, _ := cmd.Flags().GetString("output")
	if dir == "" {
		dir = viper.GetString("export.dir")
	}
	if dir == "" {
		dir = "~/.local/share/rumbo/exports"
	}
	dir = config.ExpandPath(dir)

	exporter := export.NewPDFExporter(dir, slog.Default())
	return exporter.Export(cmd.Context(), doc)
}

func exportSheets(cmd *cobra.Command, doc *service.ReportDocument) (string, error) {
	cfg := export.DefaultSheetsConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return "", err
	}

	exporter, err := export.NewSheetsExporter(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return "", err
	}
	return exporter.Export(cmd.Context(), doc)
}

func sheetsAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Sheets exports interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			clientID := os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
			clientSecret := os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET must be set")
			}

			tokenFile := config.ExpandPath("~/.config/rumbo/sheets-token.json")

			token, err := export.GetOrCreateToken(ctx, export.OAuth2Config{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				TokenFile:    tokenFile,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Autorización completada."))
			if token.RefreshToken != "" {
				fmt.Println(cli.FormatInfo("Exporta GOOGLE_SHEETS_REFRESH_TOKEN con el valor guardado en " + tokenFile))
			}
			return nil
		},
	}
	return cmd
}
