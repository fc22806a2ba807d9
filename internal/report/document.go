package report

import (
	"fmt"
	"time"

	"github.com/mvallesteros/rumbo/internal/service"
)

// Document shapes the dashboard into the exporter contract: one header
// block plus a table per section.
func Document(d *Dashboard, userName string) *service.ReportDocument {
	month := d.GeneratedAt.Format("January 2006")

	doc := &service.ReportDocument{
		Header: service.HeaderBlock{
			Title:       "Reporte financiero",
			Subtitle:    fmt.Sprintf("Resumen de %s", month),
			GeneratedAt: d.GeneratedAt,
			UserName:    userName,
		},
	}

	summary := service.TableSpec{
		Name:   "Resumen",
		Header: []string{"Indicador", "Valor"},
	}
	summary.Rows = append(summary.Rows,
		[]string{"Saldo total", money(d.Metrics["saldoTotal"])},
		[]string{"Cuentas activas", count(d.Metrics["cuentasActivas"])},
		[]string{"Ingresos mensuales proyectados", money(d.Metrics["ingresosMensuales"])},
		[]string{"Gastos mensuales proyectados", money(d.Metrics["gastosMensuales"])},
		[]string{"Presupuestos excedidos", count(d.Metrics["presupuestosExcedidos"])},
		[]string{"Metas completadas", count(d.Metrics["metasCompletadas"])},
	)
	if d.Summary != nil {
		summary.Rows = append(summary.Rows,
			[]string{"Ingresos del mes (servidor)", money(d.Summary.Income)},
			[]string{"Gastos del mes (servidor)", money(d.Summary.Expenses)},
			[]string{"Neto del mes (servidor)", money(d.Summary.Net)},
		)
	}
	doc.Tables = append(doc.Tables, summary)

	accounts := service.TableSpec{
		Name:   "Cuentas",
		Header: []string{"Nombre", "Tipo", "Moneda", "Saldo", "Estado"},
	}
	for _, a := range d.Accounts {
		accounts.Rows = append(accounts.Rows, []string{
			a.Name, string(a.Type), a.Currency, money(a.Balance), activeLabel(a.Active),
		})
	}
	doc.Tables = append(doc.Tables, accounts)

	budgets := service.TableSpec{
		Name:   "Presupuestos",
		Header: []string{"Categoría", "Límite", "Gastado", "Restante", "Uso %"},
	}
	for _, b := range d.Budgets {
		budgets.Rows = append(budgets.Rows, []string{
			b.Category, money(b.Limit), money(b.Spent), money(b.Remaining()),
			fmt.Sprintf("%.0f%%", b.UsedPercent()),
		})
	}
	doc.Tables = append(doc.Tables, budgets)

	goals := service.TableSpec{
		Name:   "Metas",
		Header: []string{"Nombre", "Objetivo", "Ahorrado", "Progreso %", "Fecha límite"},
	}
	for _, g := range d.Goals {
		goals.Rows = append(goals.Rows, []string{
			g.Name, money(g.Target), money(g.Saved),
			fmt.Sprintf("%.0f%%", g.ProgressPercent()),
			dateLabel(g.Deadline),
		})
	}
	doc.Tables = append(doc.Tables, goals)

	return doc
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func count(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func activeLabel(active bool) string {
	if active {
		return "activa"
	}
	return "inactiva"
}

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}
