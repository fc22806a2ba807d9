package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transactions",
		Long: `List, add, update, and deactivate recurring incomes and expenses.
Amounts are projected to their monthly equivalent for the statistics.`,
	}

	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(editRecurringCmd())
	cmd.AddCommand(deleteRecurringCmd())
	cmd.AddCommand(toggleRecurringCmd("activate", true))
	cmd.AddCommand(toggleRecurringCmd("deactivate", false))

	return cmd
}

func listRecurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, session, err := initClient()
			if err != nil {
				return err
			}
			userID, err := currentUserID(session)
			if err != nil {
				return err
			}

			recurring, err := client.Recurring().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			movType, _ := cmd.Flags().GetString("type")
			interval, _ := cmd.Flags().GetString("interval")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")

			filters := []analytics.Filter[model.RecurringTransaction]{
				analytics.Substring(search,
					func(r model.RecurringTransaction) string { return r.Description },
					func(r model.RecurringTransaction) string { return r.Currency },
				),
				analytics.Exact(movType, func(r model.RecurringTransaction) string { return string(r.Type) }),
				analytics.Exact(interval, func(r model.RecurringTransaction) string { return string(r.Interval) }),
				analytics.TriState(triStateFlag(cmd, "active", "inactive"),
					func(r model.RecurringTransaction) bool { return r.Active }),
			}
			comparators := map[string]analytics.Comparator[model.RecurringTransaction]{
				"descripcion": func(a, b model.RecurringTransaction) int {
					return strings.Compare(a.Description, b.Description)
				},
				"monto":            compareFloat(func(r model.RecurringTransaction) float64 { return r.Amount }),
				"proximaEjecucion": compareTime(func(r model.RecurringTransaction) time.Time { return r.NextRun }),
			}

			visible, err := analytics.View(recurring, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay transacciones recurrentes."))
				return nil
			}

			now := time.Now()
			w := newTable("ID", "Descripción", "Tipo", "Monto", "Mensual", "Frecuencia", "Próxima", "Estado")
			for _, r := range visible {
				monthly, err := analytics.MonthlyEquivalent(r.Amount, r.Interval)
				if err != nil {
					return err
				}
				urgency := analytics.Bucket(analytics.DaysUntil(r.NextRun, now), analytics.DueSoonDays)
				next := cli.UrgencyStyle(urgency).Render(r.NextRun.Format("2006-01-02"))
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%s\t%s\t%s\n",
					r.ID, r.Description, r.Type, r.Amount, monthly, r.Interval, next, activeLabel(r.Active))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			monthlyOf := func(r model.RecurringTransaction) float64 {
				if !r.Active {
					return 0
				}
				monthly, err := analytics.MonthlyEquivalent(r.Amount, r.Interval)
				if err != nil {
					return 0
				}
				return monthly
			}
			stats := analytics.Aggregate(visible, analytics.Spec[model.RecurringTransaction]{
				"total": analytics.CountAll[model.RecurringTransaction](),
				"ingresosMensuales": analytics.SumBy(func(r model.RecurringTransaction) float64 {
					if r.Type != model.MovementIncome {
						return 0
					}
					return monthlyOf(r)
				}),
				"gastosMensuales": analytics.SumBy(func(r model.RecurringTransaction) float64 {
					if r.Type != model.MovementExpense {
						return 0
					}
					return monthlyOf(r)
				}),
				"proximas": analytics.CountWhere(func(r model.RecurringTransaction) bool {
					return r.Active && analytics.Bucket(analytics.DaysUntil(r.NextRun, now), analytics.DueSoonDays) != analytics.UrgencyNormal
				}),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Recurrentes"},
				{key: "ingresosMensuales", label: "Ingresos mensuales", money: true},
				{key: "gastosMensuales", label: "Gastos mensuales", money: true},
				{key: "proximas", label: "Próximas a ejecutar"},
			})
			return nil
		},
	}

	addListFlags(cmd, "descripcion, monto, proximaEjecucion")
	addActiveFlags(cmd)
	cmd.Flags().String("type", "", "Filter by movement type (ingreso, gasto)")
	cmd.Flags().String("interval", "", "Filter by interval (diaria, semanal, quincenal, mensual, trimestral, semestral, anual)")
	return cmd
}

func addRecurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Create a recurring transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, session, err := initClient()
			if err != nil {
				return err
			}
			userID, err := currentUserID(session)
			if err != nil {
				return err
			}

			amount, _ := cmd.Flags().GetFloat64("amount")
			movType, _ := cmd.Flags().GetString("type")
			intervalStr, _ := cmd.Flags().GetString("interval")
			currency, _ := cmd.Flags().GetString("currency")
			accountID, _ := cmd.Flags().GetString("account")
			categoryID, _ := cmd.Flags().GetString("category")

			interval := model.Interval(intervalStr)
			if _, err := analytics.MonthlyEquivalent(1, interval); err != nil {
				return err
			}

			recurring := &model.RecurringTransaction{
				UserID:      userID,
				AccountID:   accountID,
				CategoryID:  categoryID,
				Description: args[0],
				Type:        model.MovementType(movType),
				Interval:    interval,
				Currency:    currency,
				Amount:      amount,
				Active:      true,
			}

			created, err := client.Recurring().Create(ctx, recurring)
			if err != nil {
				return err
			}

			monthly, _ := analytics.MonthlyEquivalent(created.Amount, created.Interval)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Recurrente '%s' creada (%s). Equivalente mensual: $%.2f.", created.Description, created.ID, monthly)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "Amount per occurrence")
	cmd.Flags().String("type", "gasto", "Movement type (ingreso, gasto)")
	cmd.Flags().String("interval", "mensual", "Interval (diaria, semanal, quincenal, mensual, trimestral, semestral, anual)")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("account", "", "Account the movement hits")
	cmd.Flags().String("category", "", "Category of the movement")
	return cmd
}

func editRecurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a recurring transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			recurring, err := client.Recurring().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("description") {
				recurring.Description, _ = cmd.Flags().GetString("description")
			}
			if cmd.Flags().Changed("amount") {
				recurring.Amount, _ = cmd.Flags().GetFloat64("amount")
			}
			if cmd.Flags().Changed("interval") {
				intervalStr, _ := cmd.Flags().GetString("interval")
				recurring.Interval = model.Interval(intervalStr)
			}
			if err := recurring.Validate(); err != nil {
				return err
			}

			updated, err := client.Recurring().Update(ctx, recurring.ID, recurring)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recurrente '%s' actualizada.", updated.Description)))
			return nil
		},
	}

	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Float64("amount", 0, "New amount")
	cmd.Flags().String("interval", "", "New interval")
	return cmd
}

func deleteRecurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deactivate a recurring transaction, or delete it permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			recurring, err := client.Recurring().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("la transacción recurrente '%s'", recurring.Description), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando recurrente", func() error {
				return client.Recurring().Delete(ctx, recurring.ID, hard)
			})
			if err != nil {
				return err
			}

			if hard {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recurrente '%s' eliminada permanentemente.", recurring.Description)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recurrente '%s' desactivada.", recurring.Description)))
			}
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func toggleRecurringCmd(use string, active bool) *cobra.Command {
	short := "Reactivate a recurring transaction"
	if !active {
		short = "Pause a recurring transaction keeping its data"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := initClient()
			if err != nil {
				return err
			}

			updated, err := client.Recurring().ToggleActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			state := "reactivada"
			if !active {
				state = "desactivada"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recurrente '%s' %s.", updated.Description, state)))
			return nil
		},
	}
}
