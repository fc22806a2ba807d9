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

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses of the selected travel plan",
	}

	cmd.PersistentFlags().String("plan", "", "Plan id (defaults to the selected plan)")

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(editExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses with per-trip statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}
			planID, err := resolvePlanID(ctx, cmd)
			if err != nil {
				return err
			}

			expenses, err := client.Expenses().ListByPlan(ctx, planID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			category, _ := cmd.Flags().GetString("category")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")

			filters := []analytics.Filter[model.TravelExpense]{
				analytics.Substring(search,
					func(e model.TravelExpense) string { return e.Description },
				),
				analytics.Exact(category, func(e model.TravelExpense) string { return e.Category }),
			}
			comparators := map[string]analytics.Comparator[model.TravelExpense]{
				"fecha":     compareTime(func(e model.TravelExpense) time.Time { return e.Date }),
				"monto":     compareFloat(func(e model.TravelExpense) float64 { return e.Amount }),
				"categoria": func(a, b model.TravelExpense) int { return strings.Compare(a.Category, b.Category) },
			}

			visible, err := analytics.View(expenses, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay gastos registrados para este plan."))
				return nil
			}

			w := newTable("ID", "Fecha", "Descripción", "Categoría", "Monto")
			for _, e := range visible {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n",
					e.ID, e.Date.Format("2006-01-02"), e.Description, e.Category, e.Amount)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.TravelExpense]{
				"total":      analytics.CountAll[model.TravelExpense](),
				"montoTotal": analytics.SumBy(func(e model.TravelExpense) float64 { return e.Amount }),
				"promedio":   analytics.AvgBy(func(e model.TravelExpense) float64 { return e.Amount }),
				"minimo":     analytics.MinBy(func(e model.TravelExpense) float64 { return e.Amount }),
				"maximo":     analytics.MaxBy(func(e model.TravelExpense) float64 { return e.Amount }),
				"categorias": analytics.CountDistinctBy(func(e model.TravelExpense) string { return e.Category }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Gastos"},
				{key: "montoTotal", label: "Monto total", money: true},
				{key: "promedio", label: "Promedio", money: true},
				{key: "minimo", label: "Mínimo", money: true},
				{key: "maximo", label: "Máximo", money: true},
				{key: "categorias", label: "Categorías"},
			})

			byCategory, _ := cmd.Flags().GetBool("by-category")
			if byCategory {
				fmt.Println()
				fmt.Println(cli.FormatTitle("Por categoría"))
				groups := analytics.GroupBy(visible,
					func(e model.TravelExpense) string { return e.Category }, nil, nil)
				gw := newTable("Categoría", "Gastos", "Monto")
				for _, g := range groups {
					sum := analytics.Aggregate(g.Items, analytics.Spec[model.TravelExpense]{
						"monto": analytics.SumBy(func(e model.TravelExpense) float64 { return e.Amount }),
					})
					fmt.Fprintf(gw, "%s\t%d\t%.2f\n", g.Key, g.Total, sum["monto"])
				}
				if err := gw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	addListFlags(cmd, "fecha, monto, categoria")
	cmd.Flags().String("category", "", "Only show expenses in this category")
	cmd.Flags().Bool("by-category", false, "Show a per-category breakdown")
	return cmd
}

func addExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}
			planID, err := resolvePlanID(ctx, cmd)
			if err != nil {
				return err
			}

			amount, _ := cmd.Flags().GetFloat64("amount")
			currency, _ := cmd.Flags().GetString("currency")
			category, _ := cmd.Flags().GetString("category")
			dateStr, _ := cmd.Flags().GetString("date")

			expense := &model.TravelExpense{
				PlanID:      planID,
				Description: args[0],
				Category:    category,
				Currency:    currency,
				Amount:      amount,
				Date:        time.Now(),
			}
			if dateStr != "" {
				date, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
				expense.Date = date
			}

			created, err := client.Expenses().Create(ctx, expense)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Gasto '%s' registrado por $%.2f.",
				cli.MoneyIcon, created.Description, created.Amount)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "Amount spent")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("category", "general", "Expense category")
	cmd.Flags().String("date", "", "Expense date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func editExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			expense, err := client.Expenses().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("description") {
				expense.Description, _ = cmd.Flags().GetString("description")
			}
			if cmd.Flags().Changed("amount") {
				expense.Amount, _ = cmd.Flags().GetFloat64("amount")
			}
			if cmd.Flags().Changed("category") {
				expense.Category, _ = cmd.Flags().GetString("category")
			}
			if err := expense.Validate(); err != nil {
				return err
			}

			updated, err := client.Expenses().Update(ctx, expense.ID, expense)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Gasto '%s' actualizado.", updated.Description)))
			return nil
		},
	}

	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Float64("amount", 0, "New amount")
	cmd.Flags().String("category", "", "New category")
	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			expense, err := client.Expenses().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("el gasto '%s'", expense.Description), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando gasto", func() error {
				return client.Expenses().Delete(ctx, expense.ID, hard)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Gasto '%s' eliminado.", expense.Description)))
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}
