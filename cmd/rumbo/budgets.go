package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage your monthly budgets",
		Long:  `List, add, update, and deactivate spending budgets per category.`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(editBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())
	cmd.AddCommand(toggleBudgetCmd("activate", true))
	cmd.AddCommand(toggleBudgetCmd("deactivate", false))

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all budgets",
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

			budgets, err := client.Budgets().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")
			exceeded, _ := cmd.Flags().GetBool("exceeded")

			filters := []analytics.Filter[model.Budget]{
				analytics.Substring(search, func(b model.Budget) string { return b.Category }),
				analytics.TriState(triStateFlag(cmd, "active", "inactive"),
					func(b model.Budget) bool { return b.Active }),
			}
			if exceeded {
				filters = append(filters, func(b model.Budget) bool { return b.Spent > b.Limit })
			}
			comparators := map[string]analytics.Comparator[model.Budget]{
				"categoria": func(a, b model.Budget) int { return strings.Compare(a.Category, b.Category) },
				"monto":     compareFloat(func(b model.Budget) float64 { return b.Limit }),
				"gastado":   compareFloat(func(b model.Budget) float64 { return b.Spent }),
			}

			visible, err := analytics.View(budgets, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay presupuestos. Usa 'rumbo budgets add' para crear uno."))
				return nil
			}

			w := newTable("ID", "Categoría", "Límite", "Gastado", "Restante", "Uso %", "Estado")
			for _, b := range visible {
				usage := fmt.Sprintf("%.0f%%", b.UsedPercent())
				if b.Spent > b.Limit {
					usage = cli.ErrorStyle.Render(usage)
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
					b.ID, b.Category, b.Limit, b.Spent, b.Remaining(), usage, activeLabel(b.Active))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.Budget]{
				"total":        analytics.CountAll[model.Budget](),
				"montoTotal":   analytics.SumBy(func(b model.Budget) float64 { return b.Limit }),
				"gastadoTotal": analytics.SumBy(func(b model.Budget) float64 { return b.Spent }),
				"excedidos":    analytics.CountWhere(func(b model.Budget) bool { return b.Spent > b.Limit }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Presupuestos"},
				{key: "montoTotal", label: "Límite total", money: true},
				{key: "gastadoTotal", label: "Gastado total", money: true},
				{key: "excedidos", label: "Excedidos"},
			})
			return nil
		},
	}

	addListFlags(cmd, "categoria, monto, gastado")
	addActiveFlags(cmd)
	cmd.Flags().Bool("exceeded", false, "Show only budgets over their limit")
	return cmd
}

func addBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <category>",
		Short: "Create a budget for a category",
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

			limit, _ := cmd.Flags().GetFloat64("limit")
			currency, _ := cmd.Flags().GetString("currency")
			categoryID, _ := cmd.Flags().GetString("category-id")

			budget := &model.Budget{
				UserID:     userID,
				Category:   args[0],
				CategoryID: categoryID,
				Currency:   currency,
				Limit:      limit,
				Active:     true,
			}
			created, err := client.Budgets().Create(ctx, budget)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Presupuesto de '%s' creado (%s).", created.Category, created.ID)))
			return nil
		},
	}

	cmd.Flags().Float64("limit", 0, "Monthly spending limit")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("category-id", "", "Category this budget tracks")
	return cmd
}

func editBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			budget, err := client.Budgets().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("limit") {
				budget.Limit, _ = cmd.Flags().GetFloat64("limit")
			}
			if cmd.Flags().Changed("currency") {
				budget.Currency, _ = cmd.Flags().GetString("currency")
			}
			if err := budget.Validate(); err != nil {
				return err
			}

			updated, err := client.Budgets().Update(ctx, budget.ID, budget)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Presupuesto de '%s' actualizado.", updated.Category)))
			return nil
		},
	}

	cmd.Flags().Float64("limit", 0, "New monthly limit")
	cmd.Flags().String("currency", "", "New currency code")
	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deactivate a budget, or delete it permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			budget, err := client.Budgets().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("el presupuesto de '%s'", budget.Category), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando presupuesto", func() error {
				return client.Budgets().Delete(ctx, budget.ID, hard)
			})
			if err != nil {
				return err
			}

			if hard {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Presupuesto de '%s' eliminado permanentemente.", budget.Category)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Presupuesto de '%s' desactivado.", budget.Category)))
			}
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func toggleBudgetCmd(use string, active bool) *cobra.Command {
	short := "Reactivate a budget"
	if !active {
		short = "Deactivate a budget keeping its data"
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

			updated, err := client.Budgets().ToggleActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			state := "reactivado"
			if !active {
				state = "desactivado"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Presupuesto de '%s' %s.", updated.Category, state)))
			return nil
		},
	}
}
