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

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage your savings goals",
		Long:  `List, add, update, complete, and deactivate savings goals.`,
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(addGoalCmd())
	cmd.AddCommand(editGoalCmd())
	cmd.AddCommand(deleteGoalCmd())
	cmd.AddCommand(toggleGoalCmd("activate", true))
	cmd.AddCommand(toggleGoalCmd("deactivate", false))
	cmd.AddCommand(completeGoalCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all savings goals",
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

			goals, err := client.Goals().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")

			filters := []analytics.Filter[model.Goal]{
				analytics.Substring(search, func(g model.Goal) string { return g.Name }),
				analytics.TriState(triStateFlag(cmd, "active", "inactive"),
					func(g model.Goal) bool { return g.Active }),
			}
			comparators := map[string]analytics.Comparator[model.Goal]{
				"nombre":      func(a, b model.Goal) int { return strings.Compare(a.Name, b.Name) },
				"monto":       compareFloat(func(g model.Goal) float64 { return g.Target }),
				"fechaLimite": compareTime(func(g model.Goal) time.Time { return g.Deadline }),
			}

			visible, err := analytics.View(goals, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay metas. Usa 'rumbo goals add' para crear una."))
				return nil
			}

			now := time.Now()
			w := newTable("ID", "Nombre", "Objetivo", "Ahorrado", "Progreso", "Fecha límite", "Estado")
			for _, g := range visible {
				deadline := "-"
				if !g.Deadline.IsZero() {
					urgency := analytics.Bucket(analytics.DaysUntil(g.Deadline, now), analytics.DueSoonDays)
					deadline = cli.UrgencyStyle(urgency).Render(g.Deadline.Format("2006-01-02"))
				}
				state := activeLabel(g.Active)
				if g.Completed {
					state = cli.SuccessStyle.Render("completada")
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.0f%%\t%s\t%s\n",
					g.ID, g.Name, g.Target, g.Saved, g.ProgressPercent(), deadline, state)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.Goal]{
				"total":            analytics.CountAll[model.Goal](),
				"completadas":      analytics.CountWhere(func(g model.Goal) bool { return g.Completed }),
				"montoObjetivo":    analytics.SumBy(func(g model.Goal) float64 { return g.Target }),
				"montoAhorrado":    analytics.SumBy(func(g model.Goal) float64 { return g.Saved }),
				"progresoPromedio": analytics.AvgBy(func(g model.Goal) float64 { return g.ProgressPercent() }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Metas"},
				{key: "completadas", label: "Completadas"},
				{key: "montoObjetivo", label: "Objetivo total", money: true},
				{key: "montoAhorrado", label: "Ahorrado total", money: true},
				{key: "progresoPromedio", label: "Progreso promedio"},
			})
			return nil
		},
	}

	addListFlags(cmd, "nombre, monto, fechaLimite")
	addActiveFlags(cmd)
	return cmd
}

func addGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new savings goal",
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

			target, _ := cmd.Flags().GetFloat64("target")
			currency, _ := cmd.Flags().GetString("currency")
			deadlineStr, _ := cmd.Flags().GetString("deadline")

			goal := &model.Goal{
				UserID:   userID,
				Name:     args[0],
				Currency: currency,
				Target:   target,
				Active:   true,
			}
			if deadlineStr != "" {
				deadline, err := time.Parse("2006-01-02", deadlineStr)
				if err != nil {
					return fmt.Errorf("invalid deadline %q, expected YYYY-MM-DD: %w", deadlineStr, err)
				}
				goal.Deadline = deadline
			}

			created, err := client.Goals().Create(ctx, goal)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Meta '%s' creada (%s).", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().Float64("target", 0, "Target amount")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("deadline", "", "Deadline (YYYY-MM-DD)")
	return cmd
}

func editGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			goal, err := client.Goals().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				goal.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("target") {
				goal.Target, _ = cmd.Flags().GetFloat64("target")
			}
			if cmd.Flags().Changed("saved") {
				goal.Saved, _ = cmd.Flags().GetFloat64("saved")
			}
			if cmd.Flags().Changed("deadline") {
				deadlineStr, _ := cmd.Flags().GetString("deadline")
				deadline, err := time.Parse("2006-01-02", deadlineStr)
				if err != nil {
					return fmt.Errorf("invalid deadline %q, expected YYYY-MM-DD: %w", deadlineStr, err)
				}
				goal.Deadline = deadline
			}
			if err := goal.Validate(); err != nil {
				return err
			}

			updated, err := client.Goals().Update(ctx, goal.ID, goal)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Meta '%s' actualizada.", updated.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Float64("target", 0, "New target amount")
	cmd.Flags().Float64("saved", 0, "Amount saved so far")
	cmd.Flags().String("deadline", "", "New deadline (YYYY-MM-DD)")
	return cmd
}

func deleteGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deactivate a goal, or delete it permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			goal, err := client.Goals().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("la meta '%s'", goal.Name), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando meta", func() error {
				return client.Goals().Delete(ctx, goal.ID, hard)
			})
			if err != nil {
				return err
			}

			if hard {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Meta '%s' eliminada permanentemente.", goal.Name)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Meta '%s' desactivada.", goal.Name)))
			}
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func completeGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a goal as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := initClient()
			if err != nil {
				return err
			}

			completed, err := client.Goals().MarkCompleted(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Meta '%s' completada.", cli.CheckIcon, completed.Name)))
			return nil
		},
	}
}

func toggleGoalCmd(use string, active bool) *cobra.Command {
	short := "Reactivate a goal"
	if !active {
		short = "Deactivate a goal keeping its data"
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

			updated, err := client.Goals().ToggleActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			state := "reactivada"
			if !active {
				state = "desactivada"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Meta '%s' %s.", updated.Name, state)))
			return nil
		},
	}
}
