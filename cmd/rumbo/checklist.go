package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/model"
)

func checklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage the pre-trip checklist of the selected plan",
		Long: `List checklist items grouped by category with per-group progress.
Items due within 30 days are highlighted.`,
	}

	cmd.PersistentFlags().String("plan", "", "Plan id (defaults to the selected plan)")

	cmd.AddCommand(listChecklistCmd())
	cmd.AddCommand(addChecklistItemCmd())
	cmd.AddCommand(editChecklistItemCmd())
	cmd.AddCommand(deleteChecklistItemCmd())
	cmd.AddCommand(completeChecklistItemCmd())

	return cmd
}

func listChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the checklist grouped by category",
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

			items, err := client.Checklist().ListByPlan(ctx, planID)
			if err != nil {
				return err
			}

			pending, _ := cmd.Flags().GetBool("pending")
			if pending {
				filtered := items[:0:0]
				for _, it := range items {
					if !it.Completed {
						filtered = append(filtered, it)
					}
				}
				items = filtered
			}

			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay elementos en el checklist de este plan."))
				return nil
			}

			now := time.Now()
			groups := analytics.GroupBy(items,
				func(it model.ChecklistItem) string { return it.Category },
				func(it model.ChecklistItem) bool { return it.Completed },
				model.ChecklistCategories)

			for _, g := range groups {
				if g.Total == 0 {
					continue
				}
				fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%d/%d, %d%%)",
					g.Key, g.Completed, g.Total, g.Percent)))
				w := newTable("ID", "Descripción", "Fecha límite", "Estado")
				for _, it := range g.Items {
					due := "-"
					if !it.DueDate.IsZero() {
						due = it.DueDate.Format("2006-01-02")
						if !it.Completed {
							bucket := analytics.Bucket(analytics.DaysUntil(it.DueDate, now), analytics.DueSoonTravelDays)
							due = cli.UrgencyStyle(bucket).Render(due)
						}
					}
					state := "pendiente"
					if it.Completed {
						state = cli.SuccessStyle.Render("completado")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						it.ID, it.Description, due, state)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Println()
			}

			stats := analytics.Aggregate(items, analytics.Spec[model.ChecklistItem]{
				"total":       analytics.CountAll[model.ChecklistItem](),
				"completados": analytics.CountWhere(func(it model.ChecklistItem) bool { return it.Completed }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Elementos"},
				{key: "completados", label: "Completados"},
			})
			return nil
		},
	}

	cmd.Flags().Bool("pending", false, "Only show pending items")
	return cmd
}

func addChecklistItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a checklist item",
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

			category, _ := cmd.Flags().GetString("category")
			dueStr, _ := cmd.Flags().GetString("due")

			item := &model.ChecklistItem{
				PlanID:      planID,
				Description: args[0],
				Category:    category,
			}
			if dueStr != "" {
				due, err := time.Parse("2006-01-02", dueStr)
				if err != nil {
					return fmt.Errorf("invalid due date %q, expected YYYY-MM-DD: %w", dueStr, err)
				}
				item.DueDate = due
			}

			created, err := client.Checklist().Create(ctx, item)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Elemento '%s' agregado al checklist (%s).",
				created.Description, created.Category)))
			return nil
		},
	}

	cmd.Flags().String("category", "general", "Category (documentos, equipaje, salud, finanzas, general)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func editChecklistItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			item, err := client.Checklist().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("description") {
				item.Description, _ = cmd.Flags().GetString("description")
			}
			if cmd.Flags().Changed("category") {
				item.Category, _ = cmd.Flags().GetString("category")
			}
			if cmd.Flags().Changed("due") {
				dueStr, _ := cmd.Flags().GetString("due")
				due, err := time.Parse("2006-01-02", dueStr)
				if err != nil {
					return fmt.Errorf("invalid due date %q, expected YYYY-MM-DD: %w", dueStr, err)
				}
				item.DueDate = due
			}
			if err := item.Validate(); err != nil {
				return err
			}

			updated, err := client.Checklist().Update(ctx, item.ID, item)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Elemento '%s' actualizado.", updated.Description)))
			return nil
		},
	}

	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("category", "", "New category")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	return cmd
}

func deleteChecklistItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			item, err := client.Checklist().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("el elemento '%s'", item.Description), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando elemento", func() error {
				return client.Checklist().Delete(ctx, item.ID, hard)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Elemento '%s' eliminado.", item.Description)))
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func completeChecklistItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a checklist item as done (or undo with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			undo, _ := cmd.Flags().GetBool("undo")
			updated, err := client.Checklist().MarkCompleted(ctx, args[0], !undo)
			if err != nil {
				return err
			}

			if undo {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("Elemento '%s' marcado como pendiente.", updated.Description)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Elemento '%s' completado.", cli.CheckIcon, updated.Description)))
			}
			return nil
		},
	}

	cmd.Flags().Bool("undo", false, "Mark the item as pending again")
	return cmd
}
