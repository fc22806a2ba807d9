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

func activitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Manage activities of the selected travel plan",
	}

	cmd.PersistentFlags().String("plan", "", "Plan id (defaults to the selected plan)")

	cmd.AddCommand(listActivitiesCmd())
	cmd.AddCommand(addActivityCmd())
	cmd.AddCommand(editActivityCmd())
	cmd.AddCommand(deleteActivityCmd())
	cmd.AddCommand(completeActivityCmd())

	return cmd
}

func listActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities",
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

			activities, err := client.Activities().ListByPlan(ctx, planID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")
			pending, _ := cmd.Flags().GetBool("pending")

			filters := []analytics.Filter[model.TravelActivity]{
				analytics.Substring(search,
					func(a model.TravelActivity) string { return a.Name },
					func(a model.TravelActivity) string { return a.Location },
				),
			}
			if pending {
				filters = append(filters, func(a model.TravelActivity) bool { return !a.Completed })
			}
			comparators := map[string]analytics.Comparator[model.TravelActivity]{
				"nombre": func(a, b model.TravelActivity) int { return strings.Compare(a.Name, b.Name) },
				"fecha":  compareTime(func(a model.TravelActivity) time.Time { return a.Date }),
				"costo":  compareFloat(func(a model.TravelActivity) float64 { return a.Cost }),
			}

			visible, err := analytics.View(activities, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay actividades para este plan."))
				return nil
			}

			now := time.Now()
			w := newTable("ID", "Nombre", "Ubicación", "Fecha", "Costo", "Estado")
			for _, a := range visible {
				date := a.Date.Format("2006-01-02")
				if !a.Completed {
					bucket := analytics.Bucket(analytics.DaysUntil(a.Date, now), analytics.DueSoonTravelDays)
					date = cli.UrgencyStyle(bucket).Render(date)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
					a.ID, a.Name, a.Location, date, a.Cost, completedLabel(a.Completed))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.TravelActivity]{
				"total":       analytics.CountAll[model.TravelActivity](),
				"completadas": analytics.CountWhere(func(a model.TravelActivity) bool { return a.Completed }),
				"costoTotal":  analytics.SumBy(func(a model.TravelActivity) float64 { return a.Cost }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Actividades"},
				{key: "completadas", label: "Completadas"},
				{key: "costoTotal", label: "Costo total", money: true},
			})
			return nil
		},
	}

	addListFlags(cmd, "nombre, fecha, costo")
	cmd.Flags().Bool("pending", false, "Only show pending activities")
	return cmd
}

func addActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an activity to the plan",
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

			location, _ := cmd.Flags().GetString("location")
			cost, _ := cmd.Flags().GetFloat64("cost")
			currency, _ := cmd.Flags().GetString("currency")
			dateStr, _ := cmd.Flags().GetString("date")

			activity := &model.TravelActivity{
				PlanID:   planID,
				Name:     args[0],
				Location: location,
				Currency: currency,
				Cost:     cost,
			}
			if dateStr != "" {
				date, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
				activity.Date = date
			}

			created, err := client.Activities().Create(ctx, activity)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Actividad '%s' creada (%s).", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().String("location", "", "Where the activity takes place")
	cmd.Flags().Float64("cost", 0, "Estimated cost")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("date", "", "Scheduled date (YYYY-MM-DD)")
	return cmd
}

func editActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			activity, err := client.Activities().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				activity.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("location") {
				activity.Location, _ = cmd.Flags().GetString("location")
			}
			if cmd.Flags().Changed("cost") {
				activity.Cost, _ = cmd.Flags().GetFloat64("cost")
			}
			if cmd.Flags().Changed("date") {
				dateStr, _ := cmd.Flags().GetString("date")
				date, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
				}
				activity.Date = date
			}
			if err := activity.Validate(); err != nil {
				return err
			}

			updated, err := client.Activities().Update(ctx, activity.ID, activity)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Actividad '%s' actualizada.", updated.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("location", "", "New location")
	cmd.Flags().Float64("cost", 0, "New cost")
	cmd.Flags().String("date", "", "New date (YYYY-MM-DD)")
	return cmd
}

func deleteActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			activity, err := client.Activities().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("la actividad '%s'", activity.Name), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando actividad", func() error {
				return client.Activities().Delete(ctx, activity.ID, hard)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Actividad '%s' eliminada.", activity.Name)))
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func completeActivityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an activity as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			updated, err := client.Activities().MarkCompleted(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Actividad '%s' completada.", cli.CheckIcon, updated.Name)))
			return nil
		},
	}
}
