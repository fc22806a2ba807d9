package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/common"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/mvallesteros/rumbo/internal/service"
	"github.com/mvallesteros/rumbo/internal/storage"
)

func plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage your travel plans",
		Long: `List, add, update, and deactivate travel plans. Select a plan to make
it the default for activities, expenses, documents, and the checklist.`,
	}

	cmd.AddCommand(listPlansCmd())
	cmd.AddCommand(addPlanCmd())
	cmd.AddCommand(editPlanCmd())
	cmd.AddCommand(deletePlanCmd())
	cmd.AddCommand(togglePlanCmd("activate", true))
	cmd.AddCommand(togglePlanCmd("deactivate", false))
	cmd.AddCommand(selectPlanCmd())
	cmd.AddCommand(currentPlanCmd())

	return cmd
}

func listPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List travel plans",
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

			plans, err := client.Plans().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")

			filters := []analytics.Filter[model.TravelPlan]{
				analytics.Substring(search,
					func(p model.TravelPlan) string { return p.Name },
					func(p model.TravelPlan) string { return p.Destination },
				),
				analytics.TriState(triStateFlag(cmd, "active", "inactive"),
					func(p model.TravelPlan) bool { return p.Active }),
			}
			comparators := map[string]analytics.Comparator[model.TravelPlan]{
				"nombre":      func(a, b model.TravelPlan) int { return strings.Compare(a.Name, b.Name) },
				"fechaInicio": compareTime(func(p model.TravelPlan) time.Time { return p.StartDate }),
				"presupuesto": compareFloat(func(p model.TravelPlan) float64 { return p.Budget }),
			}

			visible, err := analytics.View(plans, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay planes de viaje. Usa 'rumbo plans add' para crear uno."))
				return nil
			}

			selectedID := selectedPlanID(cmd)

			w := newTable("", "ID", "Nombre", "Destino", "Inicio", "Fin", "Presupuesto", "Estado")
			for _, p := range visible {
				marker := " "
				if p.ID == selectedID {
					marker = cli.SuccessStyle.Render("●")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
					marker, p.ID, p.Name, p.Destination,
					p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"),
					p.Budget, activeLabel(p.Active))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.TravelPlan]{
				"total":            analytics.CountAll[model.TravelPlan](),
				"activos":          analytics.CountWhere(func(p model.TravelPlan) bool { return p.Active }),
				"presupuestoTotal": analytics.SumBy(func(p model.TravelPlan) float64 { return p.Budget }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Planes"},
				{key: "activos", label: "Activos"},
				{key: "presupuestoTotal", label: "Presupuesto total", money: true},
			})
			return nil
		},
	}

	addListFlags(cmd, "nombre, fechaInicio, presupuesto")
	addActiveFlags(cmd)
	return cmd
}

// selectedPlanID returns the currently selected plan's id, or empty.
func selectedPlanID(cmd *cobra.Command) string {
	store, err := initStore()
	if err != nil {
		return ""
	}
	defer func() { _ = store.Close() }()

	plan, err := storage.SelectedPlan(cmd.Context(), store)
	if err != nil {
		return ""
	}
	return plan.ID
}

func addPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a travel plan",
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

			destination, _ := cmd.Flags().GetString("destination")
			budget, _ := cmd.Flags().GetFloat64("budget")
			currency, _ := cmd.Flags().GetString("currency")
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")

			plan := &model.TravelPlan{
				UserID:      userID,
				Name:        args[0],
				Destination: destination,
				Currency:    currency,
				Budget:      budget,
				Active:      true,
			}
			if startStr != "" {
				start, err := time.Parse("2006-01-02", startStr)
				if err != nil {
					return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD: %w", startStr, err)
				}
				plan.StartDate = start
			}
			if endStr != "" {
				end, err := time.Parse("2006-01-02", endStr)
				if err != nil {
					return fmt.Errorf("invalid end date %q, expected YYYY-MM-DD: %w", endStr, err)
				}
				plan.EndDate = end
			}
			if !plan.StartDate.IsZero() && !plan.EndDate.IsZero() && plan.EndDate.Before(plan.StartDate) {
				return fmt.Errorf("end date cannot be before start date")
			}

			created, err := client.Plans().Create(ctx, plan)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Plan '%s' creado (%s).", cli.PlaneIcon, created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().String("destination", "", "Destination city or country")
	cmd.Flags().Float64("budget", 0, "Trip budget")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	return cmd
}

func editPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a travel plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			plan, err := client.Plans().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				plan.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("destination") {
				plan.Destination, _ = cmd.Flags().GetString("destination")
			}
			if cmd.Flags().Changed("budget") {
				plan.Budget, _ = cmd.Flags().GetFloat64("budget")
			}
			if err := plan.Validate(); err != nil {
				return err
			}

			updated, err := client.Plans().Update(ctx, plan.ID, plan)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Plan '%s' actualizado.", updated.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("destination", "", "New destination")
	cmd.Flags().Float64("budget", 0, "New budget")
	return cmd
}

func deletePlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deactivate a plan, or delete it permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			plan, err := client.Plans().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("el plan '%s'", plan.Name), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando plan", func() error {
				return client.Plans().Delete(ctx, plan.ID, hard)
			})
			if err != nil {
				return err
			}

			// Deleting the selected plan drops the selection too.
			if selectedPlanID(cmd) == plan.ID {
				if store, storeErr := initStore(); storeErr == nil {
					_ = store.Delete(ctx, service.SelectedPlanIDKey)
					_ = store.Delete(ctx, service.SelectedPlanKey)
					_ = store.Close()
				}
			}

			if hard {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Plan '%s' eliminado permanentemente.", plan.Name)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Plan '%s' desactivado.", plan.Name)))
			}
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func selectPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Make a plan the default for travel subcommands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if model.IsPlaceholder(args[0]) {
				return common.NewUserError("Ese plan no es válido para seleccionar.", common.ErrNoPlanSelected)
			}

			client, _, err := initClient()
			if err != nil {
				return err
			}

			plan, err := client.Plans().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			store, err := initStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := storage.SaveSelectedPlan(ctx, store, plan); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s Plan '%s' seleccionado.", cli.PlaneIcon, plan.Name)))
			return nil
		},
	}
}

func currentPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the selected plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			plan, err := storage.SelectedPlan(cmd.Context(), store)
			if err != nil {
				if errors.Is(err, common.ErrNoPlanSelected) {
					fmt.Println(cli.FormatInfo("No hay plan seleccionado. Usa 'rumbo plans select <id>'."))
					return nil
				}
				return err
			}

			content := fmt.Sprintf("Destino: %s\nInicio: %s\nFin: %s\nPresupuesto: $%.2f",
				plan.Destination,
				plan.StartDate.Format("2006-01-02"),
				plan.EndDate.Format("2006-01-02"),
				plan.Budget)
			fmt.Println(cli.RenderBox(fmt.Sprintf("%s %s", cli.PlaneIcon, plan.Name), content))
			return nil
		},
	}
}

func togglePlanCmd(use string, active bool) *cobra.Command {
	short := "Reactivate a plan"
	if !active {
		short = "Deactivate a plan keeping its data"
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

			updated, err := client.Plans().ToggleActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			state := "reactivado"
			if !active {
				state = "desactivado"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Plan '%s' %s.", updated.Name, state)))
			return nil
		},
	}
}
