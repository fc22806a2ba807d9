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

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(toggleCategoryCmd("activate", true))
	cmd.AddCommand(toggleCategoryCmd("deactivate", false))

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
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

			categories, err := client.Categories().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			catType, _ := cmd.Flags().GetString("type")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")

			filters := []analytics.Filter[model.Category]{
				analytics.Substring(search,
					func(c model.Category) string { return c.Name },
					func(c model.Category) string { return c.Description },
				),
				analytics.Exact(catType, func(c model.Category) string { return string(c.Type) }),
				analytics.TriState(triStateFlag(cmd, "active", "inactive"),
					func(c model.Category) bool { return c.Active }),
			}
			comparators := map[string]analytics.Comparator[model.Category]{
				"nombre": func(a, b model.Category) int { return strings.Compare(a.Name, b.Name) },
			}

			visible, err := analytics.View(categories, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay categorías. Usa 'rumbo categories add' para crear una."))
				return nil
			}

			w := newTable("ID", "Nombre", "Tipo", "Descripción", "Estado")
			for _, c := range visible {
				desc := c.Description
				if desc == "" {
					desc = cli.SubtleStyle.Render("(sin descripción)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, desc, activeLabel(c.Active))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.Category]{
				"total":    analytics.CountAll[model.Category](),
				"ingresos": analytics.CountWhere(func(c model.Category) bool { return c.Type == model.CategoryTypeIncome }),
				"gastos":   analytics.CountWhere(func(c model.Category) bool { return c.Type == model.CategoryTypeExpense }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Categorías"},
				{key: "ingresos", label: "De ingreso"},
				{key: "gastos", label: "De gasto"},
			})
			return nil
		},
	}

	addListFlags(cmd, "nombre")
	addActiveFlags(cmd)
	cmd.Flags().String("type", "", "Filter by type (ingreso, gasto)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new category",
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

			catType, _ := cmd.Flags().GetString("type")
			description, _ := cmd.Flags().GetString("description")

			category := &model.Category{
				UserID:      userID,
				Name:        args[0],
				Description: description,
				Type:        model.CategoryType(catType),
				Active:      true,
			}
			created, err := client.Categories().Create(ctx, category)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categoría '%s' creada (%s).", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().String("type", "gasto", "Category type (ingreso, gasto)")
	cmd.Flags().String("description", "", "Optional description")
	return cmd
}

func editCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			category, err := client.Categories().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				category.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("description") {
				category.Description, _ = cmd.Flags().GetString("description")
			}
			if cmd.Flags().Changed("type") {
				catType, _ := cmd.Flags().GetString("type")
				category.Type = model.CategoryType(catType)
			}
			if err := category.Validate(); err != nil {
				return err
			}

			updated, err := client.Categories().Update(ctx, category.ID, category)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categoría '%s' actualizada.", updated.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("type", "", "New type (ingreso, gasto)")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deactivate a category, or delete it permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			category, err := client.Categories().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("la categoría '%s'", category.Name), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando categoría", func() error {
				return client.Categories().Delete(ctx, category.ID, hard)
			})
			if err != nil {
				return err
			}

			if hard {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categoría '%s' eliminada permanentemente.", category.Name)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categoría '%s' desactivada.", category.Name)))
			}
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func toggleCategoryCmd(use string, active bool) *cobra.Command {
	short := "Reactivate a category"
	if !active {
		short = "Deactivate a category keeping its data"
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

			updated, err := client.Categories().ToggleActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			state := "reactivada"
			if !active {
				state = "desactivada"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categoría '%s' %s.", updated.Name, state)))
			return nil
		},
	}
}
