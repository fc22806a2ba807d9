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

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage your accounts",
		Long:  `List, add, update, and deactivate the accounts that hold your money.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(editAccountCmd())
	cmd.AddCommand(deleteAccountCmd())
	cmd.AddCommand(toggleAccountCmd("activate", true))
	cmd.AddCommand(toggleAccountCmd("deactivate", false))

	return cmd
}

func listAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
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

			accounts, err := client.Accounts().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			accType, _ := cmd.Flags().GetString("type")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")
			activeFlag := triStateFlag(cmd, "active", "inactive")

			filters := []analytics.Filter[model.Account]{
				analytics.Substring(search,
					func(a model.Account) string { return a.Name },
					func(a model.Account) string { return a.Currency },
				),
				analytics.Exact(accType, func(a model.Account) string { return string(a.Type) }),
				analytics.TriState(activeFlag, func(a model.Account) bool { return a.Active }),
			}
			comparators := map[string]analytics.Comparator[model.Account]{
				"nombre": func(a, b model.Account) int { return strings.Compare(a.Name, b.Name) },
				"saldo":  compareFloat(func(a model.Account) float64 { return a.Balance }),
			}

			visible, err := analytics.View(accounts, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay cuentas. Usa 'rumbo accounts add' para crear una."))
				return nil
			}

			w := newTable("ID", "Nombre", "Tipo", "Moneda", "Saldo", "Estado")
			for _, a := range visible {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
					a.ID, a.Name, a.Type, a.Currency, a.Balance, activeLabel(a.Active))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.Account]{
				"total":          analytics.CountAll[model.Account](),
				"cuentasActivas": analytics.CountWhere(func(a model.Account) bool { return a.Active }),
				"saldoTotal":     analytics.SumBy(func(a model.Account) float64 { return a.Balance }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Cuentas"},
				{key: "cuentasActivas", label: "Activas"},
				{key: "saldoTotal", label: "Saldo total", money: true},
			})
			return nil
		},
	}

	addListFlags(cmd, "nombre, saldo")
	addActiveFlags(cmd)
	cmd.Flags().String("type", "", "Filter by account type (corriente, ahorros, efectivo, credito)")
	return cmd
}

func addAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new account",
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

			accType, _ := cmd.Flags().GetString("type")
			currency, _ := cmd.Flags().GetString("currency")
			balance, _ := cmd.Flags().GetFloat64("balance")

			account := &model.Account{
				UserID:   userID,
				Name:     args[0],
				Type:     model.AccountType(accType),
				Currency: currency,
				Balance:  balance,
				Active:   true,
			}
			created, err := client.Accounts().Create(ctx, account)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cuenta '%s' creada (%s).", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().String("type", "corriente", "Account type (corriente, ahorros, efectivo, credito)")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().Float64("balance", 0, "Opening balance")
	return cmd
}

func editAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			account, err := client.Accounts().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				account.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("type") {
				accType, _ := cmd.Flags().GetString("type")
				account.Type = model.AccountType(accType)
			}
			if cmd.Flags().Changed("currency") {
				account.Currency, _ = cmd.Flags().GetString("currency")
			}
			if cmd.Flags().Changed("balance") {
				account.Balance, _ = cmd.Flags().GetFloat64("balance")
			}
			if err := account.Validate(); err != nil {
				return err
			}

			updated, err := client.Accounts().Update(ctx, account.ID, account)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cuenta '%s' actualizada.", updated.Name)))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("type", "", "New account type")
	cmd.Flags().String("currency", "", "New currency code")
	cmd.Flags().Float64("balance", 0, "New balance")
	return cmd
}

func deleteAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Deactivate an account, or delete it permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			account, err := client.Accounts().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("la cuenta '%s'", account.Name), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando cuenta", func() error {
				return client.Accounts().Delete(ctx, account.ID, hard)
			})
			if err != nil {
				return err
			}

			if hard {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cuenta '%s' eliminada permanentemente.", account.Name)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cuenta '%s' desactivada.", account.Name)))
			}
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}

func toggleAccountCmd(use string, active bool) *cobra.Command {
	short := "Reactivate an account"
	if !active {
		short = "Deactivate an account keeping its data"
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

			updated, err := client.Accounts().ToggleActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}

			state := "reactivada"
			if !active {
				state = "desactivada"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cuenta '%s' %s.", updated.Name, state)))
			return nil
		},
	}
}
