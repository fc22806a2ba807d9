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

func transfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Move money between your accounts",
	}

	cmd.AddCommand(listTransfersCmd())
	cmd.AddCommand(addTransferCmd())
	cmd.AddCommand(deleteTransferCmd())

	return cmd
}

func listTransfersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past transfers",
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

			transfers, err := client.Transfers().ListByUser(ctx, userID)
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("filter")
			sortKey, _ := cmd.Flags().GetString("sort")
			desc, _ := cmd.Flags().GetBool("desc")

			filters := []analytics.Filter[model.Transfer]{
				analytics.Substring(search, func(t model.Transfer) string { return t.Description }),
			}
			comparators := map[string]analytics.Comparator[model.Transfer]{
				"fecha": compareTime(func(t model.Transfer) time.Time { return t.Date }),
				"monto": compareFloat(func(t model.Transfer) float64 { return t.Amount }),
			}

			visible, err := analytics.View(transfers, filters, comparators, sortKey, direction(desc))
			if err != nil {
				return err
			}

			if len(visible) == 0 {
				fmt.Println(cli.InfoStyle.Render("No hay transferencias registradas."))
				return nil
			}

			w := newTable("ID", "Fecha", "Origen", "Destino", "Monto", "Descripción")
			for _, t := range visible {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.FromAccountID, t.ToAccountID, t.Amount, t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := analytics.Aggregate(visible, analytics.Spec[model.Transfer]{
				"total":      analytics.CountAll[model.Transfer](),
				"montoTotal": analytics.SumBy(func(t model.Transfer) float64 { return t.Amount }),
			})
			printStats(stats, []statTile{
				{key: "total", label: "Transferencias"},
				{key: "montoTotal", label: "Monto total", money: true},
			})
			return nil
		},
	}

	addListFlags(cmd, "fecha, monto")
	return cmd
}

func addTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Transfer money between two accounts",
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

			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			amount, _ := cmd.Flags().GetFloat64("amount")
			currency, _ := cmd.Flags().GetString("currency")
			description, _ := cmd.Flags().GetString("description")

			if from == "" || to == "" {
				return fmt.Errorf("both --from and --to accounts are required")
			}
			if from == to {
				return fmt.Errorf("source and destination accounts must differ")
			}

			transfer := &model.Transfer{
				UserID:        userID,
				FromAccountID: from,
				ToAccountID:   to,
				Description:   description,
				Currency:      currency,
				Amount:        amount,
				Date:          time.Now(),
			}

			created, err := client.Transfers().Create(ctx, transfer)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferencia de $%.2f registrada (%s).", created.Amount, created.ID)))
			return nil
		},
	}

	cmd.Flags().String("from", "", "Source account id")
	cmd.Flags().String("to", "", "Destination account id")
	cmd.Flags().Float64("amount", 0, "Amount to move")
	cmd.Flags().String("currency", "COP", "Currency code")
	cmd.Flags().String("description", "", "Optional note")
	return cmd
}

func deleteTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transfer record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, _, err := initClient()
			if err != nil {
				return err
			}

			transfer, err := client.Transfers().GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			hard, _ := cmd.Flags().GetBool("permanent")
			ok, err := confirmDelete(ctx, cmd, fmt.Sprintf("la transferencia de $%.2f", transfer.Amount), hard)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.FormatInfo("Operación cancelada."))
				return nil
			}

			err = runDestructive(os.Stderr, hard, "Eliminando transferencia", func() error {
				return client.Transfers().Delete(ctx, transfer.ID, hard)
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transferencia eliminada."))
			return nil
		},
	}

	addDeleteFlags(cmd)
	return cmd
}
