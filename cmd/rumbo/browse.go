package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mvallesteros/rumbo/internal/flow"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/mvallesteros/rumbo/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse recurring transactions interactively",
		Long: `Open a full-screen view of your recurring transactions. Filter with /,
cycle the sort with o, toggle with t, deactivate with d.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := initClient()
			if err != nil {
				return err
			}
			userID, err := currentUserID(session)
			if err != nil {
				return err
			}

			controller := flow.NewController(func(ctx context.Context) ([]model.RecurringTransaction, error) {
				return client.Recurring().ListByUser(ctx, userID)
			})

			return tui.Run(cmd.Context(), controller, client.Recurring())
		},
	}
}
