package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/api"
	"github.com/mvallesteros/rumbo/internal/auth"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/common"
	"github.com/mvallesteros/rumbo/internal/config"
	"github.com/mvallesteros/rumbo/internal/storage"
)

const defaultBaseURL = "http://localhost:3000"

func baseURL() string {
	if url := viper.GetString("api.base_url"); url != "" {
		return url
	}
	return defaultBaseURL
}

// initStore opens the local SQLite state store with path expansion.
func initStore() (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/rumbo/rumbo.db"
	}
	dbPath = config.ExpandPath(dbPath)

	return storage.NewSQLiteStore(dbPath)
}

// requireSession loads the saved session and fails with a login hint
// when there is none.
func requireSession() (*auth.Session, error) {
	session, err := auth.LoadSession()
	if err != nil {
		return nil, err
	}
	if _, ok := session.Token(); !ok {
		return nil, common.NewUserError("No hay sesión activa. Ejecuta 'rumbo login' primero.",
			common.ErrUnauthorized)
	}
	return session, nil
}

// initClient builds the API client bound to the saved session.
func initClient() (*api.Client, *auth.Session, error) {
	session, err := requireSession()
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(baseURL(), session), session, nil
}

// currentUserID returns the authenticated user's id.
func currentUserID(session *auth.Session) (string, error) {
	userID, ok := session.UserID()
	if !ok {
		return "", common.NewUserError("La sesión guardada está incompleta. Ejecuta 'rumbo login' de nuevo.",
			common.ErrUnauthorized)
	}
	return userID, nil
}

// resolvePlanID returns the --plan flag when set, otherwise falls back
// to the plan selected with 'rumbo plans select'.
func resolvePlanID(ctx context.Context, cmd *cobra.Command) (string, error) {
	planID, _ := cmd.Flags().GetString("plan")
	if planID != "" {
		return planID, nil
	}

	store, err := initStore()
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	plan, err := storage.SelectedPlan(ctx, store)
	if err != nil {
		return "", common.NewUserError("No hay plan seleccionado. Usa --plan o ejecuta 'rumbo plans select <id>'.",
			err)
	}
	return plan.ID, nil
}

// newTable returns a tabwriter with a styled header row already
// written.
func newTable(columns ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		styled[i] = cli.BoldStyle.Render(col)
		rules[i] = strings.Repeat("-", len(col)+2)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
	return w
}

// statTile names one derived statistic and how to render its value.
// Each caller declares explicitly which tiles carry currency amounts;
// counts and percentages render as plain integers.
type statTile struct {
	key   string
	label string
	money bool
}

// printStats renders the derived statistics tiles under a list.
func printStats(stats map[string]float64, tiles []statTile) {
	fmt.Println()
	for _, tile := range tiles {
		fmt.Printf("  %s %s\n", cli.SubtleStyle.Render(tile.label+":"), formatStat(stats[tile.key], tile.money))
	}
}

func formatStat(v float64, money bool) string {
	if money {
		return fmt.Sprintf("$%.2f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

// runDestructive executes a delete call. Permanent deletes render a
// single-step progress bar on w so the destructive call is visible.
func runDestructive(w io.Writer, hard bool, description string, fn func() error) error {
	if !hard {
		return fn()
	}
	bar := cli.NewStepBar(w, 1, description)
	if err := fn(); err != nil {
		return err
	}
	cli.Advance(bar)
	return nil
}

// confirmDelete runs the soft or hard confirmation flow unless --force
// was given. Hard deletes always require typing the confirmation word.
func confirmDelete(ctx context.Context, cmd *cobra.Command, label string, hard bool) (bool, error) {
	force, _ := cmd.Flags().GetBool("force")
	if force && !hard {
		return true, nil
	}

	confirmer := cli.NewConfirmer(os.Stdin, os.Stdout)
	if hard {
		return confirmer.ConfirmHardDelete(ctx, label)
	}
	return confirmer.ConfirmDeactivate(ctx, label)
}

// addListFlags registers the shared flags of every list command.
func addListFlags(cmd *cobra.Command, sortKeys string) {
	cmd.Flags().String("filter", "", "Case-insensitive substring filter")
	cmd.Flags().String("sort", "", "Sort column ("+sortKeys+")")
	cmd.Flags().Bool("desc", false, "Sort descending")
}

// addActiveFlags registers the active-state pair for lists whose
// records can be deactivated.
func addActiveFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("active", false, "Show only active records")
	cmd.Flags().Bool("inactive", false, "Show only inactive records")
}

// triStateFlag folds a pair of mutually exclusive bool flags into the
// tri-state the view engine expects: nil means no filtering.
func triStateFlag(cmd *cobra.Command, onFlag, offFlag string) *bool {
	on, _ := cmd.Flags().GetBool(onFlag)
	off, _ := cmd.Flags().GetBool(offFlag)
	switch {
	case on && !off:
		v := true
		return &v
	case off && !on:
		v := false
		return &v
	default:
		return nil
	}
}

func direction(desc bool) analytics.Direction {
	if desc {
		return analytics.Descending
	}
	return analytics.Ascending
}

// compareFloat builds a comparator over a numeric field.
func compareFloat[T any](sel func(T) float64) analytics.Comparator[T] {
	return func(a, b T) int {
		av, bv := sel(a), sel(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
}

// compareTime builds a comparator over a date field.
func compareTime[T any](sel func(T) time.Time) analytics.Comparator[T] {
	return func(a, b T) int {
		return sel(a).Compare(sel(b))
	}
}

// addDeleteFlags registers the shared flags of every delete command.
func addDeleteFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("permanent", false, "Delete permanently instead of deactivating")
	cmd.Flags().BoolP("force", "f", false, "Skip confirmation (soft delete only)")
}

func activeLabel(active bool) string {
	if active {
		return cli.SuccessStyle.Render("activa")
	}
	return cli.SubtleStyle.Render("inactiva")
}

func completedLabel(completed bool) string {
	if completed {
		return cli.SuccessStyle.Render("completada")
	}
	return "pendiente"
}
