// Package tui implements the interactive browse screen for recurring
// transactions: a filterable, sortable list with urgency-colored rows
// and a confirmation modal for destructive actions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvallesteros/rumbo/internal/analytics"
	"github.com/mvallesteros/rumbo/internal/cli"
	"github.com/mvallesteros/rumbo/internal/flow"
	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/mvallesteros/rumbo/internal/service"
)

// State represents the current state of the browse screen.
type State int

const (
	StateList State = iota
	StateFiltering
	StateConfirmDeactivate
	StateHelp
)

// sortKeys cycles through the sortable columns in display order.
var sortKeys = []string{"", "monto", "descripcion", "proximaEjecucion"}

// Model holds the browse screen state.
type Model struct {
	controller *flow.Controller[model.RecurringTransaction]
	recurring  service.RecurringService
	ctx        context.Context
	now        func() time.Time

	filterInput textinput.Model
	spin        spinner.Model
	keymap      KeyMap

	visible   []model.RecurringTransaction
	viewErr   error
	sortIndex int
	direction analytics.Direction
	cursor    int
	target    *model.RecurringTransaction
	width     int
	height    int
	quitting  bool
	state     State
}

// NewModel creates the browse screen bound to a loaded controller.
func NewModel(ctx context.Context, controller *flow.Controller[model.RecurringTransaction], recurring service.RecurringService) Model {
	filter := textinput.New()
	filter.Placeholder = "filtrar por descripción o moneda"
	filter.CharLimit = 80

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	m := Model{
		controller:  controller,
		recurring:   recurring,
		ctx:         ctx,
		now:         time.Now,
		filterInput: filter,
		spin:        spin,
		keymap:      DefaultKeyMap(),
		direction:   analytics.Ascending,
		state:       StateList,
	}
	m.applyView()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.spin.Tick, m.load())
}

// load marks the fetch in flight and runs it off the event loop. The
// command only does I/O; the result comes back as a refreshedMsg and is
// applied to the controller in Update, so all controller state stays on
// the event loop.
func (m Model) load() tea.Cmd {
	m.controller.BeginLoad()
	return func() tea.Msg {
		records, err := m.controller.Fetch(m.ctx)
		return refreshedMsg{records: records, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		_ = m.controller.FinishLoad(msg.records, msg.err)
		m.applyView()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			_ = m.controller.FinishMutation(msg.err)
			m.applyView()
			return m, nil
		}
		return m, m.load()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateFiltering:
		switch {
		case key.Matches(msg, m.keymap.Cancel):
			m.filterInput.Blur()
			m.state = StateList
			m.applyView()
			return m, nil
		case msg.Type == tea.KeyEnter:
			m.filterInput.Blur()
			m.state = StateList
			m.applyView()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyView()
		return m, cmd

	case StateConfirmDeactivate:
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			target := m.target
			m.target = nil
			m.state = StateList
			return m, m.deactivate(target)
		case key.Matches(msg, m.keymap.Cancel):
			m.target = nil
			m.state = StateList
		}
		return m, nil

	case StateHelp:
		m.state = StateList
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Filter):
		m.state = StateFiltering
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.SortCycle):
		m.sortIndex = (m.sortIndex + 1) % len(sortKeys)
		m.applyView()
	case key.Matches(msg, m.keymap.SortFlip):
		m.direction = -m.direction
		m.applyView()
	case key.Matches(msg, m.keymap.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keymap.Toggle):
		if r := m.selected(); r != nil {
			return m, m.toggle(r)
		}
	case key.Matches(msg, m.keymap.Deactivate):
		if r := m.selected(); r != nil && r.Active {
			m.target = r
			m.state = StateConfirmDeactivate
		}
	}
	return m, nil
}

func (m *Model) selected() *model.RecurringTransaction {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	r := m.visible[m.cursor]
	return &r
}

// toggle flips the active flag server-side; Update reloads on success.
func (m Model) toggle(r *model.RecurringTransaction) tea.Cmd {
	m.controller.BeginMutation()
	id, active := r.ID, r.Active
	return func() tea.Msg {
		_, err := m.recurring.ToggleActive(m.ctx, id, !active)
		return mutationDoneMsg{err: err}
	}
}

// deactivate soft-deletes the target; Update reloads on success.
func (m Model) deactivate(r *model.RecurringTransaction) tea.Cmd {
	m.controller.BeginMutation()
	id := r.ID
	return func() tea.Msg {
		return mutationDoneMsg{err: m.recurring.Delete(m.ctx, id, false)}
	}
}

// applyView recomputes the visible slice from the controller's records
// plus the current filter and sort settings.
func (m *Model) applyView() {
	query := strings.TrimSpace(m.filterInput.Value())
	filters := []analytics.Filter[model.RecurringTransaction]{
		analytics.Substring(query,
			func(r model.RecurringTransaction) string { return r.Description },
			func(r model.RecurringTransaction) string { return r.Currency },
		),
	}

	comparators := map[string]analytics.Comparator[model.RecurringTransaction]{
		"monto": func(a, b model.RecurringTransaction) int {
			switch {
			case a.Amount < b.Amount:
				return -1
			case a.Amount > b.Amount:
				return 1
			default:
				return 0
			}
		},
		"descripcion": func(a, b model.RecurringTransaction) int {
			return strings.Compare(a.Description, b.Description)
		},
		"proximaEjecucion": func(a, b model.RecurringTransaction) int {
			return a.NextRun.Compare(b.NextRun)
		},
	}

	visible, err := analytics.View(m.controller.Records(), filters, comparators, sortKeys[m.sortIndex], m.direction)
	m.visible = visible
	m.viewErr = err
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Transacciones recurrentes"))
	b.WriteString("\n")

	if banner, ok := m.controller.ErrorMessage(); ok {
		b.WriteString(cli.FormatError(banner))
		b.WriteString("\n")
	}

	switch m.controller.Phase() {
	case flow.PhaseLoading, flow.PhaseSubmitting:
		b.WriteString(m.spin.View())
		b.WriteString(" cargando...\n")
		return b.String()
	case flow.PhaseIdle:
		b.WriteString(cli.SubtleStyle.Render("Sin datos. Pulsa 'r' para recargar."))
		b.WriteString("\n")
		return b.String()
	}

	if m.state == StateHelp {
		return b.String() + m.renderHelp()
	}

	if m.state == StateFiltering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderRows())

	if m.state == StateConfirmDeactivate && m.target != nil {
		b.WriteString("\n")
		b.WriteString(cli.RenderBox("Confirmar",
			fmt.Sprintf("¿Desactivar '%s'?\n\nenter: sí   esc: no", m.target.Description)))
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("↑/↓ mover  / filtrar  o ordenar  t activar  d desactivar  ? ayuda  q salir"))
	return b.String()
}

func (m Model) renderRows() string {
	if len(m.visible) == 0 {
		return cli.SubtleStyle.Render("Sin resultados.") + "\n"
	}

	header := fmt.Sprintf("  %-30s %12s  %-10s %-12s %s",
		"Descripción", "Monto", "Frecuencia", "Próxima", "Estado")
	var b strings.Builder
	b.WriteString(cli.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, r := range m.visible {
		urgency := analytics.Bucket(analytics.DaysUntil(r.NextRun, m.now()), analytics.DueSoonDays)
		style := cli.UrgencyStyle(urgency)

		status := "activa"
		if !r.Active {
			status = "inactiva"
			style = cli.SubtleStyle
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-30s %12.2f  %-10s %-12s %s",
			cursor, truncate(r.Description, 30), r.Amount, r.Interval,
			r.NextRun.Format("2006-01-02"), status)
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	lines := []string{
		"↑/k, ↓/j   mover el cursor",
		"/          filtrar por descripción o moneda",
		"o          cambiar columna de orden",
		"O          invertir dirección de orden",
		"t          activar o desactivar la fila",
		"d          desactivar (pide confirmación)",
		"r          recargar desde el servidor",
		"q          salir",
	}
	return cli.RenderBox("Atajos", strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
