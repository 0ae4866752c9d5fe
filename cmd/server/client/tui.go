package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-initiative/internal/notify"
	"github.com/KirkDiggler/rpg-initiative/internal/orchestrators/initiative"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive turn order view",
	Long: `Show the session's turn order and drive combat from the keyboard.

  s start   n next turn   r reset   l reload
  j/k move the cursor     +/- adjust the selected combatant's HP
  q quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

type snapshotMsg struct{ snap *initiative.Snapshot }

type errMsg struct{ err error }

type notificationMsg notify.Notification

// streamClosedMsg ends the event listener; the view keeps working without it
type streamClosedMsg struct{}

type tuiStyles struct {
	title  lipgloss.Style
	active lipgloss.Style
	cursor lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
}

func newTUIStyles() tuiStyles {
	return tuiStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")),
		cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		help:   lipgloss.NewStyle().Faint(true),
	}
}

type tuiModel struct {
	api     *apiClient
	sid     string
	timeout time.Duration
	events  <-chan notify.Notification

	snap    *initiative.Snapshot
	cursor  int
	message string
	failed  bool

	styles tuiStyles
}

func newTUIModel(api *apiClient, sid string, events <-chan notify.Notification) tuiModel {
	return tuiModel{
		api:     api,
		sid:     sid,
		timeout: api.http.Timeout,
		events:  events,
		styles:  newTUIStyles(),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.request(http.MethodGet, "", nil), m.listen())
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		m.snap = msg.snap
		if m.cursor >= len(m.snap.Combatants) {
			m.cursor = max(len(m.snap.Combatants)-1, 0)
		}
		return m, nil

	case errMsg:
		m.message, m.failed = msg.err.Error(), true
		return m, nil

	case notificationMsg:
		switch msg.Kind {
		case notify.KindTick:
			if m.snap != nil {
				m.snap.ElapsedSeconds = msg.ElapsedSeconds
			}
			return m, m.listen()
		case notify.KindError:
			m.message, m.failed = msg.Message, true
		default:
			m.message, m.failed = msg.Message, false
		}
		// another client may have changed the order
		return m, tea.Batch(m.listen(), m.request(http.MethodGet, "", nil))

	case streamClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		return m, m.request(http.MethodPost, "/combat/start", nil)
	case "n", " ":
		return m, m.request(http.MethodPost, "/combat/advance", nil)
	case "r":
		return m, m.request(http.MethodPost, "/combat/reset", nil)
	case "l":
		return m, m.request(http.MethodPost, "/load", nil)
	case "j", "down":
		if m.snap != nil && m.cursor < len(m.snap.Combatants)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "+", "=":
		return m, m.adjustHP(1)
	case "-":
		return m, m.adjustHP(-1)
	}
	return m, nil
}

func (m tuiModel) adjustHP(delta int32) tea.Cmd {
	if m.snap == nil || len(m.snap.Combatants) == 0 {
		return nil
	}
	c := m.snap.Combatants[m.cursor]
	return m.request(http.MethodPut, "/combatants/"+c.ID+"/hp", map[string]int32{"current_hp": c.CurrentHP + delta})
}

// request calls the session API and reports the resulting snapshot
func (m tuiModel) request(method, suffix string, body any) tea.Cmd {
	path := "/v1/sessions/" + m.sid + suffix
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		var snap initiative.Snapshot
		if err := m.api.do(ctx, method, path, body, &snap); err != nil {
			return errMsg{err}
		}
		return snapshotMsg{&snap}
	}
}

func (m tuiModel) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-m.events
		if !ok {
			return streamClosedMsg{}
		}
		return notificationMsg(n)
	}
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Initiative"))
	if m.snap == nil {
		b.WriteString("\n\nLoading...\n")
		return b.String()
	}

	if m.snap.Running {
		fmt.Fprintf(&b, "  round %d  %s\n\n", m.snap.RoundNumber, formatElapsed(m.snap.ElapsedSeconds))
	} else {
		b.WriteString("  not started\n\n")
	}

	if len(m.snap.Combatants) == 0 {
		b.WriteString("No combatants\n")
	}
	for i, c := range m.snap.Combatants {
		pointer := "  "
		if i == m.cursor {
			pointer = m.styles.cursor.Render("> ")
		}

		row := fmt.Sprintf("%3d  %-20s %4d/%-4d AC %-2d", c.InitiativeValue, c.Name, c.CurrentHP, c.MaxHP, c.ArmorClass)
		if len(c.Statuses) > 0 {
			names := make([]string, 0, len(c.Statuses))
			for _, st := range c.Statuses {
				names = append(names, st.Type.Name)
			}
			row += "  " + strings.Join(names, ", ")
		}
		if m.snap.Running && i == m.snap.CurrentTurnIndex {
			row = m.styles.active.Render(row)
		}

		b.WriteString(pointer + row + "\n")
	}

	if m.message != "" {
		style := m.styles.status
		if m.failed {
			style = m.styles.err
		}
		b.WriteString("\n" + style.Render(m.message) + "\n")
	}

	b.WriteString("\n" + m.styles.help.Render("s start  n next  r reset  l reload  j/k select  +/- hp  q quit") + "\n")
	return b.String()
}

func formatElapsed(seconds int64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if sessionID == "" {
		return fmt.Errorf("--session is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan notify.Notification, 16)
	dialCtx, dialCancel := context.WithTimeout(ctx, timeout)
	conn, err := dialEvents(dialCtx, serverURL, sessionID, token)
	dialCancel()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	go func() {
		defer close(events)
		for {
			var n notify.Notification
			if err := conn.ReadJSON(&n); err != nil {
				return
			}
			select {
			case events <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	p := tea.NewProgram(newTUIModel(newAPIClient(), sessionID, events))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
