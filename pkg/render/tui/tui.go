// Package tui is the interactive-terminal sink from spec.md §4.9: a live
// table of progress that can be driven incrementally as events arrive,
// built in the bubbletea/lipgloss idiom.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/compare"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B9D")).
			Bold(true).
			Padding(0, 1)

	identicalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	differsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Italic(true)
)

// eventMsg wraps an aggregate.Event so it can travel through bubbletea's
// Update loop.
type eventMsg aggregate.Event

// doneMsg signals RunFinished reached the model; the program quits shortly
// after so an embedding CLI can still print a final summary.
type doneMsg struct{}

type rowKey struct {
	row   int
	route string
}

type model struct {
	width, height int
	rows          map[rowKey]compare.Class
	order         []rowKey
	finished      bool
	summary       aggregate.Summary
}

func initialModel() model {
	return model{rows: make(map[rowKey]compare.Class)}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case eventMsg:
		ev := aggregate.Event(msg)
		switch ev.Kind {
		case aggregate.RouteFinished:
			k := rowKey{row: ev.Row, route: ev.Route}
			if _, seen := m.rows[k]; !seen {
				m.order = append(m.order, k)
			}
			m.rows[k] = ev.Class
		case aggregate.RunFinished:
			m.finished = true
			m.summary = ev.Summary
		}
	case doneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("http-diff") + "\n\n")

	ordered := make([]rowKey, len(m.order))
	copy(ordered, m.order)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].row != ordered[j].row {
			return ordered[i].row < ordered[j].row
		}
		return ordered[i].route < ordered[j].route
	})

	if len(ordered) == 0 {
		b.WriteString(mutedStyle.Render("waiting for results...") + "\n")
	}
	for _, k := range ordered {
		class := m.rows[k]
		fmt.Fprintf(&b, "row %-3d  %-24s  %s\n", k.row, k.route, styleFor(class).Render(string(class)))
	}

	if m.finished {
		fmt.Fprintf(&b, "\ntotal=%d passed=%d differs=%d error=%d skipped=%d\n",
			m.summary.Overall.Total, m.summary.Overall.Passed, m.summary.Overall.Differs,
			m.summary.Overall.Error, m.summary.Overall.Skipped)
	}

	b.WriteString(mutedStyle.Render("\nq to quit") + "\n")
	return b.String()
}

func styleFor(c compare.Class) lipgloss.Style {
	switch c {
	case compare.ClassIdentical:
		return identicalStyle
	case compare.ClassDiffers:
		return differsStyle
	case compare.ClassError:
		return errorStyle
	default:
		return skippedStyle
	}
}

// Program wraps a running bubbletea program so a driver goroutine can feed
// it aggregate events as they happen.
type Program struct {
	p *tea.Program
}

// NewProgram starts the TUI in the current terminal.
func NewProgram() *Program {
	return &Program{p: tea.NewProgram(initialModel(), tea.WithAltScreen())}
}

// Send forwards one aggregate event into the running program.
func (p *Program) Send(ev aggregate.Event) {
	p.p.Send(eventMsg(ev))
	if ev.Kind == aggregate.RunFinished {
		p.p.Send(doneMsg{})
	}
}

// Run blocks until the user quits or the run finishes.
func (p *Program) Run() error {
	_, err := p.p.Run()
	return err
}
