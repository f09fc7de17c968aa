package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/plan"
	"github.com/abhisek/skillq/internal/screens/planner"
	"github.com/abhisek/skillq/internal/skillqueue"
	"github.com/abhisek/skillq/internal/ui/layout"
)

// Options carries the dependencies for the interactive planner.
type Options struct {
	Catalog   *catalog.Catalog
	Resolver  *skillqueue.Resolver
	Plans     *plan.Service
	Character string
}

// appModel is the root Bubble Tea model: window sizing, header/footer frame,
// and the planner screen inside it.
type appModel struct {
	planner *planner.Model
	opts    Options
	width   int
	height  int
}

func newAppModel(opts Options) appModel {
	return appModel{
		planner: planner.New(opts.Catalog, opts.Resolver, opts.Plans, opts.Character),
		opts:    opts,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.planner.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.planner, cmd = m.planner.Update(msg)
	return m, cmd
}

func (m appModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.opts.Character, m.width)
	footer := layout.RenderFooter(m.planner.KeyHints(), m.width)

	contentHeight := m.height - 4 // header and footer carry a border line each
	if contentHeight < 0 {
		contentHeight = 0
	}
	content := m.planner.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
