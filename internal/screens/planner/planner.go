package planner

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillq/internal/catalog"
	"github.com/abhisek/skillq/internal/plan"
	"github.com/abhisek/skillq/internal/skillqueue"
	"github.com/abhisek/skillq/internal/ui/components"
	"github.com/abhisek/skillq/internal/ui/layout"
	"github.com/abhisek/skillq/internal/ui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeLevel       // prompting for a target level
	modeName        // prompting for a plan name before saving
)

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowSkill
)

type row struct {
	kind  rowKind
	group string
	skill *catalog.Skill
}

// Model is the interactive planner: browse the catalog on the left, build a
// training queue on the right. Each selection goes through the resolver so
// prerequisites appear in the queue automatically.
type Model struct {
	catalog   *catalog.Catalog
	resolver  *skillqueue.Resolver
	plans     *plan.Service
	character string

	rows   []row
	cursor int
	scroll int

	queue   []skillqueue.Step
	unknown []skillqueue.SkillID

	mode       mode
	levelInput components.TextInput
	nameInput  components.TextInput
	status     string
}

// New creates a planner over the given catalog and resolver session.
func New(cat *catalog.Catalog, resolver *skillqueue.Resolver, plans *plan.Service, character string) *Model {
	var rows []row
	for _, group := range cat.Groups() {
		rows = append(rows, row{kind: rowGroupHeader, group: group})
		skills := cat.ByGroup(group)
		for i := range skills {
			rows = append(rows, row{kind: rowSkill, group: group, skill: &skills[i]})
		}
	}

	m := &Model{
		catalog:   cat,
		resolver:  resolver,
		plans:     plans,
		character: character,
		rows:      rows,
	}
	for i, r := range m.rows {
		if r.kind == rowSkill {
			m.cursor = i
			break
		}
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch m.mode {
	case modeLevel:
		return m.updateLevelPrompt(msg)
	case modeName:
		return m.updateNamePrompt(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "tab":
			m.nextGroup()
		case "enter":
			if r := m.current(); r != nil {
				m.levelInput = components.NewTextInput("1-5", true, 1)
				m.mode = modeLevel
				return m, m.levelInput.Init()
			}
		case "s":
			if len(m.queue) > 0 {
				m.nameInput = components.NewTextInput("plan name", false, 40)
				m.mode = modeName
				return m, m.nameInput.Init()
			}
			m.status = "nothing queued yet"
		}
	}
	return m, nil
}

func (m *Model) updateLevelPrompt(msg tea.Msg) (*Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			m.mode = modeBrowse
			return m, nil
		case "enter":
			m.mode = modeBrowse
			m.addCurrent()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.levelInput, cmd = m.levelInput.Update(msg)
	return m, cmd
}

func (m *Model) updateNamePrompt(msg tea.Msg) (*Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			m.mode = modeBrowse
			return m, nil
		case "enter":
			m.mode = modeBrowse
			m.savePlan()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// addCurrent resolves the selected skill at the prompted level and appends
// the newly required steps to the queue.
func (m *Model) addCurrent() {
	r := m.current()
	if r == nil {
		return
	}
	level, err := m.levelInput.NumericValue()
	if err != nil {
		m.status = "enter a level between 1 and 5"
		return
	}

	res, err := m.resolver.AddSkillRequest(r.skill.ID, level)
	m.unknown = append(m.unknown, res.Unknown...)
	if err != nil {
		m.status = err.Error()
		return
	}
	if len(res.Steps) == 0 {
		m.status = fmt.Sprintf("%s %s already queued", r.skill.Name, catalog.RomanLevel(level))
		return
	}
	m.queue = append(m.queue, res.Steps...)
	m.status = fmt.Sprintf("added %d steps for %s %s", len(res.Steps), r.skill.Name, catalog.RomanLevel(level))
}

func (m *Model) savePlan() {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.status = "plan name is required"
		return
	}
	p := &plan.Plan{Name: name, Character: m.character, Steps: m.queue}
	if err := m.plans.Save(context.Background(), p.Stamp()); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %q (%d steps)", name, len(m.queue))
}

func (m *Model) current() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := &m.rows[m.cursor]
	if r.kind != rowSkill {
		return nil
	}
	return r
}

// moveCursor moves the cursor by delta, skipping group headers.
func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	for next >= 0 && next < len(m.rows) {
		if m.rows[next].kind == rowSkill {
			m.cursor = next
			return
		}
		next += delta
	}
}

// nextGroup jumps the cursor to the first skill of the next group,
// wrapping around at the end.
func (m *Model) nextGroup() {
	current := m.rows[m.cursor].group
	for i := m.cursor + 1; i < len(m.rows); i++ {
		if m.rows[i].kind == rowSkill && m.rows[i].group != current {
			m.cursor = i
			return
		}
	}
	for i := 0; i < m.cursor; i++ {
		if m.rows[i].kind == rowSkill {
			m.cursor = i
			return
		}
	}
}

func (m *Model) View(width, height int) string {
	listWidth := width * 3 / 5
	queueWidth := width - listWidth - 2
	bodyHeight := height - 2 // status line + prompt line

	list := m.renderList(listWidth, bodyHeight)
	queue := m.renderQueue(queueWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", queue)

	return body + "\n" + m.renderPrompt(width) + "\n" + theme.Hint.Render(" "+m.status)
}

// KeyHints returns the key binding hints for the footer.
func (m *Model) KeyHints() []layout.KeyHint {
	switch m.mode {
	case modeLevel:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeName:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Tab", Description: "Group"},
			{Key: "Enter", Description: "Queue skill"},
			{Key: "s", Description: "Save plan"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (m *Model) renderPrompt(width int) string {
	switch m.mode {
	case modeLevel:
		r := m.current()
		label := "train to level: "
		if r != nil {
			label = fmt.Sprintf("train %s to level: ", r.skill.Name)
		}
		return " " + theme.Body.Render(label) + m.levelInput.View()
	case modeName:
		return " " + theme.Body.Render("save plan as: ") + m.nameInput.View()
	default:
		return ""
	}
}

func (m *Model) renderList(width, height int) string {
	m.adjustScroll(height)

	var lines []string
	visible := 0
	for i := m.scroll; i < len(m.rows) && visible < height; i++ {
		r := m.rows[i]
		switch r.kind {
		case rowGroupHeader:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true).
				Render(" "+strings.ToUpper(r.group)))
		case rowSkill:
			lines = append(lines, m.renderSkillRow(r, i == m.cursor, width))
		}
		visible++
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSkillRow(r row, selected bool, width int) string {
	cursor := "  "
	style := theme.Unselected
	if selected {
		cursor = "▸ "
		style = theme.Selected
	}

	name := catalog.TruncateName(r.skill.Name, width-10)

	rank := theme.Hint.Render(fmt.Sprintf("r%d", r.skill.Rank))
	return fmt.Sprintf("  %s%s %s", cursor, style.Render(name), rank)
}

func (m *Model) renderQueue(width, height int) string {
	title := theme.Title.Render("Queue")
	var lines []string
	lines = append(lines, title)

	start := 0
	if len(m.queue) > height-2 {
		start = len(m.queue) - (height - 2)
	}
	for i := start; i < len(m.queue); i++ {
		st := m.queue[i]
		entry := fmt.Sprintf("%2d. %s %s", i+1, m.catalog.Name(st.Skill), catalog.RomanLevel(st.Level))
		lines = append(lines, theme.Queued.Render(entry))
	}
	if len(m.queue) == 0 {
		lines = append(lines, theme.Hint.Render("empty — queue a skill"))
	}

	return theme.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

// adjustScroll keeps the cursor visible, preferring to show the group
// header above it.
func (m *Model) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := m.cursor
	if top > 0 && m.rows[top-1].kind == rowGroupHeader {
		top--
	}
	if top < m.scroll {
		m.scroll = top
	}
	if m.cursor >= m.scroll+height {
		m.scroll = m.cursor - height + 1
	}
}
