// Package projectlist provides the project list UI component.
package projectlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/startboard/internal/model"
	"github.com/lazyvibe/startboard/internal/ui/keys"
	"github.com/lazyvibe/startboard/internal/ui/styles"
)

const detailHeight = 4

// Model is the project list component.
type Model struct {
	projects []model.Project
	cursor   int
	offset   int // For scrolling
	width    int
	height   int
	loaded   bool
	keyMap   keys.KeyMap
}

// New creates a new project list component.
func New() Model {
	return Model{keyMap: keys.DefaultKeyMap()}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetProjects replaces the list. The cursor stays on the same project when
// it is still present.
func (m *Model) SetProjects(projects []model.Project) {
	selected := ""
	if p, ok := m.SelectedProject(); ok {
		selected = p.ID
	}

	m.projects = append([]model.Project(nil), projects...)
	m.loaded = true

	m.cursor = min(m.cursor, len(m.projects)-1)
	for i, p := range m.projects {
		if p.ID == selected {
			m.cursor = i
			break
		}
	}
	m.cursor = max(m.cursor, 0)
	m.ensureVisible()
}

// Loaded reports whether a project list has been received.
func (m Model) Loaded() bool {
	return m.loaded
}

// Projects returns the listed projects.
func (m Model) Projects() []model.Project {
	return m.projects
}

// SelectedProject returns the project under the cursor.
func (m Model) SelectedProject() (model.Project, bool) {
	if m.cursor >= 0 && m.cursor < len(m.projects) {
		return m.projects[m.cursor], true
	}
	return model.Project{}, false
}

// SelectedIndex returns the index of the selected item.
func (m Model) SelectedIndex() int {
	return m.cursor
}

// CursorUp moves cursor up.
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
		m.ensureVisible()
	}
}

// CursorDown moves cursor down.
func (m *Model) CursorDown() {
	if m.cursor < len(m.projects)-1 {
		m.cursor++
		m.ensureVisible()
	}
}

// listArea returns the rows left for items and whether the details fit.
func (m Model) listArea() (int, bool) {
	inner := max(m.height-4, 1) // Border, title and rule
	if inner >= detailHeight+2 {
		return inner - detailHeight - 1, true
	}
	return inner, false
}

// visibleRows returns how many items fit, leaving a row for the scroll
// indicator when the list overflows.
func (m Model) visibleRows() int {
	rows, _ := m.listArea()
	if len(m.projects) > rows {
		rows = max(rows-1, 1)
	}
	return rows
}

// ensureVisible adjusts scroll offset to keep cursor visible.
func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the project list.
func (m Model) View() string {
	innerWidth := max(m.width-4, 1) // Border + padding

	icon := styles.PanelTitleIcon.Render(styles.IconFolder)
	title := styles.PanelTitle.Render("Projects")
	count := styles.ListItemDim.Render(fmt.Sprintf("(%d)", len(m.projects)))
	header := icon + title + " " + count

	listArea, showDetails := m.listArea()

	var rows []string
	switch {
	case !m.loaded:
		rows = append(rows, "", styles.Placeholder.Render("Loading projects…"))
	case len(m.projects) == 0:
		rows = append(rows, "",
			styles.Placeholder.Render("No projects yet"),
			styles.ListItemDim.Render(fmt.Sprintf("Press '%s' to add the current folder", m.keyMap.Add.Help().Key)),
		)
	default:
		visible := m.visibleRows()
		end := min(m.offset+visible, len(m.projects))
		for i := m.offset; i < end; i++ {
			rows = append(rows, m.renderItem(m.projects[i], i == m.cursor, innerWidth))
		}
		if len(m.projects) > visible {
			rows = append(rows, styles.ListItemDim.Render(fmt.Sprintf(" %d/%d ", m.cursor+1, len(m.projects))))
		}
	}

	content := lipgloss.NewStyle().
		Width(innerWidth).
		Height(listArea).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if showDetails {
		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			strings.Repeat("─", innerWidth),
			m.renderDetails(innerWidth),
		)
	}

	return styles.BorderStyle.
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			strings.Repeat("─", innerWidth),
			content,
		))
}

// renderItem renders a single project row.
func (m Model) renderItem(p model.Project, selected bool, width int) string {
	icon := styles.IconFolder
	if p.IsWorkspace() {
		icon = styles.IconWorkspace
	}
	prefix := "  "
	style := styles.ListItem
	if selected {
		prefix = styles.IconSelected + " "
		style = styles.ListItemSelected
	}

	label := prefix + icon + " "
	name := styles.TruncateWithEllipsis(p.DisplayName(), width-lipgloss.Width(label)-2)
	return style.Width(width).Render(label + name)
}

func (m Model) renderDetails(width int) string {
	label := lipgloss.NewStyle().Foreground(styles.TextMuted)
	value := lipgloss.NewStyle().Foreground(styles.TextCol)

	lines := []string{label.Bold(true).Render("Details")}
	p, ok := m.SelectedProject()
	if !ok {
		lines = append(lines, label.Render("No project selected"))
	} else {
		lines = append(lines,
			renderDetailLine(label, value, "Path: ", p.Path, width),
			renderDetailLine(label, value, "Type: ", string(p.Type), width),
			renderDetailLine(label, value, "Added: ", time.UnixMilli(p.AddedAt).Format("2006-01-02 15:04"), width),
		)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(detailHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderDetailLine(labelStyle, valueStyle lipgloss.Style, label, value string, width int) string {
	rendered := labelStyle.Render(label)
	return rendered + valueStyle.Render(styles.TruncateWithEllipsis(value, width-lipgloss.Width(rendered)))
}
