package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"laygrid/pkg/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// diagramEntry is one selectable diagram file.
type diagramEntry struct {
	Path       string
	Name       string
	Shapes     int
	Connectors int
}

// DiagramListModel is the bubbletea model for interactive diagram selection.
type DiagramListModel struct {
	Entries  []diagramEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewDiagramListModel creates a new diagram list model.
func NewDiagramListModel(entries []diagramEntry) DiagramListModel {
	return DiagramListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m DiagramListModel) Init() tea.Cmd {
	return nil
}

func (m DiagramListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Entries[m.Cursor].Path
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DiagramListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Diagram"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%s", cursor, style.Render(e.Path))
		detail := fmt.Sprintf("  %d shapes, %d connectors", e.Shapes, e.Connectors)
		b.WriteString(line + listDimStyle.Render(detail) + "\n")
	}

	return b.String()
}

// pickDiagramFile finds diagram JSON files in the working directory and lets
// the user choose one interactively. A single candidate is returned without
// prompting.
func pickDiagramFile() (string, error) {
	paths, err := filepath.Glob("*.json")
	if err != nil {
		return "", err
	}

	var entries []diagramEntry
	for _, path := range paths {
		d, err := diagram.ReadFile(path)
		if err != nil {
			continue // not a diagram file
		}
		entries = append(entries, diagramEntry{
			Path:       path,
			Name:       d.Name,
			Shapes:     len(d.Shapes),
			Connectors: len(d.Connectors),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	switch len(entries) {
	case 0:
		return "", fmt.Errorf("no diagram files found (pass a diagram.json argument)")
	case 1:
		return entries[0].Path, nil
	}

	final, err := tea.NewProgram(NewDiagramListModel(entries)).Run()
	if err != nil {
		return "", fmt.Errorf("interactive selection: %w", err)
	}
	model, ok := final.(DiagramListModel)
	if !ok || model.Selected == "" {
		return "", fmt.Errorf("no diagram selected")
	}
	return model.Selected, nil
}
