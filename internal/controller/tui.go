package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Lines taken by the pager's header and footer.
const pagerChrome = 2

var (
	pagerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	pagerHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TUI pages rendered text through a Bubble Tea viewport.
type TUI struct {
	output io.Writer
	width  int
	height int
}

// NewTUI creates a new TUI. The terminal size is read from output when it is
// a terminal.
func NewTUI(output io.Writer) *TUI {
	t := &TUI{output: output}

	if f, ok := output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			t.width, t.height = width, height
		}
	}

	return t
}

// DisplayText shows text in the pager, or prints it when it fits on screen or
// the terminal size is unknown.
func (t *TUI) DisplayText(text string) error {
	if !t.needsPagination(text) {
		_, err := io.WriteString(t.output, text)
		return err
	}

	model := newPagerModel(text, t.width, t.height)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run pager: %w", err)
	}

	return nil
}

func (t *TUI) needsPagination(text string) bool {
	if t.height <= 0 {
		return false
	}

	return strings.Count(text, "\n") > t.height
}

// pagerModel is the Bubble Tea model of the report pager.
type pagerModel struct {
	viewport viewport.Model
	content  string
	quitting bool
}

func newPagerModel(content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerChrome, 1))
	vp.SetContent(content)

	return pagerModel{viewport: vp, content: content}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerChrome, 1)

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			pm.quitting = true
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	header := pagerTitleStyle.Render("layermap")
	help := pagerHelpStyle.Render(fmt.Sprintf(
		"%3.0f%% • ↑/↓ scroll • g/G top/bottom • q quit",
		pm.viewport.ScrollPercent()*100,
	))

	return header + "\n" + pm.viewport.View() + "\n" + help
}
