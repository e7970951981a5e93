package controller

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTUI_DisplayTextWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	if err := tui.DisplayText("line one\nline two\n"); err != nil {
		t.Fatalf("DisplayText() error = %v", err)
	}

	if buf.String() != "line one\nline two\n" {
		t.Errorf("DisplayText() output = %q", buf.String())
	}
}

func TestTUI_NeedsPagination(t *testing.T) {
	tui := &TUI{height: 3}

	if tui.needsPagination("a\nb\n") {
		t.Error("short text should not be paged")
	}

	if !tui.needsPagination("a\nb\nc\nd\n") {
		t.Error("long text should be paged")
	}

	if (&TUI{}).needsPagination(strings.Repeat("x\n", 500)) {
		t.Error("unknown height should never page")
	}
}

func TestPagerModel_Update(t *testing.T) {
	content := strings.Repeat("row\n", 50)
	model := newPagerModel(content, 40, 12)

	if model.viewport.Height != 10 {
		t.Errorf("viewport height = %d, want 10", model.viewport.Height)
	}

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	resized := updated.(pagerModel)

	if resized.viewport.Width != 80 || resized.viewport.Height != 28 {
		t.Errorf("viewport size = %dx%d, want 80x28", resized.viewport.Width, resized.viewport.Height)
	}

	updated, _ = resized.Update(tea.KeyMsg{Type: tea.KeyEnd})
	bottom := updated.(pagerModel)

	if !bottom.viewport.AtBottom() {
		t.Error("end should scroll to the bottom")
	}

	updated, _ = bottom.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if !updated.(pagerModel).viewport.AtTop() {
		t.Error("g should scroll to the top")
	}

	updated, cmd := bottom.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}

	if view := updated.(pagerModel).View(); view != "" {
		t.Errorf("View() after quit = %q, want empty", view)
	}
}

func TestPagerModel_View(t *testing.T) {
	model := newPagerModel("hello pager", 40, 10)

	view := model.View()

	for _, want := range []string{"layermap", "hello pager", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q, got: %s", want, view)
		}
	}
}
