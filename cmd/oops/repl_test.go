package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateHelpCommandTogglesPanel(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":help")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEvaluateWrapsBareExpression(t *testing.T) {
	m := newREPLModel()

	output, isErr := m.evaluate("1")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output != "1" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestEvaluateKeepsSessionState(t *testing.T) {
	m := newREPLModel()

	if output, isErr := m.evaluate("let x = 7;"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	output, isErr := m.evaluate("x")
	if isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	if output != "7" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestEvaluateReportsDiagnostics(t *testing.T) {
	m := newREPLModel()

	output, isErr := m.evaluate("missing")
	if !isErr {
		t.Fatalf("expected an error, got %q", output)
	}
	if !strings.Contains(output, "Undefined local variable `missing`") {
		t.Fatalf("unexpected diagnostic %q", output)
	}
}

func TestResetCommandDropsState(t *testing.T) {
	m := newREPLModel()
	if output, isErr := m.evaluate("let x = 1;"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}

	m, _ = m.handleCommand(":reset")

	if _, isErr := m.evaluate("x"); !isErr {
		t.Fatalf("expected x to be gone after reset")
	}
}

func TestAutocompleteCompletesUniquePrefix(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("retu")

	m = m.handleAutocomplete()

	if got := m.textInput.Value(); got != "return" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestAutocompleteListsClassNames(t *testing.T) {
	m := newREPLModel()
	if output, isErr := m.evaluate("[Class subclass name: #Orca super: #Object fields: []];"); isErr {
		t.Fatalf("unexpected eval error: %s", output)
	}
	m.textInput.SetValue("[Orc")

	m = m.handleAutocomplete()

	if got := m.textInput.Value(); got != "[Orca" {
		t.Fatalf("unexpected completion %q", got)
	}
}
