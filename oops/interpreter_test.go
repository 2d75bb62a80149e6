package oops

import (
	"errors"
	"strings"
	"testing"
)

func TestCompileRejectsBadSource(t *testing.T) {
	if _, err := Compile("let x ="); err == nil {
		t.Fatal("expected a compile failure")
	}
	if _, err := Compile("let x = $;"); err == nil {
		t.Fatal("expected a lex failure")
	}
	if _, err := Compile(`
[Class subclass name: #A super: #Object fields: []];
[Class subclass name: #A super: #Object fields: []];
`); err == nil {
		t.Fatal("expected a duplicate-class failure")
	}
}

func TestCompileRejectsCyclicSuperclass(t *testing.T) {
	// A send to an instance of a cyclic class would walk the chain forever;
	// the table build must refuse the program before evaluation starts.
	_, err := Compile(`
[Class subclass name: #A super: #A fields: []];
[[A new] zap];
`)
	var cycle *SuperclassCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected SuperclassCycleError, got %v", err)
	}
	if err.Error() != "The class `A` has a cyclic superclass chain" {
		t.Fatalf("unexpected diagnostic %q", err.Error())
	}
}

func TestCompileExposesClasses(t *testing.T) {
	script, err := Compile("[Class subclass name: #Dog super: #Object fields: [#name]];")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if script.Classes().Lookup("Dog") == nil {
		t.Fatal("expected Dog in the compiled class table")
	}
}

func TestRunHelper(t *testing.T) {
	value, err := Run("return 3;")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !value.Equal(NewNumber(3)) {
		t.Fatalf("expected 3, got %v", value)
	}
}

func TestScriptRunTwice(t *testing.T) {
	script, err := Compile(`
[Class subclass name: #Dog super: #Object fields: [#name]];
return [Dog new name: 1];
`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	first, err := script.Run()
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := script.Run()
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	// Each run constructs its own instance.
	if first.Instance() == second.Instance() {
		t.Fatal("expected distinct instances per run")
	}
}

func TestSessionKeepsLocals(t *testing.T) {
	session := NewSession()
	if _, err := session.Eval("let x = 4;"); err != nil {
		t.Fatalf("first eval failed: %v", err)
	}
	value, err := session.Eval("return x;")
	if err != nil {
		t.Fatalf("second eval failed: %v", err)
	}
	if !value.Equal(NewNumber(4)) {
		t.Fatalf("expected 4, got %v", value)
	}
}

func TestSessionKeepsClasses(t *testing.T) {
	session := NewSession()
	if _, err := session.Eval("[Class subclass name: #Dog super: #Object fields: [#name]];"); err != nil {
		t.Fatalf("class definition failed: %v", err)
	}
	if _, err := session.Eval("[Dog def: #name do: || { return @name; }];"); err != nil {
		t.Fatalf("method definition failed: %v", err)
	}
	value, err := session.Eval("return [[Dog new name: 8] name];")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !value.Equal(NewNumber(8)) {
		t.Fatalf("expected 8, got %v", value)
	}
}

func TestSessionFailedEvalKeepsEarlierState(t *testing.T) {
	session := NewSession()
	if _, err := session.Eval("let x = 1;"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if _, err := session.Eval("let y = boom;"); err == nil {
		t.Fatal("expected a failing eval")
	}
	value, err := session.Eval("return x;")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if !value.Equal(NewNumber(1)) {
		t.Fatalf("expected x to survive the failed eval, got %v", value)
	}
}

func TestSessionReportsNames(t *testing.T) {
	session := NewSession()
	if _, err := session.Eval("let x = 1; [Class subclass name: #Dog super: #Object fields: []];"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	locals := session.Locals()
	if len(locals) != 1 || locals[0] != "x" {
		t.Fatalf("unexpected locals %v", locals)
	}
	classes := session.ClassNames()
	found := map[string]bool{}
	for _, name := range classes {
		found[name] = true
	}
	if !found["Object"] || !found["Dog"] {
		t.Fatalf("expected Object and Dog, got %v", classes)
	}
}

func TestDiagnosticText(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"let f = [Foo new];", "The class `Foo` is not defined"},
		{"let x = y;", "Undefined local variable `y` at 8..9"},
		{"let n = 1; [n age];", "Message sent to non instance value at 11..18"},
		{"let s = self;", "`self` called outside method at 8..12"},
	}
	for _, tc := range cases {
		_, err := Run(tc.source)
		if err == nil {
			t.Fatalf("%q: expected an error", tc.source)
		}
		if err.Error() != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.source, tc.want, err.Error())
		}
	}
}

func TestParseDiagnosticText(t *testing.T) {
	_, err := Run("let x = 1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.HasPrefix(err.Error(), "Parse error: ") {
		t.Fatalf("expected a parse diagnostic, got %q", err.Error())
	}
}

func TestInstanceRendering(t *testing.T) {
	value, err := Run(`
[Class subclass name: #Person super: #Object fields: [#age]];
return [Person new age: 1];
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := value.String(); got != "#<Person age: 1>" {
		t.Fatalf("unexpected rendering %q", got)
	}
}
