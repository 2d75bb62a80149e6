package oops

import (
	"errors"
	"testing"
)

func buildTable(t *testing.T, source string) (*ClassTable, error) {
	t.Helper()
	program := mustParse(t, source)
	table := NewClassTable()
	return table, table.AddProgram(program)
}

func mustBuildTable(t *testing.T, source string) *ClassTable {
	t.Helper()
	table, err := buildTable(t, source)
	if err != nil {
		t.Fatalf("class table build failed: %v", err)
	}
	return table
}

func TestClassTableSeedsObject(t *testing.T) {
	table := NewClassTable()
	object := table.Lookup("Object")
	if object == nil {
		t.Fatal("expected built-in Object class")
	}
	if object.Super != nil || len(object.Fields) != 0 || len(object.Methods) != 0 {
		t.Fatalf("expected bare Object root, got %+v", object)
	}
}

func TestClassTableRegistersClass(t *testing.T) {
	table := mustBuildTable(t, "[Class subclass name: #Person super: #Object fields: [#age]];")
	person := table.Lookup("Person")
	if person == nil {
		t.Fatal("expected Person to be registered")
	}
	if person.Super != table.Lookup("Object") {
		t.Fatal("expected Person's superclass to be Object")
	}
	if len(person.Fields) != 1 || person.Fields[0].Name != "age" {
		t.Fatalf("unexpected fields %v", person.Fields)
	}
}

func TestClassTableDuplicateClass(t *testing.T) {
	_, err := buildTable(t, `
[Class subclass name: #Person super: #Object fields: []];
[Class subclass name: #Person super: #Object fields: []];
`)
	var dup *ClassAlreadyDefinedError
	if !errors.As(err, &dup) {
		t.Fatalf("expected ClassAlreadyDefinedError, got %v", err)
	}
	if dup.Class != "Person" {
		t.Fatalf("unexpected class %q", dup.Class)
	}
	if dup.FirstSpan == dup.SecondSpan {
		t.Fatalf("expected two distinct spans, got %s twice", dup.FirstSpan)
	}
	if dup.FirstSpan.From >= dup.SecondSpan.From {
		t.Fatalf("expected first definition before second, got %s and %s", dup.FirstSpan, dup.SecondSpan)
	}
}

func TestClassTableSuperDeclaredLater(t *testing.T) {
	table := mustBuildTable(t, `
[Class subclass name: #Dog super: #Animal fields: []];
[Class subclass name: #Animal super: #Object fields: []];
`)
	dog := table.Lookup("Dog")
	if dog.Super != table.Lookup("Animal") {
		t.Fatal("expected Dog's superclass to resolve to Animal declared after it")
	}
}

func TestClassTableMissingSuper(t *testing.T) {
	_, err := buildTable(t, "[Class subclass name: #Dog super: #Animal fields: []];")
	var missing *ClassNotDefinedError
	if !errors.As(err, &missing) {
		t.Fatalf("expected ClassNotDefinedError, got %v", err)
	}
	if missing.Class != "Animal" {
		t.Fatalf("unexpected class %q", missing.Class)
	}
}

func TestClassTableMissingSuperLeavesNoLinks(t *testing.T) {
	program := mustParse(t, `
[Class subclass name: #Dog super: #Object fields: []];
[Class subclass name: #Cat super: #Ghost fields: []];
`)
	table := NewClassTable()
	if err := table.AddProgram(program); err == nil {
		t.Fatal("expected a missing-super failure")
	}
	// Dog's link must not have been committed when Cat's failed.
	if dog := table.Lookup("Dog"); dog != nil && dog.Super != nil {
		t.Fatal("expected no superclass links after a failed link pass")
	}
}

func TestClassTableSelfSuperCycle(t *testing.T) {
	_, err := buildTable(t, "[Class subclass name: #A super: #A fields: []];")
	var cycle *SuperclassCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected SuperclassCycleError, got %v", err)
	}
	if cycle.Class != "A" {
		t.Fatalf("unexpected class %q", cycle.Class)
	}
}

func TestClassTableMutualSuperCycle(t *testing.T) {
	_, err := buildTable(t, `
[Class subclass name: #A super: #B fields: []];
[Class subclass name: #B super: #A fields: []];
`)
	var cycle *SuperclassCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected SuperclassCycleError, got %v", err)
	}
}

func TestClassTableCycleLeavesNoLinks(t *testing.T) {
	program := mustParse(t, `
[Class subclass name: #Dog super: #Object fields: []];
[Class subclass name: #A super: #A fields: []];
`)
	table := NewClassTable()
	if err := table.AddProgram(program); err == nil {
		t.Fatal("expected a cyclic-super failure")
	}
	if dog := table.Lookup("Dog"); dog != nil && dog.Super != nil {
		t.Fatal("expected no superclass links after a failed link pass")
	}
}

func TestClassTableMethodOnUndefinedClass(t *testing.T) {
	_, err := buildTable(t, "[Ghost def: #boo do: || {}];")
	var missing *ClassNotDefinedError
	if !errors.As(err, &missing) {
		t.Fatalf("expected ClassNotDefinedError, got %v", err)
	}
	if missing.Class != "Ghost" {
		t.Fatalf("unexpected class %q", missing.Class)
	}
}

func TestClassTableDuplicateMethod(t *testing.T) {
	_, err := buildTable(t, `
[Class subclass name: #Dog super: #Object fields: []];
[Dog def: #speak do: || {}];
[Dog def: #speak do: || {}];
`)
	var dup *MethodAlreadyDefinedError
	if !errors.As(err, &dup) {
		t.Fatalf("expected MethodAlreadyDefinedError, got %v", err)
	}
	if dup.Class != "Dog" || dup.Method != "speak" {
		t.Fatalf("unexpected method %s#%s", dup.Class, dup.Method)
	}
}

func TestClassTableOverrideInSubclassAllowed(t *testing.T) {
	table := mustBuildTable(t, `
[Class subclass name: #Animal super: #Object fields: []];
[Class subclass name: #Dog super: #Animal fields: []];
[Animal def: #speak do: || {}];
[Dog def: #speak do: || {}];
`)
	dog := table.Lookup("Dog")
	if dog.lookupMethod("speak") != dog.Methods["speak"] {
		t.Fatal("expected the most-derived definition to win")
	}
}

func TestClassTableMethodResolutionWalksSupers(t *testing.T) {
	table := mustBuildTable(t, `
[Class subclass name: #Animal super: #Object fields: []];
[Class subclass name: #Dog super: #Animal fields: []];
[Animal def: #speak do: || {}];
`)
	dog := table.Lookup("Dog")
	animal := table.Lookup("Animal")
	if dog.lookupMethod("speak") != animal.Methods["speak"] {
		t.Fatal("expected resolution to reach the ancestor's method")
	}
	if dog.lookupMethod("fly") != nil {
		t.Fatal("expected an unknown selector to resolve to nothing")
	}
}

func TestClassTableIncrementalAddition(t *testing.T) {
	table := mustBuildTable(t, "[Class subclass name: #Animal super: #Object fields: []];")
	program := mustParse(t, "[Class subclass name: #Dog super: #Animal fields: []];")
	if err := table.AddProgram(program); err != nil {
		t.Fatalf("expected second program to fold in, got %v", err)
	}
	if table.Lookup("Dog").Super != table.Lookup("Animal") {
		t.Fatal("expected Dog to link against the earlier Animal")
	}
}
