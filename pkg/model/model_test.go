package model

import (
	"strings"
	"testing"

	"github.com/openpra/pdag/pkg/pdag"
)

func TestParseAndBuildTwoTrains(t *testing.T) {
	src := `
		(event V1 0.5)
		(event P1 0.7)
		(event V2 0.5)
		(event P2 0.7)
		(gate OR1 (or V1 P1))
		(gate OR2 (or V2 P2))
		(gate ROOT (and OR1 OR2))
		(root ROOT)
	`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root, err := m.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	g, err := pdag.Build(root, pdag.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.Root().Operator != pdag.AND {
		t.Fatalf("root operator = %v, want AND", g.Root().Operator)
	}
	if g.VariableCount() != 4 {
		t.Fatalf("variable count = %d, want 4", g.VariableCount())
	}
}

func TestParseHouseEventFoldsToConstant(t *testing.T) {
	src := `
		(event P1 0.01)
		(house H1 true)
		(gate ROOT (and P1 (not H1)))
		(root ROOT)
	`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root, err := m.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	g, err := pdag.Build(root, pdag.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// ROOT = P1 AND (NOT true) = P1 AND false, folds to the constant FALSE
	// once preprocessing sweeps the literal constant edge.
	g.Preprocess()
	if g.Root().State() != pdag.NullState {
		t.Fatalf("expected constant folding to collapse the root to NullState, got %v", g.Root().State())
	}
}

func TestParseVoteGate(t *testing.T) {
	src := `
		(event V1 0.1)
		(event V2 0.1)
		(event V3 0.1)
		(gate ROOT (atleast 2 V1 V2 V3))
		(root ROOT)
	`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root, err := m.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	g, err := pdag.Build(root, pdag.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.Root().Operator != pdag.VOTE {
		t.Fatalf("root operator = %v, want VOTE", g.Root().Operator)
	}
	if g.Root().VoteNumber() != 2 {
		t.Fatalf("vote number = %d, want 2", g.Root().VoteNumber())
	}
}

func TestParseCCFGroupSubstitution(t *testing.T) {
	src := `
		(event P1 0.01)
		(event P2 0.01)
		(ccf-group G1 P1 P2)
		(gate ROOT (or P1 P2))
		(root ROOT)
	`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root, err := m.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	g, err := pdag.Build(root, pdag.BuildOptions{IncorporateCCF: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// With CCF incorporated, each of the 2 members substitutes into an
	// OR(independent, shared) formula, so the shared variable is reused
	// once and each member adds one independent variable: 2 independent
	// + 1 shared = 3 variables.
	if g.VariableCount() != 3 {
		t.Fatalf("variable count = %d, want 3", g.VariableCount())
	}
}

func TestParseNestedAnonymousSubgate(t *testing.T) {
	src := `
		(event V1 0.5)
		(event V2 0.5)
		(event V3 0.5)
		(gate ROOT (and V1 (or V2 V3)))
		(root ROOT)
	`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root, err := m.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	g, err := pdag.Build(root, pdag.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.VariableCount() != 3 {
		t.Fatalf("variable count = %d, want 3", g.VariableCount())
	}
}

func TestParseRejectsUndefinedReference(t *testing.T) {
	src := `
		(gate ROOT (and V1 V2))
		(root ROOT)
	`
	if _, err := Parse(src); err == nil {
		t.Fatalf("expected an error for undefined references")
	}
}

func TestParseRejectsMissingRoot(t *testing.T) {
	src := `(event P1 0.5)`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := m.Root(); err == nil {
		t.Fatalf("expected an error for a missing (root ...) form")
	}
}

func TestParseRejectsDuplicateEvent(t *testing.T) {
	src := `
		(event P1 0.5)
		(event P1 0.6)
	`
	if _, err := Parse(src); err == nil {
		t.Fatalf("expected an error for a duplicate event declaration")
	}
}

func TestParseIgnoresComments(t *testing.T) {
	src := `
		; a comment line
		(event P1 0.5) ; trailing comment
		(gate ROOT (and P1 P1))
		(root ROOT)
	`
	if _, err := Parse(src); err != nil {
		t.Fatalf("Parse failed on commented input: %v", err)
	}
}

func TestParseRejectsUnterminatedList(t *testing.T) {
	src := `(event P1 0.5`
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected an error for an unterminated list")
	}
	if !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("error = %v, want mention of an unterminated list", err)
	}
}
