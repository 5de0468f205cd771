package parser

import (
	"strings"
	"testing"
)

func TestCSVParser_RowsAsDefinitions(t *testing.T) {
	input := "name,role\nAlice,admin\nBob,\n"

	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "people" {
		t.Errorf("expected title %q, got %q", "people", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(tree.Children))
	}

	batch := tree.Children[0]
	if batch.Title != "Rows 2-3" {
		t.Errorf("expected batch title %q, got %q", "Rows 2-3", batch.Title)
	}
	if len(batch.Children) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(batch.Children))
	}
	if got, want := batch.Children[0].Text, "name -- Alice\n\nrole -- admin"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got, want := batch.Children[1].Text, "name -- Bob"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCSVParser_Batches(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 45; i++ {
		b.WriteString("x\n")
	}

	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(b.String()), "big.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(tree.Children))
	}
	if got := tree.Children[2].Title; got != "Rows 42-46" {
		t.Errorf("expected last batch %q, got %q", "Rows 42-46", got)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no children, got %d", len(tree.Children))
	}
}
