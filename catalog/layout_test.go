package catalog

import (
	"errors"
	"testing"

	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

func TestDefaultLayout(t *testing.T) {
	l, err := DefaultLayout(nil)
	if err != nil {
		t.Fatalf("Default layout failed to load: %v", err)
	}
	if len(l.Gates) != 5 {
		t.Errorf("Expected 5 gates, got %d", len(l.Gates))
	}
	if len(l.Pages) != 2 {
		t.Errorf("Expected 2 pages, got %d", len(l.Pages))
	}
	if got := len(l.Positions()); got != len(l.Gates)+len(l.Items) {
		t.Errorf("Expected gate slots plus rests, got %d positions", got)
	}

	// Every item the story mentions must be placed
	c, _ := Default(nil)
	for i := 0; i < c.Len(); i++ {
		for _, name := range c.AvailableItems(i) {
			if _, ok := l.Item(name); !ok {
				t.Errorf("Scene %d item %q missing from layout", i, name)
			}
		}
	}

	crown, ok := l.Item("crown")
	if !ok || !crown.HasFigure || crown.Rest != vmath.V2(-12, -5) {
		t.Errorf("Unexpected crown spec %+v", crown)
	}
}

func TestLayoutRejectsConflicts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate item", `
pages: [a]
items:
  - {name: x, page: 0, rest: [0, 0]}
  - {name: x, page: 0, rest: [1, 0]}
gates: []
trigger: {anchor: [0, 0]}
`},
		{"shared rest", `
pages: [a]
items:
  - {name: x, page: 0, rest: [0, 0]}
  - {name: y, page: 0, rest: [0, 0]}
gates: []
trigger: {anchor: [0, 0]}
`},
		{"unknown page", `
pages: [a]
items:
  - {name: x, page: 3, rest: [0, 0]}
gates: []
trigger: {anchor: [0, 0]}
`},
		{"gate on rest", `
pages: [a]
items:
  - {name: x, page: 0, rest: [0, 0]}
gates:
  - {slot: [0, 0], pivot: [1, 0]}
trigger: {anchor: [0, 0]}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLayout([]byte(tt.doc), nil)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}

	if _, err := LoadLayout([]byte("pages: []\n"), nil); err == nil {
		t.Error("Expected schema rejection of missing sections")
	}
}
