package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

//go:embed data/layout.yaml
var defaultLayout []byte

//go:embed data/layout.schema.json
var layoutSchema []byte

// ItemSpec places one palette item and its story figure
type ItemSpec struct {
	Name      string
	Page      int
	Rest      vmath.Vec2
	Figure    vmath.Vec2
	HasFigure bool
}

// GateSpec binds a lever to the drop slot it inspects
type GateSpec struct {
	Slot  vmath.Vec2
	Pivot vmath.Vec2
}

// Layout is the fixed scene graph shared by every scene
type Layout struct {
	Pages         []string
	Items         []ItemSpec
	Gates         []GateSpec
	TriggerAnchor vmath.Vec2
	PrevArrow     vmath.Vec2
	NextArrow     vmath.Vec2
	Extra         []vmath.Vec2
}

type itemDoc struct {
	Name   string `yaml:"name"`
	Page   int    `yaml:"page"`
	Rest   point  `yaml:"rest"`
	Figure *point `yaml:"figure"`
}

type gateDoc struct {
	Slot  point `yaml:"slot"`
	Pivot point `yaml:"pivot"`
}

type layoutDoc struct {
	Version int       `yaml:"version"`
	Pages   []string  `yaml:"pages"`
	Items   []itemDoc `yaml:"items"`
	Gates   []gateDoc `yaml:"gates"`
	Trigger struct {
		Anchor point `yaml:"anchor"`
	} `yaml:"trigger"`
	Arrows struct {
		Prev point `yaml:"prev"`
		Next point `yaml:"next"`
	} `yaml:"arrows"`
	Positions []point `yaml:"positions"`
}

// LoadLayout parses and validates a layout document
func LoadLayout(data []byte, logger *log.Logger) (*Layout, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := validateYAML("layout", "layout.schema.json", layoutSchema, data); err != nil {
		return nil, err
	}

	var doc layoutDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	l := &Layout{
		Pages:         doc.Pages,
		TriggerAnchor: doc.Trigger.Anchor.vec(),
		PrevArrow:     doc.Arrows.Prev.vec(),
		NextArrow:     doc.Arrows.Next.vec(),
	}

	names := make(map[string]struct{}, len(doc.Items))
	rests := make(map[vmath.Vec2]string, len(doc.Items))
	for _, id := range doc.Items {
		if _, dup := names[id.Name]; dup {
			return nil, &ValidationError{Document: "layout", Err: fmt.Errorf("duplicate item %q", id.Name)}
		}
		names[id.Name] = struct{}{}
		if id.Page < 0 || id.Page >= len(doc.Pages) {
			return nil, &ValidationError{Document: "layout", Err: fmt.Errorf("item %q on unknown page %d", id.Name, id.Page)}
		}
		rest := id.Rest.vec()
		if other, dup := rests[rest]; dup {
			return nil, &ValidationError{Document: "layout", Err: fmt.Errorf("items %q and %q share rest %s", other, id.Name, rest)}
		}
		rests[rest] = id.Name

		spec := ItemSpec{Name: id.Name, Page: id.Page, Rest: rest}
		if id.Figure != nil {
			spec.Figure = id.Figure.vec()
			spec.HasFigure = true
		}
		l.Items = append(l.Items, spec)
	}

	for i, gd := range doc.Gates {
		slot := gd.Slot.vec()
		if name, clash := rests[slot]; clash {
			return nil, &ValidationError{Document: "layout", Err: fmt.Errorf("gate %d slot %s is the rest of %q", i, slot, name)}
		}
		l.Gates = append(l.Gates, GateSpec{Slot: slot, Pivot: gd.Pivot.vec()})
	}
	if len(l.Gates) == 0 {
		logger.Printf("[config] layout has no gates; no scene can be solved")
	}

	for _, p := range doc.Positions {
		l.Extra = append(l.Extra, p.vec())
	}
	return l, nil
}

// LoadLayoutAuto loads path when set, falling back to the built-in layout on any failure
func LoadLayoutAuto(path string, logger *log.Logger) (*Layout, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			l, lerr := LoadLayout(data, logger)
			if lerr == nil {
				return l, nil
			}
			err = lerr
		}
		logger.Printf("[config] layout %s: %v; using built-in layout", path, err)
	}
	return LoadLayout(defaultLayout, logger)
}

// DefaultLayout returns the built-in layout
func DefaultLayout(logger *log.Logger) (*Layout, error) {
	return LoadLayout(defaultLayout, logger)
}

// Positions returns every canonical drop position: gate slots, item rests, extras
func (l *Layout) Positions() []vmath.Vec2 {
	out := make([]vmath.Vec2, 0, len(l.Gates)+len(l.Items)+len(l.Extra))
	for _, g := range l.Gates {
		out = append(out, g.Slot)
	}
	for _, it := range l.Items {
		out = append(out, it.Rest)
	}
	return append(out, l.Extra...)
}

// Item returns the spec of the named item
func (l *Layout) Item(name string) (ItemSpec, bool) {
	for _, it := range l.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemSpec{}, false
}
