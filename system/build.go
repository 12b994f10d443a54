package system

import (
	"fmt"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
)

// Game is the wired scene graph
type Game struct {
	Ctx       *engine.GameContext
	Catalog   *catalog.Catalog
	Layout    *catalog.Layout
	Roster    *component.Roster
	Gates     *Gates
	Trigger   *component.Trigger
	Pages     *Pages
	Placement *Placement
	Input     *Input
	Scene     *SceneController
	Scheduler *engine.Scheduler
}

// sceneVisuals defers visual lookups to the controller built after the gates
type sceneVisuals struct {
	sc *SceneController
}

func (v *sceneVisuals) VisualParams(name string) catalog.VisualParams {
	if v.sc == nil {
		return catalog.DefaultVisualParams()
	}
	return v.sc.VisualParams(name)
}

// Options tune Build beyond the collaborators
type Options struct {
	// GraphPath loads the scene graph from a file instead of the embedded one
	GraphPath string

	// Handlers are registered after the controller, in order
	Handlers []event.Handler
}

// Build constructs items, gates, rope, pages and controller over ctx and wires them to a scheduler
// ctx must have been created over layout.Positions()
func Build(ctx *engine.GameContext, cat *catalog.Catalog, layout *catalog.Layout, col Collaborators, opts Options) (*Game, error) {
	roster := component.NewRoster()
	for i, spec := range layout.Items {
		it := component.NewItem(ctx, engine.ItemID(i+1), spec.Name, spec.Page, spec.Rest)
		if spec.HasFigure {
			it.Secondary = component.NewSecondary(spec.Figure)
		}
		roster.Add(it)
	}
	checkCatalogItems(ctx, cat, roster)

	visuals := &sceneVisuals{}
	gates := NewGates(ctx, roster, visuals, layout.Gates)
	trigger := component.NewTrigger(ctx, layout.TriggerAnchor)
	placement := NewPlacement(ctx, roster)
	pages := NewPages(ctx, roster, gates, layout.Pages, layout.PrevArrow, layout.NextArrow)
	if col.Paginator == nil {
		col.Paginator = pages
	}

	sc, err := NewSceneController(ctx, cat, roster, gates, trigger, placement, col, opts.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("build scene controller: %w", err)
	}
	visuals.sc = sc

	sched := engine.NewScheduler(ctx)
	sched.Add(placement)
	sched.Add(gates)
	sched.Add(trigger)
	for _, c := range []any{sc.col.Narrator, sc.col.Curtain, sc.col.Fader} {
		if u, ok := c.(engine.Updater); ok {
			sched.Add(u)
		}
	}
	sched.Add(sc)
	sched.RegisterEventHandler(sc)
	for _, h := range opts.Handlers {
		if h != nil {
			sched.RegisterEventHandler(h)
		}
	}

	return &Game{
		Ctx:       ctx,
		Catalog:   cat,
		Layout:    layout,
		Roster:    roster,
		Gates:     gates,
		Trigger:   trigger,
		Pages:     pages,
		Placement: placement,
		Input:     NewInput(trigger, gates, pages, placement, sc.Visible),
		Scene:     sc,
		Scheduler: sched,
	}, nil
}

// checkCatalogItems logs catalog names the layout has no item for
func checkCatalogItems(ctx *engine.GameContext, cat *catalog.Catalog, roster *component.Roster) {
	for i := 0; i < cat.Len(); i++ {
		for _, name := range cat.AvailableItems(i) {
			if roster.ByName(name) != nil {
				continue
			}
			if cat.IsRequired(i, name) {
				ctx.Log.Printf("[config] scene %d: required item %q has no layout entry, scene cannot pass", i, name)
			} else {
				ctx.Log.Printf("[config] scene %d: available item %q has no layout entry", i, name)
			}
		}
	}
}
