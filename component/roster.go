package component

import (
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Roster indexes every item of the scene graph by id, name and rest slot
type Roster struct {
	items  []*Item
	byID   map[engine.ItemID]*Item
	byName map[string]*Item
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{
		byID:   make(map[engine.ItemID]*Item),
		byName: make(map[string]*Item),
	}
}

// Add registers an item; the roster is fixed after scene construction
func (r *Roster) Add(it *Item) {
	r.items = append(r.items, it)
	r.byID[it.ID] = it
	r.byName[it.Name] = it
	it.roster = r
}

// All returns items in construction order
func (r *Roster) All() []*Item {
	return r.items
}

// ByID returns the item with the given id, nil when unknown
func (r *Roster) ByID(id engine.ItemID) *Item {
	return r.byID[id]
}

// ByName returns the named item, nil when unknown
func (r *Roster) ByName(name string) *Item {
	return r.byName[name]
}

// RestOwner returns the item whose rest slot is at p
func (r *Roster) RestOwner(p vmath.Vec2) (*Item, bool) {
	for _, it := range r.items {
		if it.Rest == p {
			return it, true
		}
	}
	return nil, false
}

// AnyInTransit reports whether any item or its figure is still animating
func (r *Roster) AnyInTransit() bool {
	for _, it := range r.items {
		if it.InTransit() {
			return true
		}
	}
	return false
}
