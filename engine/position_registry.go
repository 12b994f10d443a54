package engine

import (
	"log"
	"math"
	"sync/atomic"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/status"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// gridKey is a canonical position quantized to constant.GridResolution
type gridKey struct {
	x, y int64
}

func keyOf(p vmath.Vec2) gridKey {
	return gridKey{
		x: int64(math.Round(p.X / constant.GridResolution)),
		y: int64(math.Round(p.Y / constant.GridResolution)),
	}
}

// slot is one canonical drop position and its bookkeeping
type slot struct {
	pos      vmath.Vec2
	occupant ItemID
	reserved ItemID
}

// PositionRegistry tracks which item occupies each canonical drop position
// The canonical set is fixed at construction; only occupancy and reservations change
// Game-loop exclusive: no internal locking
type PositionRegistry struct {
	slots  []slot          // Registration order, used for tie-breaking
	index  map[gridKey]int // Grid key -> slots index
	itemAt map[ItemID]int  // Reverse index: item -> slots index it occupies
	resAt  map[ItemID]int  // Reverse index: item -> slots index it reserved
	log    *log.Logger

	statInvalid   *atomic.Int64
	statOverwrite *atomic.Int64
	statOccupied  *atomic.Int64
}

// NewPositionRegistry builds a registry over the given canonical positions
// Duplicates (same grid key) are logged and ignored
func NewPositionRegistry(positions []vmath.Vec2, logger *log.Logger, reg *status.Registry) *PositionRegistry {
	if logger == nil {
		logger = log.Default()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	pr := &PositionRegistry{
		slots:         make([]slot, 0, len(positions)),
		index:         make(map[gridKey]int, len(positions)),
		itemAt:        make(map[ItemID]int),
		resAt:         make(map[ItemID]int),
		log:           logger,
		statInvalid:   reg.Ints.Get("registry.invalid"),
		statOverwrite: reg.Ints.Get("registry.overwrite"),
		statOccupied:  reg.Ints.Get("registry.occupied"),
	}

	if len(positions) == 0 {
		logger.Printf("[config] position registry built with no drop positions")
	}

	for _, p := range positions {
		k := keyOf(p)
		if _, dup := pr.index[k]; dup {
			logger.Printf("[config] duplicate drop position %s ignored", p)
			continue
		}
		pr.index[k] = len(pr.slots)
		pr.slots = append(pr.slots, slot{pos: p})
	}
	return pr
}

// find resolves a point to a slot index: exact grid key first, then ε scan
func (pr *PositionRegistry) find(p vmath.Vec2) (int, bool) {
	if i, ok := pr.index[keyOf(p)]; ok {
		return i, true
	}
	for i := range pr.slots {
		if vmath.V2Near(pr.slots[i].pos, p, constant.PositionEpsilon) {
			return i, true
		}
	}
	return 0, false
}

// Canonical returns the canonical position within ε of p
func (pr *PositionRegistry) Canonical(p vmath.Vec2) (vmath.Vec2, bool) {
	i, ok := pr.find(p)
	if !ok {
		return vmath.Vec2{}, false
	}
	return pr.slots[i].pos, true
}

// Nearest returns the closest canonical position with distance <= threshold
// Ties resolve to the first in registration order
func (pr *PositionRegistry) Nearest(p vmath.Vec2, threshold float64) (vmath.Vec2, bool) {
	return pr.nearest(p, threshold, false)
}

// NearestFree is Nearest restricted to slots neither occupied nor reserved
func (pr *PositionRegistry) NearestFree(p vmath.Vec2, threshold float64) (vmath.Vec2, bool) {
	return pr.nearest(p, threshold, true)
}

func (pr *PositionRegistry) nearest(p vmath.Vec2, threshold float64, freeOnly bool) (vmath.Vec2, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := range pr.slots {
		s := &pr.slots[i]
		if freeOnly && (s.occupant != NoItem || s.reserved != NoItem) {
			continue
		}
		d := vmath.V2Dist(s.pos, p)
		if d <= threshold && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return vmath.Vec2{}, false
	}
	return pr.slots[best].pos, true
}

// Assign records item as the occupant of the canonical slot within ε of p
// Returns false and logs when p is not a canonical position
// The item's previous slot and any reservation it held are released
func (pr *PositionRegistry) Assign(p vmath.Vec2, item ItemID) bool {
	i, ok := pr.find(p)
	if !ok {
		pr.statInvalid.Add(1)
		pr.log.Printf("[registry] invalid placement of item %d at %s", item, p)
		return false
	}

	if prev, held := pr.itemAt[item]; held && prev != i {
		pr.slots[prev].occupant = NoItem
	}
	pr.cancelReservation(item)

	s := &pr.slots[i]
	if s.occupant != NoItem && s.occupant != item {
		pr.statOverwrite.Add(1)
		pr.log.Printf("[registry] slot %s overwritten: item %d replaces %d", s.pos, item, s.occupant)
		delete(pr.itemAt, s.occupant)
	}
	s.occupant = item
	pr.itemAt[item] = i
	pr.statOccupied.Store(int64(len(pr.itemAt)))
	return true
}

// Release clears the occupant of the canonical slot within ε of p
func (pr *PositionRegistry) Release(p vmath.Vec2) {
	i, ok := pr.find(p)
	if !ok {
		return
	}
	s := &pr.slots[i]
	if s.occupant != NoItem {
		delete(pr.itemAt, s.occupant)
		s.occupant = NoItem
		pr.statOccupied.Store(int64(len(pr.itemAt)))
	}
}

// ReleaseItem clears whichever slot item occupies
func (pr *PositionRegistry) ReleaseItem(item ItemID) {
	i, ok := pr.itemAt[item]
	if !ok {
		return
	}
	pr.slots[i].occupant = NoItem
	delete(pr.itemAt, item)
	pr.statOccupied.Store(int64(len(pr.itemAt)))
}

// OccupantAt returns the item occupying the slot within ε of p
// Reservations are not occupancy
func (pr *PositionRegistry) OccupantAt(p vmath.Vec2) (ItemID, bool) {
	i, ok := pr.find(p)
	if !ok {
		return NoItem, false
	}
	occ := pr.slots[i].occupant
	return occ, occ != NoItem
}

// IsOccupied reports whether the slot within ε of p has an occupant
func (pr *PositionRegistry) IsOccupied(p vmath.Vec2) bool {
	_, ok := pr.OccupantAt(p)
	return ok
}

// SlotOf returns the canonical position item occupies
func (pr *PositionRegistry) SlotOf(item ItemID) (vmath.Vec2, bool) {
	i, ok := pr.itemAt[item]
	if !ok {
		return vmath.Vec2{}, false
	}
	return pr.slots[i].pos, true
}

// Reserve marks the slot within ε of p as the destination of item's in-flight snap
// Fails when the slot is unknown or reserved by another item
func (pr *PositionRegistry) Reserve(p vmath.Vec2, item ItemID) bool {
	i, ok := pr.find(p)
	if !ok {
		return false
	}
	s := &pr.slots[i]
	if s.reserved != NoItem && s.reserved != item {
		return false
	}
	pr.cancelReservation(item)
	s.reserved = item
	pr.resAt[item] = i
	return true
}

// CancelReservation drops any reservation held by item
func (pr *PositionRegistry) CancelReservation(item ItemID) {
	pr.cancelReservation(item)
}

func (pr *PositionRegistry) cancelReservation(item ItemID) {
	if i, ok := pr.resAt[item]; ok {
		if pr.slots[i].reserved == item {
			pr.slots[i].reserved = NoItem
		}
		delete(pr.resAt, item)
	}
}

// ReservedBy returns the item holding a reservation on the slot within ε of p
func (pr *PositionRegistry) ReservedBy(p vmath.Vec2) (ItemID, bool) {
	i, ok := pr.find(p)
	if !ok {
		return NoItem, false
	}
	r := pr.slots[i].reserved
	return r, r != NoItem
}

// Occupied returns a snapshot of canonical position -> occupant
func (pr *PositionRegistry) Occupied() map[vmath.Vec2]ItemID {
	out := make(map[vmath.Vec2]ItemID, len(pr.itemAt))
	for i := range pr.slots {
		if pr.slots[i].occupant != NoItem {
			out[pr.slots[i].pos] = pr.slots[i].occupant
		}
	}
	return out
}

// Positions returns the canonical positions in registration order
func (pr *PositionRegistry) Positions() []vmath.Vec2 {
	out := make([]vmath.Vec2, len(pr.slots))
	for i := range pr.slots {
		out[i] = pr.slots[i].pos
	}
	return out
}

// Len returns the number of canonical positions
func (pr *PositionRegistry) Len() int {
	return len(pr.slots)
}

// Clear drops all occupancy and reservations
func (pr *PositionRegistry) Clear() {
	for i := range pr.slots {
		pr.slots[i].occupant = NoItem
		pr.slots[i].reserved = NoItem
	}
	clear(pr.itemAt)
	clear(pr.resAt)
	pr.statOccupied.Store(0)
}
