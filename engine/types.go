package engine

// ItemID identifies a placeable item; zero is never assigned
type ItemID int

// NoItem is the zero ItemID
const NoItem ItemID = 0

// PlacementPolicy selects how a dropped item resolves an occupied target
type PlacementPolicy int

const (
	// PolicyEvict snaps to the nearest slot and evicts an unlocked occupant
	PolicyEvict PlacementPolicy = iota
	// PolicyFreeOnly snaps to the nearest unoccupied, unreserved slot
	PolicyFreeOnly
)

func (p PlacementPolicy) String() string {
	switch p {
	case PolicyEvict:
		return "evict"
	case PolicyFreeOnly:
		return "free-only"
	default:
		return "unknown"
	}
}

// ParsePlacementPolicy maps a config string to a policy, ok=false when unknown
func ParsePlacementPolicy(s string) (PlacementPolicy, bool) {
	switch s {
	case "evict", "":
		return PolicyEvict, true
	case "free-only", "free":
		return PolicyFreeOnly, true
	}
	return PolicyEvict, false
}
