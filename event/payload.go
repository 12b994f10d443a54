package event

// ItemPayload identifies an item and the slot involved
type ItemPayload struct {
	Item int
	Name string
	X, Y float64
}

// GatePayload identifies a gate and the item it acted on
type GatePayload struct {
	Gate    int
	Item    int    // -1 when the gate fired empty
	Name    string // empty when the gate fired empty
	Pulls   int    // pull count in the current attempt
	Locked  bool
	Applied bool // false for an empty fire
}

// AttemptPayload describes one confirm evaluation
type AttemptPayload struct {
	Scene    int
	Placed   []string
	Required []string
	Pulls    int
}

// ScenePayload carries a scene index
type ScenePayload struct {
	Scene int
}

// PagePayload carries the old and new page indices
type PagePayload struct {
	From, To int
}
