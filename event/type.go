package event

// EventType represents the type of game event
// Zero is reserved: the FSM uses it for tick (automatic) transitions
type EventType int

const (
	// === Placement Event ===

	// EventItemPicked signals an item left its slot under the pointer
	// Trigger: Item.PointerDown | Payload: ItemPayload
	EventItemPicked EventType = iota + 1

	// EventItemPlaced signals a snap arrived and the registry now holds the item
	// Trigger: Item snap arrival | Payload: ItemPayload
	EventItemPlaced

	// EventItemEvicted signals an unlocked occupant was pushed back to rest
	// Trigger: Item.PointerUp onto an occupied slot | Payload: ItemPayload
	EventItemEvicted

	// EventItemRejected signals a drop that resolved to a snap back to rest
	// Trigger: Item.PointerUp | Payload: ItemPayload
	EventItemRejected

	// EventItemRevealed signals a newly available item became visible
	// Trigger: SceneController reveal step | Payload: ItemPayload
	EventItemRevealed

	// === Gate Event ===

	// EventGateFired signals a gate activated its held item (or fired empty)
	// Consumer: AudioSystem | Payload: GatePayload
	EventGateFired

	// EventGateRetracted signals a second pull reversed a gate activation
	// Consumer: AudioSystem | Payload: GatePayload
	EventGateRetracted

	// === Scene Event ===

	// EventConfirmPulled signals the confirm trigger crossed its threshold
	// Trigger: Trigger gesture | Payload: nil
	EventConfirmPulled

	// EventAttemptPassed signals the placed set matched the scene's required set
	// Consumer: FSM (Interaction.Ready -> Transition), ProgressRecorder | Payload: AttemptPayload
	EventAttemptPassed

	// EventAttemptFailed signals a mismatch, scene is replayed behind curtains
	// Consumer: FSM (Interaction.Ready -> Fake), ProgressRecorder | Payload: AttemptPayload
	EventAttemptFailed

	// EventSceneEntered signals the interaction window of a scene opened
	// Payload: ScenePayload
	EventSceneEntered

	// EventSceneAdvanced signals the scene index moved forward
	// Consumer: ProgressRecorder | Payload: ScenePayload
	EventSceneAdvanced

	// EventCurtainClosing signals curtains started closing
	// Consumer: AudioSystem | Payload: nil
	EventCurtainClosing

	// EventCurtainOpening signals curtains started opening
	// Consumer: AudioSystem | Payload: nil
	EventCurtainOpening

	// EventPageSwitched signals the palette page changed
	// Payload: PagePayload
	EventPageSwitched

	// EventGameEnded signals the last scene was completed
	// Consumer: ProgressRecorder, AudioSystem | Payload: ScenePayload
	EventGameEnded

	// === Narrative Event ===

	// EventCharacterRevealed signals the typewriter showed one more character
	// Consumer: AudioSystem (tick) | Payload: nil
	EventCharacterRevealed

	// EventTextRevealed signals the typewriter finished the current text
	// Payload: nil
	EventTextRevealed
)

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
