package event

var typeToName = map[EventType]string{
	EventItemPicked:        "ItemPicked",
	EventItemPlaced:        "ItemPlaced",
	EventItemEvicted:       "ItemEvicted",
	EventItemRejected:      "ItemRejected",
	EventItemRevealed:      "ItemRevealed",
	EventGateFired:         "GateFired",
	EventGateRetracted:     "GateRetracted",
	EventConfirmPulled:     "ConfirmPulled",
	EventAttemptPassed:     "AttemptPassed",
	EventAttemptFailed:     "AttemptFailed",
	EventSceneEntered:      "SceneEntered",
	EventSceneAdvanced:     "SceneAdvanced",
	EventCurtainClosing:    "CurtainClosing",
	EventCurtainOpening:    "CurtainOpening",
	EventPageSwitched:      "PageSwitched",
	EventGameEnded:         "GameEnded",
	EventCharacterRevealed: "CharacterRevealed",
	EventTextRevealed:      "TextRevealed",
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if et == 0 {
		return "Tick"
	}
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

// GetEventType resolves a name back to its EventType
func GetEventType(name string) (EventType, bool) {
	if name == "Tick" {
		return 0, true
	}
	for et, n := range typeToName {
		if n == name {
			return et, true
		}
	}
	return 0, false
}

func (et EventType) String() string {
	return GetEventName(et)
}
