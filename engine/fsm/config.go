package fsm

// RootConfig represents the top-level config document
type RootConfig struct {
	InitialState string                  `yaml:"initial"`
	States       map[string]*StateConfig `yaml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `yaml:"parent,omitempty"`
	OnEnter     []ActionConfig     `yaml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `yaml:"on_update,omitempty"`
	OnExit      []ActionConfig     `yaml:"on_exit,omitempty"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger   string         `yaml:"trigger"`              // Event name or "Tick"
	Target    string         `yaml:"target"`               // Target state name
	Guard     string         `yaml:"guard,omitempty"`      // Guard function name
	GuardArgs map[string]any `yaml:"guard_args,omitempty"` // Parameters for factory guards
	After     string         `yaml:"after,omitempty"`      // Minimum time in state, Go duration syntax
}

// ActionConfig represents an action definition
type ActionConfig struct {
	Action string `yaml:"action"`          // Action function name
	Event  string `yaml:"event,omitempty"` // For EmitEvent: event name
}
