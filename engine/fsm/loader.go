package fsm

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/once-upon-a-lever/event"
)

// LoadConfigAuto loads the graph from customPath when set, otherwise from the embedded document
func LoadConfigAuto[T any](m *Machine[T], customPath string, embedded []byte) error {
	if customPath == "" {
		return m.LoadConfig(embedded)
	}
	data, err := os.ReadFile(customPath)
	if err != nil {
		return fmt.Errorf("failed to read FSM config %s: %w", customPath, err)
	}
	if err := m.LoadConfig(data); err != nil {
		return fmt.Errorf("failed to load FSM config from %s: %w", customPath, err)
	}
	return nil
}

// LoadConfig parses a YAML document and populates the Machine
// Validates all references (states, guards, actions, events)
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	if config.States == nil {
		config.States = make(map[string]*StateConfig)
	}

	m.nodes = make(map[StateID]*Node[T])
	m.names = make(map[string]StateID)
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	// First pass: Root plus deterministic IDs for the rest
	m.AddState(StateRoot, "Root", StateNone)
	nameToID := map[string]StateID{"Root": StateRoot}
	if _, ok := config.States["Root"]; !ok {
		config.States["Root"] = &StateConfig{}
	}

	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	nextID := StateRoot + 1
	for _, name := range stateNames {
		nameToID[name] = nextID
		nextID++
	}

	// Second pass: nodes and parents
	for _, name := range stateNames {
		cfg := config.States[name]
		if cfg == nil {
			cfg = &StateConfig{}
			config.States[name] = cfg
		}
		pName := cfg.Parent
		if pName == "" {
			pName = "Root"
		}
		parentID, ok := nameToID[pName]
		if !ok {
			return fmt.Errorf("state '%s' references unknown parent '%s'", name, pName)
		}
		m.AddState(nameToID[name], name, parentID)
	}

	// Third pass: actions and transitions
	for name, cfg := range config.States {
		node := m.nodes[nameToID[name]]

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' OnEnter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state '%s' OnUpdate: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' OnExit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok {
		return fmt.Errorf("initial state '%s' not found", config.InitialState)
	}
	m.InitialStateID = initialID
	return nil
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action function '%s'", cfg.Action)
		}

		var args any
		if cfg.Action == "EmitEvent" {
			if cfg.Event == "" {
				return nil, fmt.Errorf("EmitEvent action requires 'event' field")
			}
			et, ok := event.GetEventType(cfg.Event)
			if !ok {
				return nil, fmt.Errorf("unknown event type '%s'", cfg.Event)
			}
			args = &EmitEventArgs{Type: et}
		}

		actions = append(actions, Action[T]{Func: fn, Args: args})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok {
			return fmt.Errorf("transition references unknown target '%s'", cfg.Target)
		}

		var eventType event.EventType // 0 = Tick
		if cfg.Trigger != "Tick" && cfg.Trigger != "" {
			et, ok := event.GetEventType(cfg.Trigger)
			if !ok {
				return fmt.Errorf("unknown event type '%s'", cfg.Trigger)
			}
			eventType = et
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			if factory, ok := m.guardFactoryReg[cfg.Guard]; ok {
				g, err := factory(m, cfg.GuardArgs)
				if err != nil {
					return fmt.Errorf("guard '%s': %w", cfg.Guard, err)
				}
				guard = g
			} else if g, ok := m.guardReg[cfg.Guard]; ok {
				guard = g
			} else {
				return fmt.Errorf("unknown guard '%s'", cfg.Guard)
			}
		}

		if cfg.After != "" {
			d, err := time.ParseDuration(cfg.After)
			if err != nil {
				return fmt.Errorf("transition to '%s': invalid after %q: %w", cfg.Target, cfg.After, err)
			}
			guard = m.afterGuard(d, guard)
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    eventType,
			Guard:    guard,
		})
	}
	return nil
}

// afterGuard gates inner behind a minimum time in the current leaf
func (m *Machine[T]) afterGuard(d time.Duration, inner GuardFunc[T]) GuardFunc[T] {
	return func(ctx T) bool {
		if m.timeInState < d {
			return false
		}
		return inner == nil || inner(ctx)
	}
}
