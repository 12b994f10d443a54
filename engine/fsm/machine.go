package fsm

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:           make(map[StateID]*Node[T]),
		names:           make(map[string]StateID),
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]ActionFunc[T]),
		log:             log.New(io.Discard, "", 0),
	}
	m.RegisterGuardFactory("StateTimeExceeds", stateTimeExceedsFactory[T])
	return m
}

// SetLogger routes misuse diagnostics to l
func (m *Machine[T]) SetLogger(l *log.Logger) {
	if l != nil {
		m.log = l
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterGuardFactory adds a parameterized guard factory to the registry
func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running OnEnter from Root down to the leaf
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Started reports whether Init has run
func (m *Machine[T]) Started() bool {
	return m.activeStateID != StateNone
}

// Update advances the FSM by dt, handling tick transitions (Event == 0) and per-tick actions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	// OnUpdate runs for the whole active chain, outermost first
	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnUpdate)
	}

	// Evaluate tick transitions, bubbling up from the leaf
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == 0 && (trans.Guard == nil || trans.Guard(ctx)) {
				m.transition(ctx, trans.TargetID)
				return
			}
		}
		currID = node.ParentID
	}
}

// HandleEvent routes an event through the active chain, leaf first
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == 0 {
		return false
	}

	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == eventType && (trans.Guard == nil || trans.Guard(ctx)) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// Transition forces a change to the named state, used for externally driven jumps
func (m *Machine[T]) Transition(ctx T, name string) bool {
	id, ok := m.names[name]
	if !ok {
		m.log.Printf("[fsm] transition to unknown state %q ignored", name)
		return false
	}
	if m.activeStateID == StateNone {
		m.log.Printf("[fsm] transition to %q before Init ignored", name)
		return false
	}
	m.transition(ctx, id)
	return true
}

// transition performs the LCA-based exit/enter sequence
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		m.log.Printf("[fsm] transition to unknown state ID %d ignored", targetID)
		return
	}

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	fromName := m.nodes[m.activeStateID].Name

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	// State is committed before OnEnter so enter actions observe the new leaf
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
		if m.activeStateID != targetID {
			// An enter action transitioned away
			return
		}
	}

	if m.OnTransition != nil {
		m.OnTransition(fromName, targetNode.Name)
	}
}

// Reset exits the active chain and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// ActiveStateID returns the current leaf
func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveName returns the current leaf name, empty before Init
func (m *Machine[T]) ActiveName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// IsIn reports whether the named state is on the active chain
func (m *Machine[T]) IsIn(name string) bool {
	id, ok := m.names[name]
	if !ok {
		return false
	}
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TopLevel returns the name of the active child of Root
func (m *Machine[T]) TopLevel() string {
	if len(m.activePath) < 2 {
		return ""
	}
	return m.nodes[m.activePath[1]].Name
}

// TimeInState returns time spent in the current leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	id, ok := m.names[name]
	return id, ok
}

// stateTimeExceedsFactory builds a guard passing once the leaf has been active for args["ms"]
func stateTimeExceedsFactory[T any](m *Machine[T], args map[string]any) (GuardFunc[T], error) {
	d, err := durationArg(args)
	if err != nil {
		return nil, err
	}
	return func(ctx T) bool {
		return m.timeInState >= d
	}, nil
}

func durationArg(args map[string]any) (time.Duration, error) {
	switch v := args["ms"].(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	case nil:
		return 0, fmt.Errorf("missing 'ms' argument")
	default:
		return 0, fmt.Errorf("invalid 'ms' argument %v", v)
	}
}
