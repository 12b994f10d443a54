package fsm

import (
	"log"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the generic Hierarchical Finite State Machine runtime
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes map[StateID]*Node[T]
	names map[string]StateID

	// Configuration
	InitialStateID StateID

	// Runtime State
	activeStateID StateID       // The current leaf node
	timeInState   time.Duration // Time elapsed in current leaf
	activePath    []StateID     // Stack of active states (Root -> Child -> Leaf)

	// Dependency Injection
	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]

	// OnTransition is called after every leaf change with the leaf names
	OnTransition func(from, to string)

	log *log.Logger
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for LCA lookup
	Path []StateID

	// Lifecycle Actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // 0 = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any // Pre-compiled payload
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// GuardFactoryFunc creates a parameterized guard from config args
type GuardFactoryFunc[T any] func(m *Machine[T], args map[string]any) (GuardFunc[T], error)

// EmitEventArgs is the compiled argument of the EmitEvent action
type EmitEventArgs struct {
	Type event.EventType
}
