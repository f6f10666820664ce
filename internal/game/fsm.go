package game

// State is one behaviour of an owner of type T. Implementations are
// stateless values shared by every owner; all per-owner data lives on T.
type State[T any] interface {
	Name() string
	Enter(owner T)
	Execute(owner T)
	Exit(owner T)
	OnMessage(owner T, t Telegram) bool
}

// StateMachine drives an owner through its states. The global state runs
// every update before the current state.
type StateMachine[T any] struct {
	owner    T
	current  State[T]
	previous State[T]
	global   State[T]

	// onChange, if set, observes every transition.
	onChange func(from, to State[T])
}

// NewStateMachine creates a machine for owner. Initial states are set with
// SetCurrentState / SetGlobalState and are not entered.
func NewStateMachine[T any](owner T) *StateMachine[T] {
	return &StateMachine[T]{owner: owner}
}

func (m *StateMachine[T]) SetCurrentState(s State[T])  { m.current = s }
func (m *StateMachine[T]) SetPreviousState(s State[T]) { m.previous = s }
func (m *StateMachine[T]) SetGlobalState(s State[T])   { m.global = s }

func (m *StateMachine[T]) Current() State[T]  { return m.current }
func (m *StateMachine[T]) Previous() State[T] { return m.previous }
func (m *StateMachine[T]) Global() State[T]   { return m.global }

// OnChange installs a transition observer.
func (m *StateMachine[T]) OnChange(fn func(from, to State[T])) { m.onChange = fn }

// Update runs the global state then the current state.
func (m *StateMachine[T]) Update() {
	if m.global != nil {
		m.global.Execute(m.owner)
	}
	if m.current != nil {
		m.current.Execute(m.owner)
	}
}

// HandleMessage offers t to the current state, then the global state.
func (m *StateMachine[T]) HandleMessage(t Telegram) bool {
	if m.current != nil && m.current.OnMessage(m.owner, t) {
		return true
	}
	if m.global != nil && m.global.OnMessage(m.owner, t) {
		return true
	}
	return false
}

// ChangeState exits the current state and enters s immediately. Code that
// runs after ChangeState inside an Execute sees the new state.
func (m *StateMachine[T]) ChangeState(s State[T]) {
	if s == nil {
		return
	}
	from := m.current
	m.previous = m.current
	if m.current != nil {
		m.current.Exit(m.owner)
	}
	m.current = s
	if m.onChange != nil {
		m.onChange(from, s)
	}
	m.current.Enter(m.owner)
}

// RevertToPreviousState changes back to the state before the last change.
func (m *StateMachine[T]) RevertToPreviousState() {
	m.ChangeState(m.previous)
}

// IsInState reports whether the current state is s.
func (m *StateMachine[T]) IsInState(s State[T]) bool {
	return m.current == s
}

// CurrentName returns the current state's name, or "none".
func (m *StateMachine[T]) CurrentName() string {
	if m.current == nil {
		return "none"
	}
	return m.current.Name()
}
