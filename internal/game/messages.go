package game

import "github.com/Markof87/AI-SimpleSoccer/internal/geom"

// MessageType tags a telegram between players.
type MessageType uint8

const (
	MsgReceiveBall MessageType = iota
	MsgPassToMe
	MsgSupportAttacker
	MsgGoHome
	MsgWait
)

func (m MessageType) String() string {
	switch m {
	case MsgReceiveBall:
		return "receive_ball"
	case MsgPassToMe:
		return "pass_to_me"
	case MsgSupportAttacker:
		return "support_attacker"
	case MsgGoHome:
		return "go_home"
	case MsgWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Telegram is one message from a sender to a receiver. Target is set for
// MsgReceiveBall; Player carries the requester for MsgPassToMe.
type Telegram struct {
	Sender   int
	Receiver int
	Msg      MessageType
	Target   geom.Vec
	Player   *Player
}

// MessageHandler is anything that can be addressed by a telegram.
type MessageHandler interface {
	ID() int
	HandleMessage(t Telegram) bool
}

// Dispatcher delivers telegrams.
type Dispatcher interface {
	Dispatch(t Telegram)
}

// registry maps entity ids to handlers.
type registry map[int]MessageHandler

func (r registry) register(h MessageHandler) { r[h.ID()] = h }

// ImmediateDispatcher delivers a telegram synchronously: the receiver's
// handler has run to completion by the time Dispatch returns.
type ImmediateDispatcher struct {
	entities registry
	observe  func(t Telegram, handled bool)
}

// NewImmediateDispatcher creates a dispatcher over the given handlers.
func NewImmediateDispatcher(handlers ...MessageHandler) *ImmediateDispatcher {
	d := &ImmediateDispatcher{entities: registry{}}
	for _, h := range handlers {
		d.entities.register(h)
	}
	return d
}

// Register adds a handler.
func (d *ImmediateDispatcher) Register(h MessageHandler) { d.entities.register(h) }

// Observe installs a callback invoked after each delivery.
func (d *ImmediateDispatcher) Observe(fn func(t Telegram, handled bool)) { d.observe = fn }

// Dispatch delivers t now. Telegrams to unknown receivers are dropped.
func (d *ImmediateDispatcher) Dispatch(t Telegram) {
	h, ok := d.entities[t.Receiver]
	if !ok {
		return
	}
	handled := h.HandleMessage(t)
	if d.observe != nil {
		d.observe(t, handled)
	}
}

// DeferredDispatcher queues telegrams and delivers them in order on Flush.
// Telegrams sent by handlers during a flush wait for the next one.
type DeferredDispatcher struct {
	inner *ImmediateDispatcher
	queue []Telegram
}

// NewDeferredDispatcher wraps an immediate dispatcher with a queue.
func NewDeferredDispatcher(inner *ImmediateDispatcher) *DeferredDispatcher {
	return &DeferredDispatcher{inner: inner}
}

// Dispatch enqueues t.
func (d *DeferredDispatcher) Dispatch(t Telegram) { d.queue = append(d.queue, t) }

// Pending returns the number of queued telegrams.
func (d *DeferredDispatcher) Pending() int { return len(d.queue) }

// Flush delivers every telegram queued before the call.
func (d *DeferredDispatcher) Flush() {
	batch := d.queue
	d.queue = nil
	for _, t := range batch {
		d.inner.Dispatch(t)
	}
}

// flusher is implemented by dispatchers that buffer telegrams across a tick.
type flusher interface {
	Flush()
}
