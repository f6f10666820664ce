package game

import "testing"

// stubHandler records the telegrams it receives.
type stubHandler struct {
	id   int
	got  []Telegram
	send func(t Telegram)
}

func (h *stubHandler) ID() int { return h.id }

func (h *stubHandler) HandleMessage(t Telegram) bool {
	h.got = append(h.got, t)
	if h.send != nil {
		h.send(t)
	}
	return t.Msg != MsgWait
}

func TestImmediateDispatcher_DeliversAndObserves(t *testing.T) {
	h := &stubHandler{id: 3}
	d := NewImmediateDispatcher(h)

	var observed []bool
	d.Observe(func(_ Telegram, handled bool) { observed = append(observed, handled) })

	d.Dispatch(Telegram{Sender: 1, Receiver: 3, Msg: MsgGoHome})
	d.Dispatch(Telegram{Sender: 1, Receiver: 3, Msg: MsgWait})
	d.Dispatch(Telegram{Sender: 1, Receiver: 99, Msg: MsgGoHome})

	if len(h.got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(h.got))
	}
	if len(observed) != 2 || !observed[0] || observed[1] {
		t.Fatalf("unexpected observations %v", observed)
	}
}

func TestDeferredDispatcher_FlushKeepsOrder(t *testing.T) {
	h := &stubHandler{id: 2}
	inner := NewImmediateDispatcher(h)
	d := NewDeferredDispatcher(inner)

	d.Dispatch(Telegram{Receiver: 2, Msg: MsgSupportAttacker})
	d.Dispatch(Telegram{Receiver: 2, Msg: MsgReceiveBall})
	if len(h.got) != 0 || d.Pending() != 2 {
		t.Fatal("deferred telegrams must wait for a flush")
	}

	d.Flush()
	if len(h.got) != 2 || h.got[0].Msg != MsgSupportAttacker || h.got[1].Msg != MsgReceiveBall {
		t.Fatalf("unexpected delivery order %+v", h.got)
	}
}

func TestDeferredDispatcher_RepliesWaitForNextFlush(t *testing.T) {
	h := &stubHandler{id: 2}
	d := NewDeferredDispatcher(NewImmediateDispatcher(h))
	h.send = func(t Telegram) {
		if t.Msg == MsgPassToMe {
			d.Dispatch(Telegram{Receiver: 2, Msg: MsgReceiveBall})
		}
	}

	d.Dispatch(Telegram{Receiver: 2, Msg: MsgPassToMe})
	d.Flush()
	if len(h.got) != 1 || d.Pending() != 1 {
		t.Fatalf("reply should be queued, got %d deliveries and %d pending", len(h.got), d.Pending())
	}
	d.Flush()
	if len(h.got) != 2 || h.got[1].Msg != MsgReceiveBall {
		t.Fatalf("reply not delivered on the next flush: %+v", h.got)
	}
}

func TestMessageType_String(t *testing.T) {
	if MsgPassToMe.String() != "pass_to_me" || MessageType(42).String() != "unknown" {
		t.Fatal("unexpected message names")
	}
}
