package game

import (
	"strings"
	"testing"
)

type trace struct{ calls []string }

func (tr *trace) add(s string) { tr.calls = append(tr.calls, s) }

// recState records every hook it runs on the owner.
type recState struct {
	name   string
	handle bool
}

func (s *recState) Name() string      { return s.name }
func (s *recState) Enter(tr *trace)   { tr.add(s.name + ".enter") }
func (s *recState) Execute(tr *trace) { tr.add(s.name + ".exec") }
func (s *recState) Exit(tr *trace)    { tr.add(s.name + ".exit") }
func (s *recState) OnMessage(tr *trace, _ Telegram) bool {
	tr.add(s.name + ".msg")
	return s.handle
}

func TestStateMachine_UpdateRunsGlobalFirst(t *testing.T) {
	tr := &trace{}
	m := NewStateMachine(tr)
	m.SetGlobalState(&recState{name: "g"})
	m.SetCurrentState(&recState{name: "a"})

	m.Update()
	if got := strings.Join(tr.calls, ","); got != "g.exec,a.exec" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestStateMachine_ChangeStateOrder(t *testing.T) {
	tr := &trace{}
	a, b := &recState{name: "a"}, &recState{name: "b"}
	m := NewStateMachine(tr)
	m.SetCurrentState(a)

	var seen []string
	m.OnChange(func(from, to State[*trace]) { seen = append(seen, from.Name()+">"+to.Name()) })

	m.ChangeState(b)
	if got := strings.Join(tr.calls, ","); got != "a.exit,b.enter" {
		t.Fatalf("unexpected hooks %s", got)
	}
	if m.Previous() != a || !m.IsInState(b) {
		t.Fatal("previous/current not updated")
	}
	if len(seen) != 1 || seen[0] != "a>b" {
		t.Fatalf("observer saw %v", seen)
	}

	m.RevertToPreviousState()
	if !m.IsInState(a) || m.Previous() != b {
		t.Fatalf("revert should swap back, current=%s", m.CurrentName())
	}

	m.ChangeState(nil)
	if !m.IsInState(a) {
		t.Fatal("changing to nil must be ignored")
	}
}

func TestStateMachine_MessageFallsBackToGlobal(t *testing.T) {
	tr := &trace{}
	m := NewStateMachine(tr)
	m.SetGlobalState(&recState{name: "g", handle: true})
	m.SetCurrentState(&recState{name: "a"})

	if !m.HandleMessage(Telegram{Msg: MsgWait}) {
		t.Fatal("global state should handle what the current state declines")
	}
	if got := strings.Join(tr.calls, ","); got != "a.msg,g.msg" {
		t.Fatalf("unexpected order %s", got)
	}

	empty := NewStateMachine(&trace{})
	if empty.HandleMessage(Telegram{}) || empty.CurrentName() != "none" {
		t.Fatal("a machine with no states handles nothing")
	}
}
