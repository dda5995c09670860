package state

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSessionStateAddTurn(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	st := NewSessionState("s-1", now)

	if err := st.AddUserTurn("Kulaklık öner", now); err != nil {
		t.Fatalf("AddUserTurn() error = %v", err)
	}
	if err := st.AddAssistantTurn("Sony WH-1000XM5 önerebilirim.", now.Add(time.Second)); err != nil {
		t.Fatalf("AddAssistantTurn() error = %v", err)
	}

	if len(st.Turns) != 2 {
		t.Fatalf("len(Turns) = %d, want 2", len(st.Turns))
	}
	if st.Turns[0].Role != RoleUser || st.Turns[1].Role != RoleAssistant {
		t.Fatalf("turn roles = %q, %q", st.Turns[0].Role, st.Turns[1].Role)
	}
	if !st.UpdatedAt.Equal(now.Add(time.Second)) {
		t.Fatalf("UpdatedAt = %v, want touch on append", st.UpdatedAt)
	}
}

func TestSessionStateRejectsBadTurns(t *testing.T) {
	t.Parallel()

	st := NewSessionState("s-1", time.Now())
	if err := st.AddTurn("system", "hi", time.Now()); !errors.Is(err, ErrInvalidTurn) {
		t.Fatalf("AddTurn(system) error = %v, want ErrInvalidTurn", err)
	}
	if err := st.AddTurn(RoleUser, "   ", time.Now()); !errors.Is(err, ErrInvalidTurn) {
		t.Fatalf("AddTurn(blank) error = %v, want ErrInvalidTurn", err)
	}
}

func TestSessionStateTrimsHistory(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := NewSessionState("s-1", now)
	for i := 0; i < maxTurns+5; i++ {
		if err := st.AddUserTurn(fmt.Sprintf("mesaj %d", i), now); err != nil {
			t.Fatalf("AddUserTurn(%d) error = %v", i, err)
		}
	}

	if len(st.Turns) != maxTurns {
		t.Fatalf("len(Turns) = %d, want %d", len(st.Turns), maxTurns)
	}
	if got := st.Turns[0].Text; got != "mesaj 5" {
		t.Fatalf("oldest kept turn = %q, want %q", got, "mesaj 5")
	}
}

func TestSessionStateRender(t *testing.T) {
	t.Parallel()

	now := time.Now()
	st := NewSessionState("s-1", now)
	if st.Render() != "" {
		t.Fatalf("Render() on empty session = %q, want empty", st.Render())
	}

	_ = st.AddUserTurn("ord-001 nerede?", now)
	_ = st.AddAssistantTurn("Siparişiniz kargoda.", now)

	got := st.Render()
	want := "User: ord-001 nerede?\nAssistant: Siparişiniz kargoda."
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("Render() should separate turns with single newlines: %q", got)
	}
}

func TestSessionStateValidate(t *testing.T) {
	t.Parallel()

	st := NewSessionState("", time.Now())
	if err := st.Validate(); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Validate() error = %v, want ErrInvalidSession", err)
	}

	st = NewSessionState("s-1", time.Now())
	st.Turns = []Turn{{Role: "bot", Text: "x"}}
	if err := st.Validate(); !errors.Is(err, ErrInvalidTurn) {
		t.Fatalf("Validate() error = %v, want ErrInvalidTurn", err)
	}
}
