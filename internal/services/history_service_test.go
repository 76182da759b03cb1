package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
)

func TestHistory_Append_AutoCreatesUser(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	msg, err := svc.Append("5511999999999", domain.SenderUser, "oi")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if msg.Sender != domain.SenderUser || msg.Text != "oi" || msg.Timestamp.IsZero() {
		t.Fatalf("appended message malformed: %+v", msg)
	}

	u, ok := st.Users()["5511999999999"]
	if !ok {
		t.Fatal("append must auto-create the user record")
	}
	if u.Name != DefaultUserName || u.Paused || !u.AcceptsMessages {
		t.Fatalf("auto-created user has wrong defaults: %+v", u)
	}
	if len(u.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(u.History))
	}
}

func TestHistory_Append_Validation(t *testing.T) {
	svc := NewHistoryService(newTestStore(t))

	cases := []struct {
		name    string
		sender  string
		text    string
		wantErr error
	}{
		{"missing sender", "", "oi", ErrMissingMessageFields},
		{"missing text", domain.SenderBot, "", ErrMissingMessageFields},
		{"unknown sender", "system", "oi", ErrInvalidSender},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Append("111", tc.sender, tc.text); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestHistory_Append_TrimsOldestFirst(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	cfg := st.Config()
	cfg.History.MessageLimit = 5
	if err := st.SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	for i := 1; i <= 6; i++ {
		if _, err := svc.Append("111", domain.SenderUser, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	hist := st.Users()["111"].History
	if len(hist) != 5 {
		t.Fatalf("history length = %d, want 5", len(hist))
	}
	for i, m := range hist {
		want := fmt.Sprintf("msg-%d", i+2) // msg-1 trimmed, order preserved
		if m.Text != want {
			t.Fatalf("survivor %d = %q, want %q", i, m.Text, want)
		}
	}
}

func TestHistory_LimitChangeAppliesOnNextAppend(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	// Default limit (15): ten appends all survive.
	for i := 0; i < 10; i++ {
		if _, err := svc.Append("111", domain.SenderBot, fmt.Sprintf("m%d", i)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if got := len(st.Users()["111"].History); got != 10 {
		t.Fatalf("history length = %d, want 10", got)
	}

	// Tighten the limit; the existing history is untouched until the next
	// append, which trims it down.
	cfg := st.Config()
	cfg.History.MessageLimit = 5
	if err := st.SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if got := len(st.Users()["111"].History); got != 10 {
		t.Fatalf("config change must not rewrite stored history, length = %d", got)
	}

	if _, err := svc.Append("111", domain.SenderBot, "latest"); err != nil {
		t.Fatalf("append: %v", err)
	}
	hist := st.Users()["111"].History
	if len(hist) != 5 {
		t.Fatalf("history length after tightened append = %d, want 5", len(hist))
	}
	if hist[len(hist)-1].Text != "latest" {
		t.Fatalf("newest message missing, tail = %q", hist[len(hist)-1].Text)
	}
}

func TestHistory_Clear(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	if _, err := svc.Append("111", domain.SenderUser, "oi"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := svc.Clear("111"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := len(st.Users()["111"].History); got != 0 {
		t.Fatalf("history not cleared, %d entries left", got)
	}

	if err := svc.Clear("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestHistory_Read(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	// Unknown number: empty shape, no error.
	snap := svc.Read("ghost")
	if snap.Number != "ghost" || snap.TotalMessages != 0 || len(snap.History) != 0 {
		t.Fatalf("unknown snapshot = %+v", snap)
	}
	if snap.LastContact != nil {
		t.Fatal("unknown snapshot must not carry lastContact")
	}

	if _, err := svc.Append("111", domain.SenderUser, "oi"); err != nil {
		t.Fatalf("append: %v", err)
	}
	snap = svc.Read("111")
	if snap.TotalMessages != 1 || len(snap.History) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.LastContact == nil || snap.LastContact.IsZero() {
		t.Fatal("known snapshot must carry lastContact")
	}
}

func TestHistory_Read_NilHistoryNormalized(t *testing.T) {
	st := newTestStore(t)
	svc := NewHistoryService(st)

	// Hand-edited data files can carry "historico": null for a known user.
	users := st.Users()
	u := domain.NewUser("222", "Maria", time.Now().UTC())
	u.History = nil
	users["222"] = u
	if err := st.SaveUsers(users); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap := svc.Read("222")
	if snap.History == nil {
		t.Fatal("snapshot history must be an empty slice, not nil")
	}
	if snap.TotalMessages != 0 || len(snap.History) != 0 {
		t.Fatalf("snapshot = %+v", snap)
	}
}
