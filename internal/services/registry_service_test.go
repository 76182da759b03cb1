package services

import (
	"errors"
	"testing"
	"time"
)

func TestRegistry_GetOrCreate_NewUser(t *testing.T) {
	svc := NewRegistryService(newTestStore(t))

	u, created, err := svc.GetOrCreate("5511999999999", "")
	if err != nil {
		t.Fatalf("getOrCreate: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for unknown number")
	}
	if u.Name != DefaultUserName {
		t.Fatalf("default name = %q, want %q", u.Name, DefaultUserName)
	}
	if u.Paused || !u.AcceptsMessages {
		t.Fatalf("flag defaults wrong: %+v", u)
	}
	if len(u.History) != 0 {
		t.Fatalf("new user history should be empty, got %d entries", len(u.History))
	}
}

func TestRegistry_GetOrCreate_ExistingRefreshesLastContact(t *testing.T) {
	svc := NewRegistryService(newTestStore(t))

	first, created, err := svc.GetOrCreate("5511999999999", "Maria")
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}

	time.Sleep(5 * time.Millisecond)

	second, created, err := svc.GetOrCreate("5511999999999", "ignored")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created {
		t.Fatal("expected created=false on lookup")
	}
	if second.Name != "Maria" {
		t.Fatalf("lookup must not rename, got %q", second.Name)
	}
	if !second.LastContact.After(first.LastContact) {
		t.Fatalf("lastContact not refreshed: %v -> %v", first.LastContact, second.LastContact)
	}
	if !second.FirstContact.Equal(first.FirstContact) {
		t.Fatalf("firstContact must be stable: %v -> %v", first.FirstContact, second.FirstContact)
	}
}

func TestRegistry_CanRespond(t *testing.T) {
	st := newTestStore(t)
	svc := NewRegistryService(st)

	if _, _, err := svc.GetOrCreate("111", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}

	pause := func(v bool) *bool { return &v }

	cases := []struct {
		name     string
		number   string
		patch    *UserPatch
		wantOK   bool
		wantWhy  string
		wantUser bool
	}{
		{"unknown number", "999", nil, true, ReasonNewUser, false},
		{"active user", "111", &UserPatch{}, true, ReasonActive, true},
		{"paused user", "111", &UserPatch{Paused: pause(true)}, false, ReasonPaused, true},
		// Paused takes precedence even when the opt-out also applies.
		{"paused and opted out", "111", &UserPatch{Paused: pause(true), AcceptsMessages: pause(false)}, false, ReasonPaused, true},
		{"opted out only", "111", &UserPatch{Paused: pause(false), AcceptsMessages: pause(false)}, false, ReasonOptedOut, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.patch != nil {
				if _, err := svc.Update("111", *tc.patch); err != nil {
					t.Fatalf("patch: %v", err)
				}
			}
			v := svc.CanRespond(tc.number)
			if v.CanRespond != tc.wantOK || v.Reason != tc.wantWhy {
				t.Fatalf("verdict = %+v, want ok=%v reason=%q", v, tc.wantOK, tc.wantWhy)
			}
			if (v.User != nil) != tc.wantUser {
				t.Fatalf("user summary presence = %v, want %v", v.User != nil, tc.wantUser)
			}
		})
	}
}

func TestRegistry_Update_PartialPatchKeepsOtherFields(t *testing.T) {
	svc := NewRegistryService(newTestStore(t))
	if _, _, err := svc.GetOrCreate("111", "Maria"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	paused := true
	u, err := svc.Update("111", UserPatch{Paused: &paused})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !u.Paused {
		t.Fatal("paused not applied")
	}
	if !u.AcceptsMessages {
		t.Fatal("acceptsMessages must be unchanged by a paused-only patch")
	}
	if u.Name != "Maria" {
		t.Fatalf("name must be unchanged, got %q", u.Name)
	}
}

func TestRegistry_Update_NotFound(t *testing.T) {
	svc := NewRegistryService(newTestStore(t))
	name := "X"
	if _, err := svc.Update("404", UserPatch{Name: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRegistry_IsPaused_LegacyProbe(t *testing.T) {
	svc := NewRegistryService(newTestStore(t))

	if svc.IsPaused("ghost") {
		t.Fatal("unknown number must not be paused")
	}

	if _, _, err := svc.GetOrCreate("111", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}
	paused := true
	if _, err := svc.Update("111", UserPatch{Paused: &paused}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !svc.IsPaused("111") {
		t.Fatal("paused user must report paused")
	}
}

func TestRegistry_DeleteAndClearAll(t *testing.T) {
	svc := NewRegistryService(newTestStore(t))
	for _, n := range []string{"111", "222"} {
		if _, _, err := svc.GetOrCreate(n, ""); err != nil {
			t.Fatalf("seed %s: %v", n, err)
		}
	}

	u, err := svc.Delete("111")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if u.Number != "111" {
		t.Fatalf("delete returned %+v", u)
	}
	if _, err := svc.Delete("111"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("double delete should be ErrUserNotFound, got %v", err)
	}

	if err := svc.ClearAll(); err != nil {
		t.Fatalf("clearAll: %v", err)
	}
	if got := len(svc.List()); got != 0 {
		t.Fatalf("registry not empty after clearAll: %d entries", got)
	}
}
