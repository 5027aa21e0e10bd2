package gallery

import (
	"reflect"
	"testing"
)

func item(id string) Item {
	return Item{ID: id, URL: "https://placehold.co/400x300", Width: 400, Height: 300}
}

func itemIDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// loadedState returns a state that has one merged page behind it.
func loadedState(t *testing.T) State {
	t.Helper()
	s := NewState(2)
	s = Reduce(s, SetToken{Token: "tok"})
	s = Reduce(s, FetchRequested{})
	if s.Phase != PhaseLoading {
		t.Fatalf("expected Loading, got %v", s.Phase)
	}
	s = Reduce(s, FetchSucceeded{
		Generation: s.Generation,
		Items:      []Item{item("a"), item("b")},
		NextCursor: "b",
	})
	if s.Phase != PhaseLoaded {
		t.Fatalf("expected Loaded, got %v", s.Phase)
	}
	return s
}

func TestReduce_InitialFetchCycle(t *testing.T) {
	s := loadedState(t)

	if got := itemIDs(s.Items); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("unexpected items: %v", got)
	}
	if s.Cursor != "b" {
		t.Errorf("expected cursor b, got %q", s.Cursor)
	}
	if !s.HasMore {
		t.Error("expected HasMore after non-null cursor")
	}
}

func TestReduce_FetchWithoutTokenIsDropped(t *testing.T) {
	s := NewState(2)

	s = Reduce(s, FetchRequested{})

	if s.Phase != PhaseIdle {
		t.Errorf("expected Idle, got %v", s.Phase)
	}
	if s.PendingFetch {
		t.Error("request without a token must not be queued")
	}
}

func TestReduce_FetchWhileLoadingParksOneSlot(t *testing.T) {
	s := NewState(2)
	s = Reduce(s, SetToken{Token: "tok"})
	s = Reduce(s, FetchRequested{})

	// Repeated triggers while in flight never start a second request
	// and occupy at most one queue slot.
	for i := 0; i < 3; i++ {
		s = Reduce(s, FetchRequested{})
		if s.Phase != PhaseLoading {
			t.Fatalf("trigger %d changed phase to %v", i, s.Phase)
		}
	}
	if !s.PendingFetch {
		t.Error("expected one parked fetch")
	}

	s = Reduce(s, FetchSucceeded{Generation: s.Generation, Items: []Item{item("a")}, NextCursor: "a"})
	if s.Phase != PhaseLoaded || !s.PendingFetch {
		t.Fatalf("expected Loaded with parked fetch, got %v pending=%v", s.Phase, s.PendingFetch)
	}

	// The parked slot is consumed by the next request.
	s = Reduce(s, FetchRequested{})
	if s.Phase != PhaseLoading || s.PendingFetch {
		t.Errorf("expected Loading with empty queue, got %v pending=%v", s.Phase, s.PendingFetch)
	}
}

func TestReduce_ExhaustedListingStopsFetching(t *testing.T) {
	s := NewState(2)
	s = Reduce(s, SetToken{Token: "tok"})
	s = Reduce(s, FetchRequested{})
	s = Reduce(s, FetchSucceeded{Generation: s.Generation, Items: []Item{item("a")}})

	if s.HasMore {
		t.Fatal("null next_cursor must clear HasMore")
	}

	s = Reduce(s, FetchRequested{})
	if s.Phase != PhaseLoaded || s.PendingFetch {
		t.Errorf("fetch past the end must be a no-op, got %v pending=%v", s.Phase, s.PendingFetch)
	}
}

func TestReduce_MergeUpdatesInPlaceAndAppends(t *testing.T) {
	s := loadedState(t)

	s = Reduce(s, FetchRequested{})
	refetched := item("a")
	refetched.Width = 999
	s = Reduce(s, FetchSucceeded{
		Generation: s.Generation,
		Items:      []Item{refetched, item("c")},
		NextCursor: "c",
	})

	if got := itemIDs(s.Items); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if s.Items[0].Width != 999 {
		t.Error("re-fetched item was not updated in place")
	}
}

func TestReduce_ResetEventsBumpGenerationAndClearItems(t *testing.T) {
	base := loadedState(t)

	cases := []struct {
		name string
		ev   Event
	}{
		{"keyword change", SetKeyword{Keyword: "forest"}},
		{"limit change", SetLimit{Limit: 10}},
		{"token change", SetToken{Token: "other"}},
		{"logout", SetToken{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Reduce(base, tc.ev)

			if s.Phase != PhaseIdle {
				t.Errorf("expected Idle, got %v", s.Phase)
			}
			if len(s.Items) != 0 || s.Cursor != "" {
				t.Errorf("reset kept items=%v cursor=%q", itemIDs(s.Items), s.Cursor)
			}
			if s.Generation != base.Generation+1 {
				t.Errorf("expected generation %d, got %d", base.Generation+1, s.Generation)
			}
			if !s.HasMore {
				t.Error("reset must restore HasMore")
			}
		})
	}
}

func TestReduce_NoopParameterChangesDoNotReset(t *testing.T) {
	s := loadedState(t)

	for _, ev := range []Event{SetKeyword{}, SetLimit{Limit: s.Limit}, SetToken{Token: s.Token}} {
		next := Reduce(s, ev)
		if next.Generation != s.Generation || len(next.Items) != len(s.Items) {
			t.Errorf("event %T with unchanged value reset the state", ev)
		}
	}
}

func TestReduce_StaleResponseDropped(t *testing.T) {
	s := loadedState(t)
	s = Reduce(s, FetchRequested{})
	staleGen := s.Generation

	// The filter changes while the request is in flight.
	s = Reduce(s, SetKeyword{Keyword: "forest"})

	// The old response lands after the reset and must not be merged.
	s = Reduce(s, FetchSucceeded{Generation: staleGen, Items: []Item{item("z")}, NextCursor: "z"})
	if len(s.Items) != 0 {
		t.Errorf("stale response was merged: %v", itemIDs(s.Items))
	}
	if s.Phase != PhaseIdle {
		t.Errorf("stale response changed phase to %v", s.Phase)
	}

	// Same for a stale failure.
	s = Reduce(s, FetchFailed{Generation: staleGen, Status: 500, Message: "boom"})
	if s.Phase == PhaseErrored {
		t.Error("stale failure changed phase")
	}
}

func TestReduce_UnauthorizedClearsToken(t *testing.T) {
	s := loadedState(t)
	s = Reduce(s, FetchRequested{})

	s = Reduce(s, FetchFailed{Generation: s.Generation, Status: 401, Message: "Invalid or expired token"})

	if s.Phase != PhaseErrored {
		t.Fatalf("expected Errored, got %v", s.Phase)
	}
	if s.Token != "" {
		t.Error("401 must discard the token")
	}
	if s.Message == "" {
		t.Error("expected a session-expired message")
	}

	// Without a token the next trigger goes nowhere.
	s = Reduce(s, FetchRequested{})
	if s.Phase == PhaseLoading || s.PendingFetch {
		t.Error("fetch after forced logout must be a no-op")
	}
}

func TestReduce_OtherFailureKeepsToken(t *testing.T) {
	s := loadedState(t)
	s = Reduce(s, FetchRequested{})

	s = Reduce(s, FetchFailed{Generation: s.Generation, Status: 500, Message: "Failed to load images"})

	if s.Phase != PhaseErrored {
		t.Fatalf("expected Errored, got %v", s.Phase)
	}
	if s.Token == "" {
		t.Error("non-401 failure must not discard the token")
	}
	if s.Message != "Failed to load images" {
		t.Errorf("unexpected message %q", s.Message)
	}

	// Recovery: a new trigger retries.
	s = Reduce(s, FetchRequested{})
	if s.Phase != PhaseLoading {
		t.Errorf("expected retry to enter Loading, got %v", s.Phase)
	}
}

func TestReduce_LoginQueuesInitialLoad(t *testing.T) {
	s := loadedState(t)

	s = Reduce(s, LoginSucceeded{Token: "fresh"})

	if s.Phase != PhaseIdle || len(s.Items) != 0 {
		t.Errorf("login must reset, got %v with %d items", s.Phase, len(s.Items))
	}
	if s.Token != "fresh" {
		t.Errorf("expected new token, got %q", s.Token)
	}
	if !s.PendingFetch {
		t.Error("login must queue the initial load")
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := loadedState(t)
	before := itemIDs(s.Items)

	s2 := Reduce(s, FetchRequested{})
	_ = Reduce(s2, FetchSucceeded{Generation: s2.Generation, Items: []Item{item("c")}, NextCursor: "c"})

	if got := itemIDs(s.Items); !reflect.DeepEqual(got, before) {
		t.Errorf("input state mutated: %v", got)
	}
}
