package compare

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestToggleIsSelfInverse(t *testing.T) {
	ctx := context.Background()
	set, err := NewSet(ctx, NewMemoryStore(), StorageKey)
	if err != nil {
		t.Fatalf("failed to create set: %v", err)
	}

	added, err := set.Toggle(ctx, 7)
	if err != nil || !added {
		t.Fatalf("first toggle should add: added=%v err=%v", added, err)
	}
	if !set.Contains(7) {
		t.Error("expected id 7 in the set")
	}

	added, err = set.Toggle(ctx, 7)
	if err != nil || added {
		t.Fatalf("second toggle should remove: added=%v err=%v", added, err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty set, got %v", set.IDs())
	}
}

func TestToggleRejectsFifthItem(t *testing.T) {
	ctx := context.Background()
	set, err := NewSet(ctx, NewMemoryStore(), StorageKey)
	if err != nil {
		t.Fatalf("failed to create set: %v", err)
	}

	for _, id := range []int{10, 20, 30, 40} {
		if _, err := set.Toggle(ctx, id); err != nil {
			t.Fatalf("toggle %d failed: %v", id, err)
		}
	}

	if _, err := set.Toggle(ctx, 50); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []int{10, 20, 30, 40}) {
		t.Errorf("rejected add must leave the set unchanged, got %v", got)
	}

	// removing a member at capacity still works
	if _, err := set.Toggle(ctx, 20); err != nil {
		t.Fatalf("remove at capacity failed: %v", err)
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []int{10, 30, 40}) {
		t.Errorf("unexpected order after removal: %v", got)
	}
}

func TestSetSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	set, err := NewSet(ctx, store, StorageKey)
	if err != nil {
		t.Fatalf("failed to create set: %v", err)
	}
	for _, id := range []int{3, 1} {
		if _, err := set.Toggle(ctx, id); err != nil {
			t.Fatalf("toggle %d failed: %v", id, err)
		}
	}

	// a fresh set over the same store stands in for a page reload
	reloaded, err := NewSet(ctx, store, StorageKey)
	if err != nil {
		t.Fatalf("failed to reload set: %v", err)
	}
	if got := reloaded.IDs(); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("expected insertion order to survive reload, got %v", got)
	}
}

func TestClearRemovesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	set, err := NewSet(ctx, store, StorageKey)
	if err != nil {
		t.Fatalf("failed to create set: %v", err)
	}
	if _, err := set.Toggle(ctx, 1); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := set.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	data, err := store.Get(ctx, StorageKey)
	if err != nil {
		t.Fatalf("store get failed: %v", err)
	}
	if data != nil {
		t.Errorf("clear must remove the persisted entry, got %q", data)
	}

	reloaded, err := NewSet(ctx, store, StorageKey)
	if err != nil {
		t.Fatalf("failed to reload set: %v", err)
	}
	if reloaded.Len() != 0 {
		t.Errorf("expected empty set after clear, got %v", reloaded.IDs())
	}
}

func TestNewSetTruncatesOversizedEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Set(ctx, StorageKey, []byte("[1,2,3,4,5,6]")); err != nil {
		t.Fatalf("store set failed: %v", err)
	}

	set, err := NewSet(ctx, store, StorageKey)
	if err != nil {
		t.Fatalf("failed to create set: %v", err)
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("oversized entry must be capped at capacity, got %v", got)
	}
}

func TestNewSetRejectsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Set(ctx, StorageKey, []byte("{broken")); err != nil {
		t.Fatalf("store set failed: %v", err)
	}

	if _, err := NewSet(ctx, store, StorageKey); err == nil {
		t.Fatal("expected an error for a corrupt entry")
	}
}
