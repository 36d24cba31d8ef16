package engine

import (
	"errors"
	"fmt"
	"testing"
)

// checkInvariants walks the engine's internal structures and fails the test
// if any structural invariant is broken: index and list must hold the same
// nodes, the list must be well formed, the entry count must not exceed
// capacity, and the hand must point at a live node when set.
func checkInvariants[K comparable, V any](t *testing.T, e *Engine[K, V]) {
	t.Helper()

	if e.Len() > e.Cap() {
		t.Fatalf("Len() = %d exceeds Cap() = %d", e.Len(), e.Cap())
	}

	// Forward walk must visit exactly Len() nodes and end at the tail.
	seen := make(map[int]bool)
	last := none
	steps := 0
	for i := e.head; i != none; i = e.nodes[i].next {
		if seen[i] {
			t.Fatalf("recency list cycle at slot %d", i)
		}
		seen[i] = true
		if e.nodes[i].prev != last {
			t.Fatalf("slot %d prev = %d, want %d", i, e.nodes[i].prev, last)
		}
		last = i
		steps++
		if steps > e.Len() {
			t.Fatalf("list walk exceeded Len() = %d", e.Len())
		}
	}
	if last != e.tail {
		t.Fatalf("walk ended at slot %d, tail = %d", last, e.tail)
	}
	if steps != e.Len() {
		t.Fatalf("list holds %d nodes, index holds %d", steps, e.Len())
	}

	// Every indexed key must map to a listed node holding that key.
	for key, i := range e.index {
		if !seen[i] {
			t.Fatalf("key %v maps to slot %d not on the list", key, i)
		}
		if e.nodes[i].key != key {
			t.Fatalf("slot %d holds key %v, index says %v", i, e.nodes[i].key, key)
		}
	}

	// The hand, when set, must reference a live node.
	if e.hand != none && !seen[e.hand] {
		t.Fatalf("hand = %d does not reference a live node", e.hand)
	}

	// Free slots plus live nodes must account for the whole arena.
	if len(e.free)+e.Len() != e.Cap() {
		t.Fatalf("free (%d) + live (%d) != capacity (%d)", len(e.free), e.Len(), e.Cap())
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		_, err := New[string, int](capacity)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestEngine_GetSetDelete(t *testing.T) {
	e, err := New[string, string](10)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := e.Get("missing"); ok {
		t.Error("Get() on empty engine should return false")
	}

	if added := e.Set("foo", "foocontent"); !added {
		t.Error("Set() of a new key should return true")
	}
	checkInvariants(t, e)

	v, ok := e.Get("foo")
	if !ok || v != "foocontent" {
		t.Errorf("Get(foo) = %q, %v, want %q, true", v, ok, "foocontent")
	}

	if added := e.Set("foo", "updated"); added {
		t.Error("Set() of an existing key should return false")
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d after update, want 1", e.Len())
	}
	if v, _ := e.Get("foo"); v != "updated" {
		t.Errorf("Get(foo) = %q after update, want %q", v, "updated")
	}

	if !e.Delete("foo") {
		t.Error("Delete() of a present key should return true")
	}
	if e.Delete("foo") {
		t.Error("Delete() of an absent key should return false")
	}
	checkInvariants(t, e)
}

func TestEngine_PeekDoesNotMarkVisited(t *testing.T) {
	e, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e.Set("a", 1)
	e.Set("b", 2)

	// Peek must not protect "a"; the first scan starts at the tail, which
	// is "a" (oldest insertion), and should evict it.
	if _, ok := e.Peek("a"); !ok {
		t.Fatal("Peek(a) should find the entry")
	}
	e.Set("c", 3)

	if e.Contains("a") {
		t.Error("peeked entry should not survive eviction")
	}
	checkInvariants(t, e)
}

func TestEngine_UpdateProtectsEntry(t *testing.T) {
	e, err := New[string, string](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e.Set("key1", "value1")
	e.Set("key2", "value2")
	e.Set("key1", "updated") // update marks key1 visited
	e.Set("key3", "value3")  // forces eviction

	// key1 was protected by its visited bit; key2, unvisited, goes.
	if !e.Contains("key1") {
		t.Error("Contains(key1) = false, want true")
	}
	if e.Contains("key2") {
		t.Error("Contains(key2) = true, want false")
	}
	if v, _ := e.Peek("key1"); v != "updated" {
		t.Errorf("Peek(key1) = %q, want %q", v, "updated")
	}
	checkInvariants(t, e)
}

func TestEngine_ScanWrapsWhenAllVisited(t *testing.T) {
	e, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e.Set("a", 1)
	e.Set("b", 2)
	e.Get("a")
	e.Get("b")

	// All entries visited: the scan must clear the bits on its first pass,
	// wrap from the head back to the tail, and evict on the second pass.
	e.Set("c", 3)

	if e.Len() != e.Cap() {
		t.Errorf("Len() = %d, want %d", e.Len(), e.Cap())
	}
	if !e.Contains("c") {
		t.Error("Contains(c) = false, want true")
	}
	checkInvariants(t, e)
}

func TestEngine_HandResumesAfterEviction(t *testing.T) {
	e, err := New[int, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 4; i++ {
		e.Set(i, i)
	}
	// Protect 0 and 1 (the two oldest); leave 2 and 3 unvisited.
	e.Get(0)
	e.Get(1)

	// First overflow: scan starts at the tail (0), demotes 0 and 1, evicts 2.
	e.Set(4, 4)
	if e.Contains(2) {
		t.Error("first eviction should discard 2")
	}
	checkInvariants(t, e)

	// The hand now rests at 3 (the evicted node's predecessor). The next
	// scan must resume there and evict 3, not restart at the tail.
	e.Set(5, 5)
	if e.Contains(3) {
		t.Error("second eviction should resume from the hand and discard 3")
	}
	if !e.Contains(0) || !e.Contains(1) {
		t.Error("demoted entries should survive until the scan returns to them")
	}
	checkInvariants(t, e)
}

func TestEngine_DeleteRepairsHand(t *testing.T) {
	e, err := New[int, int](3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e.Set(1, 1)
	e.Set(2, 2)
	e.Set(3, 3)
	e.Get(1)
	e.Get(2)
	e.Get(3)

	// All visited: the overflow scan demotes everyone, wraps, and evicts
	// the tail (1), parking the hand on 2.
	e.Set(4, 4)
	if e.Contains(1) {
		t.Fatal("overflow should have evicted 1")
	}
	checkInvariants(t, e)

	// Deleting the node under the hand must move the hand to a live node.
	if !e.Delete(2) {
		t.Fatal("Delete(2) should succeed")
	}
	checkInvariants(t, e)

	// The engine must still evict correctly afterwards.
	e.Set(5, 5)
	e.Set(6, 6)
	if e.Len() != e.Cap() {
		t.Errorf("Len() = %d, want %d", e.Len(), e.Cap())
	}
	checkInvariants(t, e)
}

func TestEngine_DeleteOnlyNodeUnsetsHand(t *testing.T) {
	e, err := New[string, int](1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e.Set("a", 1)
	e.Get("a")
	e.Set("b", 2) // scan demotes "a", wraps, evicts it
	checkInvariants(t, e)

	if !e.Delete("b") {
		t.Fatal("Delete(b) should succeed")
	}
	if e.hand != none {
		t.Errorf("hand = %d after emptying engine, want unset", e.hand)
	}
	checkInvariants(t, e)
}

func TestEngine_Clear(t *testing.T) {
	e, err := New[string, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 4; i++ {
		e.Set(fmt.Sprintf("k%d", i), i)
	}
	e.Get("k0")
	e.Set("k4", 4) // move the hand

	e.Clear()

	if e.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", e.Len())
	}
	if e.Cap() != 4 {
		t.Errorf("Cap() = %d after Clear, want 4", e.Cap())
	}
	if e.Contains("k0") || e.Contains("k4") {
		t.Error("Clear should discard every key")
	}
	checkInvariants(t, e)

	// The arena must be fully reusable after Clear.
	for i := 0; i < 4; i++ {
		e.Set(fmt.Sprintf("n%d", i), i)
	}
	e.Set("overflow", 99)
	if e.Len() != e.Cap() {
		t.Errorf("Len() = %d after refill, want %d", e.Len(), e.Cap())
	}
	checkInvariants(t, e)
}

func TestEngine_Keys(t *testing.T) {
	e, err := New[string, int](3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e.Set("a", 1)
	e.Set("b", 2)
	e.Set("c", 3)
	e.Get("a") // reads never reorder the list

	keys := e.Keys()
	want := []string{"c", "b", "a"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestEngine_OnEvict(t *testing.T) {
	e, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var gotKey string
	var gotValue int
	evictions := 0
	e.OnEvict(func(key string, value int) {
		gotKey = key
		gotValue = value
		evictions++
	})

	e.Set("a", 1)
	e.Set("b", 2)
	e.Set("c", 3)

	if evictions != 1 {
		t.Fatalf("evictions = %d, want 1", evictions)
	}
	if gotKey != "a" || gotValue != 1 {
		t.Errorf("evicted (%q, %d), want (%q, %d)", gotKey, gotValue, "a", 1)
	}

	// Delete and Clear are explicit removals, not evictions.
	e.Delete("b")
	e.Clear()
	if evictions != 1 {
		t.Errorf("evictions = %d after Delete/Clear, want 1", evictions)
	}
}

func TestEngine_ChurnKeepsInvariants(t *testing.T) {
	e, err := New[int, int](8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Deterministic mixed workload: inserts, updates, reads, deletes.
	for i := 0; i < 500; i++ {
		key := (i * 7) % 40
		switch i % 5 {
		case 0, 1:
			e.Set(key, i)
		case 2:
			e.Get(key)
		case 3:
			e.Set(key%8, i)
		case 4:
			e.Delete(key % 16)
		}
		checkInvariants(t, e)
	}
}
