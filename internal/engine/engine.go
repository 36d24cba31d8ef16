// Package engine implements the SIEVE eviction engine: a keyed index over a
// fixed-capacity arena of intrusively linked nodes, plus the persistent scan
// cursor ("hand") that picks eviction victims.
//
// Nodes are addressed by stable integer indices into the arena; prev, next
// and the hand are indices with the sentinel value none. The recency list
// orders nodes by insertion time, newest at the head. Reads never reorder
// the list; they only mark the node visited, which protects it from the
// next pass of the eviction scan.
package engine

import "errors"

// ErrInvalidCapacity is returned by New when capacity is not positive.
var ErrInvalidCapacity = errors.New("sieve: capacity must be positive")

// none marks an unset node index (empty list end, unset hand, no neighbor).
const none = -1

// node is one arena slot. A slot is either live (reachable from the index
// map and linked into the recency list) or free (on the free stack).
type node[K comparable, V any] struct {
	key     K
	value   V
	visited bool
	prev    int
	next    int
}

// Engine is the eviction engine for a single cache instance. It is not safe
// for concurrent use; callers that share an instance must serialize access.
type Engine[K comparable, V any] struct {
	capacity int
	nodes    []node[K, V] // arena, allocated once at construction
	free     []int        // stack of free arena slots
	index    map[K]int    // key -> arena slot of the live node
	head     int
	tail     int
	hand     int

	onEvict func(key K, value V)
}

// New creates an engine with the given fixed capacity.
func New[K comparable, V any](capacity int) (*Engine[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	e := &Engine[K, V]{
		capacity: capacity,
		nodes:    make([]node[K, V], capacity),
		free:     make([]int, 0, capacity),
		index:    make(map[K]int, capacity),
		head:     none,
		tail:     none,
		hand:     none,
	}
	for i := capacity - 1; i >= 0; i-- {
		e.free = append(e.free, i)
	}
	return e, nil
}

// OnEvict registers a callback invoked with the key and value of every entry
// discarded by the eviction scan. It must be set before the engine is used.
func (e *Engine[K, V]) OnEvict(fn func(key K, value V)) {
	e.onEvict = fn
}

// Len returns the number of live entries.
func (e *Engine[K, V]) Len() int {
	return len(e.index)
}

// Cap returns the fixed capacity.
func (e *Engine[K, V]) Cap() int {
	return e.capacity
}

// Contains reports whether key is present, without touching the visited bit.
func (e *Engine[K, V]) Contains(key K) bool {
	_, ok := e.index[key]
	return ok
}

// Get returns the value stored under key and marks the node visited.
// Reads are not free: every hit grants the entry a second chance against
// the eviction scan.
func (e *Engine[K, V]) Get(key K) (V, bool) {
	i, ok := e.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.nodes[i].visited = true
	return e.nodes[i].value, true
}

// Peek returns the value stored under key without marking the node visited.
func (e *Engine[K, V]) Peek(key K) (V, bool) {
	i, ok := e.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.nodes[i].value, true
}

// Set stores value under key. If the key is already present its value is
// overwritten in place and the node is marked visited (an update counts as
// a protecting access); Set then returns false. Otherwise a node is created
// at the head of the recency list, evicting one entry first if the engine
// is full, and Set returns true.
func (e *Engine[K, V]) Set(key K, value V) bool {
	if i, ok := e.index[key]; ok {
		e.nodes[i].value = value
		e.nodes[i].visited = true
		return false
	}

	if len(e.index) == e.capacity {
		e.evict()
	}

	i := e.alloc()
	e.nodes[i] = node[K, V]{key: key, value: value, prev: none, next: none}
	e.pushFront(i)
	e.index[key] = i
	return true
}

// Delete removes key if present. If the hand points at the removed node it
// is moved to the node's predecessor, or to the list tail when there is
// none, so the eviction scan always resumes from a live node.
func (e *Engine[K, V]) Delete(key K) bool {
	i, ok := e.index[key]
	if !ok {
		return false
	}

	if e.hand == i {
		p := e.nodes[i].prev
		e.unlink(i)
		if p != none {
			e.hand = p
		} else {
			e.hand = e.tail
		}
	} else {
		e.unlink(i)
	}

	delete(e.index, key)
	e.release(i)
	return true
}

// Clear discards every entry and resets the list ends and the hand.
// Capacity is unaffected.
func (e *Engine[K, V]) Clear() {
	clear(e.nodes)
	clear(e.index)
	e.free = e.free[:0]
	for i := e.capacity - 1; i >= 0; i-- {
		e.free = append(e.free, i)
	}
	e.head, e.tail, e.hand = none, none, none
}

// Keys returns the live keys in recency-list order, newest insertion first.
func (e *Engine[K, V]) Keys() []K {
	keys := make([]K, 0, len(e.index))
	for i := e.head; i != none; i = e.nodes[i].next {
		keys = append(keys, e.nodes[i].key)
	}
	return keys
}

// evict runs one SIEVE scan and discards the victim. The scan starts at the
// hand (or the tail when the hand is unset) and walks toward the head,
// clearing the visited bit on every marked node it passes and stopping at
// the first unmarked one. Walking off the head wraps back to the tail.
// Every node it passes is demoted before it can be revisited, so the scan
// makes at most two traversals of the list. The hand is left at the
// victim's former predecessor so the next scan resumes from there.
func (e *Engine[K, V]) evict() {
	i := e.hand
	if i == none {
		i = e.tail
	}
	for i != none && e.nodes[i].visited {
		e.nodes[i].visited = false
		i = e.nodes[i].prev
		if i == none {
			i = e.tail
		}
	}
	if i == none {
		return
	}

	key, value := e.nodes[i].key, e.nodes[i].value
	e.hand = e.nodes[i].prev
	delete(e.index, key)
	e.unlink(i)
	e.release(i)

	if e.onEvict != nil {
		e.onEvict(key, value)
	}
}

// alloc pops a free arena slot. Callers guarantee the arena is not full.
func (e *Engine[K, V]) alloc() int {
	i := e.free[len(e.free)-1]
	e.free = e.free[:len(e.free)-1]
	return i
}

// release zeroes a slot, dropping its key and value references, and returns
// it to the free stack.
func (e *Engine[K, V]) release(i int) {
	e.nodes[i] = node[K, V]{}
	e.free = append(e.free, i)
}

// pushFront links slot i in at the head of the recency list.
func (e *Engine[K, V]) pushFront(i int) {
	n := &e.nodes[i]
	n.prev = none
	n.next = e.head
	if e.head != none {
		e.nodes[e.head].prev = i
	}
	e.head = i
	if e.tail == none {
		e.tail = i
	}
}

// unlink removes slot i from the recency list, repairing head and tail when
// i is an end.
func (e *Engine[K, V]) unlink(i int) {
	n := &e.nodes[i]
	if n.prev != none {
		e.nodes[n.prev].next = n.next
	} else {
		e.head = n.next
	}
	if n.next != none {
		e.nodes[n.next].prev = n.prev
	} else {
		e.tail = n.prev
	}
}
