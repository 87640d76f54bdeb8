// Package treemap implements an in-memory ordered map backed by a
// red-black tree. Keys are unique and kept in ascending comparator
// order at all times; lookups, inserts and erases by key run in
// O(log n), and erasing through an already-held Position skips the
// search entirely.
//
// A Map performs no internal locking. Sharing one across goroutines
// requires external synchronization, same as the built-in map type.
package treemap

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Compare reports the ordering of a relative to b: negative when
// a sorts first, positive when b sorts first, zero when equal. It
// must describe a strict total order over all keys handed to the
// map; the map does not detect a comparator that violates this.
type Compare[K any] func(a, b K) int

// Iterator is a callback for the scan methods. Returning false
// stops the scan early.
type Iterator[K any, V any] func(key K, val V) bool

// Map is an ordered mapping of unique keys to values.
type Map[K any, V any] struct {
	NIL   *node[K, V]
	root  *node[K, V]
	count int
	cmp   Compare[K]
}

// NewMap creates an empty map for any ordered key type, sorted by
// the natural < ordering of K.
func NewMap[K constraints.Ordered, V any]() *Map[K, V] {
	return NewMapFunc[K, V](func(a, b K) int {
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
}

// NewMapFunc creates an empty map ordered by cmp. The comparator
// must be a strict total order over K.
func NewMapFunc[K any, V any](cmp Compare[K]) *Map[K, V] {
	n := &node[K, V]{color: black}
	return &Map[K, V]{
		NIL:  n,
		root: n,
		cmp:  cmp,
	}
}

// Len returns the number of entries in the map.
func (t *Map[K, V]) Len() int {
	return t.count
}

// At returns a pointer to the value stored under key, inserting an
// entry holding the zero value first if the key is absent. The zero
// value is materialized even when the caller immediately assigns
// through the returned pointer. The pointer stays valid until the
// entry is erased or the map is cleared.
func (t *Map[K, V]) At(key K) *V {
	n, _ := t.insert(key)
	return &n.value
}

// Add inserts key with val only if the key is absent. It never
// overwrites an existing value. The returned position references
// the entry either way; the boolean reports whether an insertion
// actually took place.
func (t *Map[K, V]) Add(key K, val V) (Position[K, V], bool) {
	n, inserted := t.insert(key)
	if inserted {
		n.value = val
	}
	return Position[K, V]{t: t, n: n}, inserted
}

// Put inserts key with val, overwriting the value of an existing
// entry. It returns the previous value (the zero value for a fresh
// key) and whether an existing entry was updated.
func (t *Map[K, V]) Put(key K, val V) (V, bool) {
	n, inserted := t.insert(key)
	prev := n.value
	n.value = val
	return prev, !inserted
}

// Emplace inserts key with a value built by ctor only when the key
// is absent. The constructor runs exactly once on insertion and not
// at all when the key already exists, so callers can defer building
// expensive values until the map actually needs one.
func (t *Map[K, V]) Emplace(key K, ctor func() V) (Position[K, V], bool) {
	n, inserted := t.insert(key)
	if inserted {
		n.value = ctor()
	}
	return Position[K, V]{t: t, n: n}, inserted
}

// Get returns the value stored under key.
func (t *Map[K, V]) Get(key K) (V, bool) {
	n := t.search(key)
	if n == t.NIL {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Has tests if the provided key exists in the map.
func (t *Map[K, V]) Has(key K) bool {
	return t.search(key) != t.NIL
}

// Count returns 1 if key is present and 0 otherwise. Keys are
// unique, so no larger count can occur.
func (t *Map[K, V]) Count(key K) int {
	if t.search(key) != t.NIL {
		return 1
	}
	return 0
}

// Find returns the position of the entry holding key, or the end
// position when the key is absent.
func (t *Map[K, V]) Find(key K) Position[K, V] {
	return Position[K, V]{t: t, n: t.search(key)}
}

// Del erases the entry holding key and returns its value. Absent
// keys are a no-op reported through the boolean, never an error.
func (t *Map[K, V]) Del(key K) (V, bool) {
	n := t.search(key)
	if n == t.NIL {
		var zero V
		return zero, false
	}
	v := n.value
	t.unlink(n)
	return v, true
}

// DelAt erases the entry referenced by p without searching for its
// key again. Erasing through the end position or a position that is
// stale or owned by another map fails with a reported error.
func (t *Map[K, V]) DelAt(p Position[K, V]) error {
	if err := t.checkPosition(p); err != nil {
		return err
	}
	if p.n == t.NIL {
		return ErrEndPosition
	}
	t.unlink(p.n)
	return nil
}

// DelRange erases every entry in [start, end) in ascending order and
// returns how many were removed. end is excluded; passing the end
// position for end erases through the last entry. A start that sorts
// after end fails with ErrBadRange.
func (t *Map[K, V]) DelRange(start, end Position[K, V]) (int, error) {
	if err := t.checkPosition(start); err != nil {
		return 0, err
	}
	if err := t.checkPosition(end); err != nil {
		return 0, err
	}
	if start.n == t.NIL {
		if end.n != t.NIL {
			return 0, ErrBadRange
		}
		return 0, nil
	}
	if end.n != t.NIL && t.cmp(start.n.key, end.n.key) > 0 {
		return 0, ErrBadRange
	}
	removed := 0
	for x := start.n; x != t.NIL && x != end.n; {
		next := t.successor(x)
		t.unlink(x)
		x = next
		removed++
	}
	return removed, nil
}

// LowerBound returns the position of the first entry whose key is
// greater than or equal to key, or the end position.
func (t *Map[K, V]) LowerBound(key K) Position[K, V] {
	return Position[K, V]{t: t, n: t.lowerBound(key)}
}

// UpperBound returns the position of the first entry whose key is
// strictly greater than key, or the end position.
func (t *Map[K, V]) UpperBound(key K) Position[K, V] {
	return Position[K, V]{t: t, n: t.upperBound(key)}
}

// EqualRange returns (LowerBound(key), UpperBound(key)). For a
// present key that is a single-entry span; for an absent key both
// positions coincide at the insertion point.
func (t *Map[K, V]) EqualRange(key K) (Position[K, V], Position[K, V]) {
	return t.LowerBound(key), t.UpperBound(key)
}

// First returns the position of the smallest entry, or the end
// position for an empty map.
func (t *Map[K, V]) First() Position[K, V] {
	return Position[K, V]{t: t, n: t.min(t.root)}
}

// Last returns the position of the largest entry, or the end
// position for an empty map.
func (t *Map[K, V]) Last() Position[K, V] {
	return Position[K, V]{t: t, n: t.max(t.root)}
}

// End returns the sentinel position one past the last entry. It is
// never dereferenceable.
func (t *Map[K, V]) End() Position[K, V] {
	return Position[K, V]{t: t, n: t.NIL}
}

// Min returns the smallest entry in the map.
func (t *Map[K, V]) Min() (K, V, bool) {
	x := t.min(t.root)
	if x == t.NIL {
		var zk K
		var zv V
		return zk, zv, false
	}
	return x.key, x.value, true
}

// Max returns the largest entry in the map.
func (t *Map[K, V]) Max() (K, V, bool) {
	x := t.max(t.root)
	if x == t.NIL {
		var zk K
		var zv V
		return zk, zv, false
	}
	return x.key, x.value, true
}

// ScanFront calls iter for every entry in ascending key order.
func (t *Map[K, V]) ScanFront(iter Iterator[K, V]) {
	t.ascend(t.root, iter)
}

// ScanBack calls iter for every entry in descending key order.
func (t *Map[K, V]) ScanBack(iter Iterator[K, V]) {
	t.descend(t.root, iter)
}

// ScanRange calls iter for every entry with lo <= key < hi in
// ascending key order.
func (t *Map[K, V]) ScanRange(lo, hi K, iter Iterator[K, V]) {
	t.ascendRange(t.root, lo, hi, iter)
}

// Clone returns a deep copy of the map. The clone owns a fresh node
// tree; later mutation of either map never shows through the other.
// Positions always stay bound to the map that produced them.
func (t *Map[K, V]) Clone() *Map[K, V] {
	c := NewMapFunc[K, V](t.cmp)
	c.root = c.cloneNodes(t, t.root, c.NIL)
	c.count = t.count
	return c
}

func (c *Map[K, V]) cloneNodes(src *Map[K, V], x, parent *node[K, V]) *node[K, V] {
	if x == src.NIL {
		return c.NIL
	}
	n := &node[K, V]{
		parent: parent,
		color:  x.color,
		key:    x.key,
		value:  x.value,
	}
	n.left = c.cloneNodes(src, x.left, n)
	n.right = c.cloneNodes(src, x.right, n)
	return n
}

// Clear erases every entry. All outstanding positions into the map
// become invalid and report ErrInvalidPosition afterwards.
func (t *Map[K, V]) Clear() {
	t.markRemoved(t.root)
	t.root = t.NIL
	t.count = 0
}

func (t *Map[K, V]) markRemoved(x *node[K, V]) {
	if x == t.NIL {
		return
	}
	t.markRemoved(x.left)
	t.markRemoved(x.right)
	x.left = nil
	x.right = nil
	x.parent = nil
	x.removed = true
}

func (t *Map[K, V]) String() string {
	var sb strings.Builder
	t.ascend(t.root, func(key K, val V) bool {
		sb.WriteString(fmt.Sprintf("entry.key=%v, entry.value=%v\n", key, val))
		return true
	})
	return sb.String()
}
