package treemap

import "github.com/pkg/errors"

// Position is an opaque reference to one entry of a map, or to the
// end sentinel one past the last entry. A position stays usable
// across unrelated inserts and erases; it goes stale only when its
// own entry is erased or the owning map is cleared. Every method
// reports a stale or foreign position as ErrInvalidPosition instead
// of touching freed tree state.
//
// The zero Position references nothing and fails every operation.
type Position[K any, V any] struct {
	t *Map[K, V]
	n *node[K, V]
}

func (t *Map[K, V]) checkPosition(p Position[K, V]) error {
	if p.t == nil || p.n == nil {
		return errors.WithMessage(ErrInvalidPosition, "zero position")
	}
	if p.t != t {
		return errors.WithMessage(ErrInvalidPosition, "position owned by a different map")
	}
	if p.n.removed {
		return errors.WithMessage(ErrInvalidPosition, "entry already erased")
	}
	return nil
}

func (p Position[K, V]) check() error {
	if p.t == nil {
		return errors.WithMessage(ErrInvalidPosition, "zero position")
	}
	return p.t.checkPosition(p)
}

// Valid reports whether the position can still be used, that is it
// references a live entry or the end sentinel of its map.
func (p Position[K, V]) Valid() bool {
	return p.check() == nil
}

// IsEnd reports whether the position is the end sentinel.
func (p Position[K, V]) IsEnd() bool {
	return p.t != nil && p.n == p.t.NIL
}

// Key returns the key of the referenced entry.
func (p Position[K, V]) Key() (K, error) {
	var zero K
	if err := p.check(); err != nil {
		return zero, err
	}
	if p.n == p.t.NIL {
		return zero, ErrEndPosition
	}
	return p.n.key, nil
}

// Value returns the value of the referenced entry.
func (p Position[K, V]) Value() (V, error) {
	var zero V
	if err := p.check(); err != nil {
		return zero, err
	}
	if p.n == p.t.NIL {
		return zero, ErrEndPosition
	}
	return p.n.value, nil
}

// Set overwrites the value of the referenced entry. The key cannot
// be changed through a position; it pins the entry's place in the
// ordering.
func (p Position[K, V]) Set(val V) error {
	if err := p.check(); err != nil {
		return err
	}
	if p.n == p.t.NIL {
		return ErrEndPosition
	}
	p.n.value = val
	return nil
}

// Next returns the position of the next entry in ascending key
// order, or the end position after the last entry. Advancing the
// end position fails with ErrEndPosition.
func (p Position[K, V]) Next() (Position[K, V], error) {
	if err := p.check(); err != nil {
		return Position[K, V]{}, err
	}
	if p.n == p.t.NIL {
		return Position[K, V]{}, ErrEndPosition
	}
	return Position[K, V]{t: p.t, n: p.t.successor(p.n)}, nil
}

// Prev returns the position of the previous entry in ascending key
// order. Stepping back from the end position yields the last entry,
// mirroring how the end sentinel sits one past it; stepping back
// from the first entry fails with ErrEndPosition.
func (p Position[K, V]) Prev() (Position[K, V], error) {
	if err := p.check(); err != nil {
		return Position[K, V]{}, err
	}
	if p.n == p.t.NIL {
		last := p.t.max(p.t.root)
		if last == p.t.NIL {
			return Position[K, V]{}, ErrEndPosition
		}
		return Position[K, V]{t: p.t, n: last}, nil
	}
	prev := p.t.predecessor(p.n)
	if prev == p.t.NIL {
		return Position[K, V]{}, ErrEndPosition
	}
	return Position[K, V]{t: p.t, n: prev}, nil
}
