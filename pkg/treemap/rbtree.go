package treemap

const (
	red   = 0
	black = 1
)

// node is a single entry in the tree. Nodes are never shared between
// maps and never move between keys; a node that has been unlinked from
// the tree is flagged removed so that stale positions referencing it
// can be rejected instead of silently walking a dead subtree.
type node[K any, V any] struct {
	left    *node[K, V]
	right   *node[K, V]
	parent  *node[K, V]
	color   uint
	key     K
	value   V
	removed bool
}

func (t *Map[K, V]) leftRotate(x *node[K, V]) {
	if x.right == t.NIL {
		return
	}
	y := x.right
	x.right = y.left
	if y.left != t.NIL {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == t.NIL {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Map[K, V]) rightRotate(x *node[K, V]) {
	if x.left == t.NIL {
		return
	}
	y := x.left
	x.left = y.right
	if y.right != t.NIL {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == t.NIL {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.right = x
	x.parent = y
}

// insert walks down from the root looking for key. If the key is
// already present the existing node is returned along with false,
// otherwise a fresh node holding the zero value is linked in, the
// tree is re-balanced and true is returned. Callers decide what to
// do with the value slot; the subscript, add, put and emplace
// behaviors all hang off this one primitive.
func (t *Map[K, V]) insert(key K) (*node[K, V], bool) {
	x := t.root
	y := t.NIL
	for x != t.NIL {
		y = x
		if c := t.cmp(key, x.key); c < 0 {
			x = x.left
		} else if c > 0 {
			x = x.right
		} else {
			return x, false
		}
	}
	z := &node[K, V]{
		left:   t.NIL,
		right:  t.NIL,
		parent: y,
		color:  red,
		key:    key,
	}
	if y == t.NIL {
		t.root = z
	} else if t.cmp(z.key, y.key) < 0 {
		y.left = z
	} else {
		y.right = z
	}
	t.count++
	t.insertFixup(z)
	return z, true
}

func (t *Map[K, V]) insertFixup(z *node[K, V]) {
	for z.parent.color == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right
			if y.color == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					t.leftRotate(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.rightRotate(z.parent.parent)
			}
		} else {
			y := z.parent.parent.left
			if y.color == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rightRotate(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.leftRotate(z.parent.parent)
			}
		}
	}
	t.root.color = black
}

func (t *Map[K, V]) search(key K) *node[K, V] {
	p := t.root
	for p != t.NIL {
		if c := t.cmp(key, p.key); c < 0 {
			p = p.left
		} else if c > 0 {
			p = p.right
		} else {
			break
		}
	}
	return p
}

// min traverses from x to the left until left is NIL
func (t *Map[K, V]) min(x *node[K, V]) *node[K, V] {
	if x == t.NIL {
		return t.NIL
	}
	for x.left != t.NIL {
		x = x.left
	}
	return x
}

// max traverses from x to the right until right is NIL
func (t *Map[K, V]) max(x *node[K, V]) *node[K, V] {
	if x == t.NIL {
		return t.NIL
	}
	for x.right != t.NIL {
		x = x.right
	}
	return x
}

func (t *Map[K, V]) successor(x *node[K, V]) *node[K, V] {
	if x == t.NIL {
		return t.NIL
	}
	if x.right != t.NIL {
		return t.min(x.right)
	}
	y := x.parent
	for y != t.NIL && x == y.right {
		x = y
		y = y.parent
	}
	return y
}

func (t *Map[K, V]) predecessor(x *node[K, V]) *node[K, V] {
	if x == t.NIL {
		return t.NIL
	}
	if x.left != t.NIL {
		return t.max(x.left)
	}
	y := x.parent
	for y != t.NIL && x == y.left {
		x = y
		y = y.parent
	}
	return y
}

// lowerBound returns the first node whose key is >= key, or NIL
func (t *Map[K, V]) lowerBound(key K) *node[K, V] {
	x := t.root
	res := t.NIL
	for x != t.NIL {
		if t.cmp(x.key, key) < 0 {
			x = x.right
		} else {
			res = x
			x = x.left
		}
	}
	return res
}

// upperBound returns the first node whose key is > key, or NIL
func (t *Map[K, V]) upperBound(key K) *node[K, V] {
	x := t.root
	res := t.NIL
	for x != t.NIL {
		if t.cmp(x.key, key) <= 0 {
			x = x.right
		} else {
			res = x
			x = x.left
		}
	}
	return res
}

func (t *Map[K, V]) transplant(u, v *node[K, V]) {
	if u.parent == t.NIL {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

// unlink removes z from the tree by moving nodes around, never by
// copying one node's entry into another. Every node except z stays
// attached to the key it already held, which is what keeps positions
// to surviving entries usable across erases.
func (t *Map[K, V]) unlink(z *node[K, V]) {
	y := z
	yColor := y.color
	var x *node[K, V]
	if z.left == t.NIL {
		x = z.right
		t.transplant(z, z.right)
	} else if z.right == t.NIL {
		x = z.left
		t.transplant(z, z.left)
	} else {
		y = t.min(z.right)
		yColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}
	if yColor == black {
		t.deleteFixup(x)
	}
	z.left = nil
	z.right = nil
	z.parent = nil
	z.removed = true
	t.count--
}

func (t *Map[K, V]) deleteFixup(x *node[K, V]) {
	for x != t.root && x.color == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color == red {
				w.color = black
				x.parent.color = red
				t.leftRotate(x.parent)
				w = x.parent.right
			}
			if w.left.color == black && w.right.color == black {
				w.color = red
				x = x.parent
			} else {
				if w.right.color == black {
					w.left.color = black
					w.color = red
					t.rightRotate(w)
					w = x.parent.right
				}
				w.color = x.parent.color
				x.parent.color = black
				w.right.color = black
				t.leftRotate(x.parent)
				// this is to exit while loop
				x = t.root
			}
		} else {
			w := x.parent.left
			if w.color == red {
				w.color = black
				x.parent.color = red
				t.rightRotate(x.parent)
				w = x.parent.left
			}
			if w.left.color == black && w.right.color == black {
				w.color = red
				x = x.parent
			} else {
				if w.left.color == black {
					w.right.color = black
					w.color = red
					t.leftRotate(w)
					w = x.parent.left
				}
				w.color = x.parent.color
				x.parent.color = black
				w.left.color = black
				t.rightRotate(x.parent)
				x = t.root
			}
		}
	}
	x.color = black
}

func (t *Map[K, V]) ascend(x *node[K, V], iter Iterator[K, V]) bool {
	if x == t.NIL {
		return true
	}
	if !t.ascend(x.left, iter) {
		return false
	}
	if !iter(x.key, x.value) {
		return false
	}
	return t.ascend(x.right, iter)
}

func (t *Map[K, V]) descend(x *node[K, V], iter Iterator[K, V]) bool {
	if x == t.NIL {
		return true
	}
	if !t.descend(x.right, iter) {
		return false
	}
	if !iter(x.key, x.value) {
		return false
	}
	return t.descend(x.left, iter)
}

// ascendRange visits keys in [lo, hi) in ascending order
func (t *Map[K, V]) ascendRange(x *node[K, V], lo, hi K, iter Iterator[K, V]) bool {
	if x == t.NIL {
		return true
	}
	if !(t.cmp(x.key, hi) < 0) {
		return t.ascendRange(x.left, lo, hi, iter)
	}
	if t.cmp(x.key, lo) < 0 {
		return t.ascendRange(x.right, lo, hi, iter)
	}
	if !t.ascendRange(x.left, lo, hi, iter) {
		return false
	}
	if !iter(x.key, x.value) {
		return false
	}
	return t.ascendRange(x.right, lo, hi, iter)
}
