package treemap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosition_Zero(t *testing.T) {
	var p Position[string, int]
	require.False(t, p.Valid())
	_, err := p.Key()
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = p.Next()
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.ErrorIs(t, p.Set(0), ErrInvalidPosition)
}

// walk first to last through Next, then back through Prev
func TestPosition_Traversal(t *testing.T) {
	tree := NewMap[string, int]()
	for i := 0; i < 100; i++ {
		tree.Put(makeKey(i), makeVal(i))
	}

	i := 0
	p := tree.First()
	for !p.IsEnd() {
		k, err := p.Key()
		require.NoError(t, err)
		require.Equal(t, makeKey(i), k)
		v, err := p.Value()
		require.NoError(t, err)
		require.Equal(t, makeVal(i), v)
		p, err = p.Next()
		require.NoError(t, err)
		i++
	}
	require.Equal(t, 100, i)

	// Prev from the end position lands on the last entry
	p, err := tree.End().Prev()
	require.NoError(t, err)
	for {
		i--
		k, err := p.Key()
		require.NoError(t, err)
		require.Equal(t, makeKey(i), k)
		p, err = p.Prev()
		if err != nil {
			require.ErrorIs(t, err, ErrEndPosition)
			break
		}
	}
	require.Equal(t, 0, i)
}

func TestPosition_EndSentinel(t *testing.T) {
	tree := NewMap[string, int]()
	end := tree.End()
	require.True(t, end.IsEnd())
	require.True(t, end.Valid())

	// the end sentinel is never dereferenceable
	_, err := end.Key()
	require.ErrorIs(t, err, ErrEndPosition)
	_, err = end.Value()
	require.ErrorIs(t, err, ErrEndPosition)
	require.ErrorIs(t, end.Set(1), ErrEndPosition)
	_, err = end.Next()
	require.ErrorIs(t, err, ErrEndPosition)

	// empty map: nothing before the end either
	_, err = end.Prev()
	require.ErrorIs(t, err, ErrEndPosition)

	// empty map: First and Last are the end position
	require.True(t, tree.First().IsEnd())
	require.True(t, tree.Last().IsEnd())
}

func TestPosition_StaleAfterDel(t *testing.T) {
	tree := NewMap[string, int]()
	for i := 0; i < 10; i++ {
		tree.Put(makeKey(i), makeVal(i))
	}
	p := tree.Find(makeKey(5))
	require.True(t, p.Valid())

	_, ok := tree.Del(makeKey(5))
	require.True(t, ok)

	require.False(t, p.Valid())
	_, err := p.Key()
	require.ErrorIs(t, err, ErrInvalidPosition)
	require.ErrorIs(t, tree.DelAt(p), ErrInvalidPosition)

	// positions on surviving entries stay live across the erase
	q := tree.Find(makeKey(6))
	tree.Del(makeKey(4))
	k, err := q.Key()
	require.NoError(t, err)
	require.Equal(t, makeKey(6), k)
}

func TestPosition_ForeignMap(t *testing.T) {
	a := NewMap[string, int]()
	b := NewMap[string, int]()
	a.Put("x", 1)
	b.Put("x", 1)

	p := a.Find("x")
	require.ErrorIs(t, b.DelAt(p), ErrInvalidPosition)
	_, err := b.DelRange(p, b.End())
	require.ErrorIs(t, err, ErrInvalidPosition)
}

// signature: Set(val V) error
func TestPosition_Set(t *testing.T) {
	tree := NewMap[string, int]()
	tree.Put("a", 1)
	p := tree.Find("a")
	require.NoError(t, p.Set(2))
	v, _ := tree.Get("a")
	require.Equal(t, 2, v)
}

// signature: DelAt(p Position) error
func TestMap_DelAt(t *testing.T) {
	tree := NewMap[string, int]()
	for i := 0; i < 10; i++ {
		tree.Put(makeKey(i), makeVal(i))
	}

	p := tree.Find(makeKey(3))
	require.NoError(t, tree.DelAt(p))
	require.Equal(t, 9, tree.Len())
	require.False(t, tree.Has(makeKey(3)))

	// the position died with its entry
	require.ErrorIs(t, tree.DelAt(p), ErrInvalidPosition)

	// the end sentinel cannot be erased
	require.ErrorIs(t, tree.DelAt(tree.End()), ErrEndPosition)
}

// erase an interior node with two children through its position,
// then make sure a position held on its successor survived
func TestMap_DelAtInterior(t *testing.T) {
	tree := NewMap[int, int]()
	for _, k := range []int{50, 25, 75, 10, 30, 60, 90} {
		tree.Put(k, k)
	}
	p := tree.Find(50)
	succ := tree.Find(60)

	require.NoError(t, tree.DelAt(p))
	require.False(t, tree.Has(50))
	require.Equal(t, 6, tree.Len())

	k, err := succ.Key()
	require.NoError(t, err)
	require.Equal(t, 60, k)

	var keys []int
	tree.ScanFront(func(key int, val int) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []int{10, 25, 30, 60, 75, 90}, keys)
}

// signature: DelRange(start, end Position) (int, error)
func TestMap_DelRange(t *testing.T) {
	tree := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		tree.Put(i, i)
	}

	// [3, 7) removes 3,4,5,6 and keeps 7
	removed, err := tree.DelRange(tree.Find(3), tree.Find(7))
	require.NoError(t, err)
	require.Equal(t, 4, removed)
	require.Equal(t, 6, tree.Len())
	require.False(t, tree.Has(3))
	require.True(t, tree.Has(7))

	var keys []int
	tree.ScanFront(func(key int, val int) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []int{0, 1, 2, 7, 8, 9}, keys)
}

func TestMap_DelRangeToEnd(t *testing.T) {
	tree := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		tree.Put(i, i)
	}
	removed, err := tree.DelRange(tree.First(), tree.End())
	require.NoError(t, err)
	require.Equal(t, 10, removed)
	require.Equal(t, 0, tree.Len())

	// empty range from the end position removes nothing
	removed, err = tree.DelRange(tree.End(), tree.End())
	require.NoError(t, err)
	require.Equal(t, 0, removed)
}

func TestMap_DelRangeBad(t *testing.T) {
	tree := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		tree.Put(i, i)
	}

	// start sorts after end
	_, err := tree.DelRange(tree.Find(7), tree.Find(3))
	require.ErrorIs(t, err, ErrBadRange)

	// start at the end position with a live end
	_, err = tree.DelRange(tree.End(), tree.Find(3))
	require.ErrorIs(t, err, ErrBadRange)

	// nothing was removed by the failed calls
	require.Equal(t, 10, tree.Len())
}

// inserting and erasing around a held position leaves it usable
func TestPosition_SurvivesUnrelatedChurn(t *testing.T) {
	tree := NewMap[int, int]()
	for i := 0; i < 100; i += 2 {
		tree.Put(i, i)
	}
	p := tree.Find(50)

	for i := 1; i < 100; i += 2 {
		tree.Put(i, i)
	}
	for i := 0; i < 50; i++ {
		tree.Del(i)
	}

	k, err := p.Key()
	require.NoError(t, err)
	require.Equal(t, 50, k)

	// and it still iterates from its entry onward in order
	next, err := p.Next()
	require.NoError(t, err)
	k, err = next.Key()
	require.NoError(t, err)
	require.Equal(t, 51, k)
}
