package store

import (
	"github.com/google/btree"
)

var _ Store[int, int] = (*orderedStore[int, int])(nil)

const btreeDegree = 32

type orderedEntry[K, V any] struct {
	key K
	val V
}

// orderedStore keeps entries in a B-tree sorted by key. Range visits keys in
// ascending order.
type orderedStore[K, V any] struct {
	tree *btree.BTreeG[*orderedEntry[K, V]]
}

// NewOrdered panics if compare is nil.
func NewOrdered[K, V any](compare CompareFunc[K]) Store[K, V] {
	if compare == nil {
		panic("store: compare function is required")
	}
	less := func(a, b *orderedEntry[K, V]) bool {
		return compare(a.key, b.key) < 0
	}
	return &orderedStore[K, V]{tree: btree.NewG(btreeDegree, less)}
}

func (s *orderedStore[K, V]) probe(k K) *orderedEntry[K, V] {
	return &orderedEntry[K, V]{key: k}
}

func (s *orderedStore[K, V]) Insert(k K, v V) (old V, replaced bool) {
	if e, ok := s.tree.Get(s.probe(k)); ok {
		old, e.val = e.val, v
		return old, true
	}
	s.tree.ReplaceOrInsert(&orderedEntry[K, V]{key: k, val: v})
	return old, false
}

func (s *orderedStore[K, V]) Get(k K) (V, bool) {
	if e, ok := s.tree.Get(s.probe(k)); ok {
		return e.val, true
	}
	var zero V
	return zero, false
}

func (s *orderedStore[K, V]) GetMut(k K) (*V, bool) {
	if e, ok := s.tree.Get(s.probe(k)); ok {
		return &e.val, true
	}
	return nil, false
}

func (s *orderedStore[K, V]) Delete(k K) {
	s.tree.Delete(s.probe(k))
}

func (s *orderedStore[K, V]) Len() int {
	return s.tree.Len()
}

func (s *orderedStore[K, V]) Range(fn func(K, V) bool) {
	s.tree.Ascend(func(e *orderedEntry[K, V]) bool {
		return fn(e.key, e.val)
	})
}
