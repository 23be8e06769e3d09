package store

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

var _ Store[[]int, int] = (*hashFuncStore[[]int, int])(nil)

type bucketEntry[K, V any] struct {
	key K
	val V
}

// hashFuncStore buckets entries by a caller-supplied digest and resolves
// collisions with the caller-supplied equality. It serves keys that are not
// comparable, such as slices or structs holding them.
type hashFuncStore[K, V any] struct {
	hash    HashFunc[K]
	equal   EqualFunc[K]
	buckets map[uint64][]*bucketEntry[K, V]
	size    int
}

// NewHashFunc panics if hash or equal is nil.
func NewHashFunc[K, V any](hash HashFunc[K], equal EqualFunc[K]) Store[K, V] {
	if hash == nil || equal == nil {
		panic("store: hash and equal functions are required")
	}
	return &hashFuncStore[K, V]{
		hash:    hash,
		equal:   equal,
		buckets: make(map[uint64][]*bucketEntry[K, V]),
	}
}

// StringerHash digests the String() form of a key with xxhash.
func StringerHash[K fmt.Stringer](k K) uint64 {
	return xxhash.Sum64String(k.String())
}

// StringerEqual treats keys with the same String() form as the same key.
func StringerEqual[K fmt.Stringer](a, b K) bool {
	return a.String() == b.String()
}

func (s *hashFuncStore[K, V]) find(k K) (uint64, int) {
	h := s.hash(k)
	for i, e := range s.buckets[h] {
		if s.equal(e.key, k) {
			return h, i
		}
	}
	return h, -1
}

func (s *hashFuncStore[K, V]) Insert(k K, v V) (old V, replaced bool) {
	h, i := s.find(k)
	if i >= 0 {
		e := s.buckets[h][i]
		old, e.val = e.val, v
		return old, true
	}
	s.buckets[h] = append(s.buckets[h], &bucketEntry[K, V]{key: k, val: v})
	s.size++
	return old, false
}

func (s *hashFuncStore[K, V]) Get(k K) (V, bool) {
	if p, ok := s.GetMut(k); ok {
		return *p, true
	}
	var zero V
	return zero, false
}

func (s *hashFuncStore[K, V]) GetMut(k K) (*V, bool) {
	h, i := s.find(k)
	if i < 0 {
		return nil, false
	}
	return &s.buckets[h][i].val, true
}

func (s *hashFuncStore[K, V]) Delete(k K) {
	h, i := s.find(k)
	if i < 0 {
		return
	}
	bucket := s.buckets[h]
	if len(bucket) == 1 {
		delete(s.buckets, h)
	} else {
		s.buckets[h] = append(bucket[:i:i], bucket[i+1:]...)
	}
	s.size--
}

func (s *hashFuncStore[K, V]) Len() int {
	return s.size
}

func (s *hashFuncStore[K, V]) Range(fn func(K, V) bool) {
	for _, bucket := range s.buckets {
		for _, e := range bucket {
			if !fn(e.key, e.val) {
				return
			}
		}
	}
}
