package store

var _ Store[string, int] = (*hashStore[string, int])(nil)

// hashStore keeps entries in a Go map. Iteration order is undefined.
type hashStore[K comparable, V any] struct {
	m map[K]*V
}

func NewHash[K comparable, V any]() Store[K, V] {
	return &hashStore[K, V]{m: make(map[K]*V)}
}

func (s *hashStore[K, V]) Insert(k K, v V) (old V, replaced bool) {
	if p, ok := s.m[k]; ok {
		old, *p = *p, v
		return old, true
	}
	s.m[k] = &v
	return old, false
}

func (s *hashStore[K, V]) Get(k K) (V, bool) {
	if p, ok := s.m[k]; ok {
		return *p, true
	}
	var zero V
	return zero, false
}

func (s *hashStore[K, V]) GetMut(k K) (*V, bool) {
	p, ok := s.m[k]
	return p, ok
}

func (s *hashStore[K, V]) Delete(k K) {
	delete(s.m, k)
}

func (s *hashStore[K, V]) Len() int {
	return len(s.m)
}

func (s *hashStore[K, V]) Range(fn func(K, V) bool) {
	for k, p := range s.m {
		if !fn(k, *p) {
			return
		}
	}
}
