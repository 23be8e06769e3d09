package memo

import (
	"cmp"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/memo_ive_go/memo/internal/store"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// Func computes the value for key. It may call m.Lookup to reuse other keys.
type Func[K, V any] func(m *Memoizer[K, V], key K) V

// Predicate reports whether the result for key should be cached.
type Predicate[K any] func(key K) bool

// Memoizer caches the results of a Func by key.
// It is not safe for concurrent use.
type Memoizer[K, V any] struct {
	id        uuid.UUID
	fn        Func[K, V]
	predicate Predicate[K]
	logger    *zap.Logger

	slots store.Store[K, slot[V]]
	// inflight tracks keys being computed without a slot, so cycles through
	// keys the predicate opted out are still detected.
	inflight store.Store[K, struct{}]

	stats Stats
}

// NewHash returns a Memoizer backed by a hash store.
func NewHash[K comparable, V any](fn Func[K, V], opts ...Option) *Memoizer[K, V] {
	return newMemoizer(fn, store.NewHash[K, slot[V]](), store.NewHash[K, struct{}](), opts)
}

// NewHashFunc returns a Memoizer backed by a hash store for keys that are not
// comparable. Keys for which equal reports true must hash to the same digest.
func NewHashFunc[K, V any](
	fn Func[K, V],
	hash func(K) uint64,
	equal func(a, b K) bool,
	opts ...Option,
) *Memoizer[K, V] {
	return newMemoizer(
		fn,
		store.NewHashFunc[K, slot[V]](hash, equal),
		store.NewHashFunc[K, struct{}](hash, equal),
		opts,
	)
}

// NewOrd returns a Memoizer backed by a store ordered by the natural order of K.
func NewOrd[K cmp.Ordered, V any](fn Func[K, V], opts ...Option) *Memoizer[K, V] {
	return NewOrdFunc(fn, cmp.Compare[K], opts...)
}

// NewOrdFunc returns a Memoizer backed by a store ordered by compare, which
// must be a total order over K.
func NewOrdFunc[K, V any](fn Func[K, V], compare func(a, b K) int, opts ...Option) *Memoizer[K, V] {
	return newMemoizer(
		fn,
		store.NewOrdered[K, slot[V]](compare),
		store.NewOrdered[K, struct{}](compare),
		opts,
	)
}

// StringerHash hashes the String() form of a key, for use with NewHashFunc.
func StringerHash[K fmt.Stringer](k K) uint64 {
	return store.StringerHash(k)
}

// StringerEqual compares the String() forms of two keys, for use with NewHashFunc.
func StringerEqual[K fmt.Stringer](a, b K) bool {
	return store.StringerEqual(a, b)
}

func newMemoizer[K, V any](
	fn Func[K, V],
	slots store.Store[K, slot[V]],
	inflight store.Store[K, struct{}],
	opts []Option,
) *Memoizer[K, V] {
	if fn == nil {
		panic("memo: nil function")
	}
	o := newOptions(opts)
	m := &Memoizer[K, V]{
		id:       uuid.New(),
		fn:       fn,
		logger:   o.logger,
		slots:    slots,
		inflight: inflight,
	}
	m.logger = m.logger.With(zap.Stringer("memoizer", m.id))
	return m
}

// ID identifies this Memoizer in log output.
func (m *Memoizer[K, V]) ID() uuid.UUID {
	return m.id
}

// SetMemoPredicate replaces the memoization predicate. Keys for which it
// returns false are recomputed on every lookup. Entries already cached are
// kept. A nil predicate caches every key.
func (m *Memoizer[K, V]) SetMemoPredicate(predicate Predicate[K]) {
	m.predicate = predicate
}

// Lookup returns the value for key, computing it on a cache miss.
//
// Lookup panics with a *CycleError if key is already being computed further
// up the call stack, and with an error wrapping ErrInvariantViolation if the
// Memoizer's internal state is inconsistent.
func (m *Memoizer[K, V]) Lookup(key K) V {
	if s, ok := m.slots.Get(key); ok {
		f, done := asFinished[V](s)
		if !done {
			m.raiseCycle(key)
		}
		m.stats.Hits++
		return f.value
	}
	if _, ok := m.inflight.Get(key); ok {
		m.raiseCycle(key)
	}
	m.stats.Misses++

	persist := m.predicate == nil || m.predicate(key)
	completed := false
	if persist {
		if old, replaced := m.slots.Insert(key, inProgress[V]{}); replaced {
			m.slots.Insert(key, old)
			panic(invariantViolation("key %v already held a %T slot", key, old))
		}
	} else {
		m.inflight.Insert(key, struct{}{})
	}
	defer func() {
		if persist && !completed {
			// aborted computation: forget the marker so the key can be retried
			m.slots.Delete(key)
		}
		if !persist {
			m.inflight.Delete(key)
		}
	}()

	start := time.Now()
	v := m.fn(m, key)
	span := timespan.BetweenTimes(start, time.Now())
	m.stats.Computes++

	if persist {
		p, ok := m.slots.GetMut(key)
		if !ok {
			panic(invariantViolation("in-progress slot for key %v vanished", key))
		}
		*p = finished[V]{value: v, span: span}
	}
	completed = true

	m.logger.Debug("computed",
		zap.Any("key", key),
		zap.Duration("duration", span.Duration()),
		zap.Bool("persisted", persist),
	)
	return v
}

func (m *Memoizer[K, V]) raiseCycle(key K) {
	m.stats.Cycles++
	err := &CycleError{Key: key}
	m.logger.Error("circular dependency", zap.Any("key", key), zap.Error(err))
	panic(err)
}

// TryLookup is Lookup with circular dependencies and invariant violations
// reported as errors. Any other panic raised by the user function propagates.
func (m *Memoizer[K, V]) TryLookup(key K) (v V, err error) {
	defer helper.RecoverErrorIs(&err, ErrCircularDependency, ErrInvariantViolation)
	return m.Lookup(key), nil
}

// LookupImmut returns the cached value for key without computing anything.
// It reports false for keys never looked up, for keys still in progress and
// for keys the predicate opted out.
func (m *Memoizer[K, V]) LookupImmut(key K) (V, bool) {
	f, ok := m.finishedSlot(key)
	return f.value, ok
}

// ComputeSpan returns the time span of a cached key's computation.
func (m *Memoizer[K, V]) ComputeSpan(key K) (timespan.TimeSpan, bool) {
	f, ok := m.finishedSlot(key)
	return f.span, ok
}

func (m *Memoizer[K, V]) finishedSlot(key K) (finished[V], bool) {
	s, ok := m.slots.Get(key)
	if !ok {
		return finished[V]{}, false
	}
	return asFinished[V](s)
}

// Len returns the number of cached values.
func (m *Memoizer[K, V]) Len() int {
	n := 0
	m.Range(func(K, V) bool {
		n++
		return true
	})
	return n
}

// Range calls fn for every cached value until fn returns false. Memoizers
// built with NewOrd or NewOrdFunc visit keys in ascending order.
// fn must not call Lookup.
func (m *Memoizer[K, V]) Range(fn func(key K, value V) bool) {
	m.slots.Range(func(k K, s slot[V]) bool {
		if f, ok := asFinished[V](s); ok {
			return fn(k, f.value)
		}
		return true
	})
}

// Keys returns the keys of all cached values, in Range order.
func (m *Memoizer[K, V]) Keys() []K {
	var keys []K
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Stats returns lookup counters.
func (m *Memoizer[K, V]) Stats() Stats {
	return m.stats
}
