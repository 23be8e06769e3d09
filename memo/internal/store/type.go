package store

// Store is the keyed storage behind a Memoizer.
// Keys are unique. Implementations are not safe for concurrent use.
type Store[K, V any] interface {
	// Insert stores v under k. If k was already present, the old value is
	// overwritten and returned with replaced set to true.
	Insert(k K, v V) (old V, replaced bool)
	// Get returns a copy of the value stored under k.
	Get(k K) (V, bool)
	// GetMut returns a pointer to the value stored under k for in-place update.
	// The pointer is valid until k is deleted.
	GetMut(k K) (*V, bool)
	// Delete removes k. Deleting an absent key is a no-op.
	Delete(k K)
	Len() int
	// Range calls fn for every entry until fn returns false.
	Range(fn func(K, V) bool)
}

// CompareFunc reports a total order over keys: negative if a < b,
// zero if a == b, positive if a > b.
type CompareFunc[K any] func(a, b K) int

// HashFunc digests a key. Equal keys must produce equal digests.
type HashFunc[K any] func(K) uint64

// EqualFunc reports whether two keys are the same key.
type EqualFunc[K any] func(a, b K) bool
