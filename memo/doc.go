// Package memo provides a memoization cache for pure, possibly recursive functions.
//
// A Memoizer wraps a user function of the form
//
//	func(m *memo.Memoizer[K, V], key K) V
//
// The function computes the value for key and may call m.Lookup on other keys
// to reuse their cached results. Each key is computed at most once and its result
// is served from the cache afterwards.
//
// While a key is being computed it is marked in progress. Looking that key up again
// before its computation returns is a circular dependency: Lookup panics with a
// *CycleError instead of recursing forever. TryLookup reports the same failure as an error.
//
// The cache is backed either by a hash store (NewHash, NewHashFunc) or by a
// key-ordered store (NewOrd, NewOrdFunc). Both behave the same for lookups; the
// ordered store additionally ranges over its entries in ascending key order.
//
// A memoization predicate (SetMemoPredicate) can opt keys out of caching. Results
// for those keys are still returned but recomputed on every lookup.
//
// A Memoizer is not safe for concurrent use, and it never evicts entries.
//
// Example:
//
//	fib := memo.NewHash(func(m *memo.Memoizer[int, int], n int) int {
//	    if n < 2 {
//	        return n
//	    }
//	    return m.Lookup(n-1) + m.Lookup(n-2)
//	})
//	fib.Lookup(40) // 102334155
package memo
