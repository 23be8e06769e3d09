package memo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/on-the-ground/memo_ive_go/shared/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fib(m *memo.Memoizer[int, uint64], n int) uint64 {
	if n < 2 {
		return uint64(n)
	}
	return m.Lookup(n-1) + m.Lookup(n-2)
}

func constructors[V any](fn memo.Func[int, V], opts ...memo.Option) map[string]*memo.Memoizer[int, V] {
	return map[string]*memo.Memoizer[int, V]{
		"hash": memo.NewHash(fn, opts...),
		"ord":  memo.NewOrd(fn, opts...),
	}
}

func TestLookup_Fibonacci(t *testing.T) {
	for name, m := range constructors(fib) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, uint64(6765), m.Lookup(20))
			assert.Equal(t, uint64(832040), m.Lookup(30))
			assert.Equal(t, uint64(102334155), m.Lookup(40))
		})
	}
}

func TestLookup_ComputesEachKeyOnce(t *testing.T) {
	calls := map[int]int{}
	counted := func(m *memo.Memoizer[int, uint64], n int) uint64 {
		calls[n]++
		return fib(m, n)
	}
	for name, m := range constructors(counted) {
		t.Run(name, func(t *testing.T) {
			clear(calls)
			first := m.Lookup(25)
			second := m.Lookup(25)

			assert.Equal(t, first, second)
			for n, c := range calls {
				assert.Equalf(t, 1, c, "key %d computed %d times", n, c)
			}
			assert.Len(t, calls, 26)

			stats := m.Stats()
			assert.Equal(t, uint64(26), stats.Misses)
			assert.Equal(t, uint64(26), stats.Computes)
			assert.Equal(t, uint64(23+1), stats.Hits)
		})
	}
}

func TestLookup_DetectsCycle(t *testing.T) {
	// 0 -> 1 -> 2 -> 0
	cyclic := func(m *memo.Memoizer[int, int], n int) int {
		return m.Lookup((n+1)%3) + 1
	}
	for name, m := range constructors(cyclic, memo.WithLogger(logging.NewTestLogger())) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic on circular dependency")
				err, ok := r.(error)
				require.True(t, ok)

				var cycleErr *memo.CycleError
				require.ErrorAs(t, err, &cycleErr)
				assert.Equal(t, 0, cycleErr.Key)
				assert.ErrorIs(t, err, memo.ErrCircularDependency)
				assert.Equal(t, "circular dependency on key 0", err.Error())
			}()
			m.Lookup(0)
		})
	}
}

func TestLookup_SelfDependency(t *testing.T) {
	self := func(m *memo.Memoizer[int, int], n int) int {
		return m.Lookup(n)
	}
	for name, m := range constructors(self) {
		t.Run(name, func(t *testing.T) {
			_, err := m.TryLookup(5)
			assert.ErrorIs(t, err, memo.ErrCircularDependency)
			assert.Equal(t, uint64(1), m.Stats().Cycles)
		})
	}
}

func TestTryLookup_RollsBackAbortedKeys(t *testing.T) {
	broken := true
	fn := func(m *memo.Memoizer[int, int], n int) int {
		switch {
		case n == 0:
			return 0
		case n == 2 && broken:
			return m.Lookup(1) + m.Lookup(3)
		default:
			return m.Lookup(n-1) + 1
		}
	}
	for name, m := range constructors(fn) {
		t.Run(name, func(t *testing.T) {
			broken = true
			_, err := m.TryLookup(3)
			require.ErrorIs(t, err, memo.ErrCircularDependency)

			for _, k := range []int{2, 3} {
				_, ok := m.LookupImmut(k)
				assert.Falsef(t, ok, "key %d should not be cached after abort", k)
			}
			v, ok := m.LookupImmut(1)
			assert.True(t, ok, "keys finished before the abort stay cached")
			assert.Equal(t, 1, v)

			broken = false
			v, err = m.TryLookup(3)
			require.NoError(t, err)
			assert.Equal(t, 3, v)
		})
	}
}

func TestTryLookup_OtherPanicsPropagate(t *testing.T) {
	m := memo.NewHash(func(*memo.Memoizer[int, int], int) int {
		panic("user failure")
	})
	assert.PanicsWithValue(t, "user failure", func() { _, _ = m.TryLookup(1) })

	_, ok := m.LookupImmut(1)
	assert.False(t, ok)
	assert.PanicsWithValue(t, "user failure", func() { m.Lookup(1) }, "key must be retried, not reported as a cycle")
}

func TestSetMemoPredicate_OptsOutEvenKeys(t *testing.T) {
	square := func(_ *memo.Memoizer[int, int], n int) int { return n * n }
	for name, m := range constructors(square) {
		t.Run(name, func(t *testing.T) {
			m.SetMemoPredicate(func(n int) bool { return n%2 != 0 })

			for k := 0; k < 10; k++ {
				assert.Equal(t, k*k, m.Lookup(k))
			}
			for k := 0; k < 10; k++ {
				v, ok := m.LookupImmut(k)
				if k%2 == 0 {
					assert.Falsef(t, ok, "even key %d must not be cached", k)
				} else {
					assert.Truef(t, ok, "odd key %d must be cached", k)
					assert.Equal(t, k*k, v)
				}
			}
			assert.Equal(t, 5, m.Len())
		})
	}
}

func TestSetMemoPredicate_RecomputesOptedOutKeys(t *testing.T) {
	calls := 0
	m := memo.NewHash(func(_ *memo.Memoizer[string, int], s string) int {
		calls++
		return len(s)
	})
	m.SetMemoPredicate(func(string) bool { return false })

	m.Lookup("abc")
	m.Lookup("abc")
	assert.Equal(t, 2, calls)

	m.SetMemoPredicate(nil)
	m.Lookup("abc")
	m.Lookup("abc")
	assert.Equal(t, 3, calls)
}

func TestSetMemoPredicate_ConsultedOnlyOnMiss(t *testing.T) {
	double := func(_ *memo.Memoizer[int, int], n int) int { return 2 * n }
	for name, m := range constructors(double) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 6, m.Lookup(3))

			consulted := 0
			m.SetMemoPredicate(func(int) bool {
				consulted++
				return true
			})

			assert.Equal(t, 6, m.Lookup(3)) // hit
			v, ok := m.LookupImmut(3)
			assert.True(t, ok)
			assert.Equal(t, 6, v)
			_, ok = m.LookupImmut(8)
			assert.False(t, ok)
			assert.Zero(t, consulted, "hits and LookupImmut must not consult the predicate")

			assert.Equal(t, 16, m.Lookup(8)) // miss
			assert.Equal(t, 1, consulted)
		})
	}
}

func TestSetMemoPredicate_NotRetroactive(t *testing.T) {
	m := memo.NewOrd(func(_ *memo.Memoizer[int, int], n int) int { return -n })
	m.Lookup(4)
	m.SetMemoPredicate(func(int) bool { return false })

	v, ok := m.LookupImmut(4)
	assert.True(t, ok)
	assert.Equal(t, -4, v)
}

func TestLookup_CycleThroughOptedOutKey(t *testing.T) {
	cyclic := func(m *memo.Memoizer[int, int], n int) int {
		return m.Lookup(1 - n)
	}
	for name, m := range constructors(cyclic) {
		t.Run(name, func(t *testing.T) {
			m.SetMemoPredicate(func(int) bool { return false })
			_, err := m.TryLookup(0)

			var cycleErr *memo.CycleError
			require.ErrorAs(t, err, &cycleErr)
			assert.Equal(t, 0, cycleErr.Key)
		})
	}
}

func TestLookupImmut_NeverComputes(t *testing.T) {
	calls := 0
	var seenInProgress []bool
	fn := func(m *memo.Memoizer[int, int], n int) int {
		calls++
		_, ok := m.LookupImmut(n)
		seenInProgress = append(seenInProgress, ok)
		return n + 1
	}
	for name, m := range constructors(fn) {
		t.Run(name, func(t *testing.T) {
			calls = 0
			seenInProgress = nil

			_, ok := m.LookupImmut(1)
			assert.False(t, ok)
			assert.Zero(t, calls)

			assert.Equal(t, 2, m.Lookup(1))
			assert.Equal(t, []bool{false}, seenInProgress, "in-progress key must read as absent")

			v, ok := m.LookupImmut(1)
			assert.True(t, ok)
			assert.Equal(t, 2, v)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestBackendEquivalence(t *testing.T) {
	collatz := func(m *memo.Memoizer[int, int], n int) int {
		switch {
		case n == 1:
			return 0
		case n%2 == 0:
			return m.Lookup(n/2) + 1
		default:
			return m.Lookup(3*n+1) + 1
		}
	}
	hash := memo.NewHash(collatz)
	ord := memo.NewOrd(collatz)
	for _, n := range []int{27, 1, 97, 6, 27, 871, 2, 97} {
		assert.Equalf(t, hash.Lookup(n), ord.Lookup(n), "collatz steps for %d", n)
	}
	assert.ElementsMatch(t, hash.Keys(), ord.Keys())
	assert.Equal(t, hash.Len(), ord.Len())
}

func TestRange_OrderedIsAscending(t *testing.T) {
	m := memo.NewOrd(func(_ *memo.Memoizer[string, int], s string) int { return len(s) })
	for _, s := range []string{"kiwi", "apple", "fig", "banana"} {
		m.Lookup(s)
	}

	assert.Equal(t, []string{"apple", "banana", "fig", "kiwi"}, m.Keys())

	var lens []int
	m.Range(func(_ string, v int) bool {
		lens = append(lens, v)
		return len(lens) < 2
	})
	assert.Equal(t, []int{5, 6}, lens)
}

type point struct {
	coords []int
}

func (p point) String() string { return fmt.Sprint(p.coords) }

func TestNewHashFunc_NonComparableKeys(t *testing.T) {
	calls := 0
	m := memo.NewHashFunc(func(_ *memo.Memoizer[point, int], p point) int {
		calls++
		sum := 0
		for _, c := range p.coords {
			sum += c
		}
		return sum
	}, memo.StringerHash[point], memo.StringerEqual[point])

	assert.Equal(t, 6, m.Lookup(point{coords: []int{1, 2, 3}}))
	assert.Equal(t, 6, m.Lookup(point{coords: []int{1, 2, 3}}))
	assert.Equal(t, 1, calls)
}

func TestNewOrdFunc_CustomOrder(t *testing.T) {
	desc := func(a, b int) int { return b - a }
	m := memo.NewOrdFunc(func(_ *memo.Memoizer[int, int], n int) int { return n }, desc)
	for _, n := range []int{2, 9, 4} {
		m.Lookup(n)
	}
	assert.Equal(t, []int{9, 4, 2}, m.Keys())
}

func TestComputeSpan(t *testing.T) {
	m := memo.NewHash(fib)
	_, ok := m.ComputeSpan(10)
	assert.False(t, ok)

	m.Lookup(10)
	span, ok := m.ComputeSpan(10)
	require.True(t, ok)
	assert.False(t, span.Start().IsZero())
	assert.GreaterOrEqual(t, int64(span.Duration()), int64(0))
}

func TestConstructor_Panics(t *testing.T) {
	assert.Panics(t, func() { memo.NewHash[int, int](nil) })
}

func TestKeys_OnlyFinished(t *testing.T) {
	var keysDuring []int
	fn := func(m *memo.Memoizer[int, int], n int) int {
		if n == 0 {
			keysDuring = m.Keys()
			return 0
		}
		return m.Lookup(n-1) + 1
	}
	m := memo.NewOrd(fn)
	m.Lookup(3)

	assert.Empty(t, keysDuring, "in-progress keys are not listed")
	assert.Equal(t, []int{0, 1, 2, 3}, m.Keys())
	assert.Equal(t, 4, m.Len())
}

func TestMemoizer_ID(t *testing.T) {
	a := memo.NewHash(fib)
	b := memo.NewHash(fib)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestCycleError_Unwrap(t *testing.T) {
	err := error(&memo.CycleError{Key: "x"})
	assert.True(t, errors.Is(err, memo.ErrCircularDependency))
	assert.False(t, errors.Is(err, memo.ErrInvariantViolation))
}
