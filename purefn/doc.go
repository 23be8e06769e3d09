// Package purefn provides closure-style memoization for pure functions on top of memo.Memoizer.
//
// Tableize is not just a utility to add memoization.
// Tableize is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be treated as a lazy table?"
//
// A tableized function receives itself as the first argument, so recursive calls
// go through the table:
//
//	fib := purefn.Tableize(func(fib func(int) int, n int) int {
//	    if n < 2 {
//	        return n
//	    }
//	    return fib(n-1) + fib(n-2)
//	})
//
// Features:
//   - Tableize, TableizeOrdered: single-input memoizers over hash or ordered tables.
//   - TableizeI2O1, TableizeI1O2: two inputs or two outputs.
//   - TableizeStringer: keys that are not comparable but implement fmt.Stringer.
//   - Circular recursion panics with *memo.CycleError instead of overflowing the stack.
//
// WARNING: Do not use Tableize on impure functions (e.g., those depending on time, I/O, etc).
// The returned functions are not safe for concurrent use.
package purefn
