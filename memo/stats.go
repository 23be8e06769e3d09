package memo

// Stats counts lookups since the Memoizer was created.
type Stats struct {
	// Hits is the number of lookups served from a finished slot.
	Hits uint64
	// Misses is the number of lookups that found no slot.
	Misses uint64
	// Computes is the number of user function calls that returned.
	Computes uint64
	// Cycles is the number of circular dependencies detected.
	Cycles uint64
}
