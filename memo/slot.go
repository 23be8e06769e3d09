package memo

import (
	"fmt"

	"github.com/rickb777/date/v2/timespan"
)

// slot is a sealed sum type: either inProgress or finished.
// The marker method mentions V so slot[int] and slot[string] are distinct types.
type slot[V any] interface {
	slot(V)
}

// inProgress marks a key whose computation has started but not returned.
type inProgress[V any] struct{}

func (inProgress[V]) slot(V) {}

// finished holds a computed value and the time span its computation took.
type finished[V any] struct {
	value V
	span  timespan.TimeSpan
}

func (finished[V]) slot(V) {}

func matchSlot[V, T any](
	s slot[V],
	inProgressCallback func() T,
	finishedCallback func(finished[V]) T,
) T {
	switch s := s.(type) {
	case inProgress[V]:
		return inProgressCallback()
	case finished[V]:
		return finishedCallback(s)
	}
	panic(fmt.Sprintf("exhaustive match fallback, slot type: %T", s))
}

// asFinished reports false for an in-progress slot.
func asFinished[V any](s slot[V]) (finished[V], bool) {
	type res struct {
		f  finished[V]
		ok bool
	}
	r := matchSlot[V, res](s,
		func() res { return res{} },
		func(f finished[V]) res { return res{f: f, ok: true} },
	)
	return r.f, r.ok
}
