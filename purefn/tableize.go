package purefn

import (
	"cmp"
	"fmt"

	"github.com/on-the-ground/memo_ive_go/memo"
)

// Tableize memoizes a recursive pure function over a hash table.
func Tableize[I comparable, O any](
	pureFn func(self func(I) O, i I) O,
) func(I) O {
	return memo.NewHash(recur(pureFn)).Lookup
}

// TableizeOrdered memoizes a recursive pure function over an ordered table.
func TableizeOrdered[I cmp.Ordered, O any](
	pureFn func(self func(I) O, i I) O,
) func(I) O {
	return memo.NewOrd(recur(pureFn)).Lookup
}

// TableizeStringer memoizes a recursive pure function whose input is not
// comparable. Inputs with the same String() form share a table entry.
func TableizeStringer[I fmt.Stringer, O any](
	pureFn func(self func(I) O, i I) O,
) func(I) O {
	return memo.NewHashFunc(recur(pureFn), memo.StringerHash[I], memo.StringerEqual[I]).Lookup
}

// TableizeI1O1 is Tableize under the arity-named form.
func TableizeI1O1[I1 comparable, O1 any](
	pureFn func(self func(I1) O1, i1 I1) O1,
) func(I1) O1 {
	return Tableize(pureFn)
}

type args2[I1, I2 comparable] struct {
	i1 I1
	i2 I2
}

type args3[I1, I2, I3 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
}

type args4[I1, I2, I3, I4 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
	i4 I4
}

type result[O1, O2 any] struct {
	o1 O1
	o2 O2
}

// TableizeI2O1 memoizes a recursive pure function of two inputs.
func TableizeI2O1[I1, I2 comparable, O1 any](
	pureFn func(self func(I1, I2) O1, i1 I1, i2 I2) O1,
) func(I1, I2) O1 {
	var lookup func(args2[I1, I2]) O1
	self := func(i1 I1, i2 I2) O1 {
		return lookup(args2[I1, I2]{i1, i2})
	}
	lookup = Tableize(func(_ func(args2[I1, I2]) O1, a args2[I1, I2]) O1 {
		return pureFn(self, a.i1, a.i2)
	})
	return self
}

// TableizeI3O1 memoizes a recursive pure function of three inputs.
func TableizeI3O1[I1, I2, I3 comparable, O1 any](
	pureFn func(self func(I1, I2, I3) O1, i1 I1, i2 I2, i3 I3) O1,
) func(I1, I2, I3) O1 {
	var lookup func(args3[I1, I2, I3]) O1
	self := func(i1 I1, i2 I2, i3 I3) O1 {
		return lookup(args3[I1, I2, I3]{i1, i2, i3})
	}
	lookup = Tableize(func(_ func(args3[I1, I2, I3]) O1, a args3[I1, I2, I3]) O1 {
		return pureFn(self, a.i1, a.i2, a.i3)
	})
	return self
}

// TableizeI4O1 memoizes a recursive pure function of four inputs.
func TableizeI4O1[I1, I2, I3, I4 comparable, O1 any](
	pureFn func(self func(I1, I2, I3, I4) O1, i1 I1, i2 I2, i3 I3, i4 I4) O1,
) func(I1, I2, I3, I4) O1 {
	var lookup func(args4[I1, I2, I3, I4]) O1
	self := func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return lookup(args4[I1, I2, I3, I4]{i1, i2, i3, i4})
	}
	lookup = Tableize(func(_ func(args4[I1, I2, I3, I4]) O1, a args4[I1, I2, I3, I4]) O1 {
		return pureFn(self, a.i1, a.i2, a.i3, a.i4)
	})
	return self
}

// TableizeI1O2 memoizes a recursive pure function with two outputs.
func TableizeI1O2[I1 comparable, O1, O2 any](
	pureFn func(self func(I1) (O1, O2), i1 I1) (O1, O2),
) func(I1) (O1, O2) {
	var lookup func(I1) result[O1, O2]
	self := func(i1 I1) (O1, O2) {
		r := lookup(i1)
		return r.o1, r.o2
	}
	lookup = Tableize(func(_ func(I1) result[O1, O2], i1 I1) result[O1, O2] {
		o1, o2 := pureFn(self, i1)
		return result[O1, O2]{o1, o2}
	})
	return self
}

// TableizeI2O2 memoizes a recursive pure function of two inputs with two outputs.
func TableizeI2O2[I1, I2 comparable, O1, O2 any](
	pureFn func(self func(I1, I2) (O1, O2), i1 I1, i2 I2) (O1, O2),
) func(I1, I2) (O1, O2) {
	var lookup func(args2[I1, I2]) result[O1, O2]
	self := func(i1 I1, i2 I2) (O1, O2) {
		r := lookup(args2[I1, I2]{i1, i2})
		return r.o1, r.o2
	}
	lookup = Tableize(func(_ func(args2[I1, I2]) result[O1, O2], a args2[I1, I2]) result[O1, O2] {
		o1, o2 := pureFn(self, a.i1, a.i2)
		return result[O1, O2]{o1, o2}
	})
	return self
}

// TableizeI3O2 memoizes a recursive pure function of three inputs with two outputs.
func TableizeI3O2[I1, I2, I3 comparable, O1, O2 any](
	pureFn func(self func(I1, I2, I3) (O1, O2), i1 I1, i2 I2, i3 I3) (O1, O2),
) func(I1, I2, I3) (O1, O2) {
	var lookup func(args3[I1, I2, I3]) result[O1, O2]
	self := func(i1 I1, i2 I2, i3 I3) (O1, O2) {
		r := lookup(args3[I1, I2, I3]{i1, i2, i3})
		return r.o1, r.o2
	}
	lookup = Tableize(func(_ func(args3[I1, I2, I3]) result[O1, O2], a args3[I1, I2, I3]) result[O1, O2] {
		o1, o2 := pureFn(self, a.i1, a.i2, a.i3)
		return result[O1, O2]{o1, o2}
	})
	return self
}

// TableizeI4O2 memoizes a recursive pure function of four inputs with two outputs.
func TableizeI4O2[I1, I2, I3, I4 comparable, O1, O2 any](
	pureFn func(self func(I1, I2, I3, I4) (O1, O2), i1 I1, i2 I2, i3 I3, i4 I4) (O1, O2),
) func(I1, I2, I3, I4) (O1, O2) {
	var lookup func(args4[I1, I2, I3, I4]) result[O1, O2]
	self := func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, O2) {
		r := lookup(args4[I1, I2, I3, I4]{i1, i2, i3, i4})
		return r.o1, r.o2
	}
	lookup = Tableize(func(_ func(args4[I1, I2, I3, I4]) result[O1, O2], a args4[I1, I2, I3, I4]) result[O1, O2] {
		o1, o2 := pureFn(self, a.i1, a.i2, a.i3, a.i4)
		return result[O1, O2]{o1, o2}
	})
	return self
}

func recur[I, O any](pureFn func(self func(I) O, i I) O) memo.Func[I, O] {
	return func(m *memo.Memoizer[I, O], i I) O {
		return pureFn(m.Lookup, i)
	}
}
