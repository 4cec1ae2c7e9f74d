package navmodel

import "math"

// Tape records a forward pass as a flat, append-only list of scalar
// nodes. Because nodes can only reference earlier nodes, the tape order
// is already a topological order, so Backward can propagate gradients
// with a single reverse pass — no separate sort step required.
type Tape struct {
	value   []float64
	parents [][]int
	local   [][]float64
}

// NewTape returns an empty tape.
func NewTape() *Tape {
	return &Tape{}
}

func (t *Tape) push(v float64, parents []int, local []float64) Var {
	idx := len(t.value)
	t.value = append(t.value, v)
	t.parents = append(t.parents, parents)
	t.local = append(t.local, local)
	return Var{tape: t, idx: idx}
}

// Const places a value on the tape with no parents. Every node —
// whether a fixed input or an optimized parameter — starts this way;
// the tape does not distinguish the two, since Backward computes a
// gradient for every node regardless of whether the caller uses it.
func (t *Tape) Const(v float64) Var {
	return t.push(v, nil, nil)
}

// Backward seeds grad[root]=1 and propagates it to every node the root
// depends on, returning the gradient of root with respect to each node
// on the tape, indexed by node index.
func (t *Tape) Backward(root Var) []float64 {
	grad := make([]float64, len(t.value))
	grad[root.idx] = 1
	for i := len(t.value) - 1; i >= 0; i-- {
		g := grad[i]
		if g == 0 {
			continue
		}
		for k, p := range t.parents[i] {
			grad[p] += g * t.local[i][k]
		}
	}
	return grad
}

// Var is a scalar node on a Tape: a value plus enough bookkeeping to
// recover its gradient after a Backward pass.
type Var struct {
	tape *Tape
	idx  int
}

// Value returns the node's forward value.
func (a Var) Value() float64 { return a.tape.value[a.idx] }

// Add returns a+b.
func (a Var) Add(b Var) Var {
	return a.tape.push(a.Value()+b.Value(), []int{a.idx, b.idx}, []float64{1, 1})
}

// Sub returns a-b.
func (a Var) Sub(b Var) Var {
	return a.tape.push(a.Value()-b.Value(), []int{a.idx, b.idx}, []float64{1, -1})
}

// Mul returns a*b.
func (a Var) Mul(b Var) Var {
	return a.tape.push(a.Value()*b.Value(), []int{a.idx, b.idx}, []float64{b.Value(), a.Value()})
}

// Div returns a/b.
func (a Var) Div(b Var) Var {
	bv := b.Value()
	return a.tape.push(a.Value()/bv, []int{a.idx, b.idx}, []float64{1 / bv, -a.Value() / (bv * bv)})
}

// Neg returns -a.
func (a Var) Neg() Var {
	return a.tape.push(-a.Value(), []int{a.idx}, []float64{-1})
}

// AddConst returns a+c for a plain float64 c.
func (a Var) AddConst(c float64) Var {
	return a.tape.push(a.Value()+c, []int{a.idx}, []float64{1})
}

// MulConst returns a*c for a plain float64 c.
func (a Var) MulConst(c float64) Var {
	return a.tape.push(a.Value()*c, []int{a.idx}, []float64{c})
}

// Sin returns sin(a).
func (a Var) Sin() Var {
	return a.tape.push(math.Sin(a.Value()), []int{a.idx}, []float64{math.Cos(a.Value())})
}

// Cos returns cos(a).
func (a Var) Cos() Var {
	return a.tape.push(math.Cos(a.Value()), []int{a.idx}, []float64{-math.Sin(a.Value())})
}

// Tan returns tan(a).
func (a Var) Tan() Var {
	c := math.Cos(a.Value())
	return a.tape.push(math.Tan(a.Value()), []int{a.idx}, []float64{1 / (c * c)})
}

// Asin returns asin(a), clamping the input to [-1,1] to absorb roundoff
// at the domain edge.
func (a Var) Asin() Var {
	v := a.Value()
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	d := 1 / math.Sqrt(1-v*v)
	return a.tape.push(math.Asin(v), []int{a.idx}, []float64{d})
}

// Atan2 returns atan2(y, x).
func Atan2(y, x Var) Var {
	yv, xv := y.Value(), x.Value()
	denom := yv*yv + xv*xv
	return y.tape.push(math.Atan2(yv, xv), []int{y.idx, x.idx}, []float64{xv / denom, -yv / denom})
}

// Sqrt returns sqrt(a).
func (a Var) Sqrt() Var {
	s := math.Sqrt(a.Value())
	return a.tape.push(s, []int{a.idx}, []float64{0.5 / s})
}

// Log returns the natural log of a.
func (a Var) Log() Var {
	v := a.Value()
	return a.tape.push(math.Log(v), []int{a.idx}, []float64{1 / v})
}

// Square returns a*a.
func (a Var) Square() Var {
	v := a.Value()
	return a.tape.push(v*v, []int{a.idx}, []float64{2 * v})
}

// wrapPM180 reduces a (taken to be in degrees) into (-180, 180], with
// gradient 1: the wrap only ever shifts by a multiple of 360, so it is
// locally linear with unit slope everywhere except the boundary itself.
func (a Var) wrapPM180() Var {
	v := a.Value()
	for v > 180 {
		v -= 360
	}
	for v <= -180 {
		v += 360
	}
	return a.tape.push(v, []int{a.idx}, []float64{1})
}
