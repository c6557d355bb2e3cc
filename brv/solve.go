// File: solve.go
// Role: the BRV solver entry point (spec.md §4.4).
package brv

import (
	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

// Solve computes and assigns the repetition vector for every vertex
// directly owned by g (it does not recurse into nested subgraphs; the SR
// transformer invokes Solve once per hierarchy level via its job
// worklist). env must resolve every rate/repeat expression reachable
// from g's edges — ordinarily g.Environment().
func Solve(g *pisdf.Graph, env expr.Environment) error {
	components := g.ConnectedComponents()
	for _, component := range components {
		if err := solveComponent(g, component, env); err != nil {
			return err
		}
	}
	return nil
}

func solveComponent(g *pisdf.Graph, component []int, env expr.Environment) error {
	if len(component) == 0 {
		return nil
	}
	ratios := make(map[int]fraction, len(component))
	root := component[0]
	ratios[root] = fraction{1, 1}

	queue := []int{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		v := g.Vertices[cur]

		for _, e := range v.Out {
			if e == nil {
				continue
			}
			srcRate, err := e.SourceRate.EvalInt(env)
			if err != nil {
				return rateErr(v.Name, err)
			}
			sinkRate, err := e.SinkRate.EvalInt(env)
			if err != nil {
				return rateErr(e.Sink.Name, err)
			}
			if err := checkPositive(srcRate, sinkRate); err != nil {
				return err
			}
			want := ratios[cur].mul(newFraction(srcRate, sinkRate))
			_, seen := ratios[e.Sink.Index]
			if err := assignOrCheck(ratios, e.Sink.Index, want, e.Sink.Name); err != nil {
				return err
			}
			if !seen {
				queue = append(queue, e.Sink.Index)
			}
		}
		for _, e := range v.In {
			if e == nil {
				continue
			}
			srcRate, err := e.SourceRate.EvalInt(env)
			if err != nil {
				return rateErr(e.Source.Name, err)
			}
			sinkRate, err := e.SinkRate.EvalInt(env)
			if err != nil {
				return rateErr(v.Name, err)
			}
			if err := checkPositive(srcRate, sinkRate); err != nil {
				return err
			}
			want := ratios[cur].mul(newFraction(sinkRate, srcRate))
			_, seen := ratios[e.Source.Index]
			if err := assignOrCheck(ratios, e.Source.Index, want, e.Source.Name); err != nil {
				return err
			}
			if !seen {
				queue = append(queue, e.Source.Index)
			}
		}
	}

	return finalize(g, component, ratios)
}

// assignOrCheck records want as the ratio for vertex idx, or verifies an
// already-recorded ratio matches it exactly.
func assignOrCheck(ratios map[int]fraction, idx int, want fraction, name string) error {
	if have, ok := ratios[idx]; ok {
		if have != want {
			return inconsistentf(name, have.num, want.num)
		}
		return nil
	}
	ratios[idx] = want
	return nil
}

func checkPositive(rates ...int64) error {
	for _, r := range rates {
		if r <= 0 {
			return ErrNonPositiveRate
		}
	}
	return nil
}

func rateErr(vertex string, cause error) error {
	return &rateError{vertex: vertex, cause: cause}
}

type rateError struct {
	vertex string
	cause  error
}

func (e *rateError) Error() string {
	return "brv: resolving rate for " + e.vertex + ": " + e.cause.Error()
}

func (e *rateError) Unwrap() error { return ErrRateUnresolved }

// finalize scales the component's rational ratios to the minimal
// positive integer vector, then rescales to honor any fixed-RV vertices
// (spec.md §4.4: Config actors, interfaces, and delay vertices have RV
// fixed at 1).
func finalize(g *pisdf.Graph, component []int, ratios map[int]fraction) error {
	var denomLCM int64 = 1
	for _, idx := range component {
		denomLCM = lcm(denomLCM, ratios[idx].den)
	}

	intVal := make(map[int]int64, len(component))
	var valGCD int64
	for _, idx := range component {
		r := ratios[idx]
		v := r.num * (denomLCM / r.den)
		intVal[idx] = v
		valGCD = gcd(valGCD, v)
	}
	if valGCD == 0 {
		valGCD = 1
	}
	for idx := range intVal {
		intVal[idx] /= valGCD
	}

	scale := fraction{1, 1}
	haveScale := false
	for _, idx := range component {
		v := g.Vertices[idx]
		want := pisdf.FixedRV(v.Subtype)
		if want == 0 {
			continue
		}
		s := newFraction(int64(want), intVal[idx])
		if !haveScale {
			scale = s
			haveScale = true
			continue
		}
		if s != scale {
			return inconsistentf(v.Name, intVal[idx], int64(want))
		}
	}

	for _, idx := range component {
		v := intVal[idx] * scale.num
		if v%scale.den != 0 {
			return inconsistentf(g.Vertices[idx].Name, intVal[idx], intVal[idx]*scale.num/scale.den)
		}
		g.Vertices[idx].RV = uint32(v / scale.den)
	}
	return nil
}
