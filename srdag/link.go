// File: link.go
// Role: per-edge resolution of concrete clone sequences and the
// token-matching Fork/Join insertion pass.
package srdag

import (
	"fmt"
	"strconv"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

// tokenUnit is one element of a producer or consumer token stream: a
// concrete cloned vertex, the port it uses for this edge, and how many
// tokens it contributes or demands per firing.
type tokenUnit struct {
	vertex *pisdf.Vertex
	port   int
	rate   int64
}

func constExpr(n int64) (*expr.Expression, error) {
	return expr.Parse(strconv.FormatInt(n, 10), expr.EnvFunc(func(string) (int64, bool, error) {
		return 0, false, expr.ErrUnknownSymbol
	}))
}

// resolveProducer expands v's output stream at port within job's clone
// namespace. When v is a Graph_ vertex it descends into each of its
// child Jobs' matching OutputInterface and continues resolving from
// whatever feeds that interface inside the subgraph.
func (t *transformer) resolveProducer(job *Job, v *pisdf.Vertex, port int, rate int64) ([]tokenUnit, error) {
	if v.Subtype == pisdf.Graph_ {
		var units []tokenUnit
		for _, cj := range t.children[job][v] {
			if port >= len(cj.Proto.OutputInterfaces) {
				return nil, fmt.Errorf("%w: %q port %d", ErrNoMatchingInterface, v.Name, port)
			}
			iface := cj.Proto.OutputInterfaces[port]
			if len(iface.In) == 0 || iface.In[0] == nil {
				continue
			}
			inner := iface.In[0]
			innerRate, err := inner.SourceRate.EvalInt(t.env)
			if err != nil {
				return nil, err
			}
			sub, err := t.resolveProducer(cj, inner.Source, inner.SourcePort, innerRate)
			if err != nil {
				return nil, err
			}
			units = append(units, sub...)
		}
		return units, nil
	}
	clones := t.clones[job][v]
	units := make([]tokenUnit, len(clones))
	for i, c := range clones {
		units[i] = tokenUnit{vertex: c, port: port, rate: rate}
	}
	return units, nil
}

// resolveConsumer is the symmetric descent for the sink side, through
// InputInterface ports.
func (t *transformer) resolveConsumer(job *Job, v *pisdf.Vertex, port int, rate int64) ([]tokenUnit, error) {
	if v.Subtype == pisdf.Graph_ {
		var units []tokenUnit
		for _, cj := range t.children[job][v] {
			if port >= len(cj.Proto.InputInterfaces) {
				return nil, fmt.Errorf("%w: %q port %d", ErrNoMatchingInterface, v.Name, port)
			}
			iface := cj.Proto.InputInterfaces[port]
			if len(iface.Out) == 0 || iface.Out[0] == nil {
				continue
			}
			inner := iface.Out[0]
			innerRate, err := inner.SinkRate.EvalInt(t.env)
			if err != nil {
				return nil, err
			}
			sub, err := t.resolveConsumer(cj, inner.Sink, inner.SinkPort, innerRate)
			if err != nil {
				return nil, err
			}
			units = append(units, sub...)
		}
		return units, nil
	}
	clones := t.clones[job][v]
	units := make([]tokenUnit, len(clones))
	for i, c := range clones {
		units[i] = tokenUnit{vertex: c, port: port, rate: rate}
	}
	return units, nil
}

// linkEdge resolves e's endpoints to concrete token streams within job,
// splices in Init/End actors for a delay, and reconciles the streams via
// Fork/Join insertion.
func (t *transformer) linkEdge(job *Job, e *pisdf.Edge) error {
	srcRate, err := e.SourceRate.EvalInt(t.env)
	if err != nil {
		return err
	}
	sinkRate, err := e.SinkRate.EvalInt(t.env)
	if err != nil {
		return err
	}

	producers, err := t.resolveProducer(job, e.Source, e.SourcePort, srcRate)
	if err != nil {
		return err
	}
	consumers, err := t.resolveConsumer(job, e.Sink, e.SinkPort, sinkRate)
	if err != nil {
		return err
	}
	if len(producers) == 0 || len(consumers) == 0 {
		return nil // interface chain terminates unconnected; nothing to realize
	}

	if e.Source == e.Sink {
		// a self-loop's delay must strictly exceed the consumer's
		// per-firing demand: delay == rate still leaves firing 0 with
		// nothing produced yet to read (Open Question 2).
		if e.Delay == nil || e.Delay.Level == 0 {
			return ErrIllegalLoop
		}
		if e.Delay.Level <= sinkRate {
			return fmt.Errorf("%w: level %d <= consumer demand %d", ErrInsufficientDelay, e.Delay.Level, sinkRate)
		}
	}

	if e.Delay != nil && e.Delay.Level > 0 {
		direct := e.Delay.Persistent && len(producers) == 1 && len(consumers) == 1
		if !direct {
			t.initEndCounter++
			level := e.Delay.Level
			initV, err := pisdf.NewInitVertex(t.sr, fmt.Sprintf("%s-init_%d", job.Prefix, t.initEndCounter), e.Delay)
			if err != nil {
				return err
			}
			endV, err := pisdf.NewEndVertex(t.sr, fmt.Sprintf("%s-end_%d", job.Prefix, t.initEndCounter), e.Delay)
			if err != nil {
				return err
			}
			producers = append([]tokenUnit{{vertex: initV, port: 0, rate: level}}, producers...)
			consumers = append(consumers, tokenUnit{vertex: endV, port: 0, rate: level})
		}
	}

	return linkTokenStreams(t.sr, producers, consumers)
}

// chunk is one exact token transfer discovered by the merge walk: a
// slice of producers[prodIdx]'s output feeding consumers[consIdx]'s
// input.
type chunk struct {
	prodIdx, consIdx int
	size             int64
}

func mergeChunks(producers, consumers []tokenUnit) ([]chunk, error) {
	var chunks []chunk
	pi, ci := 0, 0
	pRem, cRem := producers[0].rate, consumers[0].rate
	for pi < len(producers) && ci < len(consumers) {
		take := pRem
		if cRem < take {
			take = cRem
		}
		if take > 0 {
			chunks = append(chunks, chunk{prodIdx: pi, consIdx: ci, size: take})
		}
		pRem -= take
		cRem -= take
		if pRem == 0 {
			pi++
			if pi < len(producers) {
				pRem = producers[pi].rate
			}
		}
		if cRem == 0 {
			ci++
			if ci < len(consumers) {
				cRem = consumers[ci].rate
			}
		}
	}
	if pi != len(producers) || ci != len(consumers) {
		var prodTotal, consTotal int64
		for _, p := range producers {
			prodTotal += p.rate
		}
		for _, c := range consumers {
			consTotal += c.rate
		}
		return nil, tokenMismatchf("edge", prodTotal, consTotal)
	}
	return chunks, nil
}

// linkTokenStreams reconciles producers and consumers, one real edge per
// chunk, inserting a Fork for any producer split across more than one
// chunk and a Join for any consumer assembled from more than one chunk.
func linkTokenStreams(sr *pisdf.Graph, producers, consumers []tokenUnit) error {
	chunks, err := mergeChunks(producers, consumers)
	if err != nil {
		return err
	}

	prodChunkIdx := make(map[int][]int, len(producers))
	consChunkIdx := make(map[int][]int, len(consumers))
	for idx, c := range chunks {
		prodChunkIdx[c.prodIdx] = append(prodChunkIdx[c.prodIdx], idx)
		consChunkIdx[c.consIdx] = append(consChunkIdx[c.consIdx], idx)
	}

	type endpoint struct {
		vertex *pisdf.Vertex
		port   int
	}
	sourceOf := make(map[int]endpoint, len(chunks))
	for pIdx, chunkIdxs := range prodChunkIdx {
		p := producers[pIdx]
		if len(chunkIdxs) == 1 {
			sourceOf[chunkIdxs[0]] = endpoint{p.vertex, p.port}
			continue
		}
		fork, err := pisdf.NewVertex(sr, fmt.Sprintf("%s-fork", p.vertex.Name), pisdf.Fork)
		if err != nil {
			return err
		}
		rateExpr, err := constExpr(p.rate)
		if err != nil {
			return err
		}
		if _, err := pisdf.NewEdge(sr, p.vertex, p.port, rateExpr, fork, 0, rateExpr); err != nil {
			return err
		}
		for outPort, cIdx := range chunkIdxs {
			sourceOf[cIdx] = endpoint{fork, outPort}
		}
	}

	sinkOf := make(map[int]endpoint, len(chunks))
	for cIdx, chunkIdxs := range consChunkIdx {
		c := consumers[cIdx]
		if len(chunkIdxs) == 1 {
			sinkOf[chunkIdxs[0]] = endpoint{c.vertex, c.port}
			continue
		}
		join, err := pisdf.NewVertex(sr, fmt.Sprintf("%s-join", c.vertex.Name), pisdf.Join)
		if err != nil {
			return err
		}
		rateExpr, err := constExpr(c.rate)
		if err != nil {
			return err
		}
		if _, err := pisdf.NewEdge(sr, join, 0, rateExpr, c.vertex, c.port, rateExpr); err != nil {
			return err
		}
		for inPort, idx := range chunkIdxs {
			sinkOf[idx] = endpoint{join, inPort}
		}
	}

	for idx, ch := range chunks {
		src := sourceOf[idx]
		dst := sinkOf[idx]
		rateExpr, err := constExpr(ch.size)
		if err != nil {
			return err
		}
		if _, err := pisdf.NewEdge(sr, src.vertex, src.port, rateExpr, dst.vertex, dst.port, rateExpr); err != nil {
			return err
		}
	}
	return nil
}
