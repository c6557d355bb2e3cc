// File: resolve.go
// Role: the recursive range resolver (spec.md §4.5).
package dependency

import (
	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

// Resolve computes the Dependency of the firing-th execution of sink's
// portIndex-th input, within the subgraph invocation identified by
// instance (pass 0 at the root graph or for any non-hierarchical call).
func Resolve(sink *pisdf.Vertex, firing int64, portIndex int, instance int64, env expr.Environment) (Dependency, error) {
	if portIndex < 0 || portIndex >= len(sink.In) || sink.In[portIndex] == nil {
		return Dependency{}, ErrNoSuchPort
	}
	edge := sink.In[portIndex]

	sinkRate, err := edge.SinkRate.EvalInt(env)
	if err != nil {
		return Dependency{}, rateErrf(sink.Name, err)
	}
	sourceRate, err := edge.SourceRate.EvalInt(env)
	if err != nil {
		return Dependency{}, rateErrf(edge.Source.Name, err)
	}

	if sourceRate <= 0 || sinkRate <= 0 {
		return Dependency{}, ErrNonPositiveRate
	}

	var delayLevel int64
	if edge.Delay != nil {
		delayLevel = edge.Delay.Level
	}

	low := firing * sinkRate
	high := (firing+1)*sinkRate - 1

	dep := Dependency{}

	initHigh := high
	if delayLevel-1 < initHigh {
		initHigh = delayLevel - 1
	}
	if low <= initHigh {
		dep.InitTokens = initHigh - low + 1
	}

	producedLow, producedHigh := low, high
	if producedLow < delayLevel {
		producedLow = delayLevel
	}
	if producedLow > producedHigh {
		return dep, nil // fully satisfied from delay content
	}

	lowFiring := (producedLow - delayLevel) / sourceRate
	highFiring := (producedHigh - delayLevel) / sourceRate

	source := edge.Source
	switch {
	case source.Subtype == pisdf.ExternInputInterface:
		dep.Ranges = append(dep.Ranges, FiringRange{Unresolved: true})
		return dep, nil

	case source.Subtype == pisdf.InputInterface:
		rng, err := ascend(source, lowFiring, highFiring, instance, env)
		if err != nil {
			return Dependency{}, err
		}
		dep.Ranges = append(dep.Ranges, rng...)
		return dep, nil

	case source.Subtype == pisdf.Graph_ && source.SubgraphRef != nil:
		rng, err := descend(source, edge.SourcePort, lowFiring, highFiring, env)
		if err != nil {
			return Dependency{}, err
		}
		dep.Ranges = append(dep.Ranges, rng...)
		return dep, nil

	default:
		dep.Ranges = append(dep.Ranges, FiringRange{Vertex: source, Instance: instance, Low: lowFiring, High: highFiring})
		return dep, nil
	}
}

// ascend crosses from an InputInterface up into the parent graph's
// corresponding edge, resolving one producer firing range per firing of
// the enclosing container vertex in [lowFiring, highFiring].
func ascend(iface *pisdf.Vertex, lowFiring, highFiring, instance int64, env expr.Environment) ([]FiringRange, error) {
	owner := iface.Owner
	if owner.ContainerVertex == nil {
		return nil, ErrMissingContainer
	}
	port := indexOf(owner.InputInterfaces, iface)
	if port < 0 {
		return nil, ErrNoMatchingInterface
	}

	var ranges []FiringRange
	for f := lowFiring; f <= highFiring; f++ {
		dep, err := Resolve(owner.ContainerVertex, f, port, instance, env)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, dep.Ranges...)
	}
	return ranges, nil
}

// descend crosses from a Graph_ vertex in the parent down into its
// subgraph's matching OutputInterface, resolving one consumption range
// per firing of the container vertex in [lowFiring, highFiring].
func descend(container *pisdf.Vertex, sourcePort int, lowFiring, highFiring int64, env expr.Environment) ([]FiringRange, error) {
	sub := container.SubgraphRef
	if sub == nil {
		return nil, ErrMissingSubgraph
	}
	if sourcePort < 0 || sourcePort >= len(sub.OutputInterfaces) {
		return nil, ErrNoMatchingInterface
	}
	iface := sub.OutputInterfaces[sourcePort]

	var ranges []FiringRange
	for instance := lowFiring; instance <= highFiring; instance++ {
		if len(iface.In) == 0 || iface.In[0] == nil {
			ranges = append(ranges, FiringRange{Vertex: iface, Instance: instance, Low: 0, High: 0})
			continue
		}
		dep, err := Resolve(iface, 0, 0, instance, env)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, dep.Ranges...)
	}
	return ranges, nil
}

func indexOf(vs []*pisdf.Vertex, target *pisdf.Vertex) int {
	for i, v := range vs {
		if v == target {
			return i
		}
	}
	return -1
}
