// File: store.go
// Role: Thread-safe catalog of Parameters, escalating lookup to
// ancestor graphs, and Value resolution per the delegation rules of
// spec.md §3/§4.2.
//
// Concurrency: a single sync.RWMutex guards both the per-graph catalog
// and the parent-graph links, mirroring core.Graph's approach of one
// lock per logically-related group of fields (here: the whole store,
// since writes are rare and confined to the master goroutine per §5).
package param

import (
	"fmt"
	"sync"

	"github.com/spiderflow/pisdf/expr"
)

// Store holds every Parameter for every graph in one PiSDF application,
// plus the parent-graph links used to escalate name lookups.
type Store struct {
	mu       sync.RWMutex
	catalogs map[GraphID]map[string]*Parameter
	parents  map[GraphID]GraphID
	hasParen map[GraphID]bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		catalogs: make(map[GraphID]map[string]*Parameter),
		parents:  make(map[GraphID]GraphID),
		hasParen: make(map[GraphID]bool),
	}
}

// SetParent records that graph's parameter lookups escalate to parent
// when not found locally. Called once, at subgraph construction.
func (s *Store) SetParent(graph, parent GraphID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parents[graph] = parent
	s.hasParen[graph] = true
}

func (s *Store) catalogFor(graph GraphID) map[string]*Parameter {
	c, ok := s.catalogs[graph]
	if !ok {
		c = make(map[string]*Parameter)
		s.catalogs[graph] = c
	}
	return c
}

// CreateStatic adds a Static parameter with a fixed value.
func (s *Store) CreateStatic(graph GraphID, name string, value int64) (*Parameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.catalogFor(graph)
	if _, exists := c[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrNameDuplicate, name)
	}
	p := &Parameter{Name: name, Owner: graph, Kind: Static, staticValue: value}
	c[name] = p
	return p, nil
}

// CreateDynamic adds a Dynamic parameter with no value yet assigned.
func (s *Store) CreateDynamic(graph GraphID, name string) (*Parameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.catalogFor(graph)
	if _, exists := c[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrNameDuplicate, name)
	}
	p := &Parameter{Name: name, Owner: graph, Kind: Dynamic}
	c[name] = p
	return p, nil
}

// CreateInherited adds a parameter that delegates its value to parent
// at evaluation time.
func (s *Store) CreateInherited(graph GraphID, name string, parent *Parameter) (*Parameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.catalogFor(graph)
	if _, exists := c[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrNameDuplicate, name)
	}
	p := &Parameter{Name: name, Owner: graph, Kind: Inherited, inherited: parent}
	c[name] = p
	return p, nil
}

// CreateDerived adds a parameter computed from exprText over operands.
// exprText is parsed immediately against an Environment built from
// operands (so referencing a name not among operands fails fast with
// expr.ErrUnknownSymbol, wrapped).
func (s *Store) CreateDerived(graph GraphID, name, exprText string, operands []*Parameter) (*Parameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.catalogFor(graph)
	if _, exists := c[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrNameDuplicate, name)
	}
	byName := make(map[string]*Parameter, len(operands))
	for _, op := range operands {
		byName[op.Name] = op
	}
	env := expr.EnvFunc(func(n string) (int64, bool, error) {
		op, ok := byName[n]
		if !ok {
			return 0, false, expr.ErrUnknownSymbol
		}
		v, verr := s.valueLocked(op)
		return v, op.Kind == Dynamic, verr
	})
	parsed, err := expr.Parse(exprText, env)
	if err != nil {
		return nil, fmt.Errorf("param: derived %q: %w", name, err)
	}
	p := &Parameter{Name: name, Owner: graph, Kind: Derived, derivedExpr: parsed, derivedOperands: operands}
	c[name] = p
	return p, nil
}

// SetValue assigns value to a Dynamic parameter. Any other Kind fails
// with ErrNotDynamic.
func (s *Store) SetValue(p *Parameter, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Kind != Dynamic {
		return fmt.Errorf("%w: %q is %s", ErrNotDynamic, p.Name, p.Kind)
	}
	p.dynCurrent = value
	p.dynResolved = true
	return nil
}

// Lookup finds name within graph, escalating to ancestors when absent.
func (s *Store) Lookup(graph GraphID, name string) (*Parameter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(graph, name)
}

func (s *Store) lookupLocked(graph GraphID, name string) (*Parameter, error) {
	for {
		if c, ok := s.catalogs[graph]; ok {
			if p, ok := c[name]; ok {
				return p, nil
			}
		}
		parent, ok := s.parents[graph]
		if !ok {
			return nil, notFoundf(graph, name)
		}
		graph = parent
	}
}

// Value resolves p's current value following the delegation rules:
// Static returns its fixed value; Dynamic requires dynResolved (else
// ErrValueUndefined); Inherited delegates to its ancestor; Derived
// evaluates its expression over its operands' current values.
func (s *Store) Value(p *Parameter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.valueLocked(p)
}

func (s *Store) valueLocked(p *Parameter) (int64, error) {
	switch p.Kind {
	case Static:
		return p.staticValue, nil
	case Dynamic:
		if !p.dynResolved {
			return 0, fmt.Errorf("%w: %q", ErrValueUndefined, p.Name)
		}
		return p.dynCurrent, nil
	case Inherited:
		return s.valueLocked(p.inherited)
	case Derived:
		env := expr.EnvFunc(func(n string) (int64, bool, error) {
			for _, op := range p.derivedOperands {
				if op.Name == n {
					v, err := s.valueLocked(op)
					return v, op.Kind == Dynamic, err
				}
			}
			return 0, false, expr.ErrUnknownSymbol
		})
		return p.derivedExpr.EvalInt(env)
	default:
		return 0, fmt.Errorf("param: unknown kind %d", p.Kind)
	}
}

// IsResolved reports whether every Dynamic parameter directly owned by
// graph has been written at least once in the current iteration.
//
// This covers the parameter closure reachable through graph's own
// catalog (including Dynamic operands of its Derived parameters);
// parameters owned by *nested* subgraphs are resolved independently, as
// each subgraph is its own Job in the SR transformer's worklist
// (spec.md §4.6).
func (s *Store) IsResolved(graph GraphID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.catalogs[graph]
	if !ok {
		return true
	}
	for _, p := range c {
		if !s.dynamicClosureResolved(p, make(map[*Parameter]bool)) {
			return false
		}
	}
	return true
}

func (s *Store) dynamicClosureResolved(p *Parameter, seen map[*Parameter]bool) bool {
	if seen[p] {
		return true
	}
	seen[p] = true
	switch p.Kind {
	case Dynamic:
		return p.dynResolved
	case Inherited:
		return s.dynamicClosureResolved(p.inherited, seen)
	case Derived:
		for _, op := range p.derivedOperands {
			if !s.dynamicClosureResolved(op, seen) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Environment returns an expr.Environment that resolves names within
// graph via escalated Lookup and delegated Value.
func (s *Store) Environment(graph GraphID) expr.Environment {
	return expr.EnvFunc(func(name string) (int64, bool, error) {
		s.mu.RLock()
		p, err := s.lookupLocked(graph, name)
		if err != nil {
			s.mu.RUnlock()
			return 0, false, err
		}
		v, verr := s.valueLocked(p)
		dynamic := p.Kind == Dynamic || (p.Kind == Inherited && p.inherited.Kind == Dynamic)
		s.mu.RUnlock()
		return v, dynamic, verr
	})
}
