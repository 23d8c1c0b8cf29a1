package scenario

import (
	"fmt"
	goruntime "runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/danko-david/typeflow/pkg/typeflow"
)

// Run builds a fresh Engine from s, wires every declared node and
// connection, seeds the declared types, runs the engine to quiescence,
// and compares the result against s.Expect. It mirrors, at a much smaller
// scale, the step-numbered orchestration a real reachability driver would
// perform: build the hierarchy, construct the graph, seed sources, run to
// a fixed point, then read back results for the next compilation phase.
func Run(s *Scenario, opts ...typeflow.Option) (*Report, error) {
	hierarchy := newMemoryHierarchy(s.Classes)
	engine := typeflow.New(hierarchy, nil, opts...)

	nodes := make(map[string]*typeflow.Node, len(s.Nodes))
	for _, decl := range s.Nodes {
		bound, err := resolveBound(decl.Bound)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", decl.ID, err)
		}
		n := engine.CreateNode(bound)
		n.SetTag(decl.ID)
		nodes[decl.ID] = n
	}

	for _, c := range s.Connections {
		edgeFilter, err := resolveEdgeFilter(engine, c.EdgeFilter)
		if err != nil {
			return nil, fmt.Errorf("connection %s->%s: %w", c.From, c.To, err)
		}
		if err := nodes[c.From].Connect(nodes[c.To], edgeFilter); err != nil {
			return nil, fmt.Errorf("connect %s->%s: %w", c.From, c.To, err)
		}
	}

	for _, seed := range s.Seeds {
		n := nodes[seed.Node]
		types := make([]*typeflow.Type, 0, len(seed.Types))
		for _, name := range seed.Types {
			types = append(types, engine.Registry().Intern(name))
		}
		n.PropagateBatch(types)
	}

	if err := engine.Run(); err != nil {
		return nil, fmt.Errorf("propagate to quiescence: %w", err)
	}

	return buildReport(s, nodes), nil
}

// RunAll runs every scenario in scenarios concurrently, each against its own
// Engine, bounded to runtime.NumCPU() in flight at a time. It returns one
// report per input scenario, in the same order, or the first error
// encountered; an error does not cancel the other scenarios, which still
// run to completion. Grounded on the teacher's pattern of a
// goroutine-per-unit errgroup.Group with SetLimit for bounded fan-out.
func RunAll(scenarios []*Scenario, opts ...typeflow.Option) ([]*Report, error) {
	reports := make([]*Report, len(scenarios))

	var g errgroup.Group
	g.SetLimit(goruntime.NumCPU())
	for i, s := range scenarios {
		g.Go(func() error {
			report, err := Run(s, opts...)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func resolveBound(decl *BoundDecl) (*typeflow.Bound, error) {
	if decl == nil {
		return nil, nil
	}
	switch decl.Kind {
	case "", "none":
		return nil, nil
	case "class":
		if decl.Class == "" {
			return nil, fmt.Errorf("class bound requires a class name")
		}
		return typeflow.ClassBound(decl.Class), nil
	case "array":
		item, err := resolveBound(decl.Item)
		if err != nil {
			return nil, err
		}
		return typeflow.ArrayBound(item), nil
	default:
		return nil, fmt.Errorf("unknown bound kind %q", decl.Kind)
	}
}

// resolveEdgeFilter turns a BoundDecl into a *typeflow.Filter for use as a
// transition's edge filter, sharing engine's own filter cache so an edge
// filter and a node filter declared with the same class bound are the same
// *Filter instance. Only "class" (and absent) bounds make sense on an edge;
// an "array" edge filter is rejected since spec §3 defines edge filters as
// plain predicates over types, not projecting descriptors.
func resolveEdgeFilter(engine *typeflow.Engine, decl *BoundDecl) (*typeflow.Filter, error) {
	bound, err := resolveBound(decl)
	if err != nil {
		return nil, err
	}
	if bound != nil && bound.Kind == typeflow.BoundArray {
		return nil, fmt.Errorf("edge filter must be a class bound, got %q", decl.Kind)
	}
	return engine.Filter(bound)
}

func buildReport(s *Scenario, nodes map[string]*typeflow.Node) *Report {
	report := &Report{Name: s.Name, Nodes: make(map[string]NodeResult, len(s.Expect)), Passed: true}

	expectByNode := make(map[string][]string, len(s.Expect))
	for _, ex := range s.Expect {
		expectByNode[ex.Node] = ex.Types
	}

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := nodes[id]
		got := append([]string(nil), n.Types()...)
		sort.Strings(got)

		expected, declared := expectByNode[id]
		if !declared {
			report.Nodes[id] = NodeResult{Node: id, Types: got, Matched: true}
			continue
		}
		wantSorted := append([]string(nil), expected...)
		sort.Strings(wantSorted)
		matched := slices.Equal(got, wantSorted)
		if !matched {
			report.Passed = false
			report.Details = append(report.Details, fmt.Sprintf("node %q: want %v, got %v", id, wantSorted, got))
		}
		report.Nodes[id] = NodeResult{Node: id, Types: got, Expected: wantSorted, Matched: matched}
	}
	return report
}
