// Package scenario loads YAML-described synthetic class hierarchies and
// graph-construction scripts, and drives them against the typeflow engine
// without needing a real compiler frontend. It exists purely to exercise
// the engine end-to-end in tests and in the demonstration CLI; the core
// engine package never imports it.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a tiny class hierarchy plus a sequence of node,
// connection, and seeding operations to run against a fresh typeflow
// Engine, along with the final type sets expected on named nodes.
type Scenario struct {
	// Name is a human-readable label for this scenario.
	Name string `yaml:"name"`

	// Classes declares the synthetic class hierarchy: each entry's
	// Extends lists its immediate supertypes/interfaces.
	Classes []ClassDecl `yaml:"classes"`

	// Nodes declares the graph's vertices, each identified by a scenario-
	// local ID used by Connections, Seeds, and Expect.
	Nodes []NodeDecl `yaml:"nodes"`

	// Connections wires forward transitions between declared nodes.
	Connections []ConnectionDecl `yaml:"connections"`

	// Seeds propagate an initial batch of types into declared nodes
	// before the engine is run to quiescence.
	Seeds []SeedDecl `yaml:"seeds"`

	// Expect lists the final type set expected on each named node after
	// the engine reaches quiescence.
	Expect []ExpectDecl `yaml:"expect,omitempty"`
}

// ClassDecl declares one synthetic class and its immediate supertypes.
type ClassDecl struct {
	Name    string   `yaml:"name"`
	Extends []string `yaml:"extends,omitempty"`
}

// BoundDecl is the YAML form of a typeflow.Bound.
type BoundDecl struct {
	// Kind is one of "none" (default), "class", or "array".
	Kind  string     `yaml:"kind,omitempty"`
	Class string     `yaml:"class,omitempty"`
	Item  *BoundDecl `yaml:"item,omitempty"`
}

// NodeDecl declares one node.
type NodeDecl struct {
	ID    string     `yaml:"id"`
	Bound *BoundDecl `yaml:"bound,omitempty"`
}

// ConnectionDecl wires a forward transition from From to To, optionally
// narrowed by EdgeFilter.
type ConnectionDecl struct {
	From       string     `yaml:"from"`
	To         string     `yaml:"to"`
	EdgeFilter *BoundDecl `yaml:"edge_filter,omitempty"`
}

// SeedDecl propagates Types into Node.
type SeedDecl struct {
	Node  string   `yaml:"node"`
	Types []string `yaml:"types"`
}

// ExpectDecl records the expected final type set on Node, by class name.
type ExpectDecl struct {
	Node  string   `yaml:"node"`
	Types []string `yaml:"types"`
}

// Load reads and parses a Scenario from a YAML file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, c := range s.Connections {
		if !seen[c.From] {
			return fmt.Errorf("connection references unknown node %q", c.From)
		}
		if !seen[c.To] {
			return fmt.Errorf("connection references unknown node %q", c.To)
		}
	}
	for _, sd := range s.Seeds {
		if !seen[sd.Node] {
			return fmt.Errorf("seed references unknown node %q", sd.Node)
		}
	}
	for _, ex := range s.Expect {
		if !seen[ex.Node] {
			return fmt.Errorf("expectation references unknown node %q", ex.Node)
		}
	}
	return nil
}
