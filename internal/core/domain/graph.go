package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph holds the dependency edges between the components of a plan.
// Components install in list order, so every dependency must come first.
type Graph struct {
	components map[string]Component
	position   map[string]int
	order      []string
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		components: make(map[string]Component),
		position:   make(map[string]int),
	}
}

// AddComponent appends c to the install order.
// It returns an error if a component with the same ID already exists.
func (g *Graph) AddComponent(c Component) error {
	if _, exists := g.components[c.ID]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateComponent, "component declared twice"), "component", c.ID)
	}
	g.components[c.ID] = c
	g.position[c.ID] = len(g.order)
	g.order = append(g.order, c.ID)
	return nil
}

// Validate checks that every dependency exists, that there are no cycles, and
// that each dependency is installed before its dependents.
func (g *Graph) Validate() error {
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		visited[id] = 1
		path = append(path, id)

		for _, dep := range g.components[id].DependsOn {
			if _, exists := g.components[dep]; !exists {
				missing := zerr.With(zerr.Wrap(ErrMissingDependency, "unknown dependency"), "component", id)
				return zerr.With(missing, "dependency", dep)
			}
			switch visited[dep] {
			case 1:
				return cycleError(path, dep)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
			if g.position[dep] > g.position[id] {
				late := zerr.With(zerr.Wrap(ErrDependencyOrder, "dependency is installed after its dependent"), "component", id)
				return zerr.With(late, "dependency", dep)
			}
		}

		visited[id] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range g.order {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError constructs an error with cycle path metadata.
func cycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "components depend on each other"), "cycle", strings.Join(cycle, " -> "))
}
