package domain

import (
	"fmt"
	"slices"
)

// MindMapNode is a positioned concept on a mind map.
type MindMapNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// MindMapEdge connects two nodes.
type MindMapEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// MindMap is the concept graph generated for one material.
type MindMap struct {
	MaterialID string        `json:"material_id"`
	Nodes      []MindMapNode `json:"nodes"`
	Edges      []MindMapEdge `json:"edges"`
}

// HasNode reports whether a node with id exists.
func (m *MindMap) HasNode(id string) bool {
	return slices.ContainsFunc(m.Nodes, func(n MindMapNode) bool { return n.ID == id })
}

// Connect appends an edge between two existing nodes. Connecting an already
// connected pair returns the existing edge.
func (m *MindMap) Connect(source, target string) (MindMapEdge, error) {
	for _, id := range []string{source, target} {
		if !m.HasNode(id) {
			return MindMapEdge{}, fmt.Errorf("%w: %w %q", ErrValidation, ErrUnknownNode, id)
		}
	}
	for _, e := range m.Edges {
		if e.Source == source && e.Target == target {
			return e, nil
		}
	}
	edge := MindMapEdge{
		ID:     "e" + source + "-" + target,
		Source: source,
		Target: target,
	}
	m.Edges = append(m.Edges, edge)
	return edge, nil
}

// Clone returns a deep copy of the map.
func (m *MindMap) Clone() *MindMap {
	return &MindMap{
		MaterialID: m.MaterialID,
		Nodes:      slices.Clone(m.Nodes),
		Edges:      slices.Clone(m.Edges),
	}
}
