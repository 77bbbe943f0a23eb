// Package diagram turns skills and advice into positioned nodes and edges.
package diagram

import (
	"math/rand/v2"

	"github.com/abhisek/careerpath/internal/advice"
)

// Category tags a node for styling.
type Category string

const (
	CategorySkill  Category = "skill"
	CategoryRole   Category = "role"
	CategoryLearn  Category = "learn"
	CategoryDomain Category = "domain"
)

// EdgeStyle is how an edge is drawn.
type EdgeStyle string

const (
	EdgeSolid  EdgeStyle = "solid"
	EdgeDashed EdgeStyle = "dashed"
)

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one box on the canvas.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
	Category Category `json:"category"`
}

// Edge connects two nodes by ID.
type Edge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Style  EdgeStyle `json:"style"`
}

// Diagram is the full render input. Nodes and Edges are never nil.
type Diagram struct {
	Layout string `json:"layout"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
}

// Layout names.
const (
	LayoutAI    = "ai"
	LayoutTable = "table"
)

// Layout computes a diagram from its inputs. Implementations are pure apart
// from their injected jitter source.
type Layout interface {
	Name() string
	Build(skills []string, adv *advice.Advice) Diagram
}

// Jitter supplies values in [0, 1). *rand.Rand satisfies it.
type Jitter interface {
	Float64() float64
}

type globalJitter struct{}

func (globalJitter) Float64() float64 { return rand.Float64() }

// Builder selects a layout per call.
type Builder struct {
	AI    Layout
	Table Layout
}

// NewBuilder returns a Builder with the default layouts. A nil jitter uses
// the global random source.
func NewBuilder(j Jitter) *Builder {
	return &Builder{
		AI:    NewAILayout(j),
		Table: NewTableLayout(),
	}
}

var defaultBuilder = NewBuilder(nil)

// Build uses the default builder.
func Build(skills []string, adv *advice.Advice, loading bool) Diagram {
	return defaultBuilder.Build(skills, adv, loading)
}

// Build lays out the AI response when one is available and not an error,
// and the static domain table otherwise.
func (b *Builder) Build(skills []string, adv *advice.Advice, loading bool) Diagram {
	return b.Select(adv, loading).Build(skills, adv)
}

// Select returns the layout Build would use.
func (b *Builder) Select(adv *advice.Advice, loading bool) Layout {
	if adv != nil && adv.Error == "" && !loading {
		return b.AI
	}
	return b.Table
}

func newDiagram(layout string) Diagram {
	return Diagram{Layout: layout, Nodes: []Node{}, Edges: []Edge{}}
}

// NodesOf returns the nodes of one category in diagram order.
func (d Diagram) NodesOf(c Category) []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.Category == c {
			out = append(out, n)
		}
	}
	return out
}

// Node returns the node with the given ID.
func (d Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Targets returns the IDs reachable by one edge from id, in edge order.
func (d Diagram) Targets(id string) []string {
	var out []string
	for _, e := range d.Edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}
