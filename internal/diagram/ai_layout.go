package diagram

import (
	"fmt"

	"github.com/abhisek/careerpath/internal/advice"
)

// AILayout places skills, suggested roles and skills to learn in three
// columns with bounded jitter so labels do not line up into a wall.
type AILayout struct {
	jitter Jitter
}

// NewAILayout returns an AILayout. A nil jitter uses the global source.
func NewAILayout(j Jitter) *AILayout {
	if j == nil {
		j = globalJitter{}
	}
	return &AILayout{jitter: j}
}

func (*AILayout) Name() string { return LayoutAI }

// column describes one column: base coordinates, row pitch and the jitter
// range on each axis.
type column struct {
	x, y, pitch, jx, jy float64
}

var (
	skillColumn = column{x: 100, y: 100, pitch: 120, jx: 40, jy: 30}
	roleColumn  = column{x: 350, y: 200, pitch: 130, jx: 80, jy: 60}
	learnColumn = column{x: 900, y: 100, pitch: 125, jx: 50, jy: 35}
)

func (l *AILayout) place(c column, i int) Position {
	return Position{
		X: c.x + l.jitter.Float64()*c.jx,
		Y: c.y + float64(i)*c.pitch + l.jitter.Float64()*c.jy,
	}
}

// Build lays out adv. Skills connect to role (i mod roles); each skill to
// learn hangs off role (i mod roles) with a dashed edge.
func (l *AILayout) Build(skills []string, adv *advice.Advice) Diagram {
	d := newDiagram(LayoutAI)
	if len(skills) == 0 {
		return d
	}

	for i, s := range skills {
		d.Nodes = append(d.Nodes, Node{
			ID:       skillID(i),
			Label:    s,
			Position: l.place(skillColumn, i),
			Category: CategorySkill,
		})
	}
	if adv == nil {
		return d
	}

	roles := adv.CareerRoles
	for i, r := range roles {
		d.Nodes = append(d.Nodes, Node{
			ID:       fmt.Sprintf("role-%d", i),
			Label:    r,
			Position: l.place(roleColumn, i),
			Category: CategoryRole,
		})
	}
	if len(roles) > 0 {
		for i := range skills {
			r := i % len(roles)
			d.Edges = append(d.Edges, Edge{
				ID:     fmt.Sprintf("edge-skill-%d-role-%d", i, r),
				Source: skillID(i),
				Target: fmt.Sprintf("role-%d", r),
				Style:  EdgeSolid,
			})
		}
	}

	for i, s := range adv.SkillsToLearn {
		d.Nodes = append(d.Nodes, Node{
			ID:       fmt.Sprintf("learn-%d", i),
			Label:    "Learn: " + s,
			Position: l.place(learnColumn, i),
			Category: CategoryLearn,
		})
	}
	if len(roles) > 0 {
		for i := range adv.SkillsToLearn {
			r := i % len(roles)
			d.Edges = append(d.Edges, Edge{
				ID:     fmt.Sprintf("edge-role-%d-learn-%d", r, i),
				Source: fmt.Sprintf("role-%d", r),
				Target: fmt.Sprintf("learn-%d", i),
				Style:  EdgeDashed,
			})
		}
	}
	return d
}

func skillID(i int) string {
	return fmt.Sprintf("skill-%d", i)
}
