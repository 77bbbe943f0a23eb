package diagram

import (
	"fmt"
	"slices"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/skillmatch"
)

// TableLayout draws the static domain table: skills, then matching domains,
// then their matching roles. It ignores advice.
type TableLayout struct {
	match func([]string) []skillmatch.DomainMatch
}

// NewTableLayout returns a TableLayout over the built-in catalog.
func NewTableLayout() *TableLayout {
	return &TableLayout{match: skillmatch.MatchDomains}
}

func (*TableLayout) Name() string { return LayoutTable }

const (
	tableSkillX  = 100
	tableDomainX = 400
	tableRoleX   = 700

	tableSkillPitch  = 100
	tableDomainPitch = 150
	tableRolePitch   = 80
	tableTop         = 100
)

func (l *TableLayout) Build(skills []string, _ *advice.Advice) Diagram {
	d := newDiagram(LayoutTable)
	if len(skills) == 0 {
		return d
	}

	for i, s := range skills {
		d.Nodes = append(d.Nodes, Node{
			ID:       skillID(i),
			Label:    s,
			Position: Position{X: tableSkillX, Y: tableTop + float64(i)*tableSkillPitch},
			Category: CategorySkill,
		})
	}

	row := 0
	for j, m := range l.match(skills) {
		domainID := fmt.Sprintf("domain-%d", j)
		d.Nodes = append(d.Nodes, Node{
			ID:       domainID,
			Label:    m.Domain,
			Position: Position{X: tableDomainX, Y: tableTop + float64(j)*tableDomainPitch},
			Category: CategoryDomain,
		})

		matched := m.Skills(skills)
		for i, s := range skills {
			if slices.Contains(matched, s) {
				d.Edges = append(d.Edges, Edge{
					ID:     fmt.Sprintf("edge-skill-%d-domain-%d", i, j),
					Source: skillID(i),
					Target: domainID,
					Style:  EdgeSolid,
				})
			}
		}

		for k, r := range m.Roles {
			roleID := fmt.Sprintf("domain-%d-role-%d", j, k)
			d.Nodes = append(d.Nodes, Node{
				ID:       roleID,
				Label:    r.Role.Name,
				Position: Position{X: tableRoleX, Y: tableTop + float64(row)*tableRolePitch},
				Category: CategoryRole,
			})
			d.Edges = append(d.Edges, Edge{
				ID:     fmt.Sprintf("edge-domain-%d-role-%d", j, k),
				Source: domainID,
				Target: roleID,
				Style:  EdgeSolid,
			})
			row++
		}
	}
	return d
}
