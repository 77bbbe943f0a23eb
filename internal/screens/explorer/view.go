package explorer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/shell"
	"github.com/abhisek/careerpath/internal/skillmatch"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

const (
	placeholderText = "Enter your skills to get career recommendations."
	loadingText     = "Analyzing your skills..."
)

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderInputRow())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Separate skills with commas."))
	b.WriteString("\n\n")

	recs := s.renderRecommendations()
	if !s.machine.ShowVisualization() {
		b.WriteString(components.Panel("Career Recommendations", recs, width-2))
		return b.String()
	}

	viz := renderDiagram(s.machine.Diagram(s.builder), s.machine.Skills())
	if layout.IsCompactWidth(width) {
		b.WriteString(components.Panel("Career Recommendations", recs, width-2))
		b.WriteString("\n")
		b.WriteString(components.Panel("Skills to Careers", viz, width-2))
		return b.String()
	}

	lw, rw := components.SplitWidths(width - 2)
	b.WriteString(components.SideBySide(
		components.Panel("Skills to Careers", viz, lw),
		components.Panel("Career Recommendations", recs, rw),
	))
	return b.String()
}

func (s *Screen) renderInputRow() string {
	analyze := components.NewButton("Analyze", "enter", s.machine.CanSubmit())
	if s.machine.Loading() {
		analyze.Label = "Analyzing..."
	}
	row := "  " + s.input.View() + "  " + analyze.View()
	if s.machine.ShowReset() {
		row += " " + components.NewButton("Reset", "ctrl+r", true).View()
	}
	return row
}

func (s *Screen) renderRecommendations() string {
	switch s.machine.Phase() {
	case shell.PhaseIdle:
		return theme.Hint.Render(placeholderText)
	case shell.PhaseLoading:
		return theme.Subtitle.Render(spinnerFrames[s.frame] + " " + loadingText)
	}
	return renderAdvice(s.machine.Advice())
}

// renderAdvice formats the recommendations panel body. Empty sections are
// skipped.
func renderAdvice(adv *advice.Advice) string {
	if adv == nil {
		return theme.Hint.Render(placeholderText)
	}
	if adv.Error != "" {
		return theme.ErrorText.Render("Error: " + adv.Error)
	}

	var sections []string
	if len(adv.CareerRoles) > 0 {
		sections = append(sections, section("Recommended Roles", bullets(adv.CareerRoles)))
	}
	if len(adv.SkillsToLearn) > 0 {
		sections = append(sections, section("Skills to Develop", bullets(adv.SkillsToLearn)))
	}
	if len(adv.CareerPaths) > 0 {
		var paths []string
		for _, p := range adv.CareerPaths {
			paths = append(paths, renderPath(p))
		}
		sections = append(sections, section("Career Paths", strings.Join(paths, "\n\n")))
	}
	if adv.IndustryInsights != "" {
		sections = append(sections, section("Industry Insights", theme.Body.Render(adv.IndustryInsights)))
	}
	if adv.ParseError && adv.RawResponse != "" && adv.RawResponse != adv.IndustryInsights {
		sections = append(sections, section("Response", theme.Body.Render(adv.RawResponse)))
	}
	if len(sections) == 0 {
		return theme.Hint.Render("No recommendations were returned for these skills.")
	}
	return strings.Join(sections, "\n\n")
}

func renderPath(p advice.CareerPath) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Title))
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(p.Description))
	}
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, step)
	}
	return b.String()
}

func section(title, body string) string {
	return theme.SectionTitle.Render(title) + "\n" + body
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "  • " + it
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}

// renderDiagram draws the diagram as adjacency lines: each node with
// outgoing edges followed by its targets. Solid edges use an arrow, dashed
// ones a dotted arrow.
func renderDiagram(d diagram.Diagram, skills []string) string {
	if len(d.Nodes) == 0 {
		return theme.Hint.Render("No skills to visualize.")
	}

	type fanout struct {
		style   diagram.EdgeStyle
		targets []string
	}
	order := []string{}
	out := map[string]*fanout{}
	linked := map[string]bool{}
	for _, e := range d.Edges {
		f, ok := out[e.Source]
		if !ok {
			f = &fanout{style: e.Style}
			out[e.Source] = f
			order = append(order, e.Source)
		}
		if n, ok := d.Node(e.Target); ok {
			f.targets = append(f.targets, styleNode(n))
		}
		linked[e.Source] = true
		linked[e.Target] = true
	}

	var lines []string
	lines = append(lines, theme.Subtitle.Render(summary(d)))
	for _, id := range order {
		n, _ := d.Node(id)
		arrow := " ──▶ "
		if out[id].style == diagram.EdgeDashed {
			arrow = " ┄┄▶ "
		}
		lines = append(lines, styleNode(n)+theme.EdgeLine.Render(arrow)+strings.Join(out[id].targets, ", "))
	}

	var loose []string
	for _, n := range d.Nodes {
		if !linked[n.ID] {
			loose = append(loose, styleNode(n))
		}
	}
	if len(loose) > 0 {
		lines = append(lines, theme.Hint.Render("unlinked: ")+strings.Join(loose, ", "))
	}

	if d.Layout == diagram.LayoutTable {
		if fit := renderDomainFit(skills); fit != "" {
			lines = append(lines, "", theme.SectionTitle.Render("Domain fit"), fit)
		}
	}
	return strings.Join(lines, "\n")
}

func summary(d diagram.Diagram) string {
	var parts []string
	for _, c := range []struct {
		cat  diagram.Category
		name string
	}{
		{diagram.CategorySkill, "skills"},
		{diagram.CategoryDomain, "domains"},
		{diagram.CategoryRole, "roles"},
		{diagram.CategoryLearn, "to learn"},
	} {
		if n := len(d.NodesOf(c.cat)); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, c.name))
		}
	}
	label := "domain table"
	if d.Layout == diagram.LayoutAI {
		label = "AI recommendations"
	}
	return label + ": " + strings.Join(parts, " · ")
}

func styleNode(n diagram.Node) string {
	switch n.Category {
	case diagram.CategorySkill:
		return theme.NodeSkill.Render(n.Label)
	case diagram.CategoryRole:
		return theme.NodeRole.Render(n.Label)
	case diagram.CategoryLearn:
		return theme.NodeLearn.Render(n.Label)
	case diagram.CategoryDomain:
		return theme.NodeDomain.Render(n.Label)
	default:
		return n.Label
	}
}

// renderDomainFit shows, per matched domain, how many of its roles the
// skills reach.
func renderDomainFit(skills []string) string {
	var bars []string
	for _, m := range skillmatch.MatchDomains(skills) {
		d, err := skillmatch.GetDomain(m.Domain)
		if err != nil || len(d.Roles) == 0 {
			continue
		}
		ratio := float64(len(m.Roles)) / float64(len(d.Roles))
		label := fmt.Sprintf("%-22s", m.Domain)
		bars = append(bars, components.NewProgressBar(label, ratio, fmt.Sprintf("%d/%d", len(m.Roles), len(d.Roles)), 44).View())
	}
	return strings.Join(bars, "\n")
}
