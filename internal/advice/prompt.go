package advice

import (
	"bytes"
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("career-advice").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`I have the following skills: {{join .Skills ", "}}.

Based on these skills, suggest:
1. Career roles that fit my current skill set
2. Skills I should learn next to grow in those roles
3. Two or three career paths, each with a title, a short description and concrete steps
4. A short paragraph of industry insights for these roles

Respond with JSON only, no markdown and no commentary, in exactly this shape:
{
  "careerRoles": ["Role 1", "Role 2"],
  "skillsToLearn": ["Skill 1", "Skill 2"],
  "careerPaths": [
    {"title": "Path title", "description": "What this path involves", "steps": ["Step 1", "Step 2"]}
  ],
  "industryInsights": "Current demand, trends and salary outlook"
}`))

// BuildPrompt returns the career-advice prompt for the given skills.
func BuildPrompt(skills []string) string {
	var buf bytes.Buffer
	// The template only ranges over strings; Execute cannot fail.
	_ = promptTemplate.Execute(&buf, struct{ Skills []string }{skills})
	return buf.String()
}
