package skillmatch

// Level is the experience level a career domain typically expects.
type Level string

const (
	LevelEntry  Level = "entry"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// AllLevels returns all levels in display order.
func AllLevels() []Level {
	return []Level{LevelEntry, LevelMid, LevelSenior}
}

// LevelDisplayName returns a human-readable name for a level.
func LevelDisplayName(l Level) string {
	switch l {
	case LevelEntry:
		return "Entry Level"
	case LevelMid:
		return "Mid Level"
	case LevelSenior:
		return "Senior Level"
	default:
		return string(l)
	}
}

// Role is a job title plus the skill keywords that make it relevant.
type Role struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Domain groups related roles under one career area.
type Domain struct {
	Name  string `yaml:"name" json:"name"`
	Level Level  `yaml:"level" json:"level"`
	Roles []Role `yaml:"roles" json:"roles"`
}

// RoleMatch is a role that is relevant to the user's skills, with the user
// skills that matched it in input order.
type RoleMatch struct {
	Role    Role     `json:"role"`
	Matched []string `json:"matched"`
}

// DomainMatch is a domain with at least one relevant role.
type DomainMatch struct {
	Domain string      `json:"domain"`
	Level  Level       `json:"level"`
	Roles  []RoleMatch `json:"roles"`
}

// Skills returns the union of user skills matched by any role of the
// domain, in input order without duplicates.
func (m DomainMatch) Skills(userSkills []string) []string {
	hit := make(map[string]bool)
	for _, r := range m.Roles {
		for _, s := range r.Matched {
			hit[s] = true
		}
	}
	var out []string
	seen := make(map[string]bool)
	for _, s := range userSkills {
		if hit[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
