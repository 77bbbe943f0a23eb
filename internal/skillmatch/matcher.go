package skillmatch

import "strings"

// ParseSkills splits a comma-separated input line into trimmed, non-empty
// skills, preserving order and duplicates.
func ParseSkills(input string) []string {
	var skills []string
	for _, part := range strings.Split(input, ",") {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// SkillMatches reports whether a role keyword and a user skill match:
// case-insensitive equality, or either string containing the other.
// Blank values never match.
func SkillMatches(keyword, skill string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	s := strings.ToLower(strings.TrimSpace(skill))
	if k == "" || s == "" {
		return false
	}
	return k == s || strings.Contains(k, s) || strings.Contains(s, k)
}

// IsRelevant reports whether any keyword of the role matches any user skill.
// An empty skill list is never relevant.
func IsRelevant(role Role, userSkills []string) bool {
	return len(matchedSkills(role, userSkills)) > 0
}

// matchedSkills returns the user skills, in input order, that match at
// least one keyword of the role.
func matchedSkills(role Role, userSkills []string) []string {
	var out []string
	for _, s := range userSkills {
		for _, k := range role.Skills {
			if SkillMatches(k, s) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// MatchDomains returns, in catalog order, every domain with at least one
// relevant role. Each domain lists only its relevant roles.
func MatchDomains(userSkills []string) []DomainMatch {
	return matchDomains(catalog, userSkills)
}

func matchDomains(domains []Domain, userSkills []string) []DomainMatch {
	if len(userSkills) == 0 {
		return nil
	}
	var out []DomainMatch
	for _, d := range domains {
		var roles []RoleMatch
		for _, r := range d.Roles {
			if m := matchedSkills(r, userSkills); len(m) > 0 {
				roles = append(roles, RoleMatch{Role: r, Matched: m})
			}
		}
		if len(roles) > 0 {
			out = append(out, DomainMatch{Domain: d.Name, Level: d.Level, Roles: roles})
		}
	}
	return out
}
