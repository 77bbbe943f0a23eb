package advice

import (
	"encoding/json"
	"regexp"
	"strings"
)

// maxListItems caps every list recovered from prose.
const maxListItems = 5

const (
	roleCue  = `(?:career roles?|job roles?|positions?)`
	learnCue = `(?:skills to (?:learn|develop)|recommended skills)`
)

var (
	roleArrayRe  = regexp.MustCompile(`(?i)` + roleCue + `[\s\S]*?(\[[\s\S]*?\])`)
	learnArrayRe = regexp.MustCompile(`(?i)` + learnCue + `[\s\S]*?(\[[\s\S]*?\])`)

	roleLineRe  = regexp.MustCompile(`(?i)` + roleCue)
	learnLineRe = regexp.MustCompile(`(?i)` + learnCue)

	listItemRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+(.+?)\s*$`)
)

// CueStrategy recovers role and skill lists from prose. For each list it
// first looks for a JSON array literal after a keyword cue, then for
// numbered or bulleted lines after the cue.
type CueStrategy struct{}

func (*CueStrategy) Name() string { return StrategyCueExtraction }

func (*CueStrategy) Extract(raw string) (*Advice, bool) {
	roles := arrayAfterCue(raw, roleArrayRe)
	if len(roles) == 0 {
		roles = listAfterCue(raw, roleLineRe)
	}
	learn := arrayAfterCue(raw, learnArrayRe)
	if len(learn) == 0 {
		learn = listAfterCue(raw, learnLineRe)
	}
	if len(roles) == 0 && len(learn) == 0 {
		return nil, false
	}

	adv := echo(raw)
	adv.CareerRoles = roles
	adv.SkillsToLearn = learn
	return adv, true
}

// arrayAfterCue decodes the first array literal following the cue. Only
// arrays of strings are accepted.
func arrayAfterCue(raw string, re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(m[1]), &items); err != nil {
		return nil
	}
	return capItems(items)
}

// listAfterCue collects list lines following the first line that contains
// the cue. If no list lines follow, comma-separated text after a colon on
// the cue line is used instead.
func listAfterCue(raw string, re *regexp.Regexp) []string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		loc := re.FindStringIndex(line)
		if loc == nil {
			continue
		}

		var items []string
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" {
				if len(items) > 0 {
					break
				}
				continue
			}
			m := listItemRe.FindStringSubmatch(next)
			if m == nil {
				break
			}
			items = append(items, m[1])
		}
		if len(items) > 0 {
			return capItems(items)
		}

		rest := line[loc[1]:]
		if j := strings.IndexByte(rest, ':'); j >= 0 {
			return capItems(strings.Split(rest[j+1:], ","))
		}
		return nil
	}
	return nil
}

// capItems cleans items, drops empties and keeps at most maxListItems.
func capItems(items []string) []string {
	var out []string
	for _, it := range items {
		it = strings.Trim(strings.TrimSpace(it), "*_`\"")
		it = strings.TrimSpace(strings.TrimSuffix(it, "."))
		if it == "" {
			continue
		}
		out = append(out, it)
		if len(out) == maxListItems {
			break
		}
	}
	return out
}
