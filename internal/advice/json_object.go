package advice

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	jsonFenceRe = regexp.MustCompile("```json\\s*")
	anyFenceRe  = regexp.MustCompile("```\\s*")
)

// Field aliases accepted for each list, in priority order.
var (
	roleKeys  = []string{"careerRoles", "roles", "jobRoles"}
	learnKeys = []string{"skillsToLearn", "recommendedSkills", "skills"}
)

// JSONObjectStrategy parses the JSON objects in the text after removing
// markdown code fences, then coerces their shape. The first object that
// carries advice data wins; failing that, the first object that names an
// advice field. Objects with no advice fields are skipped.
type JSONObjectStrategy struct{}

func (*JSONObjectStrategy) Name() string { return StrategyJSONObject }

func (*JSONObjectStrategy) Extract(raw string) (*Advice, bool) {
	text := stripFences(raw)
	spans := balancedSpans(text)
	if len(spans) == 0 {
		if span, ok := objectSpan(text); ok {
			spans = []string{span}
		}
	}

	var named *Advice
	for _, span := range spans {
		if !gjson.Valid(span) {
			continue
		}
		obj := gjson.Parse(span)
		if !obj.IsObject() || !hasAdviceKey(obj) {
			continue
		}
		adv := coerce(obj)
		if adv.HasStructure() {
			return adv, true
		}
		if named == nil {
			named = adv
		}
	}
	return named, named != nil
}

// hasAdviceKey reports whether obj names at least one advice field.
func hasAdviceKey(obj gjson.Result) bool {
	for _, keys := range [][]string{roleKeys, learnKeys, {"careerPaths", "industryInsights", "error"}} {
		for _, k := range keys {
			if obj.Get(k).Exists() {
				return true
			}
		}
	}
	return false
}

// stripFences trims the text and removes every ```json and ``` marker.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "```json") {
		s = jsonFenceRe.ReplaceAllString(s, "")
	}
	if strings.Contains(s, "```") {
		s = anyFenceRe.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// objectSpan returns the first balanced {...} span. If the braces never
// balance it falls back to the span from the first '{' to the last '}'.
func objectSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	if end, ok := closeBrace(s, start); ok {
		return s[start:end], true
	}
	end := strings.LastIndexByte(s, '}')
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// balancedSpans returns every top-level balanced {...} span in order.
func balancedSpans(s string) []string {
	var spans []string
	for from := 0; from < len(s); {
		i := strings.IndexByte(s[from:], '{')
		if i < 0 {
			break
		}
		start := from + i
		end, ok := closeBrace(s, start)
		if !ok {
			break
		}
		spans = append(spans, s[start:end])
		from = end
	}
	return spans
}

// closeBrace returns the index just past the brace that closes the one at
// start, skipping braces inside JSON strings.
func closeBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// coerce maps a parsed object onto Advice, accepting field aliases and
// scalar-for-list substitutions.
func coerce(obj gjson.Result) *Advice {
	adv := &Advice{
		CareerRoles:      aliasList(obj, roleKeys),
		SkillsToLearn:    aliasList(obj, learnKeys),
		IndustryInsights: textValue(obj.Get("industryInsights")),
	}

	for _, p := range obj.Get("careerPaths").Array() {
		if !p.IsObject() {
			if t := strings.TrimSpace(p.String()); t != "" {
				adv.CareerPaths = append(adv.CareerPaths, CareerPath{Title: t})
			}
			continue
		}
		adv.CareerPaths = append(adv.CareerPaths, CareerPath{
			Title:       strings.TrimSpace(p.Get("title").String()),
			Description: strings.TrimSpace(p.Get("description").String()),
			Steps:       stringList(p.Get("steps")),
		})
	}

	if e := obj.Get("error"); e.Type == gjson.String {
		adv.Error = e.String()
	}
	return adv
}

// aliasList returns the first key holding an array; failing that, a string
// under the first key becomes a one-element list.
func aliasList(obj gjson.Result, keys []string) []string {
	for _, k := range keys {
		if v := obj.Get(k); v.IsArray() {
			return stringList(v)
		}
	}
	if v := obj.Get(keys[0]); v.Type == gjson.String {
		if s := strings.TrimSpace(v.String()); s != "" {
			return []string{s}
		}
	}
	return nil
}

// stringList flattens an array (or a lone string) into non-empty strings.
// Objects contribute their name or title.
func stringList(v gjson.Result) []string {
	if v.Type == gjson.String {
		if s := strings.TrimSpace(v.String()); s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range v.Array() {
		var s string
		switch {
		case item.IsObject():
			s = item.Get("name").String()
			if s == "" {
				s = item.Get("title").String()
			}
		case item.Type == gjson.Null:
			continue
		default:
			s = item.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func textValue(v gjson.Result) string {
	if v.IsArray() {
		return strings.Join(stringList(v), "\n")
	}
	if v.Type == gjson.Null || !v.Exists() {
		return ""
	}
	return strings.TrimSpace(v.String())
}
