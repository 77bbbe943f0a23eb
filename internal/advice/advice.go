// Package advice turns free-form model output into career advice.
package advice

// CareerPath is one suggested progression with ordered steps.
type CareerPath struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
}

// Advice is the normalized model response. Any field may be empty; a
// partial result is still a valid result.
type Advice struct {
	CareerRoles      []string     `json:"careerRoles"`
	SkillsToLearn    []string     `json:"skillsToLearn"`
	CareerPaths      []CareerPath `json:"careerPaths"`
	IndustryInsights string       `json:"industryInsights,omitempty"`

	// RawResponse echoes the model text when structured parsing failed.
	RawResponse string `json:"rawResponse,omitempty"`
	ParseError  bool   `json:"parseError,omitempty"`

	// Error is set when the model itself reported an error object.
	Error string `json:"error,omitempty"`
}

// HasStructure reports whether any list field carries data.
func (a *Advice) HasStructure() bool {
	return a != nil && (len(a.CareerRoles) > 0 || len(a.SkillsToLearn) > 0 || len(a.CareerPaths) > 0)
}

// normalizeEmpty replaces nil lists with empty ones so the JSON form always
// carries arrays.
func (a *Advice) normalizeEmpty() *Advice {
	if a.CareerRoles == nil {
		a.CareerRoles = []string{}
	}
	if a.SkillsToLearn == nil {
		a.SkillsToLearn = []string{}
	}
	if a.CareerPaths == nil {
		a.CareerPaths = []CareerPath{}
	}
	for i := range a.CareerPaths {
		if a.CareerPaths[i].Steps == nil {
			a.CareerPaths[i].Steps = []string{}
		}
	}
	return a
}
