package server

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// adviceRequest is the body of POST /api/gemini and /api/advice.
type adviceRequest struct {
	Prompt string   `json:"prompt" validate:"max=8000"`
	Skills []string `json:"skills" validate:"max=50,dive,max=100"`
}

// diagramRequest is the body of POST /api/diagram.
type diagramRequest struct {
	Skills  []string        `json:"skills" validate:"max=50,dive,max=100"`
	Advice  json.RawMessage `json:"advice"`
	Loading bool            `json:"loading"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(adviceRequestLevel, adviceRequest{})
	return v
}

// adviceRequestLevel requires a prompt or at least one non-blank skill.
func adviceRequestLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(adviceRequest)
	if strings.TrimSpace(req.Prompt) != "" || len(cleanSkills(req.Skills)) > 0 {
		return
	}
	sl.ReportError(req.Skills, "skills", "Skills", "required_without_prompt", "")
}

// validationMessages flattens validator errors into one line per field.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required_without_prompt":
			out = append(out, "skills is required when prompt is empty")
		case "max":
			out = append(out, e.Namespace()+" exceeds maximum of "+e.Param())
		default:
			out = append(out, e.Namespace()+" failed "+e.Tag())
		}
	}
	return out
}

// cleanSkills trims skills and drops blanks, keeping order.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
