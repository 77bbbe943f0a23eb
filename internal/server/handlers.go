package server

import (
	"encoding/json"
	"net/http"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/skillmatch"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest(MessageBadRequest, nil, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return badRequest(MessageBadRequest, validationMessages(err), err)
	}
	return nil
}

// handleAdvice serves POST /api/gemini and /api/advice.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	adv, err := s.advisor.RequestWithPrompt(r.Context(), req.Prompt, cleanSkills(req.Skills))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adv)
}

type matchResponse struct {
	Skills  []string                 `json:"skills"`
	Domains []skillmatch.DomainMatch `json:"domains"`
}

// handleMatch serves GET /api/match?skills=a,b.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("skills")
	skills := skillmatch.ParseSkills(raw)
	if len(skills) == 0 {
		s.writeError(w, r, badRequest("skills query parameter is required", nil, nil))
		return
	}
	domains := skillmatch.MatchDomains(skills)
	if domains == nil {
		domains = []skillmatch.DomainMatch{}
	}
	writeJSON(w, http.StatusOK, matchResponse{Skills: skills, Domains: domains})
}

// handleDiagram serves POST /api/diagram. Advice is accepted in any shape
// the normalizer understands.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var adv *advice.Advice
	if len(req.Advice) > 0 && string(req.Advice) != "null" {
		adv = advice.Normalize(string(req.Advice))
	}
	writeJSON(w, http.StatusOK, s.builder.Build(cleanSkills(req.Skills), adv, req.Loading))
}
