package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhisek/careerpath/internal/advice"
	"github.com/abhisek/careerpath/internal/diagram"
	"github.com/abhisek/careerpath/internal/gateway"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/observability"
	"github.com/abhisek/careerpath/internal/skillmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedJitter float64

func (f fixedJitter) Float64() float64 { return float64(f) }

func newTestServer(t *testing.T, advisor Advisor) (*httptest.Server, *observability.Collector) {
	t.Helper()
	metrics := observability.NewCollector("test")
	s := New(advisor, Options{Metrics: metrics, Builder: diagram.NewBuilder(fixedJitter(0))})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, metrics
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestAdvice_Success(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetFallback(llm.MockResponse{Text: "```json\n{\"careerRoles\":[\"Engineer\"],\"skillsToLearn\":[\"Go\"]}\n```"})
	ts, _ := newTestServer(t, gateway.New(mock, gateway.Options{}))

	for _, path := range []string{"/api/gemini", "/api/advice"} {
		resp, body := post(t, ts.URL+path, `{"skills":["JavaScript"," SQL ",""]}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, []any{"Engineer"}, body["careerRoles"], path)
		assert.Equal(t, []any{"Go"}, body["skillsToLearn"], path)
		assert.Nil(t, body["parseError"], path)
		assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	}

	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "JavaScript, SQL.")
}

func TestAdvice_CustomPromptPassedThrough(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"careerRoles":["Analyst"]}`})
	ts, _ := newTestServer(t, gateway.New(mock, gateway.Options{}))

	resp, _ := post(t, ts.URL+"/api/gemini", `{"prompt":"custom question","skills":["SQL"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "custom question", mock.Calls[0].Messages[0].Content)
}

func TestAdvice_ConfigurationError(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Gemini.APIKey = ""
	g, err := gateway.NewFromConfig(context.Background(), cfg, nil, gateway.Options{})
	require.NoError(t, err)
	ts, _ := newTestServer(t, g)

	resp, body := post(t, ts.URL+"/api/gemini", `{"skills":["Go"]}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "API configuration error"}, body)

	// The process keeps serving.
	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestAdvice_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrUnauthorized{Err: fmt.Errorf("bad key")}})
	ts, _ := newTestServer(t, gateway.New(mock, gateway.Options{}))

	resp, body := post(t, ts.URL+"/api/gemini", `{"skills":["Go"]}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Failed to process request"}, body)
}

func TestAdvice_MalformedBody(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	tests := []struct {
		name, body string
	}{
		{"not json", `{skills:`},
		{"no skills no prompt", `{}`},
		{"blank skills", `{"skills":["  ",""]}`},
		{"wrong type", `{"skills":"Go"}`},
	}
	for _, tt := range tests {
		resp, body := post(t, ts.URL+"/api/gemini", tt.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tt.name)
		assert.Equal(t, MessageBadRequest, body["error"], tt.name)
	}
}

func TestAdvice_ValidationDetails(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	_, body := post(t, ts.URL+"/api/advice", `{}`)
	details, ok := body["details"].([]any)
	require.True(t, ok, "details missing: %v", body)
	assert.Equal(t, []any{"skills is required when prompt is empty"}, details)
}

func TestMatch(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	resp, err := http.Get(ts.URL + "/api/match?skills=JavaScript,%20SQL")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body matchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"JavaScript", "SQL"}, body.Skills)

	var names []string
	for _, d := range body.Domains {
		names = append(names, d.Domain)
	}
	assert.Contains(t, names, "Software Development")
	assert.Contains(t, names, "Data Science")
	assert.NotContains(t, names, "Design")
}

func TestMatch_MissingSkills(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	resp, err := http.Get(ts.URL + "/api/match")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMatch_NoHits(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	resp, err := http.Get(ts.URL + "/api/match?skills=Knitting")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body matchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []skillmatch.DomainMatch{}, body.Domains)
}

func TestDiagram(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	tests := []struct {
		name       string
		body       string
		wantLayout string
		wantNodes  int
	}{
		{"empty", `{"skills":[]}`, diagram.LayoutTable, 0},
		{"table", `{"skills":["Figma"]}`, diagram.LayoutTable, 3},
		{"ai", `{"skills":["Go"],"advice":{"roles":["SRE"],"skillsToLearn":"Kubernetes"}}`, diagram.LayoutAI, 3},
		{"error advice", `{"skills":["Figma"],"advice":{"error":"quota"}}`, diagram.LayoutTable, 3},
		{"loading", `{"skills":["Figma"],"advice":{"careerRoles":["x"]},"loading":true}`, diagram.LayoutTable, 3},
	}
	for _, tt := range tests {
		resp, err := http.Post(ts.URL+"/api/diagram", "application/json", strings.NewReader(tt.body))
		require.NoError(t, err, tt.name)
		var d diagram.Diagram
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&d), tt.name)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, tt.name)
		assert.Equal(t, tt.wantLayout, d.Layout, tt.name)
		assert.Len(t, d.Nodes, tt.wantNodes, tt.name)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts, _ := newTestServer(t, gateway.New(llm.NewMockProvider(), gateway.Options{}))

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"careerRoles":["SRE"]}`})
	ts, _ := newTestServer(t, gateway.New(mock, gateway.Options{}))

	resp, _ := post(t, ts.URL+"/api/gemini", `{"skills":["Go"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer m.Body.Close()
	raw, err := io.ReadAll(m.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `route="/api/gemini"`)
}

// stubAdvisor returns a fixed result.
type stubAdvisor struct {
	adv *advice.Advice
	err error
}

func (s stubAdvisor) RequestWithPrompt(context.Context, string, []string) (*advice.Advice, error) {
	return s.adv, s.err
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"configuration", fmt.Errorf("%w: %w", gateway.ErrConfiguration, llm.ErrMissingAPIKey), 500, MessageConfigurationError},
		{"request", fmt.Errorf("%w: boom", gateway.ErrRequest), 500, MessageRequestFailed},
		{"unknown", fmt.Errorf("boom"), 500, MessageRequestFailed},
		{"bad request", badRequest("nope", nil, nil), 400, "nope"},
	}
	for _, tt := range tests {
		status, body := normalizeError(tt.err)
		assert.Equal(t, tt.wantStatus, status, tt.name)
		assert.Equal(t, tt.wantMsg, body.Error, tt.name)
	}
}

func TestAdvice_StubAdvisor(t *testing.T) {
	ts, _ := newTestServer(t, stubAdvisor{adv: &advice.Advice{IndustryInsights: "steady", CareerRoles: []string{}, SkillsToLearn: []string{}, CareerPaths: []advice.CareerPath{}}})

	resp, body := post(t, ts.URL+"/api/advice", `{"skills":["Go"]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "steady", body["industryInsights"])
}
