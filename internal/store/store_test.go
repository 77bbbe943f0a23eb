package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "careerpath.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_requests'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_requests" {
		t.Errorf("table name = %q, want 'llm_requests'", name)
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "career-advice", InputTokens: 100, OutputTokens: 200, LatencyMs: 300, Success: true, RequestBody: "[user]\nskills", ResponseBody: "{}"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "career-advice", InputTokens: 50, OutputTokens: 0, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "cli-advise", InputTokens: 10, OutputTokens: 20, LatencyMs: 40, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	// Newest first.
	if all[0].Model != "gpt-4o-mini" {
		t.Errorf("first model = %q, want gpt-4o-mini", all[0].Model)
	}
	if all[1].Success || all[1].ErrorMessage != "rate limited" {
		t.Errorf("second event = %+v, want failed with error message", all[1])
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d events", len(limited))
	}

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "career-advice"})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Errorf("purpose filter returned %d events, want 2", len(byPurpose))
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("from filter returned %d events, want 0", len(future))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "career-advice",
		Success:      true,
		RequestBody:  "prompt text",
		ResponseBody: "response text",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(all) != 1 {
		t.Fatalf("query: %v (len %d)", err, len(all))
	}

	got, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event")
	}
	if got.RequestBody != "prompt text" || got.ResponseBody != "response text" {
		t.Errorf("bodies = %q / %q", got.RequestBody, got.ResponseBody)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown ID, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "career-advice", InputTokens: 100, OutputTokens: 10, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "career-advice", InputTokens: 50, OutputTokens: 5, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "cli-advise", InputTokens: 1, OutputTokens: 2, LatencyMs: 10, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	purposes, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(purposes) != 2 {
		t.Fatalf("got %d purposes, want 2", len(purposes))
	}
	advice := purposes[0]
	if advice.Purpose != "career-advice" || advice.Calls != 2 || advice.InputTokens != 150 || advice.OutputTokens != 15 {
		t.Errorf("career-advice usage = %+v", advice)
	}
	if advice.AvgLatencyMs != 300 {
		t.Errorf("avg latency = %d, want 300", advice.AvgLatencyMs)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	if models[0].Model != "gemini-2.5-flash" || models[0].Calls != 2 {
		t.Errorf("gemini usage = %+v", models[0])
	}
}

func TestNopEventRepo(t *testing.T) {
	var repo EventRepo = NopEventRepo{}
	ctx := context.Background()
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil || len(events) != 0 {
		t.Fatalf("query = %v, %v", events, err)
	}
}
