package skillmatch

import (
	"strings"
	"testing"
)

func TestEmbeddedCatalogPasses(t *testing.T) {
	if err := validateDomains(Catalog()); err != nil {
		t.Fatalf("embedded catalog validation failed: %v", err)
	}
}

func TestValidateDomains_DetectsDuplicateDomain(t *testing.T) {
	domains := []Domain{
		{Name: "Data", Level: LevelMid, Roles: []Role{{Name: "Analyst", Skills: []string{"SQL"}}}},
		{Name: "Data", Level: LevelMid, Roles: []Role{{Name: "Scientist", Skills: []string{"Python"}}}},
	}
	err := validateDomains(domains)
	if err == nil {
		t.Fatal("expected error for duplicate domain, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate domain") {
		t.Errorf("error should mention duplicate domain, got: %v", err)
	}
}

func TestValidateDomains_DetectsDuplicateRole(t *testing.T) {
	domains := []Domain{
		{Name: "A", Level: LevelMid, Roles: []Role{{Name: "Analyst", Skills: []string{"SQL"}}}},
		{Name: "B", Level: LevelMid, Roles: []Role{{Name: "Analyst", Skills: []string{"Excel"}}}},
	}
	err := validateDomains(domains)
	if err == nil || !strings.Contains(err.Error(), "duplicate role") {
		t.Fatalf("expected duplicate role error, got: %v", err)
	}
}

func TestValidateDomains_DetectsShortKeyword(t *testing.T) {
	domains := []Domain{
		{Name: "Stats", Level: LevelMid, Roles: []Role{{Name: "Statistician", Skills: []string{"R"}}}},
	}
	err := validateDomains(domains)
	if err == nil || !strings.Contains(err.Error(), `"R"`) {
		t.Fatalf("expected short keyword error, got: %v", err)
	}
}

func TestValidateDomains_DetectsUnknownLevel(t *testing.T) {
	domains := []Domain{
		{Name: "Stats", Level: "principal", Roles: []Role{{Name: "Statistician", Skills: []string{"Stata"}}}},
	}
	err := validateDomains(domains)
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Fatalf("expected unknown level error, got: %v", err)
	}
}

func TestValidateDomains_ReportsAllProblems(t *testing.T) {
	domains := []Domain{
		{Name: "Empty", Level: LevelEntry},
		{Name: "NoKeywords", Level: LevelEntry, Roles: []Role{{Name: "Generalist"}}},
	}
	err := validateDomains(domains)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"has no roles", "has no skill keywords"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestParseCatalog_BadYAML(t *testing.T) {
	if _, err := parseCatalog([]byte("domains: [")); err == nil {
		t.Fatal("expected decode error")
	}
}
