package skillmatch

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// minKeywordLen keeps keywords long enough that substring matching stays
// meaningful.
const minKeywordLen = 2

// validateDomains performs all structural checks on the given domain set.
// Returns a combined error describing all problems found, or nil if valid.
func validateDomains(domains []Domain) error {
	var errs []string

	if len(domains) == 0 {
		errs = append(errs, "catalog has no domains")
	}

	domainSet := make(map[string]bool, len(domains))
	roleSet := make(map[string]bool)

	for _, d := range domains {
		if d.Name == "" {
			errs = append(errs, "domain with empty name")
		}
		if domainSet[d.Name] {
			errs = append(errs, fmt.Sprintf("duplicate domain: %q", d.Name))
		}
		domainSet[d.Name] = true

		if !slices.Contains(AllLevels(), d.Level) {
			errs = append(errs, fmt.Sprintf("domain %q: unknown level %q", d.Name, d.Level))
		}
		if len(d.Roles) == 0 {
			errs = append(errs, fmt.Sprintf("domain %q has no roles", d.Name))
		}

		for _, r := range d.Roles {
			if roleSet[r.Name] {
				errs = append(errs, fmt.Sprintf("duplicate role: %q", r.Name))
			}
			roleSet[r.Name] = true

			if len(r.Skills) == 0 {
				errs = append(errs, fmt.Sprintf("role %q has no skill keywords", r.Name))
			}
			for _, k := range r.Skills {
				if utf8.RuneCountInString(strings.TrimSpace(k)) < minKeywordLen {
					errs = append(errs, fmt.Sprintf("role %q: keyword %q shorter than %d characters", r.Name, k, minKeywordLen))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("domain catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
