package skillmatch

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// catalog is the package-level domain table, loaded once by init().
var catalog []Domain

func init() {
	domains, err := parseCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("skillmatch: %v", err))
	}
	catalog = domains
}

func parseCatalog(data []byte) ([]Domain, error) {
	var doc struct {
		Domains []Domain `yaml:"domains"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateDomains(doc.Domains); err != nil {
		return nil, err
	}
	return doc.Domains, nil
}

// Catalog returns a copy of all domains in catalog order.
func Catalog() []Domain {
	out := make([]Domain, len(catalog))
	for i, d := range catalog {
		out[i] = d
		out[i].Roles = slices.Clone(d.Roles)
	}
	return out
}

// GetDomain returns a domain by name, or error if not found.
func GetDomain(name string) (Domain, error) {
	for _, d := range catalog {
		if d.Name == name {
			return d, nil
		}
	}
	return Domain{}, fmt.Errorf("domain not found: %q", name)
}
