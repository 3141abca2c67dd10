// README: Cloud region record and the immutable catalog built from it.
package cloud

import (
	"strings"

	"cloudpicker/internal/types"
)

// ProviderSeparator splits the provider token from the rest of a cloud name,
// e.g. "aws-eu-west-1" -> "aws".
const ProviderSeparator = "-"

// Cloud is one provider region as delivered by the entity source.
type Cloud struct {
	Name        string  `json:"cloud_name"`
	Description string  `json:"cloud_description"`
	Latitude    float64 `json:"geo_latitude"`
	Longitude   float64 `json:"geo_longitude"`
}

func (c Cloud) Coordinate() types.Coordinate {
	return types.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Provider returns the token before the first separator. A name without a
// separator is its own provider.
func (c Cloud) Provider() string {
	p, _, _ := strings.Cut(c.Name, ProviderSeparator)
	return p
}

// Catalog is the full entity set of a session. It is never mutated after
// NewCatalog returns.
type Catalog struct {
	clouds []Cloud
	byName map[string]int
}

// NewCatalog copies clouds into a new catalog. On duplicate names the first
// occurrence wins lookups.
func NewCatalog(clouds []Cloud) *Catalog {
	cp := make([]Cloud, len(clouds))
	copy(cp, clouds)
	idx := make(map[string]int, len(cp))
	for i, c := range cp {
		if _, ok := idx[c.Name]; !ok {
			idx[c.Name] = i
		}
	}
	return &Catalog{clouds: cp, byName: idx}
}

func (c *Catalog) Len() int {
	return len(c.clouds)
}

// All returns every cloud in source order.
func (c *Catalog) All() []Cloud {
	out := make([]Cloud, len(c.clouds))
	copy(out, c.clouds)
	return out
}

func (c *Catalog) Lookup(name string) (Cloud, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Cloud{}, false
	}
	return c.clouds[i], true
}

// ByProvider returns the clouds whose provider token is provider, in source
// order. It always agrees with Providers, so "aws" never matches "awsome-1".
func (c *Catalog) ByProvider(provider string) []Cloud {
	out := []Cloud{}
	for _, cl := range c.clouds {
		if cl.Provider() == provider {
			out = append(out, cl)
		}
	}
	return out
}

// Providers lists distinct provider tokens in order of first appearance.
// An empty token means "no filter" and is never listed.
func (c *Catalog) Providers() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cl := range c.clouds {
		p := cl.Provider()
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
