package selection

import (
	"cloudpicker/internal/modules/cloud"
)

// State derives the visible cloud set from a catalog and a FilterState.
// Every view is recomputed on request.
type State struct {
	catalog *cloud.Catalog
	filter  FilterState
}

// New binds filter to catalog. Selected names the catalog does not know are
// dropped so the selection only ever holds catalog members.
func New(catalog *cloud.Catalog, filter FilterState) *State {
	var kept []string
	for _, name := range filter.Selected {
		if _, ok := catalog.Lookup(name); ok {
			kept = append(kept, name)
		}
	}
	return &State{catalog: catalog, filter: filter.Select(kept...)}
}

func (s *State) Filter() FilterState {
	return s.filter.Select(s.filter.Selected...)
}

func (s *State) Catalog() *cloud.Catalog {
	return s.catalog
}

// Visible applies the precedence: explicit selection, then provider filter,
// then everything.
func (s *State) Visible() []cloud.Cloud {
	if s.filter.HasSelection() {
		return s.selected()
	}
	return s.Choices()
}

// Choices is the provider-scoped list, ignoring any explicit selection.
func (s *State) Choices() []cloud.Cloud {
	if s.filter.HasProvider() {
		return s.catalog.ByProvider(s.filter.Provider)
	}
	return s.catalog.All()
}

func (s *State) Providers() []string {
	return s.catalog.Providers()
}

// Select makes c the single explicit selection. Clouds that are not in the
// catalog clear the selection instead.
func (s *State) Select(c cloud.Cloud) {
	if _, ok := s.catalog.Lookup(c.Name); !ok {
		s.filter = s.filter.ClearSelection()
		return
	}
	s.filter = s.filter.Select(c.Name)
}

// SetProviderFilter does not clear the selection; callers switching modes
// decide that.
func (s *State) SetProviderFilter(p string) {
	s.filter = s.filter.WithProvider(p)
}

func (s *State) ClearAll() {
	s.filter = s.filter.ClearAll()
}

func (s *State) ClearSelectionKeepProvider() {
	s.filter = s.filter.ClearSelection()
}

func (s *State) selected() []cloud.Cloud {
	out := make([]cloud.Cloud, 0, len(s.filter.Selected))
	for _, name := range s.filter.Selected {
		if c, ok := s.catalog.Lookup(name); ok {
			out = append(out, c)
		}
	}
	return out
}
