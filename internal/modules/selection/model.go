// README: Filter state value object and its pure transitions.
package selection

// FilterState is what a visitor has chosen: an optional provider filter and
// an explicit selection of cloud names. Transitions return new values and
// never modify the receiver.
type FilterState struct {
	Provider string   `json:"provider,omitempty"`
	Selected []string `json:"selected,omitempty"`
}

func (s FilterState) HasProvider() bool {
	return s.Provider != ""
}

func (s FilterState) HasSelection() bool {
	return len(s.Selected) > 0
}

// Select replaces the explicit selection. The provider filter is untouched.
func (s FilterState) Select(names ...string) FilterState {
	sel := make([]string, len(names))
	copy(sel, names)
	if len(sel) == 0 {
		sel = nil
	}
	return FilterState{Provider: s.Provider, Selected: sel}
}

// WithProvider sets the provider filter and keeps the selection.
func (s FilterState) WithProvider(p string) FilterState {
	return FilterState{Provider: p, Selected: s.cloneSelected()}
}

func (s FilterState) ClearAll() FilterState {
	return FilterState{}
}

func (s FilterState) ClearSelection() FilterState {
	return FilterState{Provider: s.Provider}
}

func (s FilterState) cloneSelected() []string {
	if len(s.Selected) == 0 {
		return nil
	}
	out := make([]string, len(s.Selected))
	copy(out, s.Selected)
	return out
}
