// README: Picker controller binds visitor actions to selection state and ranking.
package picker

import (
	"errors"
	"math"

	"cloudpicker/internal/modules/cloud"
	"cloudpicker/internal/modules/ranking"
	"cloudpicker/internal/modules/selection"
	"cloudpicker/internal/types"
)

// ErrPositionUnavailable is returned by nearest-pick actions while the
// visitor position is unknown. State is left unchanged.
var ErrPositionUnavailable = errors.New("position unavailable")

// View is everything a renderer needs to draw the current state.
type View struct {
	Clouds     []cloud.Cloud     `json:"clouds"`
	Choices    []cloud.Cloud     `json:"choices"`
	Providers  []string          `json:"providers"`
	Provider   string            `json:"provider"`
	Selected   []string          `json:"selected"`
	Position   *types.Coordinate `json:"position"`
	DistanceKm *int              `json:"distance_km"`
}

type Controller struct {
	state    *selection.State
	position types.UserPosition
}

func NewController(catalog *cloud.Catalog, filter selection.FilterState, pos types.UserPosition) *Controller {
	return &Controller{state: selection.New(catalog, filter), position: pos}
}

// SetPosition records a late-arriving position.
func (c *Controller) SetPosition(pos types.UserPosition) {
	c.position = pos
}

// PickNearestGlobal selects the closest cloud of the whole catalog and drops
// the provider filter.
func (c *Controller) PickNearestGlobal() error {
	if !c.position.IsKnown() {
		return ErrPositionUnavailable
	}
	winner, ok := ranking.Nearest(c.state.Catalog().All(), c.position)
	if !ok {
		return nil
	}
	c.state.Select(winner.Cloud)
	c.state.SetProviderFilter("")
	return nil
}

// PickNearestWithinFilter selects the closest cloud among the current
// provider's clouds and keeps the provider filter.
func (c *Controller) PickNearestWithinFilter() error {
	if !c.position.IsKnown() {
		return ErrPositionUnavailable
	}
	winner, ok := ranking.Nearest(c.state.Choices(), c.position)
	if !ok {
		return nil
	}
	c.state.Select(winner.Cloud)
	return nil
}

// PickByIdentity selects the cloud called name. An unknown name leaves an
// empty selection and reports false.
func (c *Controller) PickByIdentity(name string) bool {
	found, ok := c.state.Catalog().Lookup(name)
	if !ok {
		c.state.ClearSelectionKeepProvider()
		return false
	}
	c.state.Select(found)
	return true
}

func (c *Controller) SetProvider(p string) {
	c.state.SetProviderFilter(p)
}

func (c *Controller) Reset() {
	c.state.ClearAll()
}

func (c *Controller) ResetSelectionOnly() {
	c.state.ClearSelectionKeepProvider()
}

// Filter returns the state to carry into the next request.
func (c *Controller) Filter() selection.FilterState {
	return c.state.Filter()
}

func (c *Controller) View() View {
	f := c.state.Filter()
	visible := c.state.Visible()

	v := View{
		Clouds:    visible,
		Choices:   c.state.Choices(),
		Providers: c.state.Providers(),
		Provider:  f.Provider,
		Selected:  f.Selected,
		Position:  c.position.Ptr(),
	}
	if v.Clouds == nil {
		v.Clouds = []cloud.Cloud{}
	}
	if v.Choices == nil {
		v.Choices = []cloud.Cloud{}
	}
	if v.Providers == nil {
		v.Providers = []string{}
	}
	if v.Selected == nil {
		v.Selected = []string{}
	}
	if len(visible) == 1 {
		if d := ranking.DistanceTo(visible[0], c.position); d.Valid {
			km := int(math.Round(d.Km))
			v.DistanceKm = &km
		}
	}
	return v
}

// Distances returns the distance of every visible cloud, keyed by name, for
// renderers that annotate each entry. Empty when the position is unknown.
func (c *Controller) Distances() map[string]ranking.Distance {
	out := make(map[string]ranking.Distance)
	if !c.position.IsKnown() {
		return out
	}
	for _, cl := range c.state.Visible() {
		out[cl.Name] = ranking.DistanceTo(cl, c.position)
	}
	return out
}
