// README: Common coordinate value objects used across modules.
package types

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UserPosition is an optional Coordinate. The zero value means the position
// is not known, whether it is still pending, was denied or will never arrive.
type UserPosition struct {
	coord Coordinate
	known bool
}

// Known wraps a resolved coordinate.
func Known(c Coordinate) UserPosition {
	return UserPosition{coord: c, known: true}
}

// Get returns the coordinate and whether it is known.
func (p UserPosition) Get() (Coordinate, bool) {
	return p.coord, p.known
}

func (p UserPosition) IsKnown() bool {
	return p.known
}

// Ptr returns nil when the position is absent. Handy for JSON output.
func (p UserPosition) Ptr() *Coordinate {
	if !p.known {
		return nil
	}
	c := p.coord
	return &c
}
