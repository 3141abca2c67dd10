// Package render turns a picker view into map and spreadsheet formats.
package render

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"cloudpicker/internal/modules/picker"
	"cloudpicker/internal/modules/ranking"
)

// GeoJSON builds one Point feature per visible cloud, plus a "user" feature
// when the position is known. Note GeoJSON order is [lon, lat].
func GeoJSON(v picker.View, distances map[string]ranking.Distance) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, c := range v.Clouds {
		f := geojson.NewFeature(orb.Point{c.Longitude, c.Latitude})
		f.Properties["kind"] = "cloud"
		f.Properties["name"] = c.Name
		f.Properties["description"] = c.Description
		f.Properties["provider"] = c.Provider()
		if d, ok := distances[c.Name]; ok && d.Valid {
			f.Properties["distance_km"] = math.Round(d.Km)
		}
		fc.Append(f)
	}

	if v.Position != nil {
		f := geojson.NewFeature(orb.Point{v.Position.Longitude, v.Position.Latitude})
		f.Properties["kind"] = "user"
		f.Properties["name"] = "Your location"
		fc.Append(f)
	}

	return fc
}

// Bounds returns the bounding box of the visible clouds, for centring a map.
// ok is false when nothing is visible.
func Bounds(v picker.View) (orb.Bound, bool) {
	if len(v.Clouds) == 0 {
		return orb.Bound{}, false
	}
	first := orb.Point{v.Clouds[0].Longitude, v.Clouds[0].Latitude}
	b := first.Bound()
	for _, c := range v.Clouds[1:] {
		b = b.Extend(orb.Point{c.Longitude, c.Latitude})
	}
	return b, true
}
