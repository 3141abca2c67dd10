// README: CLI; fetches the cloud list and prints the nearest cloud to a coordinate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cloudpicker/internal/modules/cloud"
	"cloudpicker/internal/modules/picker"
	"cloudpicker/internal/modules/position"
	"cloudpicker/internal/modules/selection"
	"cloudpicker/internal/types"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude in degrees")
	lon := flag.Float64("lon", 0, "longitude in degrees")
	provider := flag.String("provider", "", "only consider clouds of this provider")
	upstream := flag.String("upstream", cloud.DefaultUpstreamURL, "cloud list API base URL")
	timeout := flag.Duration("timeout", 15*time.Second, "upstream timeout")
	mapsKey := flag.String("maps-key", os.Getenv("CLOUDPICKER_GOOGLE_MAPS_KEY"), "Google Maps API key; locates by IP when -lat/-lon are absent")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var pos types.UserPosition
	if set["lat"] && set["lon"] {
		pos = types.Known(types.Coordinate{Latitude: *lat, Longitude: *lon})
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if !pos.IsKnown() && *mapsKey != "" {
		pos = locate(ctx, *mapsKey)
	}

	svc := cloud.NewService(cloud.NewAivenSource(*upstream, nil))
	if err := svc.Load(ctx); err != nil {
		log.Fatal(err)
	}
	cat, err := svc.Catalog()
	if err != nil {
		log.Fatal(err)
	}

	ctl := picker.NewController(cat, selection.FilterState{Provider: *provider}, pos)
	fmt.Printf("providers: %s\n", strings.Join(cat.Providers(), ", "))

	pick := ctl.PickNearestGlobal
	if *provider != "" {
		pick = ctl.PickNearestWithinFilter
	}
	if err := pick(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	v := ctl.View()
	if len(v.Clouds) != 1 {
		fmt.Println("no clouds")
		os.Exit(1)
	}
	c := v.Clouds[0]
	fmt.Printf("nearest: %s (%s)", c.Name, c.Description)
	if v.DistanceKm != nil {
		fmt.Printf(", %d km", *v.DistanceKm)
	}
	fmt.Println()
}

// locate waits for a one-shot Google geolocation. Failures leave the position
// absent.
func locate(ctx context.Context, apiKey string) types.UserPosition {
	src, err := position.NewGoogleSource(apiKey)
	if err != nil {
		log.Printf("geolocation disabled: %v", err)
		return types.UserPosition{}
	}
	tracker := position.NewTracker()
	tracker.Start(ctx, src)
	select {
	case <-tracker.Done():
	case <-ctx.Done():
	}
	return tracker.Current()
}
