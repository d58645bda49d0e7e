package stats

import (
	"strings"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// routeSep joins a start and end station into one counter key. Station
// names never contain the ASCII unit separator.
const routeSep = "\x1f"

// Stations returns the busiest start hour, start station, end station and
// start/end pair, each with its count.
//
// The pair is counted as a single combined key. Every pair tied for the top
// count is returned, ordered by start then end station.
func Stations(trips []models.Trip) (models.StationStats, error) {
	if len(trips) == 0 {
		return models.StationStats{}, models.ErrEmptyResult
	}

	hours := NewCounter[int]()
	starts := NewCounter[string]()
	ends := NewCounter[string]()
	routes := NewCounter[string]()

	for _, t := range trips {
		hours.Add(t.Hour)
		starts.Add(t.StartStation)
		ends.Add(t.EndStation)
		routes.Add(t.StartStation + routeSep + t.EndStation)
	}

	hour, hourCount, _ := hours.Mode()
	start, startCount, _ := starts.Mode()
	end, endCount, _ := ends.Mode()

	keys, routeCount := routes.Modes()
	tied := make([]models.Route, 0, len(keys))
	for _, k := range keys {
		from, to, _ := strings.Cut(k, routeSep)
		tied = append(tied, models.Route{Start: from, End: to, Count: routeCount})
	}

	return models.StationStats{
		Hour:         hour,
		HourCount:    hourCount,
		StartStation: models.Count{Value: start, Count: startCount},
		EndStation:   models.Count{Value: end, Count: endCount},
		Routes:       tied,
	}, nil
}
