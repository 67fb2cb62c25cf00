package service

import (
	"sort"
	"time"

	"bioskop-finder-cli/model"
)

// TimeSlots are the fixed daily showtime start times.
var TimeSlots = []string{"10:00", "13:30", "16:45", "19:20", "22:00"}

type slateEntry struct {
	movie    model.Movie
	target   int
	assigned int
}

func (e *slateEntry) owed() int {
	return e.target - e.assigned
}

// GenerateShowtimes builds one day of showtimes for theater from movies. Only the front of
// movies is used (screens+2 titles) and its order decides popularity, so callers control
// which titles a theater carries.
func GenerateShowtimes(theater model.Theater, movies []model.Movie, day time.Time) model.TheaterShowtimes {
	// A theater that skipped model.NewTheater may carry a negative count; it has no screens.
	theater.Screens = max(0, theater.Screens)
	screenTypes := ScreenTypes(theater)
	showtimes := []model.Showtime{}

	grid := make(map[int]map[string]int, theater.Screens)
	for screen := 1; screen <= theater.Screens; screen++ {
		grid[screen] = make(map[string]int, len(TimeSlots))
	}

	maxPerSlot := MaxScreensPerSlot(theater.Screens)
	slate := movies[:min(len(movies), theater.Screens+2)]

	entries := make([]*slateEntry, 0, len(slate))
	for i, movie := range slate {
		entries = append(entries, &slateEntry{movie: movie, target: priorityTarget(i)})
	}

	for _, slot := range TimeSlots {
		var free []int
		for screen := 1; screen <= theater.Screens; screen++ {
			if _, taken := grid[screen][slot]; !taken {
				free = append(free, screen)
			}
		}
		free = free[:min(len(free), maxPerSlot)]

		var pending []*slateEntry
		for _, e := range entries {
			if e.assigned < e.target {
				pending = append(pending, e)
			}
		}
		sort.SliceStable(pending, func(a, b int) bool {
			return pending[a].owed() > pending[b].owed()
		})

		for i, screen := range free {
			if i >= len(pending) {
				break
			}
			entry := pending[i]
			screenType := screenTypes[screen]
			if !screenAccepts(screenType, entry.movie) {
				continue
			}

			grid[screen][slot] = entry.movie.ID
			showtimes = append(showtimes, model.Showtime{
				MovieID: entry.movie.ID,
				Time:    slot,
				Format:  displayFormat(screenType, entry.movie, theater),
				Screen:  screen,
			})
			entry.assigned++
		}
	}

	return model.TheaterShowtimes{
		TheaterID: theater.ID,
		Date:      day.Format(time.DateOnly),
		Showtimes: showtimes,
	}
}

// ScreenTypes labels every screen of theater. Premium formats take the highest-numbered
// rooms: IMAX the last one, The Premiere the one before it.
func ScreenTypes(theater model.Theater) map[int]string {
	types := make(map[int]string, theater.Screens)
	for screen := 1; screen <= theater.Screens; screen++ {
		types[screen] = model.FormatRegular
	}

	if theater.HasFacility(model.FacilityIMAX) {
		types[theater.Screens] = model.FormatIMAX
	}

	if theater.HasFacility(model.FacilityPremiere) {
		premiere := theater.Screens
		if theater.Screens > 1 {
			premiere = theater.Screens - 1
		}
		if types[premiere] != model.FormatIMAX {
			types[premiere] = model.FormatPremiere
		} else if theater.Screens > 2 {
			types[theater.Screens-2] = model.FormatPremiere
		}
	}
	return types
}

// MaxScreensPerSlot caps concurrent screenings at 80% of the screens, at least one.
func MaxScreensPerSlot(screens int) int {
	return max(1, screens*4/5)
}

func priorityTarget(rank int) int {
	switch {
	case rank < 3:
		return 3
	case rank < 6:
		return 2
	default:
		return 1
	}
}

func screenAccepts(screenType string, movie model.Movie) bool {
	return movie.Supports(screenType) ||
		(screenType == model.FormatRegular && len(movie.Format) > 0) ||
		(screenType == model.FormatPremiere && movie.Supports(model.FormatRegular))
}

func displayFormat(screenType string, movie model.Movie, theater model.Theater) string {
	switch {
	case screenType == model.FormatIMAX && movie.Supports(model.FormatIMAX):
		return model.FormatIMAX
	case screenType == model.FormatPremiere:
		return model.FormatPremiere
	case movie.Supports(model.FormatDolby) && theater.HasFacility(model.FacilityDolby):
		return model.FormatDolby
	default:
		return model.FormatRegular
	}
}
