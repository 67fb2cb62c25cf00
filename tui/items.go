package tui

import (
	"fmt"
	"strings"

	"bioskop-finder-cli/catalog"
	"bioskop-finder-cli/model"
	"bioskop-finder-cli/service"
	"bioskop-finder-cli/store"

	"github.com/charmbracelet/bubbles/list"
)

type cityItem struct {
	city    model.City
	current bool
}

func (c cityItem) Title() string {
	return c.city.Name
}

func (c cityItem) Description() string {
	if c.current {
		return "Current city"
	}
	return c.city.Slug
}

func (c cityItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{c.city.Name, c.city.Slug}, " "))
}

type movieItem struct {
	movie model.Movie
}

func (m movieItem) Title() string {
	if m.movie.IsAdvanceTicket {
		return m.movie.Title + " (advance ticket)"
	}
	return m.movie.Title
}

func (m movieItem) Description() string {
	parts := []string{}
	if !m.movie.IsNowPlaying() {
		parts = append(parts, "Coming soon")
		if m.movie.ReleaseDate != "" {
			parts = append(parts, "Release "+m.movie.ReleaseDate)
		}
	}
	for _, part := range []string{m.movie.Genre, m.movie.Rating, m.movie.Duration} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	parts = append(parts, strings.Join(m.movie.Format, ", "))
	return strings.Join(parts, " • ")
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{m.movie.Title, m.movie.Genre}, " "))
}

type theaterItem struct {
	theater model.Theater
	recent  bool
}

func (t theaterItem) Title() string {
	return t.theater.Name
}

func (t theaterItem) Description() string {
	parts := []string{}
	if t.recent {
		parts = append(parts, "Recent")
	}
	if t.theater.Location != "" {
		parts = append(parts, t.theater.Location)
	}
	if t.theater.Distance != "" {
		parts = append(parts, t.theater.Distance)
	}
	parts = append(parts, fmt.Sprintf("%d screens", t.theater.Screens))
	if len(t.theater.Facilities) > 0 {
		parts = append(parts, strings.Join(t.theater.Facilities, ", "))
	}
	return strings.Join(parts, " • ")
}

func (t theaterItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{t.theater.Name, t.theater.Location, t.theater.Address}, " "))
}

type theaterVisibilityItem struct {
	theater model.Theater
	hidden  bool
}

func (t theaterVisibilityItem) Title() string {
	if t.hidden {
		return fmt.Sprintf("[ ] %s", t.theater.Name)
	}
	return fmt.Sprintf("[x] %s", t.theater.Name)
}

func (t theaterVisibilityItem) Description() string {
	parts := []string{}
	if t.theater.Location != "" {
		parts = append(parts, t.theater.Location)
	}
	if t.hidden {
		parts = append(parts, "hidden")
	} else {
		parts = append(parts, "visible")
	}
	return strings.Join(parts, " • ")
}

func (t theaterVisibilityItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{t.theater.Name, t.theater.Location}, " "))
}

type showtimeItem struct {
	theater     model.Theater
	movie       model.Movie
	showtime    model.Showtime
	showTheater bool
}

func (s showtimeItem) Title() string {
	if s.showTheater {
		return fmt.Sprintf("%s • %s", s.showtime.Time, s.theater.Name)
	}
	return fmt.Sprintf("%s • %s", s.showtime.Time, s.movie.Title)
}

func (s showtimeItem) Description() string {
	parts := []string{fmt.Sprintf("Screen %d", s.showtime.Screen), s.showtime.Format}
	if s.showTheater {
		parts = append(parts, s.theater.Location, s.theater.Distance)
	} else {
		parts = append(parts, s.movie.Rating, s.movie.Duration)
	}
	return strings.Join(parts, " • ")
}

func (s showtimeItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{s.showtime.Time, s.theater.Name, s.movie.Title, s.showtime.Format}, " "))
}

type searchItem struct {
	movie   *model.Movie
	theater *model.Theater
}

func (s searchItem) Title() string {
	if s.theater != nil {
		return s.theater.Name
	}
	return s.movie.Title
}

func (s searchItem) Description() string {
	if s.theater != nil {
		return fmt.Sprintf("Theater • %s • %s", s.theater.Location, catalog.CityName(s.theater.City))
	}
	if s.movie.IsNowPlaying() {
		return fmt.Sprintf("Movie • %s • now playing", s.movie.Genre)
	}
	return fmt.Sprintf("Movie • %s • upcoming", s.movie.Genre)
}

func (s searchItem) FilterValue() string {
	return strings.ToLower(s.Title())
}

func buildCityItems(current model.City) []list.Item {
	cities := catalog.Cities()
	items := make([]list.Item, 0, len(cities))
	for _, city := range cities {
		items = append(items, cityItem{city: city, current: city.Slug == current.Slug})
	}
	return items
}

func cityIndex(current model.City) int {
	for i, city := range catalog.Cities() {
		if city.Slug == current.Slug {
			return i
		}
	}
	return 0
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

// buildTheaterItems drops hidden theaters and pins recently opened ones on top, unless the
// list is ordered by distance.
func buildTheaterItems(theaters []model.Theater, hidden map[int]bool, recents []store.RecentTheater, byDistance bool) []list.Item {
	visible := make([]model.Theater, 0, len(theaters))
	for _, theater := range theaters {
		if hidden[theater.ID] {
			continue
		}
		visible = append(visible, theater)
	}

	items := make([]list.Item, 0, len(visible))
	if byDistance {
		for _, theater := range visible {
			items = append(items, theaterItem{theater: theater, recent: isRecentTheater(theater, recents)})
		}
		return items
	}

	byID := map[int]model.Theater{}
	for _, theater := range visible {
		byID[theater.ID] = theater
	}

	used := map[int]bool{}
	for _, recent := range recents {
		theater, ok := byID[recent.TheaterID]
		if !ok || used[theater.ID] {
			continue
		}
		items = append(items, theaterItem{theater: theater, recent: true})
		used[theater.ID] = true
	}

	for _, theater := range visible {
		if !used[theater.ID] {
			items = append(items, theaterItem{theater: theater})
		}
	}
	return items
}

func buildTheaterVisibilityItems(theaters []model.Theater, hidden map[int]bool) []list.Item {
	sorted := service.FilterTheaters(theaters, service.TheaterFilter{SortBy: service.SortName})
	items := make([]list.Item, 0, len(sorted))
	for _, theater := range sorted {
		items = append(items, theaterVisibilityItem{theater: theater, hidden: hidden[theater.ID]})
	}
	return items
}

func buildSearchItems(results service.SearchResults) []list.Item {
	items := make([]list.Item, 0, len(results.Movies)+len(results.Theaters))
	for i := range results.Movies {
		items = append(items, searchItem{movie: &results.Movies[i]})
	}
	for i := range results.Theaters {
		items = append(items, searchItem{theater: &results.Theaters[i]})
	}
	return items
}

func isRecentTheater(theater model.Theater, recents []store.RecentTheater) bool {
	for _, recent := range recents {
		if recent.TheaterID == theater.ID {
			return true
		}
		if recent.Name != "" && recent.City == theater.City && strings.EqualFold(recent.Name, theater.Name) {
			return true
		}
	}
	return false
}
