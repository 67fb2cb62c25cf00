package service

import (
	"sort"
	"strconv"
	"strings"

	"bioskop-finder-cli/model"
)

const (
	TabNowPlaying = "now-playing"
	TabUpcoming   = "upcoming"

	SortPopularity = "popularity"
	SortTitle      = "title"
	SortName       = "name"
	SortDistance   = "distance"

	AllGenres = "all"
)

// Genres lists the genre filter options, AllGenres first.
var Genres = []string{AllGenres, "action", "comedy", "drama", "horror", "romance", "sci-fi", "thriller", "animation"}

type MovieFilter struct {
	Genre  string
	Query  string
	SortBy string
}

type TheaterFilter struct {
	Query      string
	Facilities []string
	SortBy     string
}

// MoviesForTab returns what the movie catalog shows on a tab: the city's available movies
// for now-playing, every upcoming movie otherwise.
func (g *Guide) MoviesForTab(city string, tab string) []model.Movie {
	if tab == TabUpcoming {
		return g.catalog.Upcoming()
	}
	return g.AvailableMovies(city)
}

// FilterMovies applies genre and text filters. Popularity order is the input order.
func FilterMovies(movies []model.Movie, filter MovieFilter) []model.Movie {
	query := strings.ToLower(filter.Query)
	out := []model.Movie{}
	for _, m := range movies {
		if filter.Genre != "" && filter.Genre != AllGenres && m.Genre != filter.Genre {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(m.Title), query) &&
			!strings.Contains(strings.ToLower(m.Genre), query) {
			continue
		}
		out = append(out, m)
	}
	if filter.SortBy == SortTitle {
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].Title, out[j].Title)
		})
	}
	return out
}

// FilterTheaters keeps theaters matching the query on name or location and carrying every
// requested facility.
func FilterTheaters(theaters []model.Theater, filter TheaterFilter) []model.Theater {
	query := strings.ToLower(filter.Query)
	out := []model.Theater{}
	for _, t := range theaters {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Name), query) &&
			!strings.Contains(strings.ToLower(t.Location), query) {
			continue
		}
		if !hasAllFacilities(t, filter.Facilities) {
			continue
		}
		out = append(out, t)
	}

	switch filter.SortBy {
	case SortDistance:
		sort.SliceStable(out, func(i, j int) bool {
			return DistanceKM(out[i]) < DistanceKM(out[j])
		})
	case SortName, "":
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].Name, out[j].Name)
		})
	}
	return out
}

func hasAllFacilities(theater model.Theater, wanted []string) bool {
	for _, want := range wanted {
		want = strings.ToLower(strings.TrimSpace(want))
		found := false
		for _, have := range theater.Facilities {
			if strings.ToLower(strings.TrimSpace(have)) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DistanceKM reads the number out of a distance label such as "2.5 km". Unparseable labels
// count as zero.
func DistanceKM(theater model.Theater) float64 {
	var b strings.Builder
	for _, r := range theater.Distance {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}
