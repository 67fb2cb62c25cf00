package service

import (
	"time"

	"bioskop-finder-cli/catalog"
	"bioskop-finder-cli/model"

	"go.uber.org/zap"
)

// Guide answers the browsing questions of the UI against one catalog. It holds no
// per-city state: the selected city is passed into every call.
type Guide struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// TheaterMovieShowtimes is one theater's showings of a single movie.
type TheaterMovieShowtimes struct {
	Theater   model.Theater
	Showtimes []model.Showtime
}

// MovieShowtimes is one movie's showings at a single theater.
type MovieShowtimes struct {
	Movie     model.Movie
	Showtimes []model.Showtime
}

// NewGuide creates a guide over cat. If logger is nil, logging is discarded.
func NewGuide(cat *catalog.Catalog, logger *zap.Logger) *Guide {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guide{
		catalog: cat,
		logger:  logger,
		now:     time.Now,
	}
}

func (g *Guide) Catalog() *catalog.Catalog {
	return g.catalog
}

// Today is the day every generated schedule is for.
func (g *Guide) Today() time.Time {
	return g.now()
}

func (g *Guide) AvailableMovies(city string) []model.Movie {
	return AvailableMovies(g.catalog, city)
}

// GenerateShowtimes schedules theater for today.
func (g *Guide) GenerateShowtimes(theater model.Theater, movies []model.Movie) model.TheaterShowtimes {
	schedule := GenerateShowtimes(theater, movies, g.now())
	g.logger.Debug("generated showtimes",
		zap.Int("theater_id", theater.ID),
		zap.Int("movies", len(movies)),
		zap.Int("showtimes", len(schedule.Showtimes)),
	)
	return schedule
}

func (g *Guide) MovieByID(id int) (model.Movie, bool) {
	return g.catalog.MovieByID(id)
}

func (g *Guide) TheaterByID(id int) (model.Theater, bool) {
	return g.catalog.TheaterByID(id)
}

func (g *Guide) TheatersByCity(city string) []model.Theater {
	return g.catalog.TheatersByCity(city)
}

// MovieShowtimesInCity lists, per theater of city, the showings of movieID. Theaters that do
// not show the movie are left out; a movie not available in the city yields nothing.
func (g *Guide) MovieShowtimesInCity(movieID int, city string) []TheaterMovieShowtimes {
	available := g.AvailableMovies(city)
	if !containsMovie(available, movieID) {
		return []TheaterMovieShowtimes{}
	}

	out := []TheaterMovieShowtimes{}
	for _, theater := range g.TheatersByCity(city) {
		schedule := g.GenerateShowtimes(theater, available)
		var showtimes []model.Showtime
		for _, st := range schedule.Showtimes {
			if st.MovieID == movieID {
				showtimes = append(showtimes, st)
			}
		}
		if len(showtimes) > 0 {
			out = append(out, TheaterMovieShowtimes{Theater: theater, Showtimes: showtimes})
		}
	}
	return out
}

// TheaterSchedule schedules theater against the movies available in its own city and
// groups the showings by movie, in order of first appearance.
func (g *Guide) TheaterSchedule(theater model.Theater) []MovieShowtimes {
	schedule := g.GenerateShowtimes(theater, g.AvailableMovies(theater.City))

	index := map[int]int{}
	out := []MovieShowtimes{}
	for _, st := range schedule.Showtimes {
		i, ok := index[st.MovieID]
		if !ok {
			movie, found := g.catalog.MovieByID(st.MovieID)
			if !found {
				continue
			}
			i = len(out)
			index[st.MovieID] = i
			out = append(out, MovieShowtimes{Movie: movie})
		}
		out[i].Showtimes = append(out[i].Showtimes, st)
	}
	return out
}

func containsMovie(movies []model.Movie, id int) bool {
	for _, m := range movies {
		if m.ID == id {
			return true
		}
	}
	return false
}
