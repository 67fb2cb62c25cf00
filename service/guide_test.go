package service

import (
	"reflect"
	"testing"
	"time"
)

func newTestGuide(t *testing.T) *Guide {
	t.Helper()
	g := NewGuide(defaultCatalog(t), nil)
	g.now = func() time.Time { return testDay }
	return g
}

func TestGuide_GenerateShowtimesUsesToday(t *testing.T) {
	g := newTestGuide(t)
	theater, _ := g.TheaterByID(1)

	schedule := g.GenerateShowtimes(theater, g.AvailableMovies("jakarta"))
	if schedule.Date != "2026-10-16" {
		t.Fatalf("expected today's date, got %s", schedule.Date)
	}
	if len(schedule.Showtimes) != 19 {
		t.Fatalf("expected 19 showtimes, got %d", len(schedule.Showtimes))
	}
}

func TestGuide_MovieShowtimesInCity(t *testing.T) {
	g := newTestGuide(t)

	got := g.MovieShowtimesInCity(4, "jakarta")
	if len(got) != 2 {
		t.Fatalf("expected 2 theaters, got %d", len(got))
	}
	if got[0].Theater.ID != 1 || !reflect.DeepEqual(showtimeKeys(got[0].Showtimes), []string{"4@19:20/s1/Regular"}) {
		t.Fatalf("unexpected first theater: %+v", got[0])
	}
	if got[1].Theater.ID != 2 || !reflect.DeepEqual(showtimeKeys(got[1].Showtimes), []string{"4@13:30/s8/Regular"}) {
		t.Fatalf("unexpected second theater: %+v", got[1])
	}
}

func TestGuide_MovieShowtimesInCity_DropsTheatersWithoutShowings(t *testing.T) {
	g := newTestGuide(t)

	got := g.MovieShowtimesInCity(1, "denpasar")
	if len(got) != 1 || got[0].Theater.ID != 24 {
		t.Fatalf("expected only Beachwalk XXI, got %+v", got)
	}
	if keys := showtimeKeys(got[0].Showtimes); !reflect.DeepEqual(keys, []string{"1@19:20/s2/The Premiere"}) {
		t.Fatalf("unexpected showtimes: %v", keys)
	}
}

func TestGuide_MovieShowtimesInCity_UnavailableMovie(t *testing.T) {
	g := newTestGuide(t)

	// Bullet Train is not in Denpasar's seven-title slate.
	if got := g.MovieShowtimesInCity(10, "denpasar"); len(got) != 0 {
		t.Fatalf("expected no showtimes, got %+v", got)
	}
	// Upcoming movies are never available.
	if got := g.MovieShowtimesInCity(11, "jakarta"); len(got) != 0 {
		t.Fatalf("expected no showtimes for an upcoming movie, got %+v", got)
	}
	if got := g.MovieShowtimesInCity(1, "atlantis"); len(got) != 0 {
		t.Fatalf("expected no showtimes for an unknown city, got %+v", got)
	}
}

func TestGuide_TheaterSchedule(t *testing.T) {
	g := newTestGuide(t)
	theater, _ := g.TheaterByID(25)

	groups := g.TheaterSchedule(theater)
	var order []int
	total := 0
	for _, group := range groups {
		order = append(order, group.Movie.ID)
		total += len(group.Showtimes)
		for _, st := range group.Showtimes {
			if st.MovieID != group.Movie.ID {
				t.Fatalf("showtime %+v grouped under movie %d", st, group.Movie.ID)
			}
		}
	}
	if !reflect.DeepEqual(order, []int{5, 4, 3}) {
		t.Fatalf("expected first-appearance order [5 4 3], got %v", order)
	}
	if total != 5 {
		t.Fatalf("expected 5 showtimes, got %d", total)
	}
}

func TestGuide_MoviesForTab(t *testing.T) {
	g := newTestGuide(t)

	if got := movieIDs(g.MoviesForTab("jakarta", TabUpcoming)); !reflect.DeepEqual(got, []int{11, 12, 13, 14}) {
		t.Fatalf("expected upcoming movies, got %v", got)
	}
	if got := g.MoviesForTab("atlantis", TabUpcoming); len(got) != 4 {
		t.Fatalf("expected upcoming list regardless of city, got %d", len(got))
	}
	if got := movieIDs(g.MoviesForTab("jakarta", TabNowPlaying)); !reflect.DeepEqual(got, movieIDs(g.AvailableMovies("jakarta"))) {
		t.Fatalf("expected available movies on now-playing tab, got %v", got)
	}
}
