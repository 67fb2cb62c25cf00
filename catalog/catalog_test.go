package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bioskop-finder-cli/model"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Default()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return cat
}

func TestDefault_Counts(t *testing.T) {
	cat := mustDefault(t)

	if got := len(cat.Movies()); got != 14 {
		t.Fatalf("expected 14 movies, got %d", got)
	}
	if got := len(cat.NowPlaying()); got != 10 {
		t.Fatalf("expected 10 now-playing movies, got %d", got)
	}
	if got := len(cat.Upcoming()); got != 4 {
		t.Fatalf("expected 4 upcoming movies, got %d", got)
	}
	if got := len(cat.Theaters()); got != 29 {
		t.Fatalf("expected 29 theaters, got %d", got)
	}
}

func TestTheatersByCity(t *testing.T) {
	cat := mustDefault(t)

	jakarta := cat.TheatersByCity("jakarta")
	if len(jakarta) != 2 {
		t.Fatalf("expected 2 theaters in jakarta, got %d", len(jakarta))
	}
	if jakarta[0].Screens+jakarta[1].Screens != 18 {
		t.Fatalf("expected 18 screens in jakarta, got %+v", jakarta)
	}
	if got := len(cat.TheatersByCity(model.AllCities)); got != 29 {
		t.Fatalf("expected every theater for all-cities, got %d", got)
	}
	if got := cat.TheatersByCity("atlantis"); len(got) != 0 {
		t.Fatalf("expected no theaters for unknown city, got %+v", got)
	}
	if got := cat.TheatersByCity("Jakarta"); len(got) != 0 {
		t.Fatalf("expected slug match to be exact, got %+v", got)
	}
}

func TestLookups(t *testing.T) {
	cat := mustDefault(t)

	movie, ok := cat.MovieByID(3)
	if !ok || movie.Title != "The Batman" {
		t.Fatalf("unexpected movie: %+v (ok=%v)", movie, ok)
	}
	if _, ok := cat.MovieByID(999); ok {
		t.Fatal("expected missing movie")
	}

	theater, ok := cat.TheaterByID(12)
	if !ok || theater.City != "bandung" {
		t.Fatalf("unexpected theater: %+v (ok=%v)", theater, ok)
	}

	byName, ok := cat.TheaterByName("  plaza indonesia xxi ")
	if !ok || byName.ID != 1 {
		t.Fatalf("expected Plaza Indonesia XXI, got %+v (ok=%v)", byName, ok)
	}
	if _, ok := cat.TheaterByName(""); ok {
		t.Fatal("expected empty name to miss")
	}
}

func TestReturnedValuesAreCopies(t *testing.T) {
	cat := mustDefault(t)

	movie, _ := cat.MovieByID(1)
	movie.Format[0] = "Broken"
	movie.Cast = nil

	again, _ := cat.MovieByID(1)
	if again.Format[0] != model.FormatRegular {
		t.Fatalf("expected catalog format untouched, got %v", again.Format)
	}
	if len(again.Cast) != 3 {
		t.Fatalf("expected catalog cast untouched, got %v", again.Cast)
	}

	theaters := cat.TheatersByCity("jakarta")
	theaters[0].Facilities[0] = "Broken"
	if fresh := cat.TheatersByCity("jakarta"); fresh[0].Facilities[0] != model.FacilityIMAX {
		t.Fatalf("expected catalog facilities untouched, got %v", fresh[0].Facilities)
	}
}

func TestNew_StoresDetachedCopies(t *testing.T) {
	movies := []model.Movie{{ID: 1, Title: "A", Format: []string{model.FormatRegular}, Status: model.StatusNowPlaying}}
	theaters := []model.Theater{{ID: 1, Name: "T", City: "jakarta", Screens: 2, Facilities: []string{model.FacilityIMAX}}}

	cat, err := New(movies, theaters)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	movies[0].Format[0] = "Broken"
	theaters[0].Facilities[0] = "Broken"

	movie, _ := cat.MovieByID(1)
	if movie.Format[0] != model.FormatRegular {
		t.Fatalf("expected stored format untouched, got %v", movie.Format)
	}
	theater, _ := cat.TheaterByID(1)
	if theater.Facilities[0] != model.FacilityIMAX {
		t.Fatalf("expected stored facilities untouched, got %v", theater.Facilities)
	}
}

func TestDeepCopy(t *testing.T) {
	in := model.Movie{ID: 7, Title: "A", Cast: []string{"X", "Y"}}
	out, err := deepCopy(in)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	out.Cast[0] = "Z"
	if in.Cast[0] != "X" || out.ID != 7 || out.Title != "A" {
		t.Fatalf("expected an independent copy, got in %+v out %+v", in, out)
	}
}

func TestNew_RejectsInvariantViolations(t *testing.T) {
	movies := []model.Movie{{ID: 1, Title: "A", Format: []string{"Regular"}, Status: model.StatusNowPlaying}}
	theaters := []model.Theater{{ID: 1, Name: "T", City: "jakarta", Screens: 1}}

	if _, err := New(movies, theaters); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	noFormat := []model.Movie{{ID: 1, Title: "A", Status: model.StatusNowPlaying}}
	if _, err := New(noFormat, theaters); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty format, got %v", err)
	}

	noScreens := []model.Theater{{ID: 1, Name: "T", City: "jakarta"}}
	if _, err := New(movies, noScreens); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero screens, got %v", err)
	}

	dup := append(movies, movies[0])
	if _, err := New(dup, theaters); err == nil {
		t.Fatal("expected duplicate id error")
	}

	if _, err := New(nil, theaters); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"movies":[{"id":7,"title":"Solo","format":["IMAX"],"status":"now-playing"}],
"theaters":[{"id":3,"name":"Tiny XXI","city":"solo","screens":1,"facilities":["XXI Café"]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := cat.TheatersByCity("solo"); len(got) != 1 || got[0].Name != "Tiny XXI" {
		t.Fatalf("unexpected theaters: %+v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCities(t *testing.T) {
	cities := Cities()
	if len(cities) != 24 {
		t.Fatalf("expected 24 cities, got %d", len(cities))
	}
	if cities[0].Slug != model.AllCities {
		t.Fatalf("expected all-cities first, got %+v", cities[0])
	}
	if got := CityName("yogyakarta"); got != "Yogyakarta" {
		t.Fatalf("expected Yogyakarta, got %q", got)
	}
	if got := CityName("atlantis"); got != "atlantis" {
		t.Fatalf("expected slug fallback, got %q", got)
	}
}
