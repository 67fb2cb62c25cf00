package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"bioskop-finder-cli/model"

	"github.com/jinzhu/copier"
)

//go:embed catalog.json
var embedded []byte

// ErrEmpty is returned when a catalog document carries no movies or no theaters.
var ErrEmpty = errors.New("catalog has no movies or theaters")

// Catalog is the immutable movie/theater data set. It is built once and only handed out as copies.
type Catalog struct {
	movies   []model.Movie
	theaters []model.Theater
}

type document struct {
	Movies   []model.Movie   `json:"movies"`
	Theaters []model.Theater `json:"theaters"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(embedded)
	})
	return defaultCat, defaultErr
}

// Load reads a catalog document from path. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Movies, doc.Theaters)
}

// New validates every entry and rejects duplicate ids.
func New(movies []model.Movie, theaters []model.Theater) (*Catalog, error) {
	if len(movies) == 0 || len(theaters) == 0 {
		return nil, ErrEmpty
	}

	cat := &Catalog{}
	seenMovies := make(map[int]bool, len(movies))
	for _, raw := range movies {
		m, err := model.NewMovie(raw)
		if err != nil {
			return nil, err
		}
		if seenMovies[m.ID] {
			return nil, fmt.Errorf("duplicate movie id %d", m.ID)
		}
		seenMovies[m.ID] = true
		stored, err := deepCopy(m)
		if err != nil {
			return nil, err
		}
		cat.movies = append(cat.movies, stored)
	}

	seenTheaters := make(map[int]bool, len(theaters))
	for _, raw := range theaters {
		t, err := model.NewTheater(raw)
		if err != nil {
			return nil, err
		}
		if seenTheaters[t.ID] {
			return nil, fmt.Errorf("duplicate theater id %d", t.ID)
		}
		seenTheaters[t.ID] = true
		stored, err := deepCopy(t)
		if err != nil {
			return nil, err
		}
		cat.theaters = append(cat.theaters, stored)
	}
	return cat, nil
}

func (c *Catalog) Movies() []model.Movie {
	return cloneMovies(c.movies)
}

func (c *Catalog) Theaters() []model.Theater {
	return cloneTheaters(c.theaters)
}

// NowPlaying returns the now-playing movies in catalog order.
func (c *Catalog) NowPlaying() []model.Movie {
	return c.byStatus(model.StatusNowPlaying)
}

// Upcoming returns the upcoming movies in catalog order.
func (c *Catalog) Upcoming() []model.Movie {
	return c.byStatus(model.StatusUpcoming)
}

func (c *Catalog) byStatus(status model.MovieStatus) []model.Movie {
	var out []model.Movie
	for _, m := range c.movies {
		if m.Status == status {
			out = append(out, cloneMovie(m))
		}
	}
	return out
}

func (c *Catalog) MovieByID(id int) (model.Movie, bool) {
	for _, m := range c.movies {
		if m.ID == id {
			return cloneMovie(m), true
		}
	}
	return model.Movie{}, false
}

func (c *Catalog) TheaterByID(id int) (model.Theater, bool) {
	for _, t := range c.theaters {
		if t.ID == id {
			return cloneTheater(t), true
		}
	}
	return model.Theater{}, false
}

// TheaterByName finds a theater by its display name, ignoring case and surrounding spaces.
func (c *Catalog) TheaterByName(name string) (model.Theater, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Theater{}, false
	}
	for _, t := range c.theaters {
		if strings.EqualFold(t.Name, name) {
			return cloneTheater(t), true
		}
	}
	return model.Theater{}, false
}

// TheatersByCity matches the city slug exactly. model.AllCities selects every theater;
// an unknown slug yields an empty list.
func (c *Catalog) TheatersByCity(city string) []model.Theater {
	if city == model.AllCities {
		return c.Theaters()
	}
	var out []model.Theater
	for _, t := range c.theaters {
		if t.City == city {
			out = append(out, cloneTheater(t))
		}
	}
	return out
}

// deepCopy detaches the slices of v from the catalog.
func deepCopy[T any](v T) (T, error) {
	var out T
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		return out, fmt.Errorf("copy %T: %w", v, err)
	}
	return out, nil
}

// cloneMovie copies an entry that New already copied once with the error checked. copier
// only fails on nil or mismatched pointers, so a later copy of the same value cannot fail.
func cloneMovie(m model.Movie) model.Movie {
	out, _ := deepCopy(m)
	return out
}

func cloneTheater(t model.Theater) model.Theater {
	out, _ := deepCopy(t)
	return out
}

func cloneMovies(movies []model.Movie) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		out = append(out, cloneMovie(m))
	}
	return out
}

func cloneTheaters(theaters []model.Theater) []model.Theater {
	out := make([]model.Theater, 0, len(theaters))
	for _, t := range theaters {
		out = append(out, cloneTheater(t))
	}
	return out
}
