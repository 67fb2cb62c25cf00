package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bioskop-finder-cli/model"
)

const (
	appDir           = "bioskop-finder-cli"
	cityFile         = "selected_city.json"
	theatersFile     = "theaters.json"
	visibilityFile   = "theater_visibility.json"
	maxRecentTheater = 8
)

// CityStore persists the selected city slug across runs.
type CityStore interface {
	LoadCity() (string, error)
	SaveCity(city string) error
}

// Store is everything the app remembers between screens: the city, recently opened
// theaters and the theaters hidden per city.
type Store interface {
	CityStore
	LoadRecentTheaters() ([]RecentTheater, error)
	RememberTheater(theater model.Theater) error
	LoadHiddenTheaters(city string) (map[int]bool, error)
	SetTheaterHidden(city string, theaterID int, hidden bool) error
}

type selectedCity struct {
	City string `json:"city"`
}

type RecentTheater struct {
	City      string `json:"city"`
	TheaterID int    `json:"theater_id"`
	Name      string `json:"name"`
}

type theaterHistory struct {
	Theaters []RecentTheater `json:"theaters"`
}

type theaterVisibility struct {
	HiddenByCity map[string][]int `json:"hidden_by_city"`
}

// FileStore keeps user state as JSON files in a single directory.
type FileStore struct {
	dir string
}

// NewFileStore roots the store at dir, or at the user config directory when dir is empty.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, appDir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// LoadCity returns the stored city slug, or the default city when nothing was saved yet.
func (s *FileStore) LoadCity() (string, error) {
	var stored selectedCity
	found, err := readJSON(s.path(cityFile), &stored)
	if err != nil {
		return model.DefaultCity, fmt.Errorf("invalid city selection format: %w", err)
	}
	city := strings.TrimSpace(stored.City)
	if !found || city == "" {
		return model.DefaultCity, nil
	}
	return city, nil
}

func (s *FileStore) SaveCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errors.New("city is required")
	}
	return writeJSON(s.path(cityFile), selectedCity{City: city})
}

func (s *FileStore) LoadRecentTheaters() ([]RecentTheater, error) {
	var history theaterHistory
	if _, err := readJSON(s.path(theatersFile), &history); err != nil {
		return nil, errors.New("invalid theater history format")
	}
	return history.Theaters, nil
}

// RememberTheater moves the theater to the front of the history.
func (s *FileStore) RememberTheater(theater model.Theater) error {
	history, _ := s.LoadRecentTheaters()
	return writeJSON(s.path(theatersFile), theaterHistory{Theaters: pushRecent(history, theater)})
}

func (s *FileStore) LoadHiddenTheaters(city string) (map[int]bool, error) {
	result := map[int]bool{}
	if strings.TrimSpace(city) == "" {
		return result, nil
	}

	visibility, err := s.loadTheaterVisibility()
	if err != nil {
		return nil, err
	}
	for _, id := range visibility.HiddenByCity[city] {
		if id != 0 {
			result[id] = true
		}
	}
	return result, nil
}

func (s *FileStore) SetTheaterHidden(city string, theaterID int, hidden bool) error {
	city = strings.TrimSpace(city)
	if city == "" || theaterID == 0 {
		return errHiddenInput
	}

	visibility, err := s.loadTheaterVisibility()
	if err != nil {
		return err
	}

	setHidden(visibility.HiddenByCity, city, theaterID, hidden)
	return writeJSON(s.path(visibilityFile), visibility)
}

func (s *FileStore) loadTheaterVisibility() (theaterVisibility, error) {
	var visibility theaterVisibility
	if _, err := readJSON(s.path(visibilityFile), &visibility); err != nil {
		return theaterVisibility{}, errors.New("invalid theater visibility format")
	}
	if visibility.HiddenByCity == nil {
		visibility.HiddenByCity = map[string][]int{}
	}
	return visibility, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// MemoryStore keeps the same state as FileStore for a single run and never writes to disk.
type MemoryStore struct {
	city    string
	recents []RecentTheater
	hidden  map[string][]int
}

// NewMemoryStore starts from city, usually the one saved by a FileStore.
func NewMemoryStore(city string) *MemoryStore {
	return &MemoryStore{city: strings.TrimSpace(city), hidden: map[string][]int{}}
}

func (s *MemoryStore) LoadCity() (string, error) {
	if s.city == "" {
		return model.DefaultCity, nil
	}
	return s.city, nil
}

func (s *MemoryStore) SaveCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errors.New("city is required")
	}
	s.city = city
	return nil
}

func (s *MemoryStore) LoadRecentTheaters() ([]RecentTheater, error) {
	return slices.Clone(s.recents), nil
}

func (s *MemoryStore) RememberTheater(theater model.Theater) error {
	s.recents = pushRecent(s.recents, theater)
	return nil
}

func (s *MemoryStore) LoadHiddenTheaters(city string) (map[int]bool, error) {
	result := map[int]bool{}
	for _, id := range s.hidden[strings.TrimSpace(city)] {
		result[id] = true
	}
	return result, nil
}

func (s *MemoryStore) SetTheaterHidden(city string, theaterID int, hidden bool) error {
	city = strings.TrimSpace(city)
	if city == "" || theaterID == 0 {
		return errHiddenInput
	}
	setHidden(s.hidden, city, theaterID, hidden)
	return nil
}

var errHiddenInput = errors.New("city and theater id are required")

// pushRecent puts theater first and drops older entries for the same theater. The history
// never grows past maxRecentTheater.
func pushRecent(history []RecentTheater, theater model.Theater) []RecentTheater {
	next := []RecentTheater{{
		City:      theater.City,
		TheaterID: theater.ID,
		Name:      theater.Name,
	}}
	for _, existing := range history {
		if len(next) >= maxRecentTheater {
			break
		}
		if existing.TheaterID == theater.ID && existing.TheaterID != 0 {
			continue
		}
		if existing.Name != "" && strings.EqualFold(existing.Name, theater.Name) && existing.City == theater.City {
			continue
		}
		next = append(next, existing)
	}
	return next
}

func setHidden(byCity map[string][]int, city string, theaterID int, hidden bool) {
	current := byCity[city]
	index := slices.Index(current, theaterID)
	if hidden {
		if index < 0 {
			current = append(current, theaterID)
		}
	} else if index >= 0 {
		current = slices.Delete(current, index, index+1)
	}

	if len(current) == 0 {
		delete(byCity, city)
		return
	}
	slices.Sort(current)
	byCity[city] = current
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, err
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
