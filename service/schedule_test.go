package service

import (
	"fmt"
	"reflect"
	"slices"
	"testing"
	"time"

	"bioskop-finder-cli/model"
)

var testDay = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func showtimeKeys(showtimes []model.Showtime) []string {
	keys := make([]string, 0, len(showtimes))
	for _, st := range showtimes {
		keys = append(keys, fmt.Sprintf("%d@%s/s%d/%s", st.MovieID, st.Time, st.Screen, st.Format))
	}
	return keys
}

func TestScreenTypes(t *testing.T) {
	tests := []struct {
		name    string
		theater model.Theater
		want    map[int]string
	}{
		{
			name:    "imax and premiere",
			theater: model.Theater{Screens: 4, Facilities: []string{model.FacilityIMAX, model.FacilityPremiere}},
			want:    map[int]string{1: "Regular", 2: "Regular", 3: "The Premiere", 4: "IMAX"},
		},
		{
			name:    "premiere only",
			theater: model.Theater{Screens: 3, Facilities: []string{model.FacilityPremiere}},
			want:    map[int]string{1: "Regular", 2: "The Premiere", 3: "Regular"},
		},
		{
			name:    "single screen imax wins",
			theater: model.Theater{Screens: 1, Facilities: []string{model.FacilityIMAX, model.FacilityPremiere}},
			want:    map[int]string{1: "IMAX"},
		},
		{
			name:    "single screen premiere",
			theater: model.Theater{Screens: 1, Facilities: []string{model.FacilityPremiere}},
			want:    map[int]string{1: "The Premiere"},
		},
		{
			name:    "two screens",
			theater: model.Theater{Screens: 2, Facilities: []string{model.FacilityIMAX, model.FacilityPremiere}},
			want:    map[int]string{1: "The Premiere", 2: "IMAX"},
		},
		{
			name:    "cafe only",
			theater: model.Theater{Screens: 2, Facilities: []string{model.FacilityCafe}},
			want:    map[int]string{1: "Regular", 2: "Regular"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScreenTypes(tt.theater); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMaxScreensPerSlot(t *testing.T) {
	for screens, want := range map[int]int{0: 1, 1: 1, 2: 1, 3: 2, 5: 4, 8: 6, 10: 8, 15: 12} {
		if got := MaxScreensPerSlot(screens); got != want {
			t.Fatalf("expected %d for %d screens, got %d", want, screens, got)
		}
	}
}

func TestGenerateShowtimes_PinnedSchedules(t *testing.T) {
	cat := defaultCatalog(t)

	tests := []struct {
		theaterID int
		want      []string
	}{
		{
			theaterID: 25,
			want:      []string{"5@10:00/s1/Regular", "4@13:30/s1/Regular", "3@16:45/s1/Regular", "5@19:20/s1/Regular", "4@22:00/s1/Regular"},
		},
		{
			theaterID: 24,
			want: []string{
				"5@10:00/s1/Regular", "4@10:00/s2/The Premiere",
				"3@13:30/s1/Regular", "5@13:30/s2/The Premiere",
				"4@16:45/s1/Regular", "3@16:45/s2/The Premiere",
				"2@19:20/s1/Regular", "1@19:20/s2/The Premiere",
				"5@22:00/s1/Regular", "4@22:00/s2/The Premiere",
			},
		},
		{
			theaterID: 12,
			want: []string{
				"2@10:00/s1/Dolby Atmos", "1@10:00/s2/Regular", "4@10:00/s3/Regular", "9@10:00/s4/Regular", "10@10:00/s5/Regular", "3@10:00/s6/Regular",
				"2@13:30/s1/Dolby Atmos", "1@13:30/s2/Regular", "4@13:30/s3/Regular", "9@13:30/s4/Regular", "10@13:30/s5/Regular", "3@13:30/s6/Regular",
				"2@16:45/s1/Dolby Atmos", "1@16:45/s2/Regular", "4@16:45/s3/Regular", "8@16:45/s4/Regular", "7@16:45/s5/Regular", "6@16:45/s6/Regular",
				"5@19:20/s1/Regular",
			},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("theater %d", tt.theaterID), func(t *testing.T) {
			theater, ok := cat.TheaterByID(tt.theaterID)
			if !ok {
				t.Fatalf("theater %d not found", tt.theaterID)
			}
			got := GenerateShowtimes(theater, AvailableMovies(cat, theater.City), testDay)
			if got.TheaterID != tt.theaterID {
				t.Fatalf("expected theater id %d, got %d", tt.theaterID, got.TheaterID)
			}
			if got.Date != "2026-10-16" {
				t.Fatalf("expected date 2026-10-16, got %s", got.Date)
			}
			if keys := showtimeKeys(got.Showtimes); !reflect.DeepEqual(keys, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, keys)
			}
		})
	}
}

func TestGenerateShowtimes_Invariants(t *testing.T) {
	cat := defaultCatalog(t)

	for _, theater := range cat.Theaters() {
		available := AvailableMovies(cat, theater.City)
		allowed := map[int]bool{}
		for _, m := range available {
			allowed[m.ID] = true
		}

		schedule := GenerateShowtimes(theater, available, testDay)
		perSlot := map[string]int{}
		for _, st := range schedule.Showtimes {
			if st.Screen < 1 || st.Screen > theater.Screens {
				t.Fatalf("theater %d: screen %d out of range", theater.ID, st.Screen)
			}
			if !slices.Contains(TimeSlots, st.Time) {
				t.Fatalf("theater %d: unexpected slot %q", theater.ID, st.Time)
			}
			if !allowed[st.MovieID] {
				t.Fatalf("theater %d: movie %d not in available list", theater.ID, st.MovieID)
			}
			perSlot[st.Time]++
		}
		for slot, count := range perSlot {
			if count > MaxScreensPerSlot(theater.Screens) {
				t.Fatalf("theater %d: %d showtimes at %s exceeds cap %d", theater.ID, count, slot, MaxScreensPerSlot(theater.Screens))
			}
		}
	}
}

func TestGenerateShowtimes_PriorityTargets(t *testing.T) {
	var movies []model.Movie
	for id := 1; id <= 8; id++ {
		movies = append(movies, model.Movie{ID: id, Format: []string{model.FormatRegular}})
	}
	theater := model.Theater{ID: 1, Screens: 10}

	counts := map[int]int{}
	for _, st := range GenerateShowtimes(theater, movies, testDay).Showtimes {
		counts[st.MovieID]++
	}
	want := map[int]int{1: 3, 2: 3, 3: 3, 4: 2, 5: 2, 6: 2, 7: 1, 8: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("expected %v, got %v", want, counts)
	}
}

func TestGenerateShowtimes_SlateLimit(t *testing.T) {
	var movies []model.Movie
	for id := 1; id <= 10; id++ {
		movies = append(movies, model.Movie{ID: id, Format: []string{model.FormatRegular}})
	}
	theater := model.Theater{ID: 1, Screens: 2}

	for _, st := range GenerateShowtimes(theater, movies, testDay).Showtimes {
		if st.MovieID > 4 {
			t.Fatalf("expected only the first screens+2 movies, got movie %d", st.MovieID)
		}
	}
}

func TestGenerateShowtimes_SingleRegularScreenHasNoPremiumFormats(t *testing.T) {
	movies := []model.Movie{
		{ID: 1, Format: []string{model.FormatRegular, model.FormatIMAX}},
		{ID: 2, Format: []string{model.FormatPremiere}},
		{ID: 3, Format: []string{model.FormatDolby}},
	}
	theater := model.Theater{ID: 1, Screens: 1, Facilities: []string{model.FacilityCafe}}

	schedule := GenerateShowtimes(theater, movies, testDay)
	if len(schedule.Showtimes) == 0 {
		t.Fatal("expected showtimes")
	}
	for _, st := range schedule.Showtimes {
		if st.Format == model.FormatIMAX || st.Format == model.FormatPremiere {
			t.Fatalf("unexpected premium format: %+v", st)
		}
	}
}

func TestGenerateShowtimes_IncompatibleScreenStaysIdle(t *testing.T) {
	movies := []model.Movie{
		{ID: 3, Format: []string{model.FormatRegular}},
		{ID: 1, Format: []string{model.FormatIMAX, model.FormatRegular}},
	}
	theater := model.Theater{ID: 1, Screens: 1, Facilities: []string{model.FacilityIMAX}}

	// The head of the queue never fits the IMAX room, so it blocks every slot.
	if got := GenerateShowtimes(theater, movies, testDay).Showtimes; len(got) != 0 {
		t.Fatalf("expected no showtimes, got %v", showtimeKeys(got))
	}
}

func TestGenerateShowtimes_DisplayFormats(t *testing.T) {
	theater := model.Theater{ID: 1, Screens: 5, Facilities: []string{model.FacilityIMAX, model.FacilityDolby}}
	movie := model.Movie{ID: 1, Format: []string{model.FormatRegular, model.FormatIMAX, model.FormatDolby}}

	if got := displayFormat(model.FormatIMAX, movie, theater); got != model.FormatIMAX {
		t.Fatalf("expected IMAX, got %s", got)
	}
	if got := displayFormat(model.FormatPremiere, movie, theater); got != model.FormatPremiere {
		t.Fatalf("expected The Premiere, got %s", got)
	}
	if got := displayFormat(model.FormatRegular, movie, theater); got != model.FormatDolby {
		t.Fatalf("expected Dolby Atmos, got %s", got)
	}
	noDolby := model.Theater{ID: 2, Screens: 5}
	if got := displayFormat(model.FormatRegular, movie, noDolby); got != model.FormatRegular {
		t.Fatalf("expected Regular, got %s", got)
	}
}

func TestGenerateShowtimes_PremiereGateAcceptsRegularOnly(t *testing.T) {
	premiereOnly := model.Movie{ID: 1, Format: []string{model.FormatPremiere}}
	regular := model.Movie{ID: 2, Format: []string{model.FormatRegular}}
	imaxOnly := model.Movie{ID: 3, Format: []string{model.FormatIMAX}}

	if !screenAccepts(model.FormatPremiere, premiereOnly) || !screenAccepts(model.FormatPremiere, regular) {
		t.Fatal("expected premiere screen to accept premiere and regular movies")
	}
	if screenAccepts(model.FormatPremiere, imaxOnly) {
		t.Fatal("expected premiere screen to reject an IMAX-only movie")
	}
	if screenAccepts(model.FormatIMAX, regular) {
		t.Fatal("expected IMAX screen to reject a regular-only movie")
	}
	if !screenAccepts(model.FormatRegular, imaxOnly) {
		t.Fatal("expected regular screen to accept any movie")
	}
}

func TestGenerateShowtimes_EmptyInputs(t *testing.T) {
	theater := model.Theater{ID: 4, Screens: 3}
	got := GenerateShowtimes(theater, nil, testDay)
	if got.Showtimes == nil || len(got.Showtimes) != 0 {
		t.Fatalf("expected empty showtimes, got %v", got.Showtimes)
	}
}

func TestGenerateShowtimes_NegativeScreens(t *testing.T) {
	movies := []model.Movie{
		{ID: 1, Title: "A", Format: []string{model.FormatRegular}},
		{ID: 2, Title: "B", Format: []string{model.FormatRegular}},
	}
	for _, screens := range []int{-1, -3, -20} {
		got := GenerateShowtimes(model.Theater{ID: 1, Screens: screens}, movies, testDay)
		if len(got.Showtimes) != 0 {
			t.Fatalf("expected no showtimes for %d screens, got %v", screens, got.Showtimes)
		}
		if got.TheaterID != 1 {
			t.Fatalf("expected theater 1, got %d", got.TheaterID)
		}
	}
}
