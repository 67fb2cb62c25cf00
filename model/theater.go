package model

const (
	FacilityIMAX         = "IMAX"
	FacilityPremiere     = "The Premiere"
	FacilityDolby        = "Dolby Atmos"
	FacilityCafe         = "XXI Café"
	FacilityPremiereCafe = "The Premiere Café"
)

// Facilities lists every capability tag a theater may carry, in picker order.
var Facilities = []string{FacilityPremiere, FacilityIMAX, FacilityDolby, FacilityPremiereCafe, FacilityCafe}

type Theater struct {
	ID         int      `json:"id" validate:"gte=1"`
	Name       string   `json:"name" validate:"required"`
	City       string   `json:"city" validate:"required,lowercase"`
	Location   string   `json:"location"`
	Distance   string   `json:"distance"`
	Screens    int      `json:"screens" validate:"gte=1"`
	Facilities []string `json:"facilities" validate:"dive,oneof=IMAX 'The Premiere' 'Dolby Atmos' 'XXI Café' 'The Premiere Café'"`
	Address    string   `json:"address"`
}

// NewTheater validates t and returns it. Every theater has at least one screen.
func NewTheater(t Theater) (Theater, error) {
	if err := validateStruct("theater", t.ID, t); err != nil {
		return Theater{}, err
	}
	return t, nil
}

func (t Theater) HasFacility(facility string) bool {
	return hasTag(t.Facilities, facility)
}

type Showtime struct {
	MovieID int    `json:"movieId"`
	Time    string `json:"time"`
	Format  string `json:"format"`
	Screen  int    `json:"screen"`
}

type TheaterShowtimes struct {
	TheaterID int        `json:"theaterId"`
	Date      string     `json:"date"`
	Showtimes []Showtime `json:"showtimes"`
}
