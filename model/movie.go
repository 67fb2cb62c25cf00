package model

type MovieStatus string

const (
	StatusNowPlaying MovieStatus = "now-playing"
	StatusUpcoming   MovieStatus = "upcoming"
)

const (
	FormatRegular  = "Regular"
	FormatIMAX     = "IMAX"
	FormatDolby    = "Dolby Atmos"
	FormatPremiere = "The Premiere"
)

type Movie struct {
	ID              int         `json:"id" validate:"gte=1"`
	Title           string      `json:"title" validate:"required"`
	Genre           string      `json:"genre"`
	Rating          string      `json:"rating"`
	Duration        string      `json:"duration"`
	Format          []string    `json:"format" validate:"min=1,dive,oneof=Regular IMAX 'Dolby Atmos' 'The Premiere'"`
	Status          MovieStatus `json:"status" validate:"oneof=now-playing upcoming"`
	Image           string      `json:"image,omitempty"`
	IsAdvanceTicket bool        `json:"isAdvanceTicket,omitempty"`
	Description     string      `json:"description,omitempty"`
	Director        string      `json:"director,omitempty"`
	Cast            []string    `json:"cast,omitempty"`
	ReleaseDate     string      `json:"releaseDate,omitempty"`
}

// NewMovie validates m and returns it. A movie must support at least one known format.
func NewMovie(m Movie) (Movie, error) {
	if err := validateStruct("movie", m.ID, m); err != nil {
		return Movie{}, err
	}
	return m, nil
}

func (m Movie) Supports(format string) bool {
	return hasTag(m.Format, format)
}

func (m Movie) IsNowPlaying() bool {
	return m.Status == StatusNowPlaying
}
