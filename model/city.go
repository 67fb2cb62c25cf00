package model

import "github.com/gosimple/slug"

const (
	AllCities   = "all-cities"
	DefaultCity = "jakarta"
)

type City struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CitySlug turns a display name such as "All Cities" into its slug ("all-cities").
func CitySlug(name string) string {
	return slug.Make(name)
}

func NewCity(name string) City {
	return City{Name: name, Slug: CitySlug(name)}
}
