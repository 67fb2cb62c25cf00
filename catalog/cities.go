package catalog

import "bioskop-finder-cli/model"

var cityNames = []string{
	"All Cities",
	"Balikpapan",
	"Bandung",
	"Banjarmasin",
	"Batam",
	"Bekasi",
	"Bengkulu",
	"Denpasar",
	"Depok",
	"Jakarta",
	"Jayapura",
	"Makassar",
	"Malang",
	"Manado",
	"Medan",
	"Palembang",
	"Pekanbaru",
	"Pontianak",
	"Samarinda",
	"Semarang",
	"Solo",
	"Surabaya",
	"Tangerang",
	"Yogyakarta",
}

// Cities returns the city picker entries, "All Cities" first.
func Cities() []model.City {
	cities := make([]model.City, 0, len(cityNames))
	for _, name := range cityNames {
		cities = append(cities, model.NewCity(name))
	}
	return cities
}

// CityBySlug resolves a slug to its picker entry.
func CityBySlug(slug string) (model.City, bool) {
	for _, city := range Cities() {
		if city.Slug == slug {
			return city, true
		}
	}
	return model.City{}, false
}

// CityName returns the display name for slug, falling back to the slug itself.
func CityName(slug string) string {
	if city, ok := CityBySlug(slug); ok {
		return city.Name
	}
	return slug
}
