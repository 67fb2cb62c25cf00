package service

import (
	"bioskop-finder-cli/catalog"
	"bioskop-finder-cli/model"
)

// AvailableMovies returns the now-playing movies a city can carry. The selection is bounded
// by the city's screen capacity (1.5 titles per screen) and ordered by a deterministic
// per-city permutation, so the same city always gets the same list.
func AvailableMovies(cat *catalog.Catalog, city string) []model.Movie {
	theaters := cat.TheatersByCity(city)
	nowPlaying := cat.NowPlaying()

	maxMovies := min(totalScreens(theaters)*3/2, len(nowPlaying))
	if maxMovies <= 0 {
		return []model.Movie{}
	}

	shuffleForCity(nowPlaying, citySeed(city))
	return nowPlaying[:maxMovies]
}

func totalScreens(theaters []model.Theater) int {
	total := 0
	for _, t := range theaters {
		total += t.Screens
	}
	return total
}

// citySeed sums the UTF-16 code units of city.
func citySeed(city string) int {
	seed := 0
	for _, r := range city {
		if r > 0xFFFF {
			// surrogate pair
			r -= 0x10000
			seed += 0xD800 + int(r>>10)
			seed += 0xDC00 + int(r&0x3FF)
			continue
		}
		seed += int(r)
	}
	return seed
}

// shuffleForCity permutes movies in place. This is not a uniform shuffle: the swap index
// depends only on the seed and the position, which keeps each city's order reproducible.
func shuffleForCity(movies []model.Movie, seed int) {
	for i := len(movies) - 1; i > 0; i-- {
		j := (seed + i) % (i + 1)
		movies[i], movies[j] = movies[j], movies[i]
	}
}
