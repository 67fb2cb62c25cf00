package service

import (
	"errors"
	"strings"

	"bioskop-finder-cli/model"

	"github.com/go-playground/validator/v10"
)

const (
	maxMovieResults   = 3
	maxTheaterResults = 2
)

var (
	ErrEmptyQuery    = errors.New("please enter a search term")
	ErrQueryTooShort = errors.New("search term must be at least 2 characters")
	ErrNoResults     = errors.New("no movies or theaters found matching your search")
)

var validate = validator.New()

type searchRequest struct {
	Query string `validate:"required,min=2"`
}

type SearchResults struct {
	Query    string
	Movies   []model.Movie
	Theaters []model.Theater
}

// Search looks a query up across every movie title and every theater name, location and city.
func (g *Guide) Search(query string) (SearchResults, error) {
	req := searchRequest{Query: strings.TrimSpace(query)}
	if err := validateSearch(req); err != nil {
		return SearchResults{}, err
	}

	needle := strings.ToLower(req.Query)
	results := SearchResults{Query: req.Query}
	for _, m := range g.catalog.Movies() {
		if len(results.Movies) == maxMovieResults {
			break
		}
		if strings.Contains(strings.ToLower(m.Title), needle) {
			results.Movies = append(results.Movies, m)
		}
	}
	for _, t := range g.catalog.Theaters() {
		if len(results.Theaters) == maxTheaterResults {
			break
		}
		if strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Location), needle) ||
			strings.Contains(strings.ToLower(t.City), needle) {
			results.Theaters = append(results.Theaters, t)
		}
	}

	if len(results.Movies) == 0 && len(results.Theaters) == 0 {
		return results, ErrNoResults
	}
	return results, nil
}

func validateSearch(req searchRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "required":
				return ErrEmptyQuery
			case "min":
				return ErrQueryTooShort
			}
		}
	}
	return err
}
