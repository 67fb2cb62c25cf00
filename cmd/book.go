package cmd

import (
	"fmt"
	"time"

	"bioskop-finder-cli/booking"
	"bioskop-finder-cli/model"
	"bioskop-finder-cli/service"

	"github.com/go-playground/validator/v10"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validate = validator.New()

type bookRequest struct {
	TheaterID int      `validate:"gte=1"`
	MovieID   int      `validate:"gte=1"`
	Adults    int      `validate:"gte=0"`
	Children  int      `validate:"gte=0"`
	Seats     []string `validate:"min=1,dive,required"`
	Email     string   `validate:"omitempty,email"`
}

func newBookCmd(a *app) *cobra.Command {
	var req bookRequest
	var showTime string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Draft a booking for a showtime",
		Long: `Draft a booking for a showtime and print the price breakdown.
Nothing is reserved or paid; the result is a draft reference only.`,
		Example: `  bioskop-finder-cli book --theater 1 --movie 4 --time 19:20 --seats 5-1,5-2 --adults 1 --children 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Struct(req); err != nil {
				return fmt.Errorf("invalid booking: %w", err)
			}
			session, err := a.bookingSession(req, showTime)
			if err != nil {
				return err
			}
			if len(req.Seats) != session.TotalPeople() {
				return fmt.Errorf("%w: %d seats for %d people", booking.ErrIncompleteSelection, len(req.Seats), session.TotalPeople())
			}
			for _, seat := range req.Seats {
				if err := checkSeat(session, seat); err != nil {
					return err
				}
				session.Click(seat)
			}

			conf, err := session.Submit(time.Now())
			if err != nil {
				return err
			}
			a.logger.Info("booking confirmed",
				zap.String("reference", conf.Reference),
				zap.Int("movie_id", conf.Showing.Movie.ID),
				zap.String("theater", conf.Showing.Theater),
				zap.Strings("seats", conf.Seats),
			)
			printConfirmation(cmd, conf)
			return nil
		},
	}

	cmd.Flags().IntVar(&req.TheaterID, "theater", 0, "theater id")
	cmd.Flags().IntVar(&req.MovieID, "movie", 0, "movie id")
	cmd.Flags().StringVar(&showTime, "time", "", "showtime, e.g. 19:20 (default is the first showing)")
	cmd.Flags().StringSliceVar(&req.Seats, "seats", nil, "seats as row-seat, e.g. 5-1,5-2")
	cmd.Flags().IntVar(&req.Adults, "adults", 1, "number of adults")
	cmd.Flags().IntVar(&req.Children, "children", 0, "number of children")
	cmd.Flags().StringVar(&req.Email, "email", "", "contact email")
	return cmd
}

// bookingSession finds the requested showing in today's schedule and opens a session for it.
func (a *app) bookingSession(req bookRequest, showTime string) (*booking.Session, error) {
	theater, ok := a.guide.TheaterByID(req.TheaterID)
	if !ok {
		return nil, fmt.Errorf("theater %d not found", req.TheaterID)
	}
	movie, ok := a.guide.MovieByID(req.MovieID)
	if !ok {
		return nil, fmt.Errorf("movie %d not found", req.MovieID)
	}

	showtime, ok := findShowtime(a.guide.TheaterSchedule(theater), movie.ID, showTime)
	if !ok {
		if showTime == "" {
			return nil, fmt.Errorf("%s is not showing at %s today", movie.Title, theater.Name)
		}
		return nil, fmt.Errorf("%s has no %s showing at %s today", movie.Title, showTime, theater.Name)
	}

	session := booking.NewSession(booking.DefaultLayout(), booking.Showing{
		Movie:   movie,
		Theater: theater.Name,
		Time:    showtime.Time,
		Format:  showtime.Format,
	})
	session.SetAdults(req.Adults)
	session.SetChildren(req.Children)
	session.Email = req.Email
	return session, nil
}

func findShowtime(schedule []service.MovieShowtimes, movieID int, showTime string) (model.Showtime, bool) {
	for _, entry := range schedule {
		if entry.Movie.ID != movieID {
			continue
		}
		for _, st := range entry.Showtimes {
			if showTime == "" || st.Time == showTime {
				return st, true
			}
		}
	}
	return model.Showtime{}, false
}

func checkSeat(session *booking.Session, seat string) error {
	if !session.Layout().Has(seat) {
		return fmt.Errorf("unknown seat %q", seat)
	}
	switch session.Status(seat) {
	case booking.SeatBooked:
		return fmt.Errorf("seat %s is already booked", seat)
	case booking.SeatSelected:
		return fmt.Errorf("seat %s is listed twice", seat)
	}
	return nil
}

func printConfirmation(cmd *cobra.Command, conf booking.Confirmation) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s • %s • %s • %s\n", conf.Showing.Movie.Title, conf.Showing.Theater, conf.Showing.Time, conf.Showing.Format)

	t := newTable(out, table.Row{"Item", "Amount"})
	t.AppendRow(table.Row{fmt.Sprintf("Tickets (%d)", conf.Quote.Tickets), booking.FormatIDR(conf.Quote.Subtotal)})
	t.AppendRow(table.Row{"Student discount", "-" + booking.FormatIDR(conf.Quote.Discount)})
	t.AppendFooter(table.Row{"Total", booking.FormatIDR(conf.Quote.Total)})
	t.Render()

	fmt.Fprintf(out, "Seats: %s\n", joinOrDash(conf.Seats))
	if conf.Email != "" {
		fmt.Fprintf(out, "Email: %s\n", conf.Email)
	}
	fmt.Fprintf(out, "Draft reference: %s\n", conf.Reference)
}
