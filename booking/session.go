package booking

import (
	"errors"
	"math"
	"slices"
	"time"

	"bioskop-finder-cli/model"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	TicketPrice     = 50000
	StudentDiscount = 0.25

	MinZoom  = 0.8
	MaxZoom  = 1.6
	ZoomStep = 0.2
)

var ErrIncompleteSelection = errors.New("select one seat per person before submitting")

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSelected  SeatStatus = "selected"
	SeatBooked    SeatStatus = "booked"
)

// Showing is what a booking is for. It is display context only.
type Showing struct {
	Movie   model.Movie
	Theater string
	Time    string
	Format  string
}

type Quote struct {
	Tickets  int
	Subtotal float64
	Discount float64
	Total    float64
}

// Confirmation is the result of a submitted booking. Nothing is stored or sent.
type Confirmation struct {
	Reference string
	Showing   Showing
	Seats     []string
	Email     string
	Quote     Quote
	CreatedAt time.Time
}

// Session is the seat selection state of one booking dialog. It is owned by a single UI
// and is not safe for concurrent use.
type Session struct {
	Showing Showing
	Email   string

	layout   Layout
	selected []string
	adults   int
	children int
	zoom     float64
}

// NewSession starts a booking for one adult with nothing selected.
func NewSession(layout Layout, showing Showing) *Session {
	if showing.Time == "" {
		showing.Time = "10:00"
	}
	if showing.Format == "" {
		showing.Format = model.FormatRegular
	}
	return &Session{
		Showing: showing,
		layout:  layout,
		adults:  1,
		zoom:    1,
	}
}

func (s *Session) Layout() Layout {
	return s.layout
}

// Selected returns the selected seats, oldest first.
func (s *Session) Selected() []string {
	return slices.Clone(s.selected)
}

func (s *Session) Adults() int {
	return s.adults
}

func (s *Session) Children() int {
	return s.children
}

func (s *Session) TotalPeople() int {
	return s.adults + s.children
}

func (s *Session) Status(id string) SeatStatus {
	if s.layout.IsBooked(id) {
		return SeatBooked
	}
	if slices.Contains(s.selected, id) {
		return SeatSelected
	}
	return SeatAvailable
}

// Click toggles a seat. Once the selection holds one seat per person, a new seat replaces
// the oldest selected one. Booked and unknown seats are ignored.
func (s *Session) Click(id string) {
	if !s.layout.Has(id) || s.layout.IsBooked(id) {
		return
	}
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return
	}
	if len(s.selected) < s.TotalPeople() {
		s.selected = append(s.selected, id)
		return
	}
	if len(s.selected) == 0 {
		return
	}
	s.selected = append(s.selected[1:], id)
}

// SetAdults changes the adult count. Shrinking the party below the selection keeps the
// earliest selected seats.
func (s *Session) SetAdults(n int) {
	s.adults = max(0, n)
	s.truncate()
}

// SetChildren changes the child count, truncating like SetAdults.
func (s *Session) SetChildren(n int) {
	s.children = max(0, n)
	s.truncate()
}

func (s *Session) truncate() {
	if total := s.TotalPeople(); len(s.selected) > total {
		s.selected = slices.Clone(s.selected[:total])
	}
}

func (s *Session) Quote() Quote {
	tickets := len(s.selected)
	subtotal := float64(tickets * TicketPrice)
	discount := subtotal * StudentDiscount
	return Quote{
		Tickets:  tickets,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
}

// CanSubmit reports whether exactly one seat per person is selected.
func (s *Session) CanSubmit() bool {
	return len(s.selected) == s.TotalPeople()
}

func (s *Session) Submit(now time.Time) (Confirmation, error) {
	if !s.CanSubmit() {
		return Confirmation{}, ErrIncompleteSelection
	}
	return Confirmation{
		Reference: uuid.NewString(),
		Showing:   s.Showing,
		Seats:     s.Selected(),
		Email:     s.Email,
		Quote:     s.Quote(),
		CreatedAt: now,
	}, nil
}

func (s *Session) Zoom() float64 {
	return s.zoom
}

func (s *Session) ZoomIn() {
	s.zoom = roundZoom(min(s.zoom+ZoomStep, MaxZoom))
}

func (s *Session) ZoomOut() {
	s.zoom = roundZoom(max(s.zoom-ZoomStep, MinZoom))
}

func (s *Session) CanZoomIn() bool {
	return s.zoom < MaxZoom
}

func (s *Session) CanZoomOut() bool {
	return s.zoom > MinZoom
}

func (s *Session) ZoomPercent() int {
	return int(math.Round(s.zoom * 100))
}

// roundZoom keeps repeated steps from drifting off the 0.2 grid.
func roundZoom(z float64) float64 {
	return math.Round(z*10) / 10
}

var amountPrinter = message.NewPrinter(language.English)

// FormatIDR renders an amount as "IDR 112,500". Fractions are rounded to whole rupiah.
func FormatIDR(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return amountPrinter.Sprintf("-IDR %d", -n)
	}
	return amountPrinter.Sprintf("IDR %d", n)
}
