package booking

import (
	"errors"
	"slices"
	"testing"
	"time"

	"bioskop-finder-cli/model"
)

func newTestSession() *Session {
	return NewSession(DefaultLayout(), Showing{
		Movie:   model.Movie{ID: 1, Title: "Dune: Part Two"},
		Theater: "Grand Indonesia XXI",
		Time:    "19:20",
		Format:  model.FormatIMAX,
	})
}

func assertSelected(t *testing.T, s *Session, want ...string) {
	t.Helper()
	got := s.Selected()
	if !slices.Equal(got, want) {
		t.Fatalf("expected selection %v, got %v", want, got)
	}
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	if len(l.Rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(l.Rows))
	}
	if l.Capacity() != 4*9+3*11 {
		t.Fatalf("expected capacity 69, got %d", l.Capacity())
	}
	if l.MaxSeats() != 11 {
		t.Fatalf("expected widest row 11, got %d", l.MaxSeats())
	}
	if l.BookedCount() != 7 {
		t.Fatalf("expected 7 booked seats, got %d", l.BookedCount())
	}
	for _, id := range []string{"1-3", "1-4", "2-5", "3-7", "4-2", "5-8", "6-6"} {
		if !l.IsBooked(id) {
			t.Fatalf("expected %s to be booked", id)
		}
	}
	if l.Has("1-10") || !l.Has("5-11") || l.Has("8-1") || l.Has("x") {
		t.Fatalf("unexpected seat membership")
	}
}

func TestParseSeatID(t *testing.T) {
	row, seat, ok := ParseSeatID("5-11")
	if !ok || row != 5 || seat != 11 {
		t.Fatalf("expected 5-11, got %d-%d ok=%v", row, seat, ok)
	}
	if _, _, ok := ParseSeatID("5"); ok {
		t.Fatalf("expected parse failure")
	}
	if SeatID(3, 2) != "3-2" {
		t.Fatalf("expected 3-2, got %s", SeatID(3, 2))
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(DefaultLayout(), Showing{})
	if s.Adults() != 1 || s.Children() != 0 {
		t.Fatalf("expected 1 adult 0 children, got %d/%d", s.Adults(), s.Children())
	}
	if s.Zoom() != 1 || s.ZoomPercent() != 100 {
		t.Fatalf("expected zoom 1, got %v", s.Zoom())
	}
	if len(s.Selected()) != 0 {
		t.Fatalf("expected empty selection")
	}
	if s.Showing.Time != "10:00" || s.Showing.Format != model.FormatRegular {
		t.Fatalf("expected default showing context, got %+v", s.Showing)
	}
}

func TestClickToggles(t *testing.T) {
	s := newTestSession()
	s.Click("1-1")
	assertSelected(t, s, "1-1")
	if s.Status("1-1") != SeatSelected {
		t.Fatalf("expected selected, got %s", s.Status("1-1"))
	}
	s.Click("1-1")
	assertSelected(t, s)
	if s.Status("1-1") != SeatAvailable {
		t.Fatalf("expected available, got %s", s.Status("1-1"))
	}
}

func TestClickIgnoresBookedAndUnknownSeats(t *testing.T) {
	s := newTestSession()
	s.Click("1-3")
	s.Click("9-9")
	s.Click("1-10")
	assertSelected(t, s)
	if s.Status("1-3") != SeatBooked {
		t.Fatalf("expected booked, got %s", s.Status("1-3"))
	}
}

func TestClickAtCapacityEvictsOldest(t *testing.T) {
	s := newTestSession()
	s.SetAdults(2)
	s.Click("2-1")
	s.Click("2-2")
	s.Click("2-3")
	assertSelected(t, s, "2-2", "2-3")

	s.SetAdults(1)
	assertSelected(t, s, "2-2")
	s.Click("7-11")
	assertSelected(t, s, "7-11")
}

func TestClickWithEmptyParty(t *testing.T) {
	s := newTestSession()
	s.SetAdults(0)
	s.Click("2-1")
	assertSelected(t, s)
	if !s.CanSubmit() {
		t.Fatalf("expected empty party with empty selection to be submittable")
	}
}

func TestShrinkPartyKeepsFirstSeats(t *testing.T) {
	s := newTestSession()
	s.SetAdults(2)
	s.SetChildren(2)
	for _, id := range []string{"3-1", "3-2", "3-3", "3-4"} {
		s.Click(id)
	}
	s.SetChildren(0)
	assertSelected(t, s, "3-1", "3-2")
	s.SetAdults(-3)
	if s.Adults() != 0 {
		t.Fatalf("expected adults clamped to 0, got %d", s.Adults())
	}
	assertSelected(t, s)
}

func TestGrowPartyKeepsSelection(t *testing.T) {
	s := newTestSession()
	s.Click("4-4")
	s.SetChildren(1)
	assertSelected(t, s, "4-4")
	if s.CanSubmit() {
		t.Fatalf("expected submit gate closed")
	}
	s.Click("4-5")
	if !s.CanSubmit() {
		t.Fatalf("expected submit gate open")
	}
}

func TestQuote(t *testing.T) {
	s := newTestSession()
	s.SetAdults(3)
	s.Click("5-1")
	s.Click("5-2")
	s.Click("5-3")
	q := s.Quote()
	if q.Tickets != 3 || q.Subtotal != 150000 || q.Discount != 37500 || q.Total != 112500 {
		t.Fatalf("unexpected quote %+v", q)
	}

	empty := newTestSession().Quote()
	if empty.Tickets != 0 || empty.Total != 0 {
		t.Fatalf("expected zero quote, got %+v", empty)
	}
}

func TestSubmit(t *testing.T) {
	s := newTestSession()
	s.SetAdults(2)
	s.Click("6-1")
	if _, err := s.Submit(time.Now()); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection, got %v", err)
	}
	s.Click("6-2")
	s.Email = "someone@example.com"
	now := time.Date(2026, 10, 16, 19, 0, 0, 0, time.UTC)
	conf, err := s.Submit(now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if conf.Reference == "" {
		t.Fatalf("expected a reference")
	}
	if !slices.Equal(conf.Seats, []string{"6-1", "6-2"}) {
		t.Fatalf("unexpected seats %v", conf.Seats)
	}
	if conf.Email != "someone@example.com" || !conf.CreatedAt.Equal(now) {
		t.Fatalf("unexpected confirmation %+v", conf)
	}
	if conf.Quote.Total != 75000 {
		t.Fatalf("expected total 75000, got %v", conf.Quote.Total)
	}
	conf.Seats[0] = "x"
	assertSelected(t, s, "6-1", "6-2")
}

func TestZoomClamps(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 10; i++ {
		s.ZoomIn()
	}
	if s.Zoom() != MaxZoom || s.ZoomPercent() != 160 || s.CanZoomIn() {
		t.Fatalf("expected zoom at max, got %v", s.Zoom())
	}
	for i := 0; i < 10; i++ {
		s.ZoomOut()
	}
	if s.Zoom() != MinZoom || s.ZoomPercent() != 80 || s.CanZoomOut() {
		t.Fatalf("expected zoom at min, got %v", s.Zoom())
	}
	s.ZoomIn()
	if s.ZoomPercent() != 100 {
		t.Fatalf("expected 100%%, got %d", s.ZoomPercent())
	}
}

func TestFormatIDR(t *testing.T) {
	cases := map[float64]string{
		0:        "IDR 0",
		500:      "IDR 500",
		50000:    "IDR 50,000",
		112500:   "IDR 112,500",
		1250000:  "IDR 1,250,000",
		-37500:   "-IDR 37,500",
		112499.6: "IDR 112,500",
	}
	for amount, want := range cases {
		if got := FormatIDR(amount); got != want {
			t.Fatalf("expected %q for %v, got %q", want, amount, got)
		}
	}
}
