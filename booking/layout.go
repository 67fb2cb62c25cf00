package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one row of the auditorium, numbered from 1 nearest the screen.
type Row struct {
	Number int
	Seats  int
}

// Layout is a fixed seat map with a fixed set of already booked seats.
type Layout struct {
	Rows   []Row
	booked map[string]bool
}

// DefaultLayout is the auditorium every showtime books against.
func DefaultLayout() Layout {
	return NewLayout(
		[]Row{
			{Number: 1, Seats: 9},
			{Number: 2, Seats: 9},
			{Number: 3, Seats: 9},
			{Number: 4, Seats: 9},
			{Number: 5, Seats: 11},
			{Number: 6, Seats: 11},
			{Number: 7, Seats: 11},
		},
		[]string{"1-3", "1-4", "2-5", "3-7", "4-2", "5-8", "6-6"},
	)
}

func NewLayout(rows []Row, booked []string) Layout {
	l := Layout{Rows: rows, booked: make(map[string]bool, len(booked))}
	for _, id := range booked {
		l.booked[id] = true
	}
	return l
}

// SeatID formats the "{row}-{seat}" identifier.
func SeatID(row int, seat int) string {
	return fmt.Sprintf("%d-%d", row, seat)
}

// ParseSeatID splits a "{row}-{seat}" identifier.
func ParseSeatID(id string) (row int, seat int, ok bool) {
	rowPart, seatPart, found := strings.Cut(id, "-")
	if !found {
		return 0, 0, false
	}
	row, err := strconv.Atoi(rowPart)
	if err != nil {
		return 0, 0, false
	}
	seat, err = strconv.Atoi(seatPart)
	if err != nil {
		return 0, 0, false
	}
	return row, seat, true
}

func (l Layout) Has(id string) bool {
	row, seat, ok := ParseSeatID(id)
	if !ok {
		return false
	}
	for _, r := range l.Rows {
		if r.Number == row {
			return seat >= 1 && seat <= r.Seats
		}
	}
	return false
}

func (l Layout) IsBooked(id string) bool {
	return l.booked[id]
}

// MaxSeats is the width of the widest row.
func (l Layout) MaxSeats() int {
	widest := 0
	for _, r := range l.Rows {
		widest = max(widest, r.Seats)
	}
	return widest
}

func (l Layout) Capacity() int {
	total := 0
	for _, r := range l.Rows {
		total += r.Seats
	}
	return total
}

func (l Layout) BookedCount() int {
	count := 0
	for id := range l.booked {
		if l.Has(id) {
			count++
		}
	}
	return count
}
