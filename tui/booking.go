package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"bioskop-finder-cli/booking"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func (m appModel) openBooking(item showtimeItem) (tea.Model, tea.Cmd, bool) {
	m.booking = booking.NewSession(booking.DefaultLayout(), booking.Showing{
		Movie:   item.movie,
		Theater: item.theater.Name,
		Time:    item.showtime.Time,
		Format:  item.showtime.Format,
	})
	m.bookingErr = nil
	m.bookingReturn = m.state
	m.cursorRow = 0
	m.cursorSeat = 1
	m.editingEmail = false
	m.emailInput.Blur()
	m.emailInput.SetValue("")
	m.state = stateBooking
	return m, nil, true
}

func (m appModel) handleBookingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	s := m.booking
	if s == nil {
		m.state = m.bookingReturn
		return m, nil, true
	}
	rows := s.Layout().Rows

	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case " ", "enter":
		if len(rows) > 0 {
			s.Click(booking.SeatID(rows[m.cursorRow].Number, m.cursorSeat))
		}
	case "+", "=":
		s.SetAdults(s.Adults() + 1)
	case "-", "_":
		s.SetAdults(s.Adults() - 1)
	case "]":
		s.SetChildren(s.Children() + 1)
	case "[":
		s.SetChildren(s.Children() - 1)
	case "z":
		s.ZoomIn()
	case "Z":
		s.ZoomOut()
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "e":
		m.editingEmail = true
		m.emailInput.SetValue(s.Email)
		return m, m.emailInput.Focus(), true
	case "s":
		conf, err := s.Submit(time.Now())
		if err != nil {
			m.bookingErr = err
			return m, nil, true
		}
		m.logger.Info("booking confirmed",
			zap.String("reference", conf.Reference),
			zap.Int("movie_id", conf.Showing.Movie.ID),
			zap.String("theater", conf.Showing.Theater),
			zap.Strings("seats", conf.Seats),
		)
		m.confirmation = conf
		m.state = stateConfirmation
	}
	m.bookingErr = nil
	return m, nil, true
}

func (m appModel) updateEmailInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc", "tab":
		m.editingEmail = false
		m.emailInput.Blur()
		m.booking.Email = strings.TrimSpace(m.emailInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

// moveCursor keeps the cursor on a real seat. Moving between rows of different widths
// clamps the seat number.
func (m *appModel) moveCursor(dRow int, dSeat int) {
	rows := m.booking.Layout().Rows
	if len(rows) == 0 {
		return
	}
	m.cursorRow = min(max(m.cursorRow+dRow, 0), len(rows)-1)
	m.cursorSeat = min(max(m.cursorSeat+dSeat, 1), rows[m.cursorRow].Seats)
}

func (m appModel) renderBooking() string {
	s := m.booking
	if s == nil {
		return "No booking in progress."
	}
	layout := s.Layout()
	if len(layout.Rows) == 0 {
		return "No seat map data."
	}

	cellWidth := seatCellWidth(s.Zoom())
	maxSeats := layout.MaxSeats()
	rowWidth := 2
	gridWidth := maxSeats*(cellWidth+1) - 1

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleBooked := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	var b strings.Builder
	showing := s.Showing
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(showing.Movie.Title))
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("%s • %s • %s", showing.Theater, showing.Time, showing.Format)))
	b.WriteString("\n\n")

	indent := strings.Repeat(" ", rowWidth+1)
	screenBar := screenBarBlock(gridWidth, "SCREEN")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	for r, row := range layout.Rows {
		label := strconv.Itoa(row.Number)
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, label))
		pad := strings.Repeat(" ", (maxSeats-row.Seats)/2*(cellWidth+1))
		b.WriteString(pad)
		for seat := 1; seat <= row.Seats; seat++ {
			status := s.Status(booking.SeatID(row.Number, seat))
			text := seatToken(status)
			if m.showSeatNumbers {
				text = strconv.Itoa(seat)
			}
			style := seatStyleAvailable
			switch status {
			case booking.SeatBooked:
				style = seatStyleBooked
			case booking.SeatSelected:
				style = seatStyleSelected
			}
			if r == m.cursorRow && seat == m.cursorSeat {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(padCell(text, cellWidth)))
			if seat < row.Seats {
				b.WriteString(" ")
			}
		}
		b.WriteString(pad)
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, label))
	}
	b.WriteString("\n")

	legend := "Legend: [] available • XX booked • ## selected"
	if m.showSeatNumbers {
		legend = "Legend: color shows status • numbers are seat numbers"
	}
	b.WriteString(hint(legend) + "\n")
	b.WriteString(hint(fmt.Sprintf("Cursor: row %d seat %d • Zoom: %d%%", layout.Rows[m.cursorRow].Number, m.cursorSeat, s.ZoomPercent())) + "\n\n")

	selected := s.Selected()
	b.WriteString(fmt.Sprintf("Adults: %d • Children: %d • Selected: %d/%d\n", s.Adults(), s.Children(), len(selected), s.TotalPeople()))
	if len(selected) > 0 {
		b.WriteString(fmt.Sprintf("Seats: %s\n", strings.Join(selected, ", ")))
	}
	quote := s.Quote()
	b.WriteString(fmt.Sprintf("Tickets (%d): %s • Student discount: -%s • Total: %s\n",
		quote.Tickets,
		booking.FormatIDR(quote.Subtotal),
		booking.FormatIDR(quote.Discount),
		lipgloss.NewStyle().Bold(true).Render(booking.FormatIDR(quote.Total)),
	))
	if m.editingEmail {
		b.WriteString(m.emailInput.View() + "\n")
	} else if s.Email != "" {
		b.WriteString(fmt.Sprintf("Email: %s\n", s.Email))
	} else {
		b.WriteString(hint("Email: press e to add") + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.bookingErr != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.bookingErr.Error()))
	case s.CanSubmit():
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render("Press s to confirm booking"))
	default:
		b.WriteString(hint(fmt.Sprintf("Select %d more seat(s) to continue", s.TotalPeople()-len(selected))))
	}
	return b.String()
}

func (m appModel) renderConfirmation() string {
	conf := m.confirmation
	headerChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)

	lines := []string{
		headerChip.Render("Booking drafted"),
		"",
		lipgloss.NewStyle().Bold(true).Render(conf.Showing.Movie.Title),
		fmt.Sprintf("%s • %s • %s", conf.Showing.Theater, conf.Showing.Time, conf.Showing.Format),
		"",
		fmt.Sprintf("Seats: %s", strings.Join(conf.Seats, ", ")),
		fmt.Sprintf("Total: %s (%d tickets, discount -%s)", booking.FormatIDR(conf.Quote.Total), conf.Quote.Tickets, booking.FormatIDR(conf.Quote.Discount)),
	}
	if conf.Email != "" {
		lines = append(lines, fmt.Sprintf("Email: %s", conf.Email))
	}
	lines = append(lines,
		fmt.Sprintf("Reference: %s", conf.Reference),
		"",
		hint("Nothing has been reserved or charged."),
	)

	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(lines, "\n"))
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func seatToken(status booking.SeatStatus) string {
	switch status {
	case booking.SeatBooked:
		return "XX"
	case booking.SeatSelected:
		return "##"
	default:
		return "[]"
	}
}

// seatCellWidth maps the zoom factor onto a cell width in columns.
func seatCellWidth(zoom float64) int {
	return max(2, int(math.Round(3*zoom)))
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
