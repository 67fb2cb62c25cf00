package tui

import (
	"fmt"
	"strings"
	"time"

	"bioskop-finder-cli/booking"
	"bioskop-finder-cli/catalog"
	"bioskop-finder-cli/model"
	"bioskop-finder-cli/service"
	"bioskop-finder-cli/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type appState int

const (
	stateSelectCity appState = iota
	stateMovies
	stateMovieShowtimes
	stateTheaters
	stateManageTheaters
	stateTheaterShowtimes
	stateSearch
	stateBooking
	stateConfirmation
	stateError
)

// Store is the user state the UI reads and writes.
type Store interface {
	store.CityStore
	LoadRecentTheaters() ([]store.RecentTheater, error)
	RememberTheater(theater model.Theater) error
	LoadHiddenTheaters(city string) (map[int]bool, error)
	SetTheaterHidden(city string, theaterID int, hidden bool) error
}

type Options struct {
	Guide  *service.Guide
	Store  Store
	Logger *zap.Logger
	City   model.City
	// Theater opens a theater by name on start. With ShowTheater its showtimes are shown
	// directly instead of the theater list.
	Theater     string
	ShowTheater bool
}

type appModel struct {
	guide  *service.Guide
	store  Store
	logger *zap.Logger

	state     appState
	lastState appState
	err       error

	width  int
	height int

	city    model.City
	theater model.Theater
	movie   model.Movie

	tab         string
	genre       string
	movieSort   string
	theaterSort string
	facility    string

	cityReturn    appState
	detailReturn  appState
	searchReturn  appState
	bookingReturn appState

	cityList     list.Model
	movieList    list.Model
	showtimeList list.Model
	theaterList  list.Model
	theaterPref  list.Model
	scheduleList list.Model
	searchList   list.Model

	searchInput textinput.Model
	searchErr   error

	hiddenTheaters map[int]bool

	booking         *booking.Session
	bookingErr      error
	cursorRow       int
	cursorSeat      int
	emailInput      textinput.Model
	editingEmail    bool
	showSeatNumbers bool
	confirmation    booking.Confirmation
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

func New(opts Options) tea.Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := appModel{
		guide:       opts.Guide,
		store:       opts.Store,
		logger:      logger,
		state:       stateMovies,
		city:        opts.City,
		tab:         service.TabNowPlaying,
		genre:       service.AllGenres,
		movieSort:   service.SortPopularity,
		theaterSort: service.SortName,
		cityReturn:  stateMovies,
	}
	if m.city.Slug == "" {
		m.city, _ = catalog.CityBySlug(model.DefaultCity)
	}

	m.cityList = newList("Select City")
	m.movieList = newList("Movies")
	m.showtimeList = newList("Showtimes")
	m.theaterList = newList("Theaters")
	m.theaterPref = newList("Visible Theaters")
	m.scheduleList = newList("Showtimes")
	m.searchList = newList("Results")
	m.searchList.SetFilteringEnabled(false)

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "Search: "
	m.searchInput.Placeholder = "movie title, theater or location"
	m.searchInput.CharLimit = 64

	m.emailInput = textinput.New()
	m.emailInput.Prompt = "Email: "
	m.emailInput.Placeholder = "Enter your email"
	m.emailInput.CharLimit = 254

	m.hiddenTheaters = make(map[int]bool)
	m.loadCity()

	if name := strings.TrimSpace(opts.Theater); name != "" {
		m.openDeepLink(name, opts.ShowTheater)
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateSearch {
			return m.updateSearchInput(msg)
		}
		if m.state == stateBooking && m.editingEmail {
			return m.updateEmailInput(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		// fallthrough to component update

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = m.state
		}
		m.state = stateError
		return m, nil
	}

	var cmd tea.Cmd
	if listPtr := m.activeList(); listPtr != nil {
		*listPtr, cmd = listPtr.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateSelectCity:
		return header + "\n\n" + m.cityList.View()
	case stateMovies:
		return header + "\n\n" + m.movieList.View()
	case stateMovieShowtimes:
		return header + "\n\n" + m.showtimeList.View()
	case stateTheaters:
		return header + "\n\n" + m.theaterList.View()
	case stateManageTheaters:
		return header + "\n\n" + m.theaterPref.View()
	case stateTheaterShowtimes:
		return header + "\n\n" + m.scheduleList.View()
	case stateSearch:
		return header + "\n\n" + m.searchView()
	case stateBooking:
		return header + "\n\n" + m.renderBooking()
	case stateConfirmation:
		return header + "\n\n" + m.renderConfirmation()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Bioskop TUI")
	sub := []string{}
	if m.city.Name != "" {
		sub = append(sub, fmt.Sprintf("City: %s", m.city.Name))
	}
	switch m.state {
	case stateMovies:
		sub = append(sub, fmt.Sprintf("Tab: %s", tabLabel(m.tab)), fmt.Sprintf("Genre: %s", m.genre), fmt.Sprintf("Sort: %s", m.movieSort))
	case stateTheaters:
		facility := m.facility
		if facility == "" {
			facility = "any"
		}
		sub = append(sub, fmt.Sprintf("Facility: %s", facility), fmt.Sprintf("Sort: %s", m.theaterSort))
	case stateMovieShowtimes:
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	case stateTheaterShowtimes:
		sub = append(sub, fmt.Sprintf("Theater: %s", m.theater.Name))
	}
	if m.guide != nil {
		sub = append(sub, fmt.Sprintf("Date: %s", m.guide.Today().Format(time.DateOnly)))
	}
	meta := lipgloss.NewStyle().Faint(true).Render(strings.Join(sub, " • "))

	hints := "ctrl+c quit • esc back • type to filter"
	switch m.state {
	case stateMovies:
		hints = "ctrl+c quit • type to filter • enter showtimes • tab now playing/upcoming • ctrl+g genre • ctrl+s sort • ctrl+t theaters • ctrl+k search • ctrl+l city"
	case stateTheaters:
		hints = "ctrl+c quit • esc movies • type to filter • enter showtimes • ctrl+f facility • ctrl+s sort • ctrl+e manage theaters • ctrl+k search • ctrl+l city"
	case stateManageTheaters:
		hints = "ctrl+c quit • esc back • type to filter • enter toggle theater visibility"
	case stateMovieShowtimes, stateTheaterShowtimes:
		hints = "ctrl+c quit • esc back • type to filter • enter pick seats"
	case stateSearch:
		hints = "ctrl+c quit • esc back • type at least 2 characters • up/down move • enter open"
	case stateBooking:
		hints = "esc back • arrows move • space select • +/- adults • ]/[ children • z/Z zoom • n numbers • e email • s submit"
	case stateConfirmation:
		hints = "ctrl+c quit • enter/esc done"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + "\n" + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		model, cmd := m.goBack()
		return model, cmd, true
	case "ctrl+l":
		if m.state == stateMovies || m.state == stateTheaters {
			m.cityReturn = m.state
			m.cityList.SetItems(buildCityItems(m.city))
			m.cityList.Select(cityIndex(m.city))
			m.state = stateSelectCity
			return m, nil, true
		}
	case "ctrl+k":
		if m.state == stateMovies || m.state == stateTheaters {
			return m.openSearch()
		}
	case "ctrl+t":
		switch m.state {
		case stateMovies:
			m.state = stateTheaters
			return m, nil, true
		case stateTheaters:
			m.state = stateMovies
			return m, nil, true
		}
	case "tab":
		if m.state == stateMovies {
			if m.tab == service.TabNowPlaying {
				m.tab = service.TabUpcoming
			} else {
				m.tab = service.TabNowPlaying
			}
			m.refreshMovieList()
			return m, nil, true
		}
	case "ctrl+g":
		if m.state == stateMovies {
			m.genre = nextOption(service.Genres, m.genre)
			m.refreshMovieList()
			return m, nil, true
		}
	case "ctrl+s":
		switch m.state {
		case stateMovies:
			if m.movieSort == service.SortTitle {
				m.movieSort = service.SortPopularity
			} else {
				m.movieSort = service.SortTitle
			}
			m.refreshMovieList()
			return m, nil, true
		case stateTheaters:
			if m.theaterSort == service.SortDistance {
				m.theaterSort = service.SortName
			} else {
				m.theaterSort = service.SortDistance
			}
			m.refreshTheaterLists()
			return m, nil, true
		}
	case "ctrl+f":
		if m.state == stateTheaters {
			m.facility = nextOption(append([]string{""}, model.Facilities...), m.facility)
			m.refreshTheaterLists()
			return m, nil, true
		}
	case "ctrl+e":
		if m.state == stateTheaters {
			m.state = stateManageTheaters
			m.refreshTheaterLists()
			return m, nil, true
		}
	}

	if m.state == stateBooking {
		return m.handleBookingKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		switch m.state {
		case stateSelectCity:
			item, ok := m.cityList.SelectedItem().(cityItem)
			if !ok {
				return m, nil, true
			}
			m.changeCity(item.city)
			m.state = m.cityReturn
			return m, nil, true
		case stateMovies:
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			return m.openMovieShowtimes(item.movie)
		case stateTheaters:
			item, ok := m.theaterList.SelectedItem().(theaterItem)
			if !ok {
				return m, nil, true
			}
			return m.openTheater(item.theater)
		case stateManageTheaters:
			return m.toggleTheaterVisibility()
		case stateMovieShowtimes:
			item, ok := m.showtimeList.SelectedItem().(showtimeItem)
			if !ok {
				return m, nil, true
			}
			return m.openBooking(item)
		case stateTheaterShowtimes:
			item, ok := m.scheduleList.SelectedItem().(showtimeItem)
			if !ok {
				return m, nil, true
			}
			return m.openBooking(item)
		case stateConfirmation:
			m.state = m.bookingReturn
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSelectCity:
		m.state = m.cityReturn
	case stateTheaters:
		m.state = stateMovies
	case stateManageTheaters:
		m.state = stateTheaters
	case stateMovieShowtimes, stateTheaterShowtimes:
		m.state = m.detailReturn
	case stateBooking, stateConfirmation:
		m.editingEmail = false
		m.state = m.bookingReturn
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

// loadCity rebuilds everything that depends on the selected city.
func (m *appModel) loadCity() {
	hidden, err := m.store.LoadHiddenTheaters(m.city.Slug)
	if err != nil {
		m.logger.Warn("hidden theaters unreadable", zap.String("city", m.city.Slug), zap.Error(err))
		hidden = map[int]bool{}
	}
	m.hiddenTheaters = hidden
	m.theater = model.Theater{}
	m.refreshMovieList()
	m.refreshTheaterLists()
	m.cityList.SetItems(buildCityItems(m.city))
	m.cityList.Select(cityIndex(m.city))
}

func (m *appModel) changeCity(city model.City) {
	if err := m.store.SaveCity(city.Slug); err != nil {
		m.logger.Warn("save city failed", zap.String("city", city.Slug), zap.Error(err))
	}
	m.logger.Info("city changed", zap.String("from", m.city.Slug), zap.String("to", city.Slug))
	m.city = city
	m.loadCity()
}

func (m *appModel) openDeepLink(name string, show bool) {
	theater, ok := m.guide.Catalog().TheaterByName(name)
	if !ok {
		m.err = fmt.Errorf("theater %q not found", name)
		m.lastState = stateMovies
		m.state = stateError
		return
	}
	if theater.City != m.city.Slug {
		city, found := catalog.CityBySlug(theater.City)
		if !found {
			city = model.City{Name: catalog.CityName(theater.City), Slug: theater.City}
		}
		m.changeCity(city)
	}
	m.state = stateTheaters
	m.selectTheater(theater.ID)
	if !show {
		return
	}
	next, cmd, _ := m.openTheater(theater)
	*m = next.(appModel)
	if cmd == nil {
		return
	}
	if msg, ok := cmd().(errMsg); ok {
		m.err = msg.err
		m.lastState = msg.returnState
		m.state = stateError
	}
}

func (m appModel) openMovieShowtimes(movie model.Movie) (tea.Model, tea.Cmd, bool) {
	returnState := m.state
	if !movie.IsNowPlaying() {
		return m, errWithReturnCmd(fmt.Errorf("%s is not showing yet (release date %s)", movie.Title, movie.ReleaseDate), returnState), true
	}

	var items []list.Item
	for _, entry := range m.guide.MovieShowtimesInCity(movie.ID, m.city.Slug) {
		if m.hiddenTheaters[entry.Theater.ID] {
			continue
		}
		for _, st := range entry.Showtimes {
			items = append(items, showtimeItem{theater: entry.Theater, movie: movie, showtime: st, showTheater: true})
		}
	}
	if len(items) == 0 {
		return m, errWithReturnCmd(fmt.Errorf("no showtimes for %s in %s today", movie.Title, m.city.Name), returnState), true
	}

	m.movie = movie
	m.detailReturn = returnState
	m.showtimeList.Title = fmt.Sprintf("Showtimes • %s", movie.Title)
	m.showtimeList.ResetFilter()
	m.showtimeList.SetItems(items)
	m.showtimeList.Select(0)
	m.state = stateMovieShowtimes
	return m, nil, true
}

func (m appModel) openTheater(theater model.Theater) (tea.Model, tea.Cmd, bool) {
	returnState := m.state
	if err := m.store.RememberTheater(theater); err != nil {
		m.logger.Warn("remember theater failed", zap.Int("theater_id", theater.ID), zap.Error(err))
	}
	m.refreshTheaterLists()
	m.selectTheater(theater.ID)

	var items []list.Item
	for _, entry := range m.guide.TheaterSchedule(theater) {
		for _, st := range entry.Showtimes {
			items = append(items, showtimeItem{theater: theater, movie: entry.Movie, showtime: st})
		}
	}
	if len(items) == 0 {
		return m, errWithReturnCmd(fmt.Errorf("no showtimes available for %s today", theater.Name), returnState), true
	}

	m.theater = theater
	m.detailReturn = returnState
	m.scheduleList.Title = fmt.Sprintf("Showtimes • %s", theater.Name)
	m.scheduleList.ResetFilter()
	m.scheduleList.SetItems(items)
	m.scheduleList.Select(0)
	m.state = stateTheaterShowtimes
	return m, nil, true
}

func (m *appModel) refreshMovieList() {
	movies := service.FilterMovies(m.guide.MoviesForTab(m.city.Slug, m.tab), service.MovieFilter{
		Genre:  m.genre,
		SortBy: m.movieSort,
	})
	m.movieList.Title = fmt.Sprintf("Movies • %s", tabLabel(m.tab))
	m.movieList.SetItems(buildMovieItems(movies))
	m.movieList.Select(0)
}

func (m *appModel) refreshTheaterLists() {
	var facilities []string
	if m.facility != "" {
		facilities = []string{m.facility}
	}
	theaters := service.FilterTheaters(m.guide.TheatersByCity(m.city.Slug), service.TheaterFilter{
		Facilities: facilities,
		SortBy:     m.theaterSort,
	})
	recents, err := m.store.LoadRecentTheaters()
	if err != nil {
		m.logger.Warn("recent theaters unreadable", zap.Error(err))
	}
	m.theaterList.Title = fmt.Sprintf("Theaters • %s", m.city.Name)
	m.theaterList.SetItems(buildTheaterItems(theaters, m.hiddenTheaters, recents, m.theaterSort == service.SortDistance))
	m.theaterPref.SetItems(buildTheaterVisibilityItems(m.guide.TheatersByCity(m.city.Slug), m.hiddenTheaters))
}

func (m *appModel) selectTheater(id int) {
	for i, item := range m.theaterList.Items() {
		if t, ok := item.(theaterItem); ok && t.theater.ID == id {
			m.theaterList.Select(i)
			return
		}
	}
}

func (m appModel) toggleTheaterVisibility() (tea.Model, tea.Cmd, bool) {
	item, ok := m.theaterPref.SelectedItem().(theaterVisibilityItem)
	if !ok {
		return m, nil, true
	}
	hidden := !item.hidden
	if err := m.store.SetTheaterHidden(m.city.Slug, item.theater.ID, hidden); err != nil {
		return m, errCmd(err), true
	}
	if m.hiddenTheaters == nil {
		m.hiddenTheaters = map[int]bool{}
	}
	if hidden {
		m.hiddenTheaters[item.theater.ID] = true
	} else {
		delete(m.hiddenTheaters, item.theater.ID)
	}

	index := m.theaterPref.Index()
	m.refreshTheaterLists()
	if count := len(m.theaterPref.Items()); count > 0 {
		if index >= count {
			index = count - 1
		}
		m.theaterPref.Select(index)
	}
	return m, nil, true
}

func (m appModel) openSearch() (tea.Model, tea.Cmd, bool) {
	m.searchReturn = m.state
	m.searchInput.SetValue("")
	m.searchList.SetItems(nil)
	m.searchErr = nil
	m.state = stateSearch
	return m, m.searchInput.Focus(), true
}

func (m appModel) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searchInput.Blur()
		m.state = m.searchReturn
		return m, nil
	case "up", "ctrl+p":
		m.searchList.CursorUp()
		return m, nil
	case "down", "ctrl+n":
		m.searchList.CursorDown()
		return m, nil
	case "enter":
		item, ok := m.searchList.SelectedItem().(searchItem)
		if !ok {
			return m, nil
		}
		var next tea.Model
		var cmd tea.Cmd
		if item.theater != nil {
			next, cmd, _ = m.openTheater(*item.theater)
		} else {
			next, cmd, _ = m.openMovieShowtimes(*item.movie)
		}
		return next, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refreshSearch()
	return m, cmd
}

func (m *appModel) refreshSearch() {
	results, err := m.guide.Search(m.searchInput.Value())
	m.searchErr = err
	m.searchList.SetItems(buildSearchItems(results))
	m.searchList.Select(0)
}

func (m appModel) searchView() string {
	view := m.searchInput.View() + "\n\n"
	if m.searchErr != nil {
		return view + hint(m.searchErr.Error())
	}
	return view + m.searchList.View()
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectCity:
		return &m.cityList
	case stateMovies:
		return &m.movieList
	case stateMovieShowtimes:
		return &m.showtimeList
	case stateTheaters:
		return &m.theaterList
	case stateManageTheaters:
		return &m.theaterPref
	case stateTheaterShowtimes:
		return &m.scheduleList
	default:
		return nil
	}
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.cityList.SetSize(m.width, h)
	m.movieList.SetSize(m.width, h)
	m.showtimeList.SetSize(m.width, h)
	m.theaterList.SetSize(m.width, h)
	m.theaterPref.SetSize(m.width, h)
	m.scheduleList.SetSize(m.width, h)
	m.searchList.SetSize(m.width, max(4, h-2))
	m.searchInput.Width = max(10, m.width-len(m.searchInput.Prompt)-2)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithReturnCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func nextOption(options []string, current string) string {
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) == 0 {
		return current
	}
	return options[0]
}

func tabLabel(tab string) string {
	if tab == service.TabUpcoming {
		return "Upcoming"
	}
	return "Now Playing"
}
