package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/solvberg/holidaze/internal/holidaze"
	"github.com/solvberg/holidaze/internal/models"
	"github.com/solvberg/holidaze/internal/session"
	"github.com/solvberg/holidaze/internal/shared"
	"github.com/solvberg/holidaze/internal/workflows"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	VenueListView ViewState = iota
	VenueDetailView
	ConfirmView
	SubmitView
	ResultView
	LoginView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	remote    holidaze.Remote
	directory *workflows.VenueDirectory
	auth      *workflows.AuthFlow
	store     *session.Store
	logger    *log.Logger

	width  int
	height int

	venueList list.Model
	flow      *workflows.BookingFlow

	dateFrom   textinput.Model
	dateTo     textinput.Model
	guests     textinput.Model
	focusIdx   int
	validation string

	email          textinput.Model
	password       textinput.Model
	loginFocus     int
	loginErr       string
	pendingConfirm bool

	booking *models.Booking
	err     error

	help help.Model
	keys keyMap
}

type venuesFetchedMsg struct {
	venues []models.Venue
	err    error
}

type bookingDoneMsg struct {
	booking *models.Booking
	err     error
}

type loginDoneMsg struct {
	err error
}

// NewModel creates a new TUI model with the provided dependencies. The
// palette follows the stored dark mode preference.
func NewModel(ctx context.Context, remote holidaze.Remote, directory *workflows.VenueDirectory, auth *workflows.AuthFlow, store *session.Store, logger *log.Logger) *Model {
	UsePalette(store.DarkMode())

	return &Model{
		ctx:       ctx,
		view:      VenueListView,
		remote:    remote,
		directory: directory,
		auth:      auth,
		store:     store,
		logger:    logger,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init initializes the TUI by fetching the venue directory.
func (m *Model) Init() tea.Cmd {
	return m.fetchVenues()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.venueList.Width() == 0 {
			m.venueList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case VenueListView:
			return m.handleVenueListKeys(msg)
		case VenueDetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case LoginView:
			return m.handleLoginKeys(msg)
		}

	case venuesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.venues))
		for i, venue := range msg.venues {
			items[i] = venueItem{venue: venue}
		}
		m.venueList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.venueList.Title = "Holidaze Venues"
		m.venueList.SetSize(m.width-4, m.height-8)
		return m, nil

	case bookingDoneMsg:
		m.booking = msg.booking
		m.err = msg.err
		m.view = ResultView
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.loginErr = msg.err.Error()
			return m, nil
		}
		m.loginErr = ""
		if m.pendingConfirm {
			m.pendingConfirm = false
			m.view = ConfirmView
		} else {
			m.view = VenueListView
		}
		return m, nil
	}

	return m.updateActiveInput(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case VenueListView:
		return m.renderVenueList()
	case VenueDetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	case SubmitView:
		return m.renderSubmit()
	case ResultView:
		return m.renderResult()
	case LoginView:
		return m.renderLogin()
	default:
		return ""
	}
}

func (m *Model) handleVenueListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// while the list filter is open, every key belongs to it
	if m.venueList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.venueList, cmd = m.venueList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.venueList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(venueItem); ok {
				m.startBooking(item.venue)
				return m, textinput.Blink
			}
		}
	}

	var cmd tea.Cmd
	m.venueList, cmd = m.venueList.Update(msg)
	return m, cmd
}

// startBooking opens the detail view for the venue with a fresh booking
// attempt.
func (m *Model) startBooking(venue models.Venue) {
	m.flow = workflows.NewBookingFlow(m.remote, m.store, venue, m.logger)
	m.validation = ""

	m.dateFrom = textinput.New()
	m.dateFrom.Placeholder = "YYYY-MM-DD"
	m.dateFrom.Prompt = "Check-in:  "
	m.dateFrom.Focus()

	m.dateTo = textinput.New()
	m.dateTo.Placeholder = "YYYY-MM-DD"
	m.dateTo.Prompt = "Check-out: "

	m.guests = textinput.New()
	m.guests.Prompt = "Guests:    "
	m.guests.SetValue("1")

	m.focusIdx = 0
	m.view = VenueDetailView
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = VenueListView
		return m, nil
	case "tab", "shift+tab", "down", "up":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focusIdx--
		} else {
			m.focusIdx++
		}
		m.focusIdx = (m.focusIdx + 3) % 3
		return m, m.focusDetailInput()
	case "enter":
		if m.focusIdx < 2 {
			m.focusIdx++
			return m, m.focusDetailInput()
		}
		if m.applySelection() {
			m.view = ConfirmView
		}
		return m, nil
	}

	return m.updateActiveInput(msg)
}

func (m *Model) focusDetailInput() tea.Cmd {
	inputs := []*textinput.Model{&m.dateFrom, &m.dateTo, &m.guests}
	for i, input := range inputs {
		if i == m.focusIdx {
			input.Focus()
		} else {
			input.Blur()
		}
	}
	return textinput.Blink
}

// applySelection validates the entered dates and guest count through
// the booking state machine, recording the first problem for display.
func (m *Model) applySelection() bool {
	from, err := shared.ParseDate(m.dateFrom.Value())
	if err != nil {
		m.validation = "check-in date must look like 2026-03-14"
		return false
	}

	to, err := shared.ParseDate(m.dateTo.Value())
	if err != nil {
		m.validation = "check-out date must look like 2026-03-14"
		return false
	}

	var guests int
	if _, err := fmt.Sscanf(m.guests.Value(), "%d", &guests); err != nil {
		m.validation = "guests must be a number"
		return false
	}

	if err := m.flow.SetDates(from, to); err != nil {
		m.validation = err.Error()
		return false
	}

	if err := m.flow.SetGuests(guests); err != nil {
		m.validation = err.Error()
		return false
	}

	m.validation = ""
	return true
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = VenueDetailView
		return m, m.focusDetailInput()
	case "y":
		if !m.store.Get().Authenticated() {
			m.pendingConfirm = true
			m.openLogin()
			return m, textinput.Blink
		}
		m.view = SubmitView
		return m, m.submitBooking()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = VenueListView
		m.flow = nil
		m.booking = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) openLogin() {
	m.email = textinput.New()
	m.email.Placeholder = "name@stud.noroff.no"
	m.email.Prompt = "Email:    "
	m.email.Focus()

	m.password = textinput.New()
	m.password.Prompt = "Password: "
	m.password.EchoMode = textinput.EchoPassword

	m.loginFocus = 0
	m.loginErr = ""
	m.view = LoginView
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.pendingConfirm = false
		m.view = VenueListView
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.email.Blur()
			m.password.Focus()
		}
		return m, textinput.Blink
	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.email.Blur()
			m.password.Focus()
			return m, textinput.Blink
		}
		return m, m.login()
	}

	return m.updateActiveInput(msg)
}

func (m *Model) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case VenueListView:
		m.venueList, cmd = m.venueList.Update(msg)
	case VenueDetailView:
		switch m.focusIdx {
		case 0:
			m.dateFrom, cmd = m.dateFrom.Update(msg)
		case 1:
			m.dateTo, cmd = m.dateTo.Update(msg)
		case 2:
			m.guests, cmd = m.guests.Update(msg)
		}
	case LoginView:
		if m.loginFocus == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) fetchVenues() tea.Cmd {
	return func() tea.Msg {
		venues, err := m.directory.FetchAll(m.ctx)
		return venuesFetchedMsg{venues: venues, err: err}
	}
}

func (m *Model) submitBooking() tea.Cmd {
	return func() tea.Msg {
		booking, err := m.flow.Confirm(m.ctx)
		return bookingDoneMsg{booking: booking, err: err}
	}
}

func (m *Model) login() tea.Cmd {
	email := m.email.Value()
	password := m.password.Value()

	return func() tea.Msg {
		_, err := m.auth.Login(m.ctx, email, password)
		return loginDoneMsg{err: err}
	}
}

func (m *Model) renderVenueList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.venueList.View(), helpView)
}

func (m *Model) renderDetail() string {
	venue := m.flow.Venue()
	title := styles.title.Render(venue.Name)
	info := fmt.Sprintf("%.2f per night • sleeps up to %d\n", venue.Price, venue.MaxGuests)

	form := fmt.Sprintf("%s\n%s\n%s\n", m.dateFrom.View(), m.dateTo.View(), m.guests.View())

	var problem string
	if m.validation != "" {
		problem = styles.warn.Render(m.validation) + "\n"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n%s%s", title, info, form, problem, helpView)
}

func (m *Model) renderConfirm() string {
	venue := m.flow.Venue()
	title := styles.title.Render(fmt.Sprintf("Book '%s'?", venue.Name))
	info := fmt.Sprintf("\nTotal price: %.2f\n", m.flow.TotalPrice())

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderSubmit() string {
	return styles.title.Render("Submitting booking...")
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Booking failed: %v\n\nPress r to browse again, q to quit", m.err))
	}

	if m.booking == nil {
		return styles.err.Render("No booking available\n\nPress r to browse again, q to quit")
	}

	title := styles.ok.Render("✓ Booking Confirmed!")
	info := fmt.Sprintf(
		"\nReference: %s\nStay: %s to %s (%d nights, %d guests)",
		m.booking.ID,
		shared.FormatDate(m.booking.DateFrom),
		shared.FormatDate(m.booking.DateTo),
		m.booking.Nights(),
		m.booking.Guests,
	)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n\n%s", title, info, helpView)
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Log in to Holidaze")
	form := fmt.Sprintf("%s\n%s\n", m.email.View(), m.password.View())

	var problem string
	if m.loginErr != "" {
		problem = styles.err.Render(m.loginErr) + "\n"
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s%s", title, form, problem, helpView)
}
