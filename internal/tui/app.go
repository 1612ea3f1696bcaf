package tui

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tourbook/internal/booking"
	"tourbook/internal/catalog"
	"tourbook/internal/config"
	"tourbook/internal/gateway"
	"tourbook/internal/session"
)

// App ties together the screens. One screen is active at a time; every
// network call runs as a command and reports back as a typed message
// stamped with the request generation current when it was issued. Messages
// from a previous generation are dropped, so navigating away from a screen
// with a call in flight never applies the late response.
type App struct {
	ctx     context.Context
	gw      *gateway.Client
	session *session.Store
	cfg     config.Config

	state  appState
	gen    int
	status string

	// catalog
	packages      []gateway.Package
	filtered      []gateway.Package
	query         string
	suggestion    string
	catalogCursor int

	// package detail
	detail *gateway.Package

	// booking workflow
	flow       *booking.Workflow
	bookField  int
	bookInputs [bookingFieldCount]string

	// invoice, one-shot in-memory transfer from the booking screen
	invoice *booking.Invoice

	// admin login
	loginField    int
	loginEmail    string
	loginPassword string

	// admin screens
	banner        string
	adminPkgs     []gateway.Package
	pkgCursor     int
	pkgFormOpen   bool
	pkgEditID     string
	pkgField      int
	pkgInputs     [pkgFieldCount]string
	bookings      []gateway.Booking
	bookingCursor int
	bookingDetail *gateway.Package
}

type appState string

const (
	viewCatalog       appState = "catalog"
	viewDetail        appState = "detail"
	viewBooking       appState = "booking"
	viewInvoice       appState = "invoice"
	viewLogin         appState = "login"
	viewDashboard     appState = "dashboard"
	viewAdminPackages appState = "adminPackages"
	viewAdminBookings appState = "adminBookings"
)

// booking form fields, in tab order
const (
	bookFieldName = iota
	bookFieldEmail
	bookFieldPhone
	bookFieldTravelers
	bookFieldRequests
	bookingFieldCount
)

// package form fields, in tab order
const (
	pkgFieldTitle = iota
	pkgFieldDescription
	pkgFieldPrice
	pkgFieldDates
	pkgFieldImage
	pkgFieldCount
)

const confirmDelay = 3 * time.Second

func New(ctx context.Context, cfg config.Config, gw *gateway.Client, store *session.Store) *App {
	return &App{
		ctx:     ctx,
		gw:      gw,
		session: store,
		cfg:     cfg,
		state:   viewCatalog,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadPackages()
}

// navTo switches screens. Bumping the generation orphans any in-flight
// command from the screen being left.
func (a *App) navTo(state appState) tea.Cmd {
	a.gen++
	a.status = ""
	a.banner = ""
	if state != viewInvoice {
		a.invoice = nil // one-shot: survives only the single hop to the invoice screen
	}
	a.state = state

	switch state {
	case viewCatalog:
		a.query = ""
		a.catalogCursor = 0
		a.suggestion = ""
		return a.loadPackages()
	case viewBooking:
		if a.detail == nil {
			a.state = viewCatalog
			return a.loadPackages()
		}
		a.flow = booking.New(a.detail.ID)
		a.bookField = bookFieldName
		a.bookInputs = [bookingFieldCount]string{}
		a.bookInputs[bookFieldTravelers] = "1"
		return a.loadBookingPackage(a.detail.ID)
	case viewDashboard, viewAdminPackages, viewAdminBookings:
		if !a.session.IsAuthorized() {
			a.state = viewLogin
			a.loginField = 0
			a.loginEmail, a.loginPassword = "", ""
			return nil
		}
		switch state {
		case viewAdminPackages:
			a.pkgCursor = 0
			a.pkgFormOpen = false
			return a.loadAdminPackages()
		case viewAdminBookings:
			a.bookingCursor = 0
			a.bookingDetail = nil
			return a.loadBookings()
		}
	case viewLogin:
		a.loginField = 0
		a.loginEmail, a.loginPassword = "", ""
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)

	case packagesMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.packages = m.pkgs
		a.applyFilter()

	case packageMsg:
		if m.gen != a.gen {
			return a, nil
		}
		if a.state == viewBooking && a.flow != nil {
			if err := a.flow.Begin(m.pkg); err == nil {
				a.detail = &m.pkg
			}
		}

	case bookingCreatedMsg:
		if m.gen != a.gen {
			return a, nil
		}
		if a.flow != nil {
			if inv, err := a.flow.Confirm(); err == nil {
				a.invoice = &inv
				return a, a.confirmTick()
			}
		}

	case bookingFailedMsg:
		if m.gen != a.gen {
			return a, nil
		}
		if a.flow != nil {
			a.flow.Fail(m.err.Error())
		}

	case confirmDoneMsg:
		if m.gen != a.gen {
			return a, nil
		}
		// hand the invoice over; navTo would clear it, so switch directly
		a.gen++
		a.state = viewInvoice
		a.status = ""

	case loginOKMsg:
		if m.gen != a.gen {
			return a, nil
		}
		return a, a.navTo(viewDashboard)

	case loginFailedMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.banner = m.err.Error()

	case adminPackagesMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.adminPkgs = m.pkgs
		if a.pkgCursor >= len(a.adminPkgs) {
			a.pkgCursor = 0
		}

	case bookingsMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.bookings = m.bookings
		if a.bookingCursor >= len(a.bookings) {
			a.bookingCursor = 0
		}

	case bookingDetailMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.bookingDetail = &m.pkg

	case mutationDoneMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.status = m.note
		// unconditional re-fetch after every mutation
		switch a.state {
		case viewAdminPackages:
			return a, a.loadAdminPackages()
		case viewAdminBookings:
			return a, a.loadBookings()
		}

	case bannerMsg:
		if m.gen != a.gen {
			return a, nil
		}
		a.banner = m.err.Error()

	case invoiceExportedMsg:
		a.status = "saved " + m.name

	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.state {
	case viewCatalog:
		return a.handleCatalogKey(m)
	case viewDetail:
		return a.handleDetailKey(m)
	case viewBooking:
		return a.handleBookingKey(m)
	case viewInvoice:
		return a.handleInvoiceKey(m)
	case viewLogin:
		return a.handleLoginKey(m)
	case viewDashboard:
		return a.handleDashboardKey(m)
	case viewAdminPackages:
		return a.handleAdminPackagesKey(m)
	case viewAdminBookings:
		return a.handleAdminBookingsKey(m)
	}
	return a, nil
}

// catalog: every keystroke edits the query and refilters synchronously.
func (a *App) handleCatalogKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		return a, tea.Quit
	case tea.KeyTab:
		return a, a.navTo(viewDashboard)
	case tea.KeyUp:
		if a.catalogCursor > 0 {
			a.catalogCursor--
		}
	case tea.KeyDown:
		if a.catalogCursor < len(a.filtered)-1 {
			a.catalogCursor++
		}
	case tea.KeyEnter:
		if len(a.filtered) > 0 {
			pkg := a.filtered[a.catalogCursor]
			a.detail = &pkg
			a.gen++
			a.state = viewDetail
		}
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(a.query) > 0 {
			a.query = a.query[:len(a.query)-1]
			a.applyFilter()
		}
	case tea.KeySpace:
		a.query += " "
		a.applyFilter()
	case tea.KeyRunes:
		a.query += string(m.Runes)
		a.applyFilter()
	}
	return a, nil
}

func (a *App) applyFilter() {
	a.filtered = catalog.Filter(a.packages, a.query)
	a.suggestion = ""
	if len(a.filtered) == 0 {
		a.suggestion = catalog.Suggest(a.packages, a.query)
	}
	if a.catalogCursor >= len(a.filtered) {
		a.catalogCursor = 0
	}
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc", "q":
		return a, a.navTo(viewCatalog)
	case "enter", "b":
		return a, a.navTo(viewBooking)
	}
	return a, nil
}

func (a *App) handleBookingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.flow == nil {
		return a, a.navTo(viewCatalog)
	}
	switch a.flow.State() {
	case booking.StateLoading, booking.StateSubmitting, booking.StateConfirmed:
		// submit control stays disabled while a request is in flight
		if m.Type == tea.KeyEsc {
			return a, a.navTo(viewCatalog)
		}
		return a, nil
	case booking.StateFailed:
		switch m.String() {
		case "r":
			req, err := a.flow.Retry()
			if err != nil {
				a.status = err.Error()
				return a, nil
			}
			return a, a.submitBooking(req)
		case "esc":
			return a, a.navTo(viewCatalog)
		}
		return a, nil
	}

	switch m.Type {
	case tea.KeyEsc:
		return a, a.navTo(viewCatalog) // draft discarded
	case tea.KeyTab, tea.KeyDown:
		a.bookField = (a.bookField + 1) % bookingFieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		a.bookField = (a.bookField + bookingFieldCount - 1) % bookingFieldCount
	case tea.KeyEnter:
		req, err := a.flow.Submit()
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		return a, a.submitBooking(req)
	case tea.KeyBackspace, tea.KeyCtrlH:
		s := a.bookInputs[a.bookField]
		if len(s) > 0 {
			a.bookInputs[a.bookField] = s[:len(s)-1]
			a.syncDraftField()
		}
	case tea.KeySpace:
		a.bookInputs[a.bookField] += " "
		a.syncDraftField()
	case tea.KeyRunes:
		a.bookInputs[a.bookField] += string(m.Runes)
		a.syncDraftField()
	}
	return a, nil
}

// syncDraftField pushes the active input buffer into the draft; each
// keystroke updates exactly one field. Editing the traveler count also
// recomputes the total from the cached unit price.
func (a *App) syncDraftField() {
	v := a.bookInputs[a.bookField]
	switch a.bookField {
	case bookFieldName:
		a.flow.SetName(v)
	case bookFieldEmail:
		a.flow.SetEmail(v)
	case bookFieldPhone:
		a.flow.SetPhone(v)
	case bookFieldTravelers:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			n = 1
		}
		a.flow.SetTravelers(n)
	case bookFieldRequests:
		a.flow.SetSpecialRequests(v)
	}
}

func (a *App) handleInvoiceKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "e":
		if a.invoice != nil {
			return a, a.exportInvoice(*a.invoice)
		}
	case "enter", "esc", "q":
		return a, a.navTo(viewCatalog)
	}
	return a, nil
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		return a, a.navTo(viewCatalog)
	case tea.KeyTab, tea.KeyDown, tea.KeyUp:
		a.loginField = (a.loginField + 1) % 2
	case tea.KeyEnter:
		email := strings.TrimSpace(a.loginEmail)
		if email == "" || a.loginPassword == "" {
			a.banner = "email and password required"
			return a, nil
		}
		return a, a.login(email, a.loginPassword)
	case tea.KeyBackspace, tea.KeyCtrlH:
		if a.loginField == 0 && len(a.loginEmail) > 0 {
			a.loginEmail = a.loginEmail[:len(a.loginEmail)-1]
		}
		if a.loginField == 1 && len(a.loginPassword) > 0 {
			a.loginPassword = a.loginPassword[:len(a.loginPassword)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		s := string(m.Runes)
		if m.Type == tea.KeySpace {
			s = " "
		}
		if a.loginField == 0 {
			a.loginEmail += s
		} else {
			a.loginPassword += s
		}
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "p":
		return a, a.navTo(viewAdminPackages)
	case "b":
		return a, a.navTo(viewAdminBookings)
	case "l":
		if err := a.session.Logout(); err != nil {
			a.banner = err.Error()
			return a, nil
		}
		return a, a.navTo(viewCatalog)
	case "esc", "q":
		return a, a.navTo(viewCatalog)
	}
	return a, nil
}

// commands

func (a *App) loadPackages() tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		pkgs, err := a.gw.Packages(a.ctx)
		if err != nil {
			// logged only; the catalog just stays empty
			log.Printf("fetch packages: %v", err)
			return packagesMsg{gen: gen}
		}
		return packagesMsg{gen: gen, pkgs: pkgs}
	}
}

func (a *App) loadBookingPackage(id string) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		pkg, err := a.gw.PackageByID(a.ctx, id)
		if err != nil {
			log.Printf("fetch package %s: %v", id, err)
			return errMsg{err}
		}
		return packageMsg{gen: gen, pkg: pkg}
	}
}

func (a *App) submitBooking(req gateway.BookingRequest) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		if err := a.gw.CreateBooking(a.ctx, req); err != nil {
			return bookingFailedMsg{gen: gen, err: err}
		}
		return bookingCreatedMsg{gen: gen}
	}
}

// confirmTick keeps the confirmation notice on screen before moving on to
// the invoice. The generation check makes it a no-op if the user has
// already navigated elsewhere.
func (a *App) confirmTick() tea.Cmd {
	gen := a.gen
	return tea.Tick(confirmDelay, func(time.Time) tea.Msg {
		return confirmDoneMsg{gen: gen}
	})
}

func (a *App) login(email, password string) tea.Cmd {
	gen := a.gen
	return func() tea.Msg {
		token, err := a.gw.Login(a.ctx, email, password)
		if err != nil {
			return loginFailedMsg{gen: gen, err: err}
		}
		if err := a.session.Login(token, session.RoleAdmin); err != nil {
			return loginFailedMsg{gen: gen, err: err}
		}
		return loginOKMsg{gen: gen}
	}
}

func (a *App) exportInvoice(inv booking.Invoice) tea.Cmd {
	currency := a.cfg.UI.CurrencySymbol
	return func() tea.Msg {
		name, err := booking.ExportInvoice(inv, currency)
		if err != nil {
			return errMsg{err}
		}
		return invoiceExportedMsg{name: name}
	}
}

// messages

type packagesMsg struct {
	gen  int
	pkgs []gateway.Package
}

type packageMsg struct {
	gen int
	pkg gateway.Package
}

type bookingCreatedMsg struct{ gen int }

type bookingFailedMsg struct {
	gen int
	err error
}

type confirmDoneMsg struct{ gen int }

type loginOKMsg struct{ gen int }

type loginFailedMsg struct {
	gen int
	err error
}

type adminPackagesMsg struct {
	gen  int
	pkgs []gateway.Package
}

type bookingsMsg struct {
	gen      int
	bookings []gateway.Booking
}

type bookingDetailMsg struct {
	gen int
	pkg gateway.Package
}

type mutationDoneMsg struct {
	gen  int
	note string
}

type bannerMsg struct {
	gen int
	err error
}

type invoiceExportedMsg struct{ name string }

type errMsg struct{ error }
