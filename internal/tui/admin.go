package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tourbook/internal/gateway"
)

var (
	errTitleRequired = errors.New("title is required")
	errBadPrice      = errors.New("price must be a number")
)

func (a *App) handleAdminPackagesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.pkgFormOpen {
		return a.handlePackageFormKey(m)
	}
	switch m.Type {
	case tea.KeyEsc:
		return a, a.navTo(viewDashboard)
	case tea.KeyUp:
		if a.pkgCursor > 0 {
			a.pkgCursor--
		}
	case tea.KeyDown:
		if a.pkgCursor < len(a.adminPkgs)-1 {
			a.pkgCursor++
		}
	case tea.KeyEnter:
		if len(a.adminPkgs) == 0 {
			return a, nil
		}
		pkg := a.adminPkgs[a.pkgCursor]
		a.pkgFormOpen = true
		a.pkgEditID = pkg.ID
		a.pkgField = pkgFieldTitle
		a.pkgInputs[pkgFieldTitle] = pkg.Title
		a.pkgInputs[pkgFieldDescription] = pkg.Description
		a.pkgInputs[pkgFieldPrice] = strconv.FormatFloat(pkg.Price, 'f', -1, 64)
		a.pkgInputs[pkgFieldDates] = strings.Join(pkg.AvailableDates, ", ")
		a.pkgInputs[pkgFieldImage] = pkg.Image
	case tea.KeyBackspace, tea.KeyDelete:
		if len(a.adminPkgs) == 0 {
			return a, nil
		}
		return a, a.deletePackage(a.adminPkgs[a.pkgCursor].ID)
	case tea.KeyRunes:
		switch string(m.Runes) {
		case "n":
			a.pkgFormOpen = true
			a.pkgEditID = ""
			a.pkgField = pkgFieldTitle
			a.pkgInputs = [pkgFieldCount]string{}
		case "q":
			return a, a.navTo(viewDashboard)
		}
	}
	return a, nil
}

func (a *App) handlePackageFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.pkgFormOpen = false
		a.pkgEditID = ""
	case tea.KeyTab, tea.KeyDown:
		a.pkgField = (a.pkgField + 1) % pkgFieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		a.pkgField = (a.pkgField + pkgFieldCount - 1) % pkgFieldCount
	case tea.KeyEnter:
		in, err := a.packageInput()
		if err != nil {
			a.banner = err.Error()
			return a, nil
		}
		editID := a.pkgEditID
		a.pkgFormOpen = false
		a.pkgEditID = ""
		if editID != "" {
			return a, a.updatePackage(editID, in)
		}
		return a, a.createPackage(in)
	case tea.KeyBackspace, tea.KeyCtrlH:
		s := a.pkgInputs[a.pkgField]
		if len(s) > 0 {
			a.pkgInputs[a.pkgField] = s[:len(s)-1]
		}
	case tea.KeySpace:
		a.pkgInputs[a.pkgField] += " "
	case tea.KeyRunes:
		a.pkgInputs[a.pkgField] += string(m.Runes)
	}
	return a, nil
}

// packageInput assembles the write body from the form. The dates field is
// entered comma-separated and transmitted as an ordered list of trimmed
// strings.
func (a *App) packageInput() (gateway.PackageInput, error) {
	title := strings.TrimSpace(a.pkgInputs[pkgFieldTitle])
	if title == "" {
		return gateway.PackageInput{}, errTitleRequired
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(a.pkgInputs[pkgFieldPrice]), 64)
	if err != nil {
		return gateway.PackageInput{}, errBadPrice
	}
	return gateway.PackageInput{
		Title:          title,
		Description:    strings.TrimSpace(a.pkgInputs[pkgFieldDescription]),
		Price:          price,
		AvailableDates: splitDates(a.pkgInputs[pkgFieldDates]),
		Image:          strings.TrimSpace(a.pkgInputs[pkgFieldImage]),
	}, nil
}

func splitDates(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (a *App) handleAdminBookingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		if a.bookingDetail != nil {
			a.bookingDetail = nil
			return a, nil
		}
		return a, a.navTo(viewDashboard)
	case tea.KeyUp:
		if a.bookingCursor > 0 {
			a.bookingCursor--
			a.bookingDetail = nil
		}
	case tea.KeyDown:
		if a.bookingCursor < len(a.bookings)-1 {
			a.bookingCursor++
			a.bookingDetail = nil
		}
	case tea.KeyEnter:
		if len(a.bookings) == 0 {
			return a, nil
		}
		b := a.bookings[a.bookingCursor]
		if b.PackageID == "" {
			return a, nil
		}
		return a, a.loadBookingDetail(b.PackageID)
	case tea.KeyBackspace, tea.KeyDelete:
		if len(a.bookings) == 0 {
			return a, nil
		}
		return a, a.deleteBooking(a.bookings[a.bookingCursor].ID)
	case tea.KeyRunes:
		if len(a.bookings) == 0 {
			if string(m.Runes) == "q" {
				return a, a.navTo(viewDashboard)
			}
			return a, nil
		}
		b := a.bookings[a.bookingCursor]
		switch string(m.Runes) {
		case "c":
			return a, a.updateBookingStatus(b.ID, "confirmed")
		case "x":
			return a, a.updateBookingStatus(b.ID, "cancelled")
		case "q":
			return a, a.navTo(viewDashboard)
		}
	}
	return a, nil
}

// commands

func (a *App) loadAdminPackages() tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		pkgs, err := a.gw.AdminPackages(a.ctx, token)
		if err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return adminPackagesMsg{gen: gen, pkgs: pkgs}
	}
}

func (a *App) loadBookings() tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		bookings, err := a.gw.Bookings(a.ctx, token)
		if err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return bookingsMsg{gen: gen, bookings: bookings}
	}
}

func (a *App) loadBookingDetail(packageID string) tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		pkg, err := a.gw.AdminPackageByID(a.ctx, token, packageID)
		if err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return bookingDetailMsg{gen: gen, pkg: pkg}
	}
}

func (a *App) createPackage(in gateway.PackageInput) tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		if err := a.gw.CreatePackage(a.ctx, token, in); err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return mutationDoneMsg{gen: gen, note: "package added"}
	}
}

func (a *App) updatePackage(id string, in gateway.PackageInput) tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		if err := a.gw.UpdatePackage(a.ctx, token, id, in); err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return mutationDoneMsg{gen: gen, note: "package updated"}
	}
}

func (a *App) deletePackage(id string) tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		if err := a.gw.DeletePackage(a.ctx, token, id); err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return mutationDoneMsg{gen: gen, note: "package deleted"}
	}
}

func (a *App) updateBookingStatus(id, status string) tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		if err := a.gw.UpdateBookingStatus(a.ctx, token, id, status); err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return mutationDoneMsg{gen: gen, note: "booking " + status}
	}
}

func (a *App) deleteBooking(id string) tea.Cmd {
	gen := a.gen
	token := a.session.Token()
	return func() tea.Msg {
		if err := a.gw.DeleteBooking(a.ctx, token, id); err != nil {
			return bannerMsg{gen: gen, err: err}
		}
		return mutationDoneMsg{gen: gen, note: "booking deleted"}
	}
}
