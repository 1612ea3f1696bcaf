package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tourbook/internal/booking"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewDetail:
		body = a.renderDetail()
	case viewBooking:
		body = a.renderBooking()
	case viewInvoice:
		body = a.renderInvoice()
	case viewLogin:
		body = a.renderLogin()
	case viewDashboard:
		body = a.renderDashboard()
	case viewAdminPackages:
		body = a.renderAdminPackages()
	case viewAdminBookings:
		body = a.renderAdminBookings()
	default:
		body = a.renderCatalog()
	}
	if a.banner != "" {
		body += "\n" + bannerStyle.Render(a.banner)
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) renderCatalog() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Explore Our Tour Packages"))
	b.WriteString(fmt.Sprintf("\nSearch: %s_\n\n", a.query))

	if len(a.filtered) == 0 {
		b.WriteString("No packages found.\n")
		if a.suggestion != "" {
			b.WriteString(fmt.Sprintf("Did you mean %q?\n", a.suggestion))
		}
	}
	for i, p := range a.filtered {
		marker := "  "
		if i == a.catalogCursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s  %s%.2f\n", marker, p.Title, a.cfg.UI.CurrencySymbol, p.Price))
	}
	b.WriteString(faintStyle.Render("\n[enter] Details  [tab] Admin  [esc] Quit"))
	return b.String()
}

func (a *App) renderDetail() string {
	if a.detail == nil {
		return "No package selected."
	}
	p := a.detail
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n\n" + p.Description + "\n")
	b.WriteString(fmt.Sprintf("\nPrice per person: %s%.2f\n", a.cfg.UI.CurrencySymbol, p.Price))
	if len(p.AvailableDates) > 0 {
		b.WriteString("Available dates: " + strings.Join(p.AvailableDates, ", ") + "\n")
	}
	b.WriteString(faintStyle.Render("\n[b/enter] Book Now  [esc] Back"))
	return b.String()
}

var bookingFieldLabels = [bookingFieldCount]string{
	"Your Name", "Email", "Phone Number", "Number of Travelers", "Special Requests",
}

func (a *App) renderBooking() string {
	if a.flow == nil {
		return "Loading..."
	}
	title := a.flow.Package().Title
	if title == "" {
		title = "Loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")

	switch a.flow.State() {
	case booking.StateLoading:
		b.WriteString("\nLoading package details...\n")
		b.WriteString(faintStyle.Render("\n[esc] Back"))
	case booking.StateSubmitting:
		b.WriteString("\nSubmitting booking...\n")
	case booking.StateConfirmed:
		b.WriteString("\nBooking successful!\n")
		b.WriteString("Taking you to your invoice...\n")
	case booking.StateFailed:
		b.WriteString("\n" + bannerStyle.Render("Booking failed: "+a.flow.FailureReason()) + "\n")
		b.WriteString(faintStyle.Render("\n[r] Retry  [esc] Back"))
	default:
		for i, label := range bookingFieldLabels {
			marker := "  "
			if i == a.bookField {
				marker = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, label, a.bookInputs[i]))
		}
		b.WriteString(fmt.Sprintf("\nTotal Price: %s%.2f\n", a.cfg.UI.CurrencySymbol, a.flow.Total()))
		b.WriteString(faintStyle.Render("\n[tab] Next field  [enter] Book Now  [esc] Back"))
	}
	return b.String()
}

func (a *App) renderInvoice() string {
	if a.invoice == nil {
		return bannerStyle.Render("No invoice data available") +
			faintStyle.Render("\n\n[esc] Back to packages")
	}
	inv := a.invoice
	cur := a.cfg.UI.CurrencySymbol
	var b strings.Builder
	b.WriteString(titleStyle.Render("Booking Details"))
	b.WriteString("\nThank you for your booking!\n")
	b.WriteString("\nCustomer\n")
	b.WriteString(fmt.Sprintf("  Name:  %s\n", inv.CustomerName))
	b.WriteString(fmt.Sprintf("  Email: %s\n", inv.CustomerEmail))
	b.WriteString(fmt.Sprintf("  Phone: %s\n", inv.CustomerPhone))
	b.WriteString("\nPackage\n")
	b.WriteString(fmt.Sprintf("  Name:             %s\n", inv.PackageTitle))
	b.WriteString(fmt.Sprintf("  Price per person: %s%.2f\n", cur, inv.UnitPrice))
	b.WriteString(fmt.Sprintf("  Travelers:        %d\n", inv.Travelers))
	b.WriteString(fmt.Sprintf("\nTotal Price: %s%.2f\n", cur, inv.TotalPrice))
	if inv.Reference != "" {
		b.WriteString(faintStyle.Render(fmt.Sprintf("Reference: %s\n", inv.Reference)))
	}
	b.WriteString(faintStyle.Render("\n[e] Export PDF  [enter] Done"))
	return b.String()
}

func (a *App) renderLogin() string {
	email := a.loginEmail
	password := strings.Repeat("*", len(a.loginPassword))
	markers := [2]string{"  ", "  "}
	markers[a.loginField] = "> "
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin Login") + "\n")
	b.WriteString(fmt.Sprintf("%sEmail:    %s\n", markers[0], email))
	b.WriteString(fmt.Sprintf("%sPassword: %s\n", markers[1], password))
	b.WriteString(faintStyle.Render("\n[tab] Switch field  [enter] Login  [esc] Back"))
	return b.String()
}

func (a *App) renderDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin Dashboard") + "\n\n")
	b.WriteString("[p] Manage Packages\n")
	b.WriteString("[b] Manage Bookings\n")
	b.WriteString("[l] Logout\n")
	b.WriteString(faintStyle.Render("\n[esc] Back to packages"))
	return b.String()
}

var pkgFieldLabels = [pkgFieldCount]string{
	"Title", "Description", "Price", "Available Dates (comma-separated)", "Image URL",
}

func (a *App) renderAdminPackages() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Manage Packages") + "\n")

	if a.pkgFormOpen {
		heading := "Add Package"
		if a.pkgEditID != "" {
			heading = "Edit Package"
		}
		b.WriteString("\n" + heading + "\n")
		for i, label := range pkgFieldLabels {
			marker := "  "
			if i == a.pkgField {
				marker = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, label, a.pkgInputs[i]))
		}
		b.WriteString(faintStyle.Render("\n[tab] Next field  [enter] Save  [esc] Cancel"))
		return b.String()
	}

	if len(a.adminPkgs) == 0 {
		b.WriteString("\nNo packages.\n")
	}
	for i, p := range a.adminPkgs {
		marker := "  "
		if i == a.pkgCursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s  %s%.2f  (%d dates)\n",
			marker, p.Title, a.cfg.UI.CurrencySymbol, p.Price, len(p.AvailableDates)))
	}
	b.WriteString(faintStyle.Render("\n[n] New  [enter] Edit  [backspace] Delete  [esc] Back"))
	return b.String()
}

func (a *App) renderAdminBookings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Manage Bookings") + "\n")

	if len(a.bookings) == 0 {
		b.WriteString("\nNo bookings.\n")
	}
	for i, bk := range a.bookings {
		marker := "  "
		if i == a.bookingCursor {
			marker = "> "
		}
		status := bk.Status
		if status == "" {
			status = "pending"
		}
		b.WriteString(fmt.Sprintf("%s%s  x%d  %s%.2f  [%s]\n",
			marker, bk.Name, bk.NumberOfTravelers, a.cfg.UI.CurrencySymbol, bk.TotalPrice, status))
	}
	if a.bookingDetail != nil && len(a.bookings) > 0 {
		bk := a.bookings[a.bookingCursor]
		b.WriteString("\nBooking detail\n")
		b.WriteString(fmt.Sprintf("  Package: %s (%s%.2f per person)\n",
			a.bookingDetail.Title, a.cfg.UI.CurrencySymbol, a.bookingDetail.Price))
		b.WriteString(fmt.Sprintf("  Contact: %s / %s\n", bk.Email, bk.PhoneNumber))
		if bk.SpecialRequests != "" {
			b.WriteString(fmt.Sprintf("  Requests: %s\n", bk.SpecialRequests))
		}
	}
	b.WriteString(faintStyle.Render("\n[c] Confirm  [x] Cancel  [backspace] Delete  [enter] Detail  [esc] Back"))
	return b.String()
}
