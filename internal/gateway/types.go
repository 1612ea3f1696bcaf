package gateway

// Package is a sellable tour product. Owned by the gateway; the client only
// ever holds read-only copies.
type Package struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	AvailableDates []string `json:"availableDates"`
	Image          string   `json:"image"`
}

// PackageInput is the write body for package create/update. AvailableDates
// is always transmitted as an ordered list of trimmed date strings.
type PackageInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	AvailableDates []string `json:"availableDates"`
	Image          string   `json:"image"`
}

// BookingRequest is the booking-creation body: the customer's draft plus the
// computed total and a client-generated idempotency key so a double submit
// cannot double-book.
type BookingRequest struct {
	PackageID         string  `json:"packageId"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phoneNumber"`
	NumberOfTravelers int     `json:"numberOfTravelers"`
	SpecialRequests   string  `json:"specialRequests"`
	TotalPrice        float64 `json:"totalPrice"`
	IdempotencyKey    string  `json:"idempotencyKey,omitempty"`
}

// Booking is a stored booking as returned by the admin listing.
type Booking struct {
	ID                string  `json:"_id"`
	PackageID         string  `json:"packageId"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phoneNumber"`
	NumberOfTravelers int     `json:"numberOfTravelers"`
	SpecialRequests   string  `json:"specialRequests"`
	TotalPrice        float64 `json:"totalPrice"`
	Status            string  `json:"status"`
}
