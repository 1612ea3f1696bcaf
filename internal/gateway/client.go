package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a typed HTTP client for the remote booking gateway. Every call
// takes a context and times out after the configured duration; failures are
// never retried here, recovery is user-initiated.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// StatusError is a non-2xx gateway response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: %d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway: unexpected status %d", e.Code)
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

// Packages fetches the full package catalog. Unauthenticated.
func (c *Client) Packages(ctx context.Context) ([]Package, error) {
	var pkgs []Package
	if err := c.do(ctx, http.MethodGet, "/package/getpackage", "", nil, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// PackageByID fetches a single package by identifier.
func (c *Client) PackageByID(ctx context.Context, id string) (Package, error) {
	var pkg Package
	body := map[string]string{"id": id}
	if err := c.do(ctx, http.MethodPost, "/package/getPackageById", "", body, &pkg); err != nil {
		return Package{}, err
	}
	return pkg, nil
}

// CreateBooking posts a booking draft plus computed total. The response body
// is not needed beyond success or failure.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) error {
	return c.do(ctx, http.MethodPost, "/bookings/addbookings", "", req, nil)
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/login", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return resp.Token, nil
}

// Bookings lists all bookings. Requires a token.
func (c *Client) Bookings(ctx context.Context, token string) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus sets the status of one booking.
func (c *Client) UpdateBookingStatus(ctx context.Context, token, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(id), token, body, nil)
}

// DeleteBooking removes one booking.
func (c *Client) DeleteBooking(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), token, nil, nil)
}

// AdminPackages lists packages through the authenticated admin collection.
func (c *Client) AdminPackages(ctx context.Context, token string) ([]Package, error) {
	var pkgs []Package
	if err := c.do(ctx, http.MethodGet, "/admin/packages", token, nil, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// AdminPackageByID fetches one package through the admin collection.
func (c *Client) AdminPackageByID(ctx context.Context, token, id string) (Package, error) {
	var pkg Package
	if err := c.do(ctx, http.MethodGet, "/admin/packages/"+url.PathEscape(id), token, nil, &pkg); err != nil {
		return Package{}, err
	}
	return pkg, nil
}

// CreatePackage adds a package.
func (c *Client) CreatePackage(ctx context.Context, token string, in PackageInput) error {
	return c.do(ctx, http.MethodPost, "/admin/packages", token, in, nil)
}

// UpdatePackage replaces a package record.
func (c *Client) UpdatePackage(ctx context.Context, token, id string, in PackageInput) error {
	return c.do(ctx, http.MethodPut, "/admin/packages/"+url.PathEscape(id), token, in, nil)
}

// DeletePackage removes a package.
func (c *Client) DeletePackage(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/packages/"+url.PathEscape(id), token, nil, nil)
}

// do issues one JSON request. A nil out discards the response body; non-2xx
// responses become a StatusError carrying the gateway's message field when
// one is present.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
