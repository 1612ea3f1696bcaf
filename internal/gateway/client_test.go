package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestPackages(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/package/getpackage", r.URL.Path)
		_, _ = io.WriteString(w, `[{"_id":"p1","title":"Beach Tour","price":100}]`)
	})

	pkgs, err := c.Packages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.Equal(t, "p1", pkgs[0].ID)
	require.Equal(t, "Beach Tour", pkgs[0].Title)
	require.Equal(t, 100.0, pkgs[0].Price)
}

func TestPackageByIDPostsID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/package/getPackageById", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "p1", body["id"])
		_, _ = io.WriteString(w, `{"_id":"p1","title":"Beach Tour","price":100}`)
	})

	pkg, err := c.PackageByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Beach Tour", pkg.Title)
}

func TestCreateBookingBody(t *testing.T) {
	var got BookingRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings/addbookings", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	req := BookingRequest{
		PackageID:         "p1",
		Name:              "Ada",
		Email:             "ada@example.com",
		NumberOfTravelers: 3,
		TotalPrice:        300,
		IdempotencyKey:    "key-1",
	}
	require.NoError(t, c.CreateBooking(context.Background(), req))
	require.Equal(t, req, got)
}

func TestLogin(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok-123"}`)
	})

	token, err := c.Login(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)

	_, err = c.Login(context.Background(), "admin@example.com", "wrong")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Code)
	require.Contains(t, statusErr.Message, "invalid credentials")
}

func TestAuthenticatedCallsCarryBearerToken(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := c.Bookings(context.Background(), "tok-123")
	require.NoError(t, err)

	_, err = c.AdminPackages(context.Background(), "tok-123")
	require.NoError(t, err)
}

func TestUpdateBookingStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/bookings/b1", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "confirmed", body["status"])
	})

	require.NoError(t, c.UpdateBookingStatus(context.Background(), "tok", "b1", "confirmed"))
}

func TestDeleteBooking(t *testing.T) {
	deleted := false
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/bookings/b1" {
			deleted = true
			return
		}
		// subsequent list no longer contains b1
		require.Equal(t, "/bookings", r.URL.Path)
		_, _ = io.WriteString(w, `[{"_id":"b2","name":"Grace"}]`)
	})

	ctx := context.Background()
	require.NoError(t, c.DeleteBooking(ctx, "tok", "b1"))
	require.True(t, deleted)

	bookings, err := c.Bookings(ctx, "tok")
	require.NoError(t, err)
	for _, b := range bookings {
		require.NotEqual(t, "b1", b.ID)
	}
}

func TestCreatePackageSendsOrderedDates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/packages", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []any{"2024-01-01", "2024-02-01"}, body["availableDates"])
		w.WriteHeader(http.StatusCreated)
	})

	in := PackageInput{
		Title:          "Beach Tour",
		Price:          100,
		AvailableDates: []string{"2024-01-01", "2024-02-01"},
	}
	require.NoError(t, c.CreatePackage(context.Background(), "tok", in))
}

func TestNoRetryOnFailure(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.CreateBooking(context.Background(), BookingRequest{PackageID: "p1"})
	require.Error(t, err)
	require.Equal(t, 1, calls)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusBadGateway, statusErr.Code)
}
