package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/internal/client"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

func TestServicesClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[storefront.Service]{
		{
			Name:         "public read",
			ID:           "s-1",
			ExpectedPath: "/services/s-1",
			StatusCode:   http.StatusOK,
			Response:     &storefront.Service{Resource: storefront.Resource{ID: "s-1"}, Name: "Facial", DurationMinutes: 60},
		},
	}

	RunGetTests(t, tests, func(c *client.Client) func(context.Context, string) (*storefront.Service, error) {
		return c.Services().Get
	})
}

func TestCoursesClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[storefront.Course]{
		{
			Name:         "public read",
			ID:           "c-1",
			ExpectedPath: "/courses/c-1",
			StatusCode:   http.StatusOK,
			Response:     &storefront.Course{Resource: storefront.Resource{ID: "c-1"}, Title: "Latte Art", Seats: 12},
		},
	}

	RunGetTests(t, tests, func(c *client.Client) func(context.Context, string) (*storefront.Course, error) {
		return c.Courses().Get
	})
}

func TestBookingsClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[storefront.Booking]{
		{
			Name:         "authenticated read",
			ID:           "bk-1",
			ExpectedPath: "/bookings/bk-1",
			WantAuth:     true,
			StatusCode:   http.StatusOK,
			Response:     &storefront.Booking{Resource: storefront.Resource{ID: "bk-1"}, Status: storefront.BookingStatusPending},
		},
	}

	RunGetTests(t, tests, func(c *client.Client) func(context.Context, string) (*storefront.Booking, error) {
		return c.Bookings().Get
	})
}

func TestBookingsClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestCreateOperation[storefront.BookingCreateRequest, storefront.Booking]{
		{
			Name:         "book a course seat",
			Request:      &storefront.BookingCreateRequest{Kind: storefront.BookingKindCourse, Course: "c-1"},
			ExpectedPath: "/bookings",
			StatusCode:   http.StatusCreated,
			Response: &storefront.Booking{
				Resource: storefront.Resource{ID: "bk-1"},
				Kind:     storefront.BookingKindCourse,
				Course:   "c-1",
				Status:   storefront.BookingStatusPending,
			},
		},
		{
			Name:         "course full",
			Request:      &storefront.BookingCreateRequest{Kind: storefront.BookingKindCourse, Course: "c-1"},
			ExpectedPath: "/bookings",
			StatusCode:   http.StatusConflict,
			Response:     map[string]string{"error": "No seats available"},
			WantErr:      true,
			ErrMessage:   "No seats available",
		},
	}

	RunCreateTests(t, tests, func(c *client.Client) func(context.Context, *storefront.BookingCreateRequest) (*storefront.Booking, error) {
		return c.Bookings().Create
	})
}

func TestBookingsClient_Cancel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/bookings/bk-1", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)
		checkAuth(t, request, true)

		var body map[string]string

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, map[string]string{"status": "cancelled"}, body)

		_ = json.NewEncoder(writer).Encode(storefront.Booking{
			Resource: storefront.Resource{ID: "bk-1"},
			Status:   storefront.BookingStatusCancelled,
		})
	}))
	defer server.Close()

	booking, err := newTestClient(t, server).Bookings().Cancel(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, storefront.BookingStatusCancelled, booking.Status)
}

func TestBookingsClient_ListRequiresAuth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") == "" {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"message":"Authentication required"}`))

			return
		}

		_, _ = writer.Write([]byte(`{"bookings":[{"id":"bk-1","status":"confirmed"}]}`))
	}))
	defer server.Close()

	sfClient := newTestClient(t, server)

	list, err := sfClient.Bookings().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list.Bookings, 1)

	sfClient.Session().Clear()

	_, err = sfClient.Bookings().List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, storefront.IsUnauthorized(err))
}
