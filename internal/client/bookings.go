package client

import (
	"context"
	"fmt"

	internalhttp "github.com/fivetwenty-io/storefront/internal/http"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// ServicesClient implements storefront.ServicesClient.
type ServicesClient struct {
	*resourceClient[storefront.Service, storefront.ServiceList, storefront.ServiceCreateRequest, storefront.ServiceUpdateRequest]
}

// NewServicesClient creates a new services client.
func NewServicesClient(httpClient *internalhttp.Client) *ServicesClient {
	return &ServicesClient{
		resourceClient: newResourceClient[storefront.Service, storefront.ServiceList, storefront.ServiceCreateRequest, storefront.ServiceUpdateRequest](
			httpClient, servicesPath, "service", "services", false),
	}
}

// CoursesClient implements storefront.CoursesClient.
type CoursesClient struct {
	*resourceClient[storefront.Course, storefront.CourseList, storefront.CourseCreateRequest, storefront.CourseUpdateRequest]
}

// NewCoursesClient creates a new courses client.
func NewCoursesClient(httpClient *internalhttp.Client) *CoursesClient {
	return &CoursesClient{
		resourceClient: newResourceClient[storefront.Course, storefront.CourseList, storefront.CourseCreateRequest, storefront.CourseUpdateRequest](
			httpClient, coursesPath, "course", "courses", false),
	}
}

// BookingsClient implements storefront.BookingsClient. Bookings belong to
// a user, so reads are authenticated too.
type BookingsClient struct {
	*resourceClient[storefront.Booking, storefront.BookingList, storefront.BookingCreateRequest, storefront.BookingUpdateRequest]
}

// NewBookingsClient creates a new bookings client.
func NewBookingsClient(httpClient *internalhttp.Client) *BookingsClient {
	return &BookingsClient{
		resourceClient: newResourceClient[storefront.Booking, storefront.BookingList, storefront.BookingCreateRequest, storefront.BookingUpdateRequest](
			httpClient, bookingsPath, "booking", "bookings", true),
	}
}

// Cancel implements storefront.BookingsClient.Cancel.
func (c *BookingsClient) Cancel(ctx context.Context, id string) (*storefront.Booking, error) {
	status := storefront.BookingStatusCancelled

	booking, err := c.Update(ctx, id, &storefront.BookingUpdateRequest{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("cancelling booking: %w", err)
	}

	return booking, nil
}
