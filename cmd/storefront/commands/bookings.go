package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "Browse bookable services",
		Long:    "List and view the appointments brands offer for booking",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var (
		flags listFlags
		brand string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		Long:  "List bookable services, optionally filtered by brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			params := flags.params()
			if brand != "" {
				params = params.WithFilter("brand", brand)
			}

			services, pagination, err := fetchList[storefront.Service](commandContext(cmd), client.Services().List, params, flags.allPages)
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			return render(cmd, services, func(out io.Writer) error {
				if len(services) == 0 {
					_, _ = io.WriteString(out, "No services found\n")

					return nil
				}

				table := newTable(out, "ID", "Name", "Brand", "Duration", "Price", "Active")
				for _, service := range services {
					_ = table.Append(service.ID, service.Name, orNone(service.Brand),
						strconv.Itoa(service.DurationMinutes)+" min",
						formatPrice(service.Price, service.Currency), formatBool(service.IsActive))
				}

				err := renderTable(table)
				if err != nil {
					return err
				}

				writePageHint(out, pagination, flags.allPages)

				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&brand, "brand", "", "filter by brand slug")

	return cmd
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE_ID",
		Short: "Get service details",
		Long:  "Display detailed information about a specific service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			service, err := client.Services().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get service: %w", err)
			}

			return render(cmd, service, func(out io.Writer) error {
				table := newTable(out, "Property", "Value")
				_ = table.Append("ID", service.ID)
				_ = table.Append("Name", service.Name)
				_ = table.Append("Brand", orNone(service.Brand))
				_ = table.Append("Description", orNone(service.Description))
				_ = table.Append("Duration", strconv.Itoa(service.DurationMinutes)+" min")
				_ = table.Append("Price", formatPrice(service.Price, service.Currency))
				_ = table.Append("Active", formatBool(service.IsActive))

				return renderTable(table)
			})
		},
	}
}

// NewCoursesCommand creates the courses command group.
func NewCoursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "Browse courses",
		Long:    "List and view scheduled courses and their free seats",
	}

	cmd.AddCommand(newCoursesListCommand())
	cmd.AddCommand(newCoursesGetCommand())

	return cmd
}

func newCoursesListCommand() *cobra.Command {
	var (
		flags listFlags
		brand string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Long:  "List scheduled courses, optionally filtered by brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			params := flags.params()
			if brand != "" {
				params = params.WithFilter("brand", brand)
			}

			courses, pagination, err := fetchList[storefront.Course](commandContext(cmd), client.Courses().List, params, flags.allPages)
			if err != nil {
				return fmt.Errorf("failed to list courses: %w", err)
			}

			return render(cmd, courses, func(out io.Writer) error {
				if len(courses) == 0 {
					_, _ = io.WriteString(out, "No courses found\n")

					return nil
				}

				table := newTable(out, "ID", "Title", "Brand", "Starts", "Seats", "Price")
				for _, course := range courses {
					_ = table.Append(course.ID, course.Title, orNone(course.Brand), formatTimePtr(course.StartDate),
						fmt.Sprintf("%d/%d", course.SeatsAvailable, course.Seats),
						formatPrice(course.Price, course.Currency))
				}

				err := renderTable(table)
				if err != nil {
					return err
				}

				writePageHint(out, pagination, flags.allPages)

				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&brand, "brand", "", "filter by brand slug")

	return cmd
}

func newCoursesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COURSE_ID",
		Short: "Get course details",
		Long:  "Display detailed information about a specific course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			course, err := client.Courses().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get course: %w", err)
			}

			return render(cmd, course, func(out io.Writer) error {
				table := newTable(out, "Property", "Value")
				_ = table.Append("ID", course.ID)
				_ = table.Append("Title", course.Title)
				_ = table.Append("Brand", orNone(course.Brand))
				_ = table.Append("Description", orNone(course.Description))
				_ = table.Append("Starts", formatTimePtr(course.StartDate))
				_ = table.Append("Ends", formatTimePtr(course.EndDate))
				_ = table.Append("Seats", fmt.Sprintf("%d/%d", course.SeatsAvailable, course.Seats))
				_ = table.Append("Price", formatPrice(course.Price, course.Currency))
				_ = table.Append("Active", formatBool(course.IsActive))

				return renderTable(table)
			})
		},
	}
}

// NewBookingsCommand creates the bookings command group.
func NewBookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking", "bk"},
		Short:   "Manage bookings",
		Long:    "List, create, and cancel bookings of services and courses",
	}

	cmd.AddCommand(newBookingsListCommand())
	cmd.AddCommand(newBookingsCreateCommand())
	cmd.AddCommand(newBookingsCancelCommand())

	return cmd
}

func newBookingsListCommand() *cobra.Command {
	var (
		flags  listFlags
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Long:  "List the bookings of the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			params := flags.params()
			if status != "" {
				params = params.WithFilter("status", status)
			}

			bookings, pagination, err := fetchList[storefront.Booking](commandContext(cmd), client.Bookings().List, params, flags.allPages)
			if err != nil {
				return fmt.Errorf("failed to list bookings: %w", err)
			}

			return render(cmd, bookings, func(out io.Writer) error {
				return renderBookingTable(out, bookings, pagination, flags.allPages)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, confirmed, cancelled, completed)")

	return cmd
}

func renderBookingTable(out io.Writer, bookings []storefront.Booking, pagination storefront.Pagination, allPages bool) error {
	if len(bookings) == 0 {
		_, _ = io.WriteString(out, "No bookings found\n")

		return nil
	}

	table := newTable(out, "ID", "Kind", "Target", "Scheduled", "Status", "Created")

	for _, booking := range bookings {
		target := booking.Service
		if booking.Kind == storefront.BookingKindCourse {
			target = booking.Course
		}

		_ = table.Append(booking.ID, string(booking.Kind), orNone(target),
			formatTimePtr(booking.ScheduledAt), string(booking.Status), formatTime(booking.CreatedAt))
	}

	err := renderTable(table)
	if err != nil {
		return err
	}

	writePageHint(out, pagination, allPages)

	return nil
}

func newBookingsCreateCommand() *cobra.Command {
	var (
		service string
		course  string
		at      string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a service or a course",
		Long: `Book a service appointment or a course seat.

Service bookings need a start time given with --at in RFC 3339 format,
for example 2026-11-02T14:30:00+01:00.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildBookingRequest(service, course, at, notes)
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			booking, err := client.Bookings().Create(commandContext(cmd), request)
			if err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created booking %s (%s)\n", booking.ID, booking.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "service ID to book")
	cmd.Flags().StringVar(&course, "course", "", "course ID to book")
	cmd.Flags().StringVar(&at, "at", "", "appointment start (RFC 3339), required for services")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the brand")

	return cmd
}

func buildBookingRequest(service, course, at, notes string) (*storefront.BookingCreateRequest, error) {
	if (service == "") == (course == "") {
		return nil, constants.ErrBookingTarget
	}

	request := &storefront.BookingCreateRequest{Notes: notes}

	if course != "" {
		request.Kind = storefront.BookingKindCourse
		request.Course = course

		return request, nil
	}

	if at == "" {
		return nil, constants.ErrScheduleRequired
	}

	scheduledAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return nil, fmt.Errorf("invalid --at value %q: %w", at, err)
	}

	request.Kind = storefront.BookingKindService
	request.Service = service
	request.ScheduledAt = &scheduledAt

	return request, nil
}

func newBookingsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel BOOKING_ID",
		Short: "Cancel a booking",
		Long:  "Cancel one of your bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			booking, err := client.Bookings().Cancel(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel booking: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Booking %s is now %s\n", booking.ID, booking.Status)

			return nil
		},
	}
}
