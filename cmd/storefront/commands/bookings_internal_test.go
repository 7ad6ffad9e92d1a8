package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

func TestBuildBookingRequest(t *testing.T) {
	t.Parallel()

	_, err := buildBookingRequest("", "", "", "")
	require.ErrorIs(t, err, constants.ErrBookingTarget)

	_, err = buildBookingRequest("s-1", "c-1", "", "")
	require.ErrorIs(t, err, constants.ErrBookingTarget)

	_, err = buildBookingRequest("s-1", "", "", "")
	require.ErrorIs(t, err, constants.ErrScheduleRequired)

	_, err = buildBookingRequest("s-1", "", "tomorrow", "")
	require.Error(t, err)

	request, err := buildBookingRequest("", "c-1", "", "window seat")
	require.NoError(t, err)
	assert.Equal(t, storefront.BookingKindCourse, request.Kind)
	assert.Equal(t, "c-1", request.Course)
	assert.Nil(t, request.ScheduledAt)

	request, err = buildBookingRequest("s-1", "", "2026-11-02T14:30:00+01:00", "")
	require.NoError(t, err)
	assert.Equal(t, storefront.BookingKindService, request.Kind)
	require.NotNil(t, request.ScheduledAt)
	assert.True(t, request.ScheduledAt.Equal(time.Date(2026, 11, 2, 13, 30, 0, 0, time.UTC)))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4.50 EUR", formatPrice(4.5, "EUR"))
	assert.Equal(t, "9.00", formatPrice(9, ""))
	assert.Equal(t, none, formatTime(time.Time{}))
	assert.Equal(t, none, formatTimePtr(nil))
	assert.Equal(t, none, orNone(""))
	assert.Equal(t, "yes", formatBool(true))
}

func TestListFlagsParams(t *testing.T) {
	t.Parallel()

	flags := listFlags{page: 2, perPage: 10, sort: "-price", search: "tea"}
	params := flags.params()

	encoded, err := params.Encode()
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=2&search=tea&sort=-price", encoded)
}
