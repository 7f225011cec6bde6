//go:build unit

package booking_test

import (
	"testing"
	"time"

	"coworkhub/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseTime  = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	workspace = booking.WorkspaceSpec{
		ID:              uuid.New(),
		Name:            "Focus Desk 4",
		HourlyRateCents: 1000,
	}
)

// newTestBooking returns a pending 2h booking starting one hour from
// baseTime ($20.00 subtotal, $0.88 fee).
func newTestBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(
		uuid.New(),
		workspace,
		baseTime.Add(time.Hour),
		baseTime.Add(3*time.Hour),
		false,
		baseTime,
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("fixes the estimate at creation", func(t *testing.T) {
		b := newTestBooking(t)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, int64(2000), b.SubtotalCents())
		assert.Equal(t, int64(88), b.ProcessingFeeCents())
		assert.Equal(t, int64(2088), b.TotalPriceCents())
		assert.InDelta(t, 2.0, b.BookedHours(), 1e-9)
		assert.NotEmpty(t, b.ConfirmationCode())
		assert.Nil(t, b.CheckInTime())
		assert.Nil(t, b.FinalChargeCents())
	})

	t.Run("bakes the NFT discount into the subtotal", func(t *testing.T) {
		b, err := booking.NewBooking(
			uuid.New(), workspace,
			baseTime.Add(time.Hour), baseTime.Add(3*time.Hour),
			true, baseTime,
		)
		require.NoError(t, err)

		assert.Equal(t, int64(1800), b.SubtotalCents())
		assert.True(t, b.NFTDiscountApplied())
	})

	t.Run("validation", func(t *testing.T) {
		testCases := []struct {
			name  string
			start time.Time
			end   time.Time
			errIs error
		}{
			{
				name:  "end before start",
				start: baseTime.Add(2 * time.Hour),
				end:   baseTime.Add(time.Hour),
				errIs: booking.ErrInvalidTimeRange,
			},
			{
				name:  "zero duration",
				start: baseTime.Add(time.Hour),
				end:   baseTime.Add(time.Hour),
				errIs: booking.ErrInvalidTimeRange,
			},
			{
				name:  "start in the past",
				start: baseTime.Add(-time.Hour),
				end:   baseTime.Add(time.Hour),
				errIs: booking.ErrStartInPast,
			},
			{
				name:  "spans midnight",
				start: baseTime.Add(14 * time.Hour),
				end:   baseTime.Add(16 * time.Hour),
				errIs: booking.ErrSpansMidnight,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := booking.NewBooking(uuid.New(), workspace, tc.start, tc.end, false, baseTime)
				require.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestCheckInWindow(t *testing.T) {
	start := baseTime.Add(time.Hour) // 10:00
	testCases := []struct {
		name  string
		now   time.Time
		errIs error
	}{
		{name: "20 minutes before start is too early", now: start.Add(-20 * time.Minute), errIs: booking.ErrCheckInTooEarly},
		{name: "exactly 15 minutes before start succeeds", now: start.Add(-15 * time.Minute)},
		{name: "at start succeeds", now: start},
		{name: "during the booked slot succeeds", now: start.Add(time.Hour)},
		{name: "60 minutes after end succeeds", now: start.Add(3 * time.Hour)},
		{name: "61 minutes after end is expired", now: start.Add(3*time.Hour + time.Minute), errIs: booking.ErrCheckInExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBooking(t)
			err := b.CheckIn(tc.now)

			if tc.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, booking.StatusCheckedIn, b.Status())
				require.NotNil(t, b.CheckInTime())
				assert.Equal(t, tc.now, *b.CheckInTime())
			} else {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, booking.StatusPending, b.Status())
				assert.Nil(t, b.CheckInTime())
			}
		})
	}
}

func TestCheckInStateGuards(t *testing.T) {
	start := baseTime.Add(time.Hour)

	t.Run("cancelled booking refuses check-in", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel())

		err := b.CheckIn(start)
		require.ErrorIs(t, err, booking.ErrBookingCancelled)
	})

	t.Run("completed booking refuses check-in", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))
		_, err := b.CheckOut(start.Add(time.Hour))
		require.NoError(t, err)

		err = b.CheckIn(start.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrBookingCompleted)
	})

	t.Run("second check-in is idempotent-rejected", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))

		err := b.CheckIn(start.Add(5 * time.Minute))
		require.ErrorIs(t, err, booking.ErrAlreadyCheckedIn)
	})
}

func TestMinutesUntilWindow(t *testing.T) {
	b := newTestBooking(t) // window opens 09:45

	assert.Equal(t, 20, b.MinutesUntilWindow(baseTime.Add(25*time.Minute)))
	// partial minutes round up
	assert.Equal(t, 20, b.MinutesUntilWindow(baseTime.Add(25*time.Minute+30*time.Second)))
	assert.Equal(t, 0, b.MinutesUntilWindow(baseTime.Add(45*time.Minute)))
	assert.Equal(t, 0, b.MinutesUntilWindow(baseTime.Add(2*time.Hour)))
}

func TestCheckOut(t *testing.T) {
	start := baseTime.Add(time.Hour)

	t.Run("early departure refunds the unused share", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))

		result, err := b.CheckOut(start.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, int64(1044), result.FinalChargeCents)
		assert.Equal(t, int64(1044), result.RefundCents)
		assert.Equal(t, int64(0), result.OverageCents)
		assert.Equal(t, booking.StatusCompleted, b.Status())
		require.NotNil(t, b.FinalChargeCents())
		assert.Equal(t, int64(1044), *b.FinalChargeCents())
		require.NotNil(t, b.ActualHours())
		assert.InDelta(t, 1.0, *b.ActualHours(), 1e-9)
	})

	t.Run("overstay charges the extra share", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))

		result, err := b.CheckOut(start.Add(3 * time.Hour))
		require.NoError(t, err)

		assert.Equal(t, int64(3132), result.FinalChargeCents)
		assert.Equal(t, int64(1044), result.OverageCents)
		assert.Equal(t, int64(0), result.RefundCents)
	})

	t.Run("without check-in fails", func(t *testing.T) {
		b := newTestBooking(t)
		_, err := b.CheckOut(start.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrNotCheckedIn)
	})

	t.Run("second check-out fails", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))
		_, err := b.CheckOut(start.Add(time.Hour))
		require.NoError(t, err)

		_, err = b.CheckOut(start.Add(2 * time.Hour))
		require.ErrorIs(t, err, booking.ErrAlreadyCheckedOut)
	})

	t.Run("instant check-out clamps elapsed time above zero", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))

		result, err := b.CheckOut(start)
		require.NoError(t, err)

		require.NotNil(t, b.ActualHours())
		assert.Greater(t, *b.ActualHours(), 0.0)
		assert.Equal(t, int64(0), result.OverageCents)
		assert.Greater(t, result.RefundCents, int64(0))
	})
}

func TestCancel(t *testing.T) {
	start := baseTime.Add(time.Hour)

	t.Run("pending booking cancels", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancelled booking is immutable", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel())
		require.ErrorIs(t, b.Cancel(), booking.ErrTerminalState)
	})

	t.Run("checked-in booking cannot cancel", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))
		require.ErrorIs(t, b.Cancel(), booking.ErrAlreadyCheckedIn)
	})

	t.Run("completed booking is immutable", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.CheckIn(start))
		_, err := b.CheckOut(start.Add(time.Hour))
		require.NoError(t, err)
		require.ErrorIs(t, b.Cancel(), booking.ErrTerminalState)
	})
}
