//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"coworkhub/internal/handler/dto/request"
	"coworkhub/internal/handler/dto/response"
	"coworkhub/tests/common/authtest"
	"coworkhub/tests/common/dbtest"
	"coworkhub/tests/common/httptest"
	"coworkhub/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL = "/api/bookings"
	checkInURL  = "/api/bookings/%s/check-in"
	checkOutURL = "/api/bookings/%s/check-out"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// tomorrow 09:00-13:00 UTC, always bookable
func futureSlot() (time.Time, time.Time) {
	start := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(9 * time.Hour)
	return start, start.Add(4 * time.Hour)
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking is priced at creation", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", "user")

		start, end := futureSlot()
		reqBody := request.CreateBookingRequest{WorkspaceID: workspaceID, StartTime: start, EndTime: end}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)

		// 4h at $15.00/h plus 2.9% + $0.30 processing fee
		require.Equal(t, int64(6000), created.SubtotalCents)
		require.Equal(t, int64(204), created.ProcessingFeeCents)
		require.Equal(t, int64(6204), created.TotalPriceCents)
		require.Equal(t, "pending", created.Status)
		require.False(t, created.NFTDiscountApplied)
		require.NotEmpty(t, created.ConfirmationCode)
	})

	s.Run("Normal case: NFT holders get 10% off the subtotal", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		dbtest.CreateTestNFTHolder(t, s.DB, "holder@example.com")
		token := authtest.LoginUser(t, s.Router, "holder@example.com", "password123")

		start, end := futureSlot()
		reqBody := request.CreateBookingRequest{WorkspaceID: workspaceID, StartTime: start, EndTime: end}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)

		require.Equal(t, int64(5400), created.SubtotalCents)
		require.Equal(t, int64(187), created.ProcessingFeeCents)
		require.Equal(t, int64(5587), created.TotalPriceCents)
		require.True(t, created.NFTDiscountApplied)
	})

	s.Run("Error case: unknown workspace returns 404", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", "user")

		start, end := futureSlot()
		reqBody := request.CreateBookingRequest{WorkspaceID: uuid.New(), StartTime: start, EndTime: end}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Error case: slot in the past returns 422", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "member@example.com", "user")

		start := time.Now().UTC().Add(-3 * time.Hour)
		reqBody := request.CreateBookingRequest{WorkspaceID: workspaceID, StartTime: start, EndTime: start.Add(time.Hour)}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: unauthenticated request returns 401", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		start, end := futureSlot()
		reqBody := request.CreateBookingRequest{WorkspaceID: workspaceID, StartTime: start, EndTime: end}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *BookingSuite) TestCheckIn() {
	s.Run("Normal case: check-in within the arrival window", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(5*time.Minute), now.Add(4*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var active response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &active)
		require.NoError(t, err)
		require.Equal(t, "checked_in", active.Status)
		require.NotNil(t, active.CheckInTime)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/metrics", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `coworkhub_booking_check_ins_total{outcome="success"}`)
	})

	s.Run("Error case: too early returns 422 with minutes remaining", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(2*time.Hour), now.Add(6*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, bookingID), nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "minutes")
	})

	s.Run("Error case: expired window returns 422", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(-6*time.Hour), now.Add(-3*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, bookingID), nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: second active stay returns 409 naming the workspace", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		otherWorkspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod B", 2000)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		activeID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(-time.Hour), now.Add(3*time.Hour), "confirmed")
		dbtest.MarkBookingCheckedIn(t, s.DB, activeID, now.Add(-time.Hour))

		secondID := dbtest.CreateTestBooking(t, s.DB, otherWorkspaceID, userID,
			now.Add(5*time.Minute), now.Add(4*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, secondID), nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "Focus Pod A")
	})

	s.Run("Error case: another member's booking returns 403", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", "user")
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "intruder@example.com", "user")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, ownerID,
			now.Add(5*time.Minute), now.Add(4*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, bookingID), nil, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: cancelled booking rejected as invalid state even with a stay elsewhere", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		otherWorkspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod B", 2000)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		activeID := dbtest.CreateTestBooking(t, s.DB, otherWorkspaceID, userID,
			now.Add(-time.Hour), now.Add(3*time.Hour), "confirmed")
		dbtest.MarkBookingCheckedIn(t, s.DB, activeID, now.Add(-time.Hour))

		cancelledID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(5*time.Minute), now.Add(4*time.Hour), "cancelled")

		// The state rejection wins over the cross-booking conflict
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, cancelledID), nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.NotContains(t, w.Body.String(), "Focus Pod B")
	})

	s.Run("Error case: cancelled booking returns 422", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(5*time.Minute), now.Add(4*time.Hour), "cancelled")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkInURL, bookingID), nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *BookingSuite) TestCheckOut() {
	s.Run("Normal case: leaving early settles a refund", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(-2*time.Hour), now.Add(2*time.Hour), "confirmed")
		dbtest.MarkBookingCheckedIn(t, s.DB, bookingID, now.Add(-time.Minute))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var settled response.CheckOutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &settled)
		require.NoError(t, err)

		require.Equal(t, "completed", settled.Booking.Status)
		require.True(t, settled.RequiresRefund)
		require.False(t, settled.RequiresAdditionalPayment)
		require.Positive(t, settled.Charges.RefundCents)
		require.Less(t, settled.Charges.FinalChargeCents, settled.Charges.InitialChargeCents)
		require.InDelta(t, 4.0, settled.Usage.BookedHours, 0.01)
	})

	s.Run("Normal case: overstaying settles an additional charge", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(-5*time.Hour), now.Add(-4*time.Hour), "confirmed")
		dbtest.MarkBookingCheckedIn(t, s.DB, bookingID, now.Add(-5*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var settled response.CheckOutResponse
		err := httptest.DecodeResponseBody(t, w.Body, &settled)
		require.NoError(t, err)

		require.Equal(t, "completed", settled.Booking.Status)
		require.True(t, settled.RequiresAdditionalPayment)
		require.Positive(t, settled.Charges.OverageCents)
		require.Greater(t, settled.Charges.FinalChargeCents, settled.Charges.InitialChargeCents)
	})

	s.Run("Error case: checking out twice returns 409", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(-2*time.Hour), now.Add(2*time.Hour), "confirmed")
		dbtest.MarkBookingCheckedIn(t, s.DB, bookingID, now.Add(-time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookingID), nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: check-out before check-in returns 422", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(time.Hour), now.Add(3*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(checkOutURL, bookingID), nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *BookingSuite) TestCancelAndList() {
	s.Run("Normal case: pending booking can be cancelled and disappears as active", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(2*time.Hour), now.Add(4*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+bookingID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+bookingID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &cancelled)
		require.NoError(t, err)
		require.Equal(t, "cancelled", cancelled.Status)
	})

	s.Run("Error case: active stay cannot be cancelled", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, workspaceID, userID,
			now.Add(-time.Hour), now.Add(3*time.Hour), "confirmed")
		dbtest.MarkBookingCheckedIn(t, s.DB, bookingID, now.Add(-time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+bookingID.String(), nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: list returns the member's bookings newest first", func() {
		t := s.T()

		workspaceID := dbtest.CreateTestWorkspace(t, s.DB, "Focus Pod A", 1500)
		userID := dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, workspaceID, userID, now.Add(2*time.Hour), now.Add(4*time.Hour), "pending")
		dbtest.CreateTestBooking(t, s.DB, workspaceID, userID, now.Add(26*time.Hour), now.Add(28*time.Hour), "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var items []response.BookingListResponse
		err := httptest.DecodeResponseBody(t, w.Body, &items)
		require.NoError(t, err)
		require.Len(t, items, 2)
	})
}
