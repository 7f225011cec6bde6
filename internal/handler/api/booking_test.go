//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"coworkhub/internal/domain/user"
	"coworkhub/internal/handler/api"
	resdto "coworkhub/internal/handler/dto/response"
	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/queries"
	"coworkhub/tests/common/builder"
	"coworkhub/tests/common/httptest"
	commandsmock "coworkhub/tests/mock/commands"
	queriesmock "coworkhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Mock middleware behavior: inject the authenticated member
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleMember)
		c.Next()
	})

	s.router.POST("/bookings", s.handler.Create)
	s.router.GET("/bookings", s.handler.List)
	s.router.GET("/bookings/:id", s.handler.Get)
	s.router.POST("/bookings/:id/check-in", s.handler.CheckIn)
	s.router.POST("/bookings/:id/check-out", s.handler.CheckOut)
	s.router.DELETE("/bookings/:id", s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	bb := builder.NewBookingBuilder().WithUserID(s.userID)
	reqBody := bb.BuildDTO()
	returnView := bb.BuildReadModel()

	s.Run("success: returns 201 with the priced booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.userID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.TotalPriceCents, response.TotalPriceCents)
		s.Equal(returnView.ConfirmationCode, response.ConfirmationCode)
	})

	s.Run("error: 404 when the workspace does not exist", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.userID).
			Return(nil, commands.ErrWorkspaceNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Workspace not found")
	})

	s.Run("error: 422 when the slot is invalid", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.userID).
			Return(nil, commands.ErrDomainValidation).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("error: 400 on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"workspace_id": "not-a-uuid"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	bb := builder.NewBookingBuilder().WithUserID(s.userID)
	returnView := bb.BuildReadModel()
	url := fmt.Sprintf("/bookings/%s", returnView.ID)

	s.Run("success: returns the booking", func() {
		expectedActor := queries.Actor{ID: s.userID, Role: user.RoleMember}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), expectedActor, returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.WorkspaceName, response.WorkspaceName)
	})

	s.Run("error: 403 for another member's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrForbidden).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: returns the member's bookings", func() {
		items := []*queries.BookingListItem{
			builder.NewBookingBuilder().WithUserID(s.userID).BuildListItem(),
			builder.NewBookingBuilder().WithUserID(s.userID).WithStatus("completed").BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, int32(0)).
			Return(items, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")

		var response []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(items[0].WorkspaceName, response[0].WorkspaceName)
	})
}

func (s *BookingHandlerTestSuite) TestCheckIn() {
	bookingID := uuid.New()
	url := fmt.Sprintf("/bookings/%s/check-in", bookingID)

	s.Run("success: returns the active booking", func() {
		now := time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC)
		returnView := builder.NewBookingBuilder().WithUserID(s.userID).CheckedIn(now).BuildReadModel()
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID, s.userID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("checked_in", response.Status)
		s.NotNil(response.CheckInTime)
	})

	s.Run("error: maps each rejection to its status", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown booking",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "someone else's booking",
				commandsError:  commands.ErrNotBookingOwner,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "another member",
			},
			{
				name:           "cancelled booking",
				commandsError:  commands.ErrInvalidBookingState,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "current state",
			},
			{
				name:           "repeated check-in",
				commandsError:  commands.ErrAlreadyCheckedIn,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Already checked in",
			},
			{
				name:           "active stay elsewhere",
				commandsError:  commands.ErrActiveBookingExists,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "currently checked in",
			},
			{
				name:           "window not yet open",
				commandsError:  commands.ErrCheckInTooEarly,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not opened yet",
			},
			{
				name:           "window expired",
				commandsError:  commands.ErrCheckInWindowExpired,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "expired",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID, s.userID).
					Return(nil, tc.commandsError).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCheckOut() {
	bookingID := uuid.New()
	url := fmt.Sprintf("/bookings/%s/check-out", bookingID)

	s.Run("success: settles an overage", func() {
		in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		out := in.Add(5 * time.Hour)
		bb := builder.NewBookingBuilder().WithUserID(s.userID).Completed(in, out)
		result := &commands.CheckOutResult{
			Booking: bb.BuildReadModel(),
			Usage: commands.Usage{
				BookedHours: 4,
				ActualHours: 5,
				Description: "Booked 4.00h, used 5.00h",
			},
			Charges: commands.Charges{
				InitialChargeCents: 6204,
				FinalChargeCents:   7704,
				OverageCents:       1500,
			},
			RequiresAdditionalPayment: true,
		}
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID, s.userID).
			Return(result, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.CheckOutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.RequiresAdditionalPayment)
		s.False(response.RequiresRefund)
		s.Equal(int64(1500), response.Charges.OverageCents)
		s.Equal(float64(5), response.Usage.ActualHours)
	})

	s.Run("success: refunds unused time", func() {
		in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		out := in.Add(2 * time.Hour)
		bb := builder.NewBookingBuilder().WithUserID(s.userID).Completed(in, out)
		result := &commands.CheckOutResult{
			Booking: bb.BuildReadModel(),
			Usage: commands.Usage{
				BookedHours: 4,
				ActualHours: 2,
				Description: "Booked 4.00h, used 2.00h",
			},
			Charges: commands.Charges{
				InitialChargeCents: 6204,
				FinalChargeCents:   3204,
				RefundCents:        3000,
			},
			RequiresRefund: true,
		}
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID, s.userID).
			Return(result, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.CheckOutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.RequiresRefund)
		s.Equal(int64(3000), response.Charges.RefundCents)
	})

	s.Run("error: 422 before check-in", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID, s.userID).
			Return(nil, commands.ErrInvalidBookingState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Must check in")
	})

	s.Run("error: 409 when already checked out", func() {
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID, s.userID).
			Return(nil, commands.ErrAlreadyCheckedOut).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Already checked out")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := fmt.Sprintf("/bookings/%s", bookingID)

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.userID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 for an active stay", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.userID).
			Return(commands.ErrAlreadyCheckedIn).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "active stay")
	})

	s.Run("error: 409 for a terminal booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), bookingID, s.userID).
			Return(commands.ErrInvalidBookingState).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already completed or cancelled")
	})
}
