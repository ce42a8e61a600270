//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/user"
	"stayhub/internal/handler/api"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

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

	actorID uuid.UUID
	role    user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.role = user.RoleGuest

	// Stand-in for the auth middleware
	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.POST("/bookings/quote", authMiddleware, s.handler.QuotePrice)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/confirm", authMiddleware, s.handler.ConfirmBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/complete", authMiddleware, s.handler.CompleteBooking)
	s.router.POST("/bookings/:id/recalculate-price", authMiddleware, s.handler.RecalculatePrice)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("created", func() {
		s.mockCommands.EXPECT().
			CreateBooking(gomock.Any(), gomock.Any()).
			Return(view, nil)

		w := s.doJSON(http.MethodPost, "/bookings", reqBody)

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), view.ID.String())
	})

	s.Run("malformed dates are 400", func() {
		bad := reqBody
		bad.CheckIn = "06/10/2025"

		w := s.doJSON(http.MethodPost, "/bookings", bad)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing guest count is 400", func() {
		w := s.doJSON(http.MethodPost, "/bookings", map[string]any{
			"property_id": b.Terms.ID,
			"check_in":    reqBody.CheckIn,
			"check_out":   reqBody.CheckOut,
		})

		s.Equal(http.StatusBadRequest, w.Code)
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
		expectBody string
	}{
		{
			name:       "unknown property is 404",
			err:        commands.ErrPropertyNotFound,
			expectCode: http.StatusNotFound,
		},
		{
			name:       "inactive property is 409",
			err:        commands.ErrPropertyNotBookable,
			expectCode: http.StatusConflict,
		},
		{
			name:       "date conflict is 409",
			err:        errs.Mark(&booking.RuleViolation{Rule: booking.ErrDateConflict, Field: "check_in"}, commands.ErrDomainValidation),
			expectCode: http.StatusConflict,
		},
		{
			name:       "stay too short is 422 with field",
			err:        errs.Mark(&booking.RuleViolation{Rule: booking.ErrStayTooShort, Field: "check_out", Limit: 2}, commands.ErrDomainValidation),
			expectCode: http.StatusUnprocessableEntity,
			expectBody: `"field":"check_out"`,
		},
		{
			name:       "capacity exceeded is 422 with limit",
			err:        errs.Mark(&booking.RuleViolation{Rule: booking.ErrCapacityExceeded, Field: "guest_count", Limit: 4}, commands.ErrDomainValidation),
			expectCode: http.StatusUnprocessableEntity,
			expectBody: `"limit":4`,
		},
		{
			name:       "db failure is 500",
			err:        commands.ErrDatabaseOperationFailed,
			expectCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().
				CreateBooking(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			w := s.doJSON(http.MethodPost, "/bookings", reqBody)

			s.Equal(tc.expectCode, w.Code)
			if tc.expectBody != "" {
				s.Contains(w.Body.String(), tc.expectBody)
			}
		})
	}
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("found", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.actorID, s.role, view.ID).
			Return(view, nil)

		w := s.doJSON(http.MethodGet, "/bookings/"+view.ID.String(), nil)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), view.PropertyTitle)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrBookingNotFound)

		w := s.doJSON(http.MethodGet, "/bookings/"+uuid.New().String(), nil)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("stranger is 403", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrAccessDenied)

		w := s.doJSON(http.MethodGet, "/bookings/"+uuid.New().String(), nil)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("bad id is 400", func() {
		w := s.doJSON(http.MethodGet, "/bookings/not-a-uuid", nil)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

// ================================================================================
// TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.mockQueries.EXPECT().
		ListForActor(gomock.Any(), s.actorID, s.role).
		Return([]*queries.BookingListItem{}, nil)

	w := s.doJSON(http.MethodGet, "/bookings", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("[]", w.Body.String())
}

// ================================================================================
// TestConfirmBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirmBooking() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("confirmed", func() {
		s.mockCommands.EXPECT().
			ConfirmBooking(gomock.Any(), view.ID, s.actorID).
			Return(view, nil)

		w := s.doJSON(http.MethodPost, "/bookings/"+view.ID.String()+"/confirm", nil)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("non-host is 403", func() {
		s.mockCommands.EXPECT().
			ConfirmBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPermissionDenied)

		w := s.doJSON(http.MethodPost, "/bookings/"+uuid.New().String()+"/confirm", nil)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("terminal status is 409", func() {
		err := errs.Mark(booking.ErrInvalidTransition, commands.ErrDomainValidation)
		s.mockCommands.EXPECT().
			ConfirmBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, err)

		w := s.doJSON(http.MethodPost, "/bookings/"+uuid.New().String()+"/confirm", nil)

		s.Equal(http.StatusConflict, w.Code)
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	view := builder.NewBookingBuilder().BuildView()
	view.Status = booking.StatusCancelled.String()

	s.Run("cancelled with refund", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), view.ID, s.actorID).
			Return(&commands.CancelBookingResult{Booking: view, RefundCents: 16500}, nil)

		w := s.doJSON(http.MethodPost, "/bookings/"+view.ID.String()+"/cancel", nil)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"refundCents":16500`)
	})

	s.Run("completed booking cannot cancel", func() {
		err := errs.Mark(booking.ErrInvalidTransition, commands.ErrDomainValidation)
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, err)

		w := s.doJSON(http.MethodPost, "/bookings/"+uuid.New().String()+"/cancel", nil)

		s.Equal(http.StatusConflict, w.Code)
	})
}

// ================================================================================
// TestQuotePrice
// ================================================================================

func (s *BookingHandlerTestSuite) TestQuotePrice() {
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()

	s.Run("quoted", func() {
		s.mockQueries.EXPECT().
			QuotePrice(gomock.Any(), gomock.Any()).
			Return(&queries.PriceQuote{
				Nights:               3,
				BasePriceCents:       30000,
				CleaningFeeCents:     2000,
				ServiceFeeCents:      1000,
				SecurityDepositCents: 3000,
				TotalPriceCents:      33000,
			}, nil)

		w := s.doJSON(http.MethodPost, "/bookings/quote", reqBody)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"totalPriceCents":33000`)
	})

	s.Run("unknown property is 404", func() {
		s.mockQueries.EXPECT().
			QuotePrice(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrPropertyNotFound)

		w := s.doJSON(http.MethodPost, "/bookings/quote", reqBody)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("stay below minimum is 422 with the field detail", func() {
		s.mockQueries.EXPECT().
			QuotePrice(gomock.Any(), gomock.Any()).
			Return(nil, &booking.RuleViolation{Rule: booking.ErrStayTooShort, Field: "check_out", Limit: 2})

		w := s.doJSON(http.MethodPost, "/bookings/quote", reqBody)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Contains(w.Body.String(), `"field":"check_out"`)
		s.Contains(w.Body.String(), `"limit":2`)
	})

	s.Run("inverted date range is 422", func() {
		s.mockQueries.EXPECT().
			QuotePrice(gomock.Any(), gomock.Any()).
			Return(nil, &booking.RuleViolation{Rule: booking.ErrInvalidDateRange, Field: "check_out"})

		w := s.doJSON(http.MethodPost, "/bookings/quote", reqBody)

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}
