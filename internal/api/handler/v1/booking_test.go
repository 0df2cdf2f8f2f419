package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type fakeBookingService struct {
	booking  domain.Booking
	bookings []domain.Booking
	swept    int

	createErr error
	getErr    error
	cancelErr error
	verifyErr error
}

func (f *fakeBookingService) CreateBooking(_ context.Context, _, _ uint, _ *uint, _ int) (domain.Booking, error) {
	if f.createErr != nil {
		return domain.Booking{}, f.createErr
	}

	return f.booking, nil
}

func (f *fakeBookingService) GetBooking(_ context.Context, _, _ uint, _ bool) (domain.Booking, error) {
	if f.getErr != nil {
		return domain.Booking{}, f.getErr
	}

	return f.booking, nil
}

func (f *fakeBookingService) ListUserBookings(_ context.Context, _ uint) ([]domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingService) ListEventBookings(_ context.Context, _ uint) ([]domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingService) CancelBooking(_ context.Context, _, _ uint, _ bool) (domain.Booking, error) {
	if f.cancelErr != nil {
		return domain.Booking{}, f.cancelErr
	}

	return f.booking, nil
}

func (f *fakeBookingService) VerifyTicket(_ context.Context, _ string) (domain.Booking, error) {
	if f.verifyErr != nil {
		return domain.Booking{}, f.verifyErr
	}

	return f.booking, nil
}

func (f *fakeBookingService) SweepStalePending(_ context.Context) (int, error) {
	return f.swept, nil
}

func setupBookingRouter(svc BookingService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewBookingHandler(svc)

	authed := func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
	}

	router := gin.New()
	router.POST("/v1/bookings", authed, h.HandleCreateBooking)
	router.GET("/v1/bookings/:bookingID", authed, h.HandleGetBooking)
	router.POST("/v1/bookings/:bookingID/cancel", authed, h.HandleCancelBooking)
	router.GET("/v1/bookings/verify/:reference", h.HandleVerifyTicket)
	router.POST("/v1/admin/bookings/sweep", h.HandleSweepStalePending)

	return router
}

func TestHandleCreateBooking(t *testing.T) {
	t.Run("201 with the pending booking", func(t *testing.T) {
		svc := &fakeBookingService{
			booking: domain.Booking{ID: 1, Status: domain.BookingPending, BookingReference: "BK-1"},
		}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"event_id":1,"ticket_count":2}`))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), `"booking_reference":"BK-1"`)
	})

	t.Run("400 without a ticket count", func(t *testing.T) {
		svc := &fakeBookingService{}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"event_id":1}`))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("409 when seats run out", func(t *testing.T) {
		svc := &fakeBookingService{createErr: service.ErrInsufficientSeats}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"event_id":1,"ticket_count":2}`))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("404 for a draft event", func(t *testing.T) {
		svc := &fakeBookingService{createErr: service.ErrEventNotFound}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"event_id":1,"ticket_count":2}`))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestHandleGetBooking(t *testing.T) {
	t.Run("403 for another user's booking", func(t *testing.T) {
		svc := &fakeBookingService{getErr: service.ErrPermissionDenied}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/1", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("400 for a malformed id", func(t *testing.T) {
		svc := &fakeBookingService{}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/abc", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHandleCancelBooking(t *testing.T) {
	t.Run("409 when the booking cannot be cancelled", func(t *testing.T) {
		svc := &fakeBookingService{cancelErr: service.ErrBookingNotCancellable}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodPost, "/v1/bookings/1/cancel", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestHandleVerifyTicket(t *testing.T) {
	t.Run("valid ticket", func(t *testing.T) {
		svc := &fakeBookingService{
			booking: domain.Booking{ID: 1, Status: domain.BookingConfirmed, BookingReference: "BK-1"},
		}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/verify/BK-1", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"valid":true`)
	})

	t.Run("409 for an unpaid booking", func(t *testing.T) {
		svc := &fakeBookingService{verifyErr: service.ErrBookingNotConfirmed}
		router := setupBookingRouter(svc, 7)

		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/verify/BK-1", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestHandleSweepStalePending(t *testing.T) {
	svc := &fakeBookingService{swept: 3}
	router := setupBookingRouter(svc, 7)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/bookings/sweep", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"swept":3}`, resp.Body.String())
}
