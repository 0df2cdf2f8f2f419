package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID, eventID uint, ticketTypeID *uint, ticketCount int) (domain.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID uint, isAdmin bool) (domain.Booking, error)
	ListUserBookings(ctx context.Context, userID uint) ([]domain.Booking, error)
	ListEventBookings(ctx context.Context, eventID uint) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID uint, isAdmin bool) (domain.Booking, error)
	VerifyTicket(ctx context.Context, reference string) (domain.Booking, error)
	SweepStalePending(ctx context.Context) (int, error)
}

type BookingHandler struct {
	svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{
		svc: svc,
	}
}

// HandleCreateBooking godoc
// @Summary      Create a pending booking
// @Tags         bookings
// @Produce      json
// @Param        request  body       request.CreateBookingRequest true "request body"
// @Success      201      {object}   domain.Booking
// @Failure      400,404  {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bookings [post]
func (h *BookingHandler) HandleCreateBooking(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req request.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.CreateBooking(ctx.Request.Context(), userID, req.EventID, req.TicketTypeID, req.TicketCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrTicketTypeNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrTicketingDisabled):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTicketingDisabled))
		case errors.Is(err, service.ErrInsufficientSeats):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInsufficientSeats))
		default:
			err = fmt.Errorf("v1.HandleCreateBooking -> h.svc.CreateBooking -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, booking)
}

// HandleGetBooking godoc
// @Summary      Get a booking by ID
// @Tags         bookings
// @Produce      json
// @Param        bookingID  path     int  true "booking ID"
// @Success      200      {object}   domain.Booking
// @Failure      400,403,404 {object} response.Err
// @Failure      500      {object}   response.Err
// @Router       /bookings/{bookingID} [get]
func (h *BookingHandler) HandleGetBooking(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.GetBooking(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
		default:
			err = fmt.Errorf("v1.HandleGetBooking -> h.svc.GetBooking -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// HandleListMyBookings godoc
// @Summary      List the authenticated user's bookings
// @Tags         bookings
// @Produce      json
// @Success      200      {object}   []domain.Booking
// @Failure      500      {object}   response.Err
// @Router       /bookings [get]
func (h *BookingHandler) HandleListMyBookings(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	bookings, err := h.svc.ListUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyBookings -> h.svc.ListUserBookings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// HandleListEventBookings godoc
// @Summary      List all bookings for an event (admin)
// @Tags         bookings
// @Produce      json
// @Param        eventID  path       int  true "event ID"
// @Success      200      {object}   []domain.Booking
// @Failure      400,500  {object}   response.Err
// @Router       /admin/events/{eventID}/bookings [get]
func (h *BookingHandler) HandleListEventBookings(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	bookings, err := h.svc.ListEventBookings(ctx.Request.Context(), id)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEventBookings -> h.svc.ListEventBookings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// HandleCancelBooking godoc
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Param        bookingID  path     int  true "booking ID"
// @Success      200      {object}   domain.Booking
// @Failure      400,403,404 {object} response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bookings/{bookingID}/cancel [post]
func (h *BookingHandler) HandleCancelBooking(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	booking, err := h.svc.CancelBooking(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
		case errors.Is(err, service.ErrBookingNotCancellable):
			response.RenderErr(ctx, response.ErrConflict(service.ErrBookingNotCancellable))
		default:
			err = fmt.Errorf("v1.HandleCancelBooking -> h.svc.CancelBooking -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// HandleVerifyTicket godoc
// @Summary      Verify a ticket by booking reference
// @Tags         bookings
// @Produce      json
// @Param        reference  path     string true "booking reference"
// @Success      200      {object}   response.TicketVerificationResponse
// @Failure      404,409  {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /bookings/verify/{reference} [get]
func (h *BookingHandler) HandleVerifyTicket(ctx *gin.Context) {
	reference := ctx.Param("reference")

	booking, err := h.svc.VerifyTicket(ctx.Request.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBookingNotFound))
		case errors.Is(err, service.ErrBookingNotConfirmed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrBookingNotConfirmed))
		default:
			err = fmt.Errorf("v1.HandleVerifyTicket -> h.svc.VerifyTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.TicketVerificationResponse{
		Valid:   true,
		Booking: booking,
	})
}

// HandleSweepStalePending godoc
// @Summary      Cancel stale pending bookings now (admin)
// @Tags         bookings
// @Produce      json
// @Success      200      {object}   response.SweepResponse
// @Failure      500      {object}   response.Err
// @Router       /admin/bookings/sweep [post]
func (h *BookingHandler) HandleSweepStalePending(ctx *gin.Context) {
	swept, err := h.svc.SweepStalePending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSweepStalePending -> h.svc.SweepStalePending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SweepResponse{
		Swept: swept,
	})
}
